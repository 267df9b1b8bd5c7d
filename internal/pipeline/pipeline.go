package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-scene-kit/internal/config"
	"github.com/shouni/go-scene-kit/pkg/compiler"
	"github.com/shouni/go-scene-kit/pkg/domain"
	"github.com/shouni/go-scene-kit/pkg/workflow"

	pkgconfig "github.com/shouni/go-scene-kit/pkg/config"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// appContext は1回のコマンド実行で共有するコンポーネント一式なのだ。
type appContext struct {
	builder *workflow.Builder
	reader  remoteio.InputReader
	writer  remoteio.OutputWriter
}

// ExecuteCompile は、シーンのロード → コンパイル → レポート保存を実行するのだ。
// コンパイルがブロックされた場合もレポートは保存し、エラーではなく
// 診断として扱うのだ（終了コードは呼び出し側が決める）。
func ExecuteCompile(ctx context.Context, cfg *config.Config) (domain.CompileResult, error) {
	appCtx, err := setupAppContext(ctx, cfg, false)
	if err != nil {
		return domain.CompileResult{}, err
	}

	result, err := appCtx.builder.BuildCompileRunner().Run(ctx, cfg.Options.SceneFile, cfg.Options.WardrobeFile)
	if err != nil {
		return domain.CompileResult{}, fmt.Errorf("シーンのコンパイルに失敗したのだ: %w", err)
	}

	publisher := appCtx.builder.BuildPublishRunner()
	if err := publisher.Run(ctx, result, cfg.Options.OutputFile); err != nil {
		return domain.CompileResult{}, err
	}

	printResult(result)
	return result, nil
}

// ExecuteSuggest は、指定カテゴリの候補を取得して標準出力にJSONで書き出すのだ。
func ExecuteSuggest(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg, true)
	if err != nil {
		return err
	}

	suggestRunner, err := appCtx.builder.BuildSuggestRunner()
	if err != nil {
		return fmt.Errorf("SuggestRunnerの構築に失敗したのだ: %w", err)
	}

	results, err := suggestRunner.Run(ctx, cfg.Options.SceneFile, cfg.Options.WardrobeFile, cfg.Options.Category, cfg.Options.SceneURL)
	if err != nil {
		return fmt.Errorf("候補の取得に失敗したのだ: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("候補のJSON出力に失敗したのだ: %w", err)
	}

	slog.Info("候補の取得が完了したのだ！", "categories", len(results))
	return nil
}

// ExecuteImage は、コンパイル済みプロンプトから最終イラストを生成して保存するのだ。
func ExecuteImage(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg, true)
	if err != nil {
		return err
	}

	compileRunner := appCtx.builder.BuildCompileRunner()
	record, err := compileRunner.LoadRecord(ctx, cfg.Options.SceneFile, cfg.Options.WardrobeFile)
	if err != nil {
		return err
	}

	// ワードローブのビジュアル情報は LoadRecord で適用済み。
	// ここではシード解決のためにマップ自体も渡すのだ。
	var wardrobe domain.WardrobeMap
	if cfg.Options.WardrobeFile != "" {
		wardrobe, err = domain.LoadWardrobe(cfg.Options.WardrobeFile)
		if err != nil {
			return err
		}
		// 二重適用を避けるため、画像ランナーには cues 適用前の
		// レコードではなく適用済みレコードと空の WardrobeID を渡す
		record = stripWardrobeIDs(record)
	}

	imageRunner, err := appCtx.builder.BuildImageRunner()
	if err != nil {
		return fmt.Errorf("ImageRunnerの構築に失敗したのだ: %w", err)
	}

	resp, err := imageRunner.Run(ctx, record, wardrobe)
	if err != nil {
		return err
	}

	outputPath := cfg.Options.OutputImage
	if err := appCtx.writer.Write(ctx, outputPath, bytes.NewReader(resp.Data), resp.MimeType); err != nil {
		return fmt.Errorf("生成画像の保存に失敗したのだ: %w", err)
	}

	slog.Info("シーン画像が完成したのだ！", "path", outputPath)
	return nil
}

// ExecuteProjectSave は、シーンファイルをプロジェクトとして保存するのだ。
func ExecuteProjectSave(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg, false)
	if err != nil {
		return err
	}

	projectStore, err := appCtx.builder.BuildProjectStore()
	if err != nil {
		return fmt.Errorf("プロジェクトストアの構築に失敗したのだ: %w", err)
	}

	input, wardrobe, err := loadProjectSource(cfg)
	if err != nil {
		return err
	}

	project := &domain.Project{
		ID:       cfg.Options.ProjectID,
		Name:     cfg.Options.ProjectName,
		Scene:    input,
		Wardrobe: wardrobe,
	}

	// 保存時に最新のコンパイル状態も記録しておくのだ
	result, err := compiler.Compile(input)
	if err != nil {
		return err
	}
	project.LastBlocked = result.Blocked()
	if !result.Blocked() {
		project.LastPrompt = result.Prompt
	}

	id, err := projectStore.Save(ctx, project)
	if err != nil {
		return err
	}

	fmt.Printf("project saved: %s\n", id)
	return nil
}

// ExecuteProjectLoad は、保存済みプロジェクトをロードして再コンパイルするのだ。
func ExecuteProjectLoad(ctx context.Context, cfg *config.Config) (domain.CompileResult, error) {
	appCtx, err := setupAppContext(ctx, cfg, false)
	if err != nil {
		return domain.CompileResult{}, err
	}

	projectStore, err := appCtx.builder.BuildProjectStore()
	if err != nil {
		return domain.CompileResult{}, fmt.Errorf("プロジェクトストアの構築に失敗したのだ: %w", err)
	}

	project, err := projectStore.Load(ctx, cfg.Options.ProjectID)
	if err != nil {
		return domain.CompileResult{}, err
	}

	record := compiler.Normalize(project.Scene).ApplyWardrobe(project.Wardrobe)
	result, err := compiler.CompileRecord(record)
	if err != nil {
		return domain.CompileResult{}, err
	}

	slog.Info("プロジェクトをロードして再コンパイルしたのだ", "id", project.ID, "name", project.Name, "status", result.Status)
	printResult(result)
	return result, nil
}

// ExecuteProjectList は、保存済みプロジェクトの一覧を表示するのだ。
func ExecuteProjectList(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg, false)
	if err != nil {
		return err
	}

	projectStore, err := appCtx.builder.BuildProjectStore()
	if err != nil {
		return fmt.Errorf("プロジェクトストアの構築に失敗したのだ: %w", err)
	}

	projects, err := projectStore.List(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("no projects found")
		return nil
	}

	for _, p := range projects {
		status := "ok"
		if p.LastBlocked {
			status = "blocked"
		}
		fmt.Printf("%s  %-20s  %s  updated %s\n",
			p.ID, p.Name, status, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、
// アプリケーションコンテキストを初期化して返すのだ。needsAI が true の
// 場合のみ Gemini クライアントを初期化し、APIキーの存在を要求するのだ。
func setupAppContext(ctx context.Context, cfg *config.Config, needsAI bool) (*appContext, error) {
	httpClient := httpkit.New(cfg.Options.HTTPTimeout)

	var aiClient gemini.GenerativeModel
	if needsAI {
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。候補生成と画像生成には必須なのだ")
		}
		client, err := workflow.InitializeAIClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create ai client: %w", err)
		}
		aiClient = client
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	wfCfg := pkgconfig.Config{
		GeminiModel:    cfg.GeminiModel,
		ImageModel:     cfg.GeminiImageModel,
		GeminiAPIKey:   cfg.GeminiAPIKey,
		StyleSuffix:    cfg.StyleSuffix,
		RateInterval:   config.DefaultRateLimit,
		ProjectDir:     cfg.Options.ProjectDir,
		RequestTimeout: cfg.Options.HTTPTimeout,
	}

	builder, err := workflow.NewBuilder(wfCfg, httpClient, aiClient, reader, writer)
	if err != nil {
		return nil, err
	}

	return &appContext{builder: builder, reader: reader, writer: writer}, nil
}

// loadProjectSource はプロジェクト保存用にシーンとワードローブを読み込むのだ。
func loadProjectSource(cfg *config.Config) (domain.SceneInput, domain.WardrobeMap, error) {
	data, err := os.ReadFile(cfg.Options.SceneFile)
	if err != nil {
		return domain.SceneInput{}, nil, fmt.Errorf("シーンファイルの読み込みに失敗したのだ: %w", err)
	}

	input, err := domain.ParseSceneYAML(data)
	if err != nil {
		return domain.SceneInput{}, nil, err
	}

	var wardrobe domain.WardrobeMap
	if cfg.Options.WardrobeFile != "" {
		wardrobe, err = domain.LoadWardrobe(cfg.Options.WardrobeFile)
		if err != nil {
			return domain.SceneInput{}, nil, err
		}
	}

	return input, wardrobe, nil
}

// stripWardrobeIDs は適用済みレコードから WardrobeID を落とし、
// ビジュアル情報の二重合成を防ぐのだ。
func stripWardrobeIDs(record domain.SceneRecord) domain.SceneRecord {
	cast := make([]domain.CastMember, len(record.Cast))
	copy(cast, record.Cast)
	for i := range cast {
		cast[i].WardrobeID = ""
	}
	record.Cast = cast
	return record
}

// printResult はコンパイル結果を人間向けに標準出力へ書き出すのだ。
func printResult(result domain.CompileResult) {
	if result.Blocked() {
		fmt.Println("status: blocked")
		for _, d := range result.Errors {
			fmt.Printf("  error [%s]: %s\n", d.Field, d.Message)
		}
	} else {
		fmt.Println("status: ok")
		fmt.Println()
		fmt.Println(result.Prompt)
	}
	for _, d := range result.Warnings {
		fmt.Printf("  warning [%s]: %s\n", d.Field, d.Message)
	}
}
