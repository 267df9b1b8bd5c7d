package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-scene-kit/internal/config"
	"github.com/shouni/go-scene-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// compileCmd は、シーン定義をバリデーションして最終プロンプトを組み立てるのだ。
// AIには一切アクセスしないオフラインコマンドなのだ。
var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "シーン定義を検証してプロンプトにコンパイルするのだ。",
	Long: `シーンYAMLを読み込み、ルールセットによる検証と決定論的なレンダリングを実行するのだ。
hard 診断が1件でもあればコンパイルはブロックされ、プロンプトは生成されないのだよ。`,
	RunE: compileCommand,
}

func init() {
}

func compileCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.SceneFile == "" {
		return fmt.Errorf("シーン定義（--scene-file）を指定してほしいのだ")
	}

	// 1. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("シーンコンパイラを起動するのだ！",
		"scene", opts.SceneFile,
		"wardrobe", opts.WardrobeFile,
		"output", opts.OutputFile)

	result, err := pipeline.ExecuteCompile(ctx, cfg)
	if err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	// ブロックは「期待された結果」であってパイプラインの失敗ではないが、
	// スクリプトから扱えるよう終了コードでは区別するのだ
	if result.Blocked() {
		return fmt.Errorf("シーンはコンパイルをブロックされたのだ（hard 診断 %d 件）", len(result.Errors))
	}

	slog.Info("コンパイルが完了したのだ！")
	return nil
}
