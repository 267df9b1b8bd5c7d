// Package workflow は Scene Kit の各工程を担う Runner 群を構築・管理します。
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/go-scene-kit/pkg/config"
	"github.com/shouni/go-scene-kit/pkg/runner"
	"github.com/shouni/go-scene-kit/pkg/store"
	"github.com/shouni/go-scene-kit/pkg/suggest"

	"github.com/patrickmn/go-cache"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	defaultCacheExpiration = 5 * time.Minute
	cacheCleanupInterval   = 15 * time.Minute
	defaultTTL             = 5 * time.Minute
	defaultRateBurst       = 2

	defaultGeminiTemperature = float32(0.4)
)

// Builder はワークフローの各工程を担う Runner 群を構築・管理するのだ。
type Builder struct {
	cfg        config.Config
	httpClient httpkit.ClientInterface
	aiClient   gemini.GenerativeModel
	reader     remoteio.InputReader
	writer     remoteio.OutputWriter
}

// NewBuilder は Config と共有クライアント群を基に新しい Builder を作成するのだ。
// aiClient は候補生成・画像生成を使わない場合に限り nil でもよいのだ。
func NewBuilder(cfg config.Config, httpClient httpkit.ClientInterface, aiClient gemini.GenerativeModel, reader remoteio.InputReader, writer remoteio.OutputWriter) (*Builder, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}
	if reader == nil {
		return nil, fmt.Errorf("reader は必須です")
	}
	if writer == nil {
		return nil, fmt.Errorf("writer は必須です")
	}

	return &Builder{
		cfg:        cfg,
		httpClient: httpClient,
		aiClient:   aiClient,
		reader:     reader,
		writer:     writer,
	}, nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// BuildCompileRunner はシーンのコンパイルを担当する Runner を作成するのだ。
func (b *Builder) BuildCompileRunner() *runner.SceneCompileRunner {
	return runner.NewSceneCompileRunner(b.reader)
}

// BuildSuggestRunner は候補生成を担当する Runner を作成するのだ。
func (b *Builder) BuildSuggestRunner() (*runner.SuggestRunner, error) {
	if b.aiClient == nil {
		return nil, fmt.Errorf("aiClient は必須です")
	}

	resultCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	limiter := rate.NewLimiter(rate.Every(b.cfg.RateInterval), defaultRateBurst)

	provider, err := suggest.NewProvider(b.aiClient, b.cfg.GeminiModel, limiter, resultCache)
	if err != nil {
		return nil, fmt.Errorf("サジェスチョンプロバイダの初期化に失敗しました: %w", err)
	}

	extractor, err := extract.NewExtractor(b.httpClient)
	if err != nil {
		return nil, fmt.Errorf("エクストラクタの初期化に失敗しました: %w", err)
	}

	return runner.NewSuggestRunner(provider, extractor, b.BuildCompileRunner()), nil
}

// BuildImageRunner はシーン画像生成を担当する Runner を作成するのだ。
func (b *Builder) BuildImageRunner() (*runner.SceneImageRunner, error) {
	if b.aiClient == nil {
		return nil, fmt.Errorf("aiClient は必須です")
	}

	imgGen, err := b.initializeImageGenerator()
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}

	return runner.NewSceneImageRunner(imgGen, b.cfg.StyleSuffix), nil
}

// BuildPublishRunner はコンパイル結果のパブリッシュを担当する Runner を作成するのだ。
func (b *Builder) BuildPublishRunner() runner.PublishRunner {
	return runner.NewPromptPublisher(b.writer)
}

// BuildProjectStore はプロジェクトストアを作成するのだ。
func (b *Builder) BuildProjectStore() (*store.ProjectStore, error) {
	return store.NewProjectStore(b.reader, b.writer, b.cfg.ProjectDir)
}

// initializeImageGenerator は、画像キャッシュを含む ImageGenerator を初期化します。
func (b *Builder) initializeImageGenerator() (imagekit.ImageGenerator, error) {
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := imagekit.NewGeminiImageCore(
		b.aiClient,
		b.reader,
		b.httpClient,
		imgCache,
		defaultTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCore の初期化に失敗しました: %w", err)
	}

	return imagekit.NewGeminiGenerator(
		b.cfg.ImageModel,
		core,
	)
}
