package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel         = "gemini-3-flash-preview"
	DefaultImageModel    = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultRateLimit     = 10 * time.Second
	DefaultSceneFile     = "examples/scene.yaml"     // シーン定義（YAML）のデフォルトパス
	DefaultWardrobeFile  = ""                        // ワードローブは任意
	DefaultLocalFile     = "output/scene_prompt.md"  // コンパイル結果レポートのデフォルト保存先なのだ
	DefaultLocalImage    = "output/scene.png"        // 生成画像のデフォルト保存先なのだ
	DefaultProjectDir    = "output/projects"         // プロジェクトストアのベースディレクトリなのだ
	DefaultStyleSuffix   = "cinematic lighting, masterpiece, ultra-detailed, high resolution, sharp focus on the named subject, painterly texture"
	DefaultSuggestTarget = "all"
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	ProjectID        string
	LocationID       string
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	StyleSuffix      string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		ProjectID:        envutil.GetEnv("PROJECT_ID", ""),
		LocationID:       envutil.GetEnv("REGION", ""),
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		StyleSuffix:      envutil.GetEnv("SCENE_STYLE_SUFFIX", DefaultStyleSuffix),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	SceneFile    string // --scene-file
	WardrobeFile string // --wardrobe
	SceneURL     string // --scene-url: 候補生成の追加文脈に使うWebページ
	OutputFile   string // --output-file
	OutputImage  string // --output-image

	// 候補生成関連
	Category string // --category: 候補生成のカテゴリ（all で全カテゴリ）

	// プロジェクトストア関連
	ProjectDir  string // --project-dir
	ProjectID   string // --project-id
	ProjectName string // --project-name

	// AI挙動設定
	AIModel    string // --model: 候補生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
