package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultGeminiModel  = "gemini-3-flash-preview"
	DefaultImageModel   = "gemini-3-pro-image-preview"
	DefaultRateInterval = 10 * time.Second
	DefaultProjectDir   = "output/projects"
	DefaultStyleSuffix  = "cinematic lighting, masterpiece, ultra-detailed, high resolution, sharp focus on the named subject, painterly texture"
)

// Config は Go Scene Kit の各 Runner を動作させるための基本設定です。
type Config struct {
	// --- AI Model Settings ---
	GeminiModel string // 候補生成（テキスト）用モデル
	ImageModel  string // シーン画像生成用モデル

	// --- Google AI (Gemini API) Settings ---
	GeminiAPIKey string

	// --- Generation Settings ---
	StyleSuffix  string
	RateInterval time.Duration

	// --- Storage Settings ---
	ProjectDir string // プロジェクトストアのベース（ローカル or gs://...）

	// --- Timeout & Retries ---
	RequestTimeout time.Duration
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		GeminiModel:  DefaultGeminiModel,
		ImageModel:   DefaultImageModel,
		StyleSuffix:  DefaultStyleSuffix,
		RateInterval: DefaultRateInterval,
		ProjectDir:   DefaultProjectDir,
	}
}
