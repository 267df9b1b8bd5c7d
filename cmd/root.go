package cmd

import (
	"github.com/shouni/go-scene-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は全サブコマンドで共有する実行時パラメータなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.SceneFile, "scene-file", "f", config.DefaultSceneFile, "シーン定義YAMLのパスなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.WardrobeFile, "wardrobe", "w", config.DefaultWardrobeFile, "キャストの外見プリセット（JSON）のパスなのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputFile, "output-file", "o", config.DefaultLocalFile, "コンパイル結果の保存パス（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.OutputImage, "output-image", config.DefaultLocalImage, "生成画像の保存パス（ローカル or gs://...）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "候補生成に使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")

	// --- プロジェクトストア関連 ---
	rootCmd.PersistentFlags().StringVar(&opts.ProjectDir, "project-dir", config.DefaultProjectDir, "プロジェクトストアのベース（ローカル or gs://...）なのだ。")

	// --- 候補生成固有設定 ---
	suggestCmd.Flags().StringVarP(&opts.Category, "category", "c", config.DefaultSuggestTarget, "候補生成のカテゴリ（focus_target / environment_anchors / micro_details / mechanic_lock / all）なのだ。")
	suggestCmd.Flags().StringVarP(&opts.SceneURL, "scene-url", "u", "", "追加文脈として本文を抽出するWebページのURLなのだ。")
}

// preRunAppE は、コマンド実行前の共通チェックを行うのだ。
// APIキーの要否はコマンドごとに異なるため、ここでは検査しないのだ
// （compile はオフラインで動くのがこのキットの売りなのだ）。
func preRunAppE(cmd *cobra.Command, args []string) error {
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"scene-kit",
		addAppFlags,
		preRunAppE,
		compileCmd,
		suggestCmd,
		imageCmd,
		projectCmd,
	)
}
