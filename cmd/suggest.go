package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-scene-kit/internal/config"
	"github.com/shouni/go-scene-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// suggestCmd は、Geminiにシーンフィールドの候補を生成させるのだ。
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "AIにシーンフィールドの候補を生成させるのだ。",
	Long: `現在のシーン文脈をもとに、フォーカスターゲット・アンカー・マイクロディテール・
メカニックロックの候補文字列を生成するのだ。結果はJSONで標準出力に書き出すのだよ。
候補はあくまで通常のフィールド入力と同じ扱いで、採用後は同じルールセットで検証されるのだ。`,
	RunE: suggestCommand,
}

func init() {
}

func suggestCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.SceneFile == "" {
		return fmt.Errorf("シーン定義（--scene-file）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.Options = opts

	slog.Info("候補生成を起動するのだ！",
		"scene", opts.SceneFile,
		"category", opts.Category,
		"model", cfg.GeminiModel)

	if err := pipeline.ExecuteSuggest(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}
	return nil
}
