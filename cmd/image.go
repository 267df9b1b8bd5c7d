package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-scene-kit/internal/config"
	"github.com/shouni/go-scene-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// imageCmd は、コンパイル済みプロンプトから最終イラストを生成するのだ。
// コンパイルがブロックされるシーンでは画像生成に進まないのだ。
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "シーンをコンパイルして最終イラストを生成するのだ。",
	Long: `シーンYAMLを検証・コンパイルし、成功した場合のみ Gemini で画像を生成して保存するのだ。
hard 診断が残っているシーンは画像生成を拒否するのだよ。`,
	RunE: imageCommand,
}

func init() {
}

func imageCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.SceneFile == "" {
		return fmt.Errorf("シーン定義（--scene-file）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("シーン画像生成モードを起動するのだ！",
		"scene", opts.SceneFile,
		"output_image", opts.OutputImage,
		"image_model", cfg.GeminiImageModel)

	if err := pipeline.ExecuteImage(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
