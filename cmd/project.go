package cmd

import (
	"fmt"

	"github.com/shouni/go-scene-kit/internal/config"
	"github.com/shouni/go-scene-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// projectCmd は、プロジェクトストアへの保存・読み込みを束ねる親コマンドなのだ。
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "シーンをプロジェクトとして保存・再コンパイルするのだ。",
}

var projectSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "シーンとワードローブをプロジェクトドキュメントとして保存するのだ。",
	RunE:  projectSaveCommand,
}

var projectLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "保存済みプロジェクトをロードして再コンパイルするのだ。",
	RunE:  projectLoadCommand,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "保存済みプロジェクトの一覧を表示するのだ。",
	RunE:  projectListCommand,
}

func init() {
	projectSaveCmd.Flags().StringVar(&opts.ProjectName, "name", "", "プロジェクトの表示名なのだ。")
	projectSaveCmd.Flags().StringVar(&opts.ProjectID, "id", "", "既存プロジェクトを上書きする場合のIDなのだ（省略時は新規発行）。")
	projectLoadCmd.Flags().StringVar(&opts.ProjectID, "id", "", "ロードするプロジェクトのIDなのだ。")

	projectCmd.AddCommand(projectSaveCmd, projectLoadCmd, projectListCmd)
}

func projectSaveCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.SceneFile == "" {
		return fmt.Errorf("シーン定義（--scene-file）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	if err := pipeline.ExecuteProjectSave(ctx, cfg); err != nil {
		return fmt.Errorf("プロジェクトの保存に失敗したのだ: %w", err)
	}
	return nil
}

func projectListCommand(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	cfg.Options = opts

	if err := pipeline.ExecuteProjectList(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("プロジェクト一覧の取得に失敗したのだ: %w", err)
	}
	return nil
}

func projectLoadCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.ProjectID == "" {
		return fmt.Errorf("ロードするプロジェクト（--id）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	if _, err := pipeline.ExecuteProjectLoad(ctx, cfg); err != nil {
		return fmt.Errorf("プロジェクトのロードに失敗したのだ: %w", err)
	}
	return nil
}
