package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-scene-kit/pkg/domain"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const markdownMimeType = "text/markdown"

// PublishRunner はコンパイル結果の保存を担う契約です。
type PublishRunner interface {
	Run(ctx context.Context, result domain.CompileResult, outputPath string) error
}

// PromptPublisher はコンパイル済みプロンプトと診断レポートを
// ローカルまたは GCS に Markdown として書き出すのだ。
type PromptPublisher struct {
	writer remoteio.OutputWriter
}

// NewPromptPublisher creates and returns a new instance of PromptPublisher with the specified writer.
func NewPromptPublisher(writer remoteio.OutputWriter) *PromptPublisher {
	return &PromptPublisher{writer: writer}
}

// Run はレポートの構築と書き出しを一括して実行するのだ！
func (p *PromptPublisher) Run(ctx context.Context, result domain.CompileResult, outputPath string) error {
	report := buildReport(result)

	if err := p.writer.Write(ctx, outputPath, bytes.NewReader([]byte(report)), markdownMimeType); err != nil {
		return fmt.Errorf("コンパイル結果の保存に失敗したのだ (%s): %w", outputPath, err)
	}

	slog.InfoContext(ctx, "コンパイル結果を保存したのだ", "path", outputPath, "status", result.Status)
	return nil
}

// buildReport はコンパイル結果を人間が読める Markdown レポートに変換します。
// 同一の CompileResult からは常に同一のレポートが得られます。
func buildReport(result domain.CompileResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Scene Compile Report\n\nStatus: **%s**\n", result.Status))

	if result.Blocked() {
		sb.WriteString("\n## Blocking Errors\n\n")
		for _, d := range result.Errors {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", d.Field, d.Message))
		}
	} else {
		sb.WriteString("\n## Prompt\n\n```\n")
		sb.WriteString(result.Prompt)
		sb.WriteString("```\n")
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, d := range result.Warnings {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", d.Field, d.Message))
		}
	}

	return sb.String()
}
