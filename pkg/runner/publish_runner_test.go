package runner

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shouni/go-scene-kit/pkg/domain"
)

// fakeWriter は書き込み内容を記録するインメモリライターです。
type fakeWriter struct {
	paths    []string
	contents map[string][]byte
	mimes    map[string]string
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{contents: make(map[string][]byte), mimes: make(map[string]string)}
}

func (w *fakeWriter) Write(ctx context.Context, path string, data io.Reader, mimeType string) error {
	buf, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	w.paths = append(w.paths, path)
	w.contents[path] = buf
	w.mimes[path] = mimeType
	return nil
}

func TestPromptPublisher_Run(t *testing.T) {
	ctx := context.Background()
	writer := newFakeWriter()
	publisher := NewPromptPublisher(writer)

	result := domain.CompileResult{
		Status: domain.CompileOK,
		Prompt: "### SCENE HEART ###\nA fox reads by candlelight\n",
		Warnings: []domain.Diagnostic{
			{Severity: domain.SeveritySoft, Field: domain.FieldFocusTarget, Message: "No focus target set; consider naming the subject that must render sharp."},
		},
	}

	if err := publisher.Run(ctx, result, "output/scene_prompt.md"); err != nil {
		t.Fatalf("実行に失敗したのだ: %v", err)
	}

	report := string(writer.contents["output/scene_prompt.md"])
	if writer.mimes["output/scene_prompt.md"] != markdownMimeType {
		t.Errorf("MIMEタイプ = %q", writer.mimes["output/scene_prompt.md"])
	}
	if !strings.Contains(report, "Status: **ok**") {
		t.Errorf("ステータス表記が見つからないのだ:\n%s", report)
	}
	if !strings.Contains(report, "## Prompt") || !strings.Contains(report, result.Prompt) {
		t.Error("プロンプト本文がレポートに含まれるべきなのだ")
	}
	if !strings.Contains(report, "## Warnings") {
		t.Error("警告セクションが含まれるべきなのだ")
	}
}

func TestBuildReport(t *testing.T) {
	t.Run("ブロック時はエラー一覧のみでプロンプトは出さないのだ", func(t *testing.T) {
		result := domain.CompileResult{
			Status: domain.CompileBlocked,
			Errors: []domain.Diagnostic{
				{Severity: domain.SeverityHard, Field: domain.FieldSceneHeart, Message: "Scene Heart is required."},
				{Severity: domain.SeverityHard, Field: domain.FieldAnchors, Message: "At least 3 environment anchors are required; 3 more needed."},
			},
		}

		report := buildReport(result)
		if !strings.Contains(report, "## Blocking Errors") {
			t.Error("エラーセクションが欲しいのだ")
		}
		if strings.Contains(report, "## Prompt") {
			t.Error("ブロック時にプロンプトセクションを出してはいけないのだ")
		}
		if !strings.Contains(report, "Scene Heart is required.") {
			t.Error("エラーメッセージがそのまま載るべきなのだ")
		}
	})

	t.Run("同一結果からは常に同一のレポートが出るのだ", func(t *testing.T) {
		result := domain.CompileResult{
			Status: domain.CompileOK,
			Prompt: "### SCENE HEART ###\nheart\n",
			Warnings: []domain.Diagnostic{
				{Severity: domain.SeveritySoft, Field: domain.FieldMicroDetails, Message: "sparse"},
			},
		}
		if buildReport(result) != buildReport(result) {
			t.Error("レポートが再現しないのだ")
		}
	})
}
