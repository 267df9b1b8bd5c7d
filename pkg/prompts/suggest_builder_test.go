package prompts

import (
	"strings"
	"testing"
)

func TestNewSuggestionPromptBuilder(t *testing.T) {
	builder, err := NewSuggestionPromptBuilder()
	if err != nil {
		t.Fatalf("ビルダーの初期化に失敗したのだ: %v", err)
	}
	if builder == nil {
		t.Fatal("ビルダーがnilなのだ")
	}
}

func TestSuggestionPromptBuilder_Build(t *testing.T) {
	builder, err := NewSuggestionPromptBuilder()
	if err != nil {
		t.Fatalf("ビルダーの初期化に失敗したのだ: %v", err)
	}

	data := SuggestionData{
		SceneHeart:       "A fox reads by candlelight",
		Framing:          "medium",
		Lens:             "shallow",
		Cast:             []string{"Fennec: small red fox"},
		Anchors:          []string{"worn armchair", "steaming mug", "rain window"},
		MicroDetails:     []string{"dust motes"},
		CandidateCount:   10,
		RecommendedCount: 5,
	}

	categories := []string{
		CategoryFocusTarget,
		CategoryAnchors,
		CategoryMicroDetails,
		CategoryMechanicLock,
	}

	for _, category := range categories {
		t.Run("カテゴリ "+category+" のプロンプトが生成できるのだ", func(t *testing.T) {
			prompt, err := builder.Build(category, data)
			if err != nil {
				t.Fatalf("プロンプト生成に失敗したのだ: %v", err)
			}
			if !strings.Contains(prompt, data.SceneHeart) {
				t.Error("シーンハートが文脈として埋め込まれるべきなのだ")
			}
			if !strings.Contains(prompt, "JSON") {
				t.Error("JSONでの応答指示が含まれるべきなのだ")
			}
		})
	}

	t.Run("件数指定がテンプレートに反映されるのだ", func(t *testing.T) {
		prompt, err := builder.Build(CategoryAnchors, data)
		if err != nil {
			t.Fatalf("プロンプト生成に失敗したのだ: %v", err)
		}
		if !strings.Contains(prompt, "exactly 10") {
			t.Errorf("候補件数の指定が見つからないのだ:\n%s", prompt)
		}
	})

	t.Run("未知のカテゴリはerrorになるのだ", func(t *testing.T) {
		if _, err := builder.Build("weather", data); err == nil {
			t.Error("サポート外カテゴリはエラーになるべきなのだ")
		}
	})

	t.Run("文脈テキストは指定時だけ挿入されるのだ", func(t *testing.T) {
		withContext := data
		withContext.ContextText = "Victorian study interiors reference"

		base, err := builder.Build(CategoryFocusTarget, data)
		if err != nil {
			t.Fatalf("プロンプト生成に失敗したのだ: %v", err)
		}
		enriched, err := builder.Build(CategoryFocusTarget, withContext)
		if err != nil {
			t.Fatalf("プロンプト生成に失敗したのだ: %v", err)
		}

		if strings.Contains(base, "Additional context") {
			t.Error("文脈なしのプロンプトに文脈セクションが出てはいけないのだ")
		}
		if !strings.Contains(enriched, withContext.ContextText) {
			t.Error("文脈テキストがプロンプトに含まれるべきなのだ")
		}
	})
}
