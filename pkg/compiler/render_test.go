package compiler

import (
	"strings"
	"testing"

	"github.com/shouni/go-scene-kit/pkg/domain"
)

func fullRecord() domain.SceneRecord {
	return Normalize(domain.SceneInput{
		SceneHeart: "A fox reads by candlelight",
		Framing:    "medium",
		Lens:       "shallow",
		Cast: []domain.CastMember{
			{Name: "Fennec", Description: "small red fox in a waistcoat"},
		},
		EnvironmentAnchors: []string{"worn armchair", "steaming mug", "rain window", "journal stack"},
		MicroDetails:       []string{"dust motes", "bending flame", "pawprint"},
		MechanicLock:       "A gust slips under the door, making the flame gutter.",
		FocusTarget:        "The fox's eyes stay sharp; the window dissolves.",
	})
}

func TestRender_Determinism(t *testing.T) {
	t.Run("同一レコードはバイト単位で同一の出力になるのだ", func(t *testing.T) {
		record := fullRecord()

		first, err := Render(record)
		if err != nil {
			t.Fatalf("レンダリングに失敗したのだ: %v", err)
		}
		second, err := Render(record)
		if err != nil {
			t.Fatalf("レンダリングに失敗したのだ: %v", err)
		}

		if first != second {
			t.Error("出力が再現しないのだ")
		}
	})
}

func TestRender_SectionOrder(t *testing.T) {
	record := fullRecord()
	prompt, err := Render(record)
	if err != nil {
		t.Fatalf("レンダリングに失敗したのだ: %v", err)
	}

	sections := []string{
		sectionSceneHeart,
		sectionCamera,
		sectionCast,
		sectionAnchors,
		sectionMicroDetails,
		sectionMechanicLock,
		sectionFocusTarget,
	}

	lastIndex := -1
	for _, section := range sections {
		idx := strings.Index(prompt, section)
		if idx == -1 {
			t.Fatalf("セクション %q が出力に含まれていないのだ", section)
		}
		if idx < lastIndex {
			t.Errorf("セクション %q の位置が順序契約に違反しているのだ", section)
		}
		lastIndex = idx
	}
}

func TestRender_ContentFidelity(t *testing.T) {
	t.Run("アンカーはスロット順で埋まっているものだけ出力されるのだ", func(t *testing.T) {
		record := Normalize(domain.SceneInput{
			SceneHeart:         "heart",
			EnvironmentAnchors: []string{"first", "", "third", "", "fifth"},
		})
		prompt, err := Render(record)
		if err != nil {
			t.Fatalf("レンダリングに失敗したのだ: %v", err)
		}

		if !strings.Contains(prompt, "1. first\n2. third\n3. fifth\n") {
			t.Errorf("アンカーの出力が違うのだ:\n%s", prompt)
		}
	})

	t.Run("空のセクションは見出しごと省略されるのだ", func(t *testing.T) {
		record := Normalize(domain.SceneInput{
			SceneHeart:         "heart",
			EnvironmentAnchors: []string{"a", "b", "c"},
		})
		prompt, err := Render(record)
		if err != nil {
			t.Fatalf("レンダリングに失敗したのだ: %v", err)
		}

		for _, absent := range []string{sectionCast, sectionMicroDetails, sectionMechanicLock, sectionFocusTarget} {
			if strings.Contains(prompt, absent) {
				t.Errorf("空セクション %q が出力されてしまったのだ", absent)
			}
		}
	})

	t.Run("内容を発明しないのだ", func(t *testing.T) {
		record := fullRecord()
		prompt, err := Render(record)
		if err != nil {
			t.Fatalf("レンダリングに失敗したのだ: %v", err)
		}
		if !strings.Contains(prompt, record.SceneHeart) {
			t.Error("シーンハートがそのまま含まれるべきなのだ")
		}
		if !strings.Contains(prompt, "Fennec: small red fox in a waistcoat") {
			t.Error("キャストがそのまま含まれるべきなのだ")
		}
	})
}

func TestRender_PreconditionViolation(t *testing.T) {
	t.Run("hard診断が残るレコードはerrorになるのだ", func(t *testing.T) {
		record := Normalize(domain.SceneInput{}) // シーンハートもアンカーも無い
		if _, err := Render(record); err == nil {
			t.Error("前提条件違反はerrorを返すべきなのだ")
		}
	})
}
