package domain

import (
	"reflect"
	"testing"
)

func TestParseSceneYAML(t *testing.T) {
	t.Run("スネークケースのキーでシーンを読み込めるのだ", func(t *testing.T) {
		data := []byte(`
scene_heart: "A fox reads by candlelight"
framing: medium
lens: shallow
cast:
  - name: Fennec
    wardrobe_id: fennec
environment_anchors:
  - worn armchair
  - steaming mug
  - rain window
micro_details:
  - dust motes
mechanic_lock: "A gust slips under the door, making the flame gutter."
focus_target: "The fox's eyes stay sharp."
`)
		input, err := ParseSceneYAML(data)
		if err != nil {
			t.Fatalf("パースに失敗したのだ: %v", err)
		}
		if input.SceneHeart != "A fox reads by candlelight" {
			t.Errorf("SceneHeart = %q", input.SceneHeart)
		}
		if len(input.EnvironmentAnchors) != 3 {
			t.Errorf("アンカー数 = %d, want 3", len(input.EnvironmentAnchors))
		}
		if len(input.Cast) != 1 || input.Cast[0].WardrobeID != "fennec" {
			t.Errorf("Cast = %+v", input.Cast)
		}
	})

	t.Run("壊れたYAMLはerrorになるのだ", func(t *testing.T) {
		if _, err := ParseSceneYAML([]byte("scene_heart: [")); err == nil {
			t.Error("パースエラーが返るべきなのだ")
		}
	})
}

func TestSceneRecord_FilledAnchors(t *testing.T) {
	record := SceneRecord{
		EnvironmentAnchors: []string{"first", "", "third", "   ", "fifth"},
	}

	got := record.FilledAnchors()
	want := []string{"first", "third", "fifth"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilledAnchors = %v, want %v", got, want)
	}
	if record.FilledAnchorCount() != 3 {
		t.Errorf("FilledAnchorCount = %d, want 3", record.FilledAnchorCount())
	}
}

func TestSceneRecord_ApplyWardrobe(t *testing.T) {
	wardrobe := WardrobeMap{
		"fennec": {ID: "fennec", Name: "Fennec", VisualCues: []string{"navy waistcoat", "brass spectacles"}},
	}

	t.Run("ビジュアルキューがDescriptionに合成されるのだ", func(t *testing.T) {
		record := SceneRecord{
			Cast: []CastMember{{Name: "Fennec", Description: "small red fox", WardrobeID: "fennec"}},
		}
		applied := record.ApplyWardrobe(wardrobe)
		want := "small red fox, navy waistcoat, brass spectacles"
		if applied.Cast[0].Description != want {
			t.Errorf("Description = %q, want %q", applied.Cast[0].Description, want)
		}
	})

	t.Run("Descriptionが空ならキューだけが入るのだ", func(t *testing.T) {
		record := SceneRecord{
			Cast: []CastMember{{Name: "Fennec", WardrobeID: "fennec"}},
		}
		applied := record.ApplyWardrobe(wardrobe)
		if applied.Cast[0].Description != "navy waistcoat, brass spectacles" {
			t.Errorf("Description = %q", applied.Cast[0].Description)
		}
	})

	t.Run("レシーバは変更されないのだ", func(t *testing.T) {
		record := SceneRecord{
			Cast: []CastMember{{Name: "Fennec", Description: "small red fox", WardrobeID: "fennec"}},
		}
		_ = record.ApplyWardrobe(wardrobe)
		if record.Cast[0].Description != "small red fox" {
			t.Errorf("レシーバが書き換わってしまったのだ: %q", record.Cast[0].Description)
		}
	})

	t.Run("未登録IDのメンバーはそのままなのだ", func(t *testing.T) {
		record := SceneRecord{
			Cast: []CastMember{{Name: "Marla", Description: "grey cat", WardrobeID: "ghost"}},
		}
		applied := record.ApplyWardrobe(wardrobe)
		if applied.Cast[0].Description != "grey cat" {
			t.Errorf("Description = %q, want %q", applied.Cast[0].Description, "grey cat")
		}
	})
}
