package suggest

import (
	"reflect"
	"testing"

	"github.com/shouni/go-scene-kit/pkg/domain"
	"github.com/shouni/go-scene-kit/pkg/prompts"
)

func TestCategories(t *testing.T) {
	t.Run("固定順で全カテゴリが返るのだ", func(t *testing.T) {
		want := []string{
			prompts.CategoryFocusTarget,
			prompts.CategoryAnchors,
			prompts.CategoryMicroDetails,
			prompts.CategoryMechanicLock,
		}
		if got := Categories(); !reflect.DeepEqual(got, want) {
			t.Errorf("Categories = %v, want %v", got, want)
		}
	})

	t.Run("戻り値を書き換えても内部の順序は壊れないのだ", func(t *testing.T) {
		got := Categories()
		got[0] = "tampered"
		if Categories()[0] != prompts.CategoryFocusTarget {
			t.Error("Categories はコピーを返すべきなのだ")
		}
	})
}

func TestCategorySpecs(t *testing.T) {
	cases := []struct {
		category    string
		candidates  int
		recommended int
	}{
		{prompts.CategoryFocusTarget, 3, 0},
		{prompts.CategoryAnchors, 10, 5},
		{prompts.CategoryMicroDetails, 12, 0},
		{prompts.CategoryMechanicLock, 5, 0},
	}
	for _, tc := range cases {
		spec, ok := categorySpecs[tc.category]
		if !ok {
			t.Errorf("カテゴリ %q の件数契約が無いのだ", tc.category)
			continue
		}
		if spec.Candidates != tc.candidates || spec.Recommended != tc.recommended {
			t.Errorf("%s: spec = %+v, want {%d %d}", tc.category, spec, tc.candidates, tc.recommended)
		}
	}
}

func TestClampList(t *testing.T) {
	t.Run("余分な候補は切り詰められるのだ", func(t *testing.T) {
		got := clampList([]string{"a", "b", "c", "d"}, 2)
		if !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("clampList = %v", got)
		}
	})

	t.Run("空白エントリは除去した上で数えるのだ", func(t *testing.T) {
		got := clampList([]string{"  ", "a", "", "b "}, 3)
		if !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("clampList = %v", got)
		}
	})

	t.Run("上限0はnilを返すのだ", func(t *testing.T) {
		if got := clampList([]string{"a"}, 0); got != nil {
			t.Errorf("clampList = %v, want nil", got)
		}
	})
}

func TestBuildSuggestionData(t *testing.T) {
	record := domain.SceneRecord{
		SceneHeart: "A fox reads by candlelight",
		Framing:    domain.FramingMedium,
		Lens:       domain.LensShallow,
		Cast: []domain.CastMember{
			{Name: "Fennec", Description: "small red fox"},
			{Name: "Marla"},
		},
		EnvironmentAnchors: []string{"worn armchair", "", "rain window", "", ""},
		MicroDetails:       []string{"dust motes"},
		MechanicLock:       "A gust makes the flame gutter.",
		FocusTarget:        "The fox's eyes stay sharp.",
	}
	spec := CategorySpec{Candidates: 10, Recommended: 5}

	data := buildSuggestionData(record, "extra context", spec)

	if data.SceneHeart != record.SceneHeart {
		t.Errorf("SceneHeart = %q", data.SceneHeart)
	}
	if !reflect.DeepEqual(data.Cast, []string{"Fennec: small red fox", "Marla"}) {
		t.Errorf("Cast = %v", data.Cast)
	}
	if !reflect.DeepEqual(data.Anchors, []string{"worn armchair", "rain window"}) {
		t.Errorf("空スロットは渡さないのだ: %v", data.Anchors)
	}
	if data.CandidateCount != 10 || data.RecommendedCount != 5 {
		t.Errorf("件数指定が写っていないのだ: %+v", data)
	}
	if data.ContextText != "extra context" {
		t.Errorf("ContextText = %q", data.ContextText)
	}
}

func TestCacheKey(t *testing.T) {
	record := domain.SceneRecord{
		SceneHeart:         "A fox reads by candlelight",
		Framing:            domain.FramingMedium,
		Lens:               domain.LensShallow,
		EnvironmentAnchors: []string{"worn armchair", "steaming mug", "rain window", "", ""},
	}

	t.Run("同じ文脈なら同じキーになるのだ", func(t *testing.T) {
		a := cacheKey(prompts.CategoryAnchors, record, "ctx")
		b := cacheKey(prompts.CategoryAnchors, record, "ctx")
		if a != b {
			t.Errorf("キーが再現しないのだ: %q vs %q", a, b)
		}
	})

	t.Run("カテゴリが違えばキーも違うのだ", func(t *testing.T) {
		a := cacheKey(prompts.CategoryAnchors, record, "")
		b := cacheKey(prompts.CategoryMicroDetails, record, "")
		if a == b {
			t.Error("カテゴリごとにキーが分かれるべきなのだ")
		}
	})

	t.Run("シーンが1フィールドでも違えばキーも違うのだ", func(t *testing.T) {
		changed := record
		changed.FocusTarget = "The fox's eyes stay sharp."
		a := cacheKey(prompts.CategoryAnchors, record, "")
		b := cacheKey(prompts.CategoryAnchors, changed, "")
		if a == b {
			t.Error("文脈の変化がキーに反映されるべきなのだ")
		}
	})

	t.Run("フィールド間の区切りが効いているのだ", func(t *testing.T) {
		one := domain.SceneRecord{MechanicLock: "ab", FocusTarget: "c"}
		two := domain.SceneRecord{MechanicLock: "a", FocusTarget: "bc"}
		a := cacheKey(prompts.CategoryMechanicLock, one, "")
		b := cacheKey(prompts.CategoryMechanicLock, two, "")
		if a == b {
			t.Error("フィールド境界の異なる文脈が同じキーになってはいけないのだ")
		}
	})
}
