package domain

import (
	"strings"
	"testing"
)

func TestGetWardrobe(t *testing.T) {
	t.Run("正常なJSONからマップを構築できるのだ", func(t *testing.T) {
		data := []byte(`{
			"fennec": {"id": "fennec", "name": "Fennec", "visual_cues": ["navy waistcoat"], "seed": 20240901, "is_primary": true},
			"marla":  {"id": "marla", "name": "Marla", "visual_cues": ["grey shawl"]}
		}`)

		wardrobe, err := GetWardrobe(data)
		if err != nil {
			t.Fatalf("パースに失敗したのだ: %v", err)
		}
		if len(wardrobe) != 2 {
			t.Fatalf("プリセット数 = %d, want 2", len(wardrobe))
		}
		if wardrobe["fennec"].Seed != 20240901 {
			t.Errorf("Seed = %d, want 20240901", wardrobe["fennec"].Seed)
		}
	})

	t.Run("壊れたJSONはerrorになるのだ", func(t *testing.T) {
		if _, err := GetWardrobe([]byte(`{"fennec": `)); err == nil {
			t.Error("パースエラーが返るべきなのだ")
		}
	})
}

func TestGetSeedFromName(t *testing.T) {
	t.Run("登録済みのシードが最優先なのだ", func(t *testing.T) {
		m := WardrobeMap{"Fennec": {Name: "Fennec", Seed: 42}}
		if got := GetSeedFromName("Fennec", m); got != 42 {
			t.Errorf("Seed = %d, want 42", got)
		}
	})

	t.Run("未登録の名前からは決定論的にシードが導出されるのだ", func(t *testing.T) {
		first := GetSeedFromName("Marla", nil)
		second := GetSeedFromName("Marla", WardrobeMap{})
		if first != second {
			t.Errorf("同じ名前から異なるシードが出たのだ: %d vs %d", first, second)
		}
		if first < 0 {
			t.Errorf("シードは非負のはずなのだ: %d", first)
		}
	})

	t.Run("違う名前は（ほぼ確実に）違うシードになるのだ", func(t *testing.T) {
		if GetSeedFromName("Fennec", nil) == GetSeedFromName("Marla", nil) {
			t.Error("名前ごとにシードが分かれるべきなのだ")
		}
	})
}

func TestWardrobeMap_FindItem(t *testing.T) {
	m := WardrobeMap{
		"fennec": {ID: "fennec", Name: "Fennec"},
	}

	t.Run("完全一致で見つかるのだ", func(t *testing.T) {
		if item := m.FindItem("fennec"); item == nil || item.Name != "Fennec" {
			t.Errorf("FindItem = %v", item)
		}
	})

	t.Run("大文字でも小文字に落として見つかるのだ", func(t *testing.T) {
		if item := m.FindItem("Fennec"); item == nil {
			t.Error("小文字フォールバックで見つかるべきなのだ")
		}
	})

	t.Run("未登録IDはnilなのだ", func(t *testing.T) {
		if item := m.FindItem("ghost"); item != nil {
			t.Errorf("FindItem = %v, want nil", item)
		}
	})

	t.Run("nilマップでも安全なのだ", func(t *testing.T) {
		var none WardrobeMap
		if item := none.FindItem("fennec"); item != nil {
			t.Errorf("FindItem = %v, want nil", item)
		}
	})
}

func TestWardrobeMap_GetPrimary(t *testing.T) {
	t.Run("IsPrimaryのプリセットが返るのだ", func(t *testing.T) {
		m := WardrobeMap{
			"marla":  {ID: "marla", Name: "Marla"},
			"fennec": {ID: "fennec", Name: "Fennec", IsPrimary: true},
		}
		if item := m.GetPrimary(); item == nil || item.ID != "fennec" {
			t.Errorf("GetPrimary = %v", item)
		}
	})

	t.Run("主役がいなければnilなのだ", func(t *testing.T) {
		m := WardrobeMap{"marla": {ID: "marla"}}
		if item := m.GetPrimary(); item != nil {
			t.Errorf("GetPrimary = %v, want nil", item)
		}
	})
}

func TestWardrobeItem_String(t *testing.T) {
	item := WardrobeItem{ID: "fennec", Name: "Fennec"}
	if got := item.String(); !strings.Contains(got, "Fennec") || !strings.Contains(got, "fennec") {
		t.Errorf("String = %q", got)
	}
}
