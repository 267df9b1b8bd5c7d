package domain

import (
	"sort"
	"strings"
)

// FindItem は直接のIDからプリセット情報を特定します。
func (m WardrobeMap) FindItem(id string) *WardrobeItem {
	if m == nil {
		return nil
	}
	if item, ok := m[id]; ok {
		res := item
		return &res
	}
	if item, ok := m[strings.ToLower(id)]; ok {
		res := item
		return &res
	}
	return nil
}

// GetPrimary はマップ内から IsPrimary が true のプリセットを1つ返します。
// 常に同じ結果を得るため、IDでソートした順に走査します。
func (m WardrobeMap) GetPrimary() *WardrobeItem {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		item := m[k]
		if item.IsPrimary {
			res := item
			return &res
		}
	}

	return nil
}
