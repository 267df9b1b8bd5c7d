package domain

import "strings"

// FilledAnchors はスロット順を保ったまま、空白以外のアンカーのみを返します。
func (s SceneRecord) FilledAnchors() []string {
	filled := make([]string, 0, len(s.EnvironmentAnchors))
	for _, a := range s.EnvironmentAnchors {
		if strings.TrimSpace(a) != "" {
			filled = append(filled, a)
		}
	}
	return filled
}

// FilledAnchorCount は空白以外のアンカースロット数を返します。
// アンカー数のハードルール判定はこの値を基準とします。
func (s SceneRecord) FilledAnchorCount() int {
	return len(s.FilledAnchors())
}

// ApplyWardrobe はキャストの WardrobeID をプリセットで解決し、
// ビジュアル情報を Description に合成した新しい SceneRecord を返します。
// レシーバは変更しません。レンダラーは内容を発明しないため、
// プリセットの展開はコンパイルより前のこの段階で行います。
func (s SceneRecord) ApplyWardrobe(wardrobe WardrobeMap) SceneRecord {
	if len(wardrobe) == 0 || len(s.Cast) == 0 {
		return s
	}

	cast := make([]CastMember, len(s.Cast))
	copy(cast, s.Cast)
	for i, member := range cast {
		if member.WardrobeID == "" {
			continue
		}
		item := wardrobe.FindItem(member.WardrobeID)
		if item == nil || len(item.VisualCues) == 0 {
			continue
		}
		cues := strings.Join(item.VisualCues, ", ")
		if member.Description == "" {
			cast[i].Description = cues
		} else {
			cast[i].Description = member.Description + ", " + cues
		}
	}

	out := s
	out.Cast = cast
	return out
}
