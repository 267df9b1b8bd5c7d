// Package compiler はシーン定義を検証し、画像生成モデル向けの
// 最終プロンプトテキストへ決定論的にコンパイルします。
//
// このパッケージは純粋な計算のみを行います。I/O・共有状態・ロックを
// 一切持たないため、複数の Compile 呼び出しを調整なしに並行実行できます。
package compiler

import (
	"strings"

	"github.com/shouni/go-scene-kit/pkg/domain"
)

// Normalize は生のシーン入力を正規化済みの SceneRecord に変換します。
//
// 正規化は決して失敗しません。最悪の場合でも、後段のバリデーションで
// 落ちるレコードを生成するだけです。呼び出しごとに新しいレコードを
// 返し、入力のスライスを共有しません。
func Normalize(raw domain.SceneInput) domain.SceneRecord {
	return domain.SceneRecord{
		SceneHeart:         strings.TrimSpace(raw.SceneHeart),
		Framing:            normalizeFraming(raw.Framing),
		Lens:               normalizeLens(raw.Lens),
		Cast:               normalizeCast(raw.Cast),
		EnvironmentAnchors: normalizeAnchors(raw.EnvironmentAnchors),
		MicroDetails:       normalizeList(raw.MicroDetails),
		MechanicLock:       strings.TrimSpace(raw.MechanicLock),
		FocusTarget:        strings.TrimSpace(raw.FocusTarget),
	}
}

// normalizeAnchors はアンカーをちょうど AnchorSlotCount 個のスロットに揃えます。
// スロット位置が「必須/任意」のセマンティクスを持つため、
// 切り詰め・パディングで既存エントリの順序を変えてはいけません。
func normalizeAnchors(raw []string) []string {
	slots := make([]string, domain.AnchorSlotCount)
	for i := 0; i < len(raw) && i < domain.AnchorSlotCount; i++ {
		slots[i] = strings.TrimSpace(raw[i])
	}
	return slots
}

// normalizeList は各要素をトリムし、空白のみのエントリを除去します。
func normalizeList(raw []string) []string {
	clean := make([]string, 0, len(raw))
	for _, s := range raw {
		if t := strings.TrimSpace(s); t != "" {
			clean = append(clean, t)
		}
	}
	return clean
}

// normalizeCast は名前・説明をトリムし、名前も説明も空のメンバーを除去します。
func normalizeCast(raw []domain.CastMember) []domain.CastMember {
	clean := make([]domain.CastMember, 0, len(raw))
	for _, m := range raw {
		member := domain.CastMember{
			Name:        strings.TrimSpace(m.Name),
			Description: strings.TrimSpace(m.Description),
			WardrobeID:  strings.TrimSpace(m.WardrobeID),
		}
		if member.Name == "" && member.Description == "" {
			continue
		}
		clean = append(clean, member)
	}
	return clean
}

func normalizeFraming(raw string) domain.Framing {
	switch domain.Framing(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.FramingTight:
		return domain.FramingTight
	case domain.FramingWide:
		return domain.FramingWide
	default:
		// 未指定・未知の値は medium に倒す。フレーミング自体は
		// コンパイルをブロックする条件ではない。
		return domain.FramingMedium
	}
}

func normalizeLens(raw string) domain.Lens {
	switch domain.Lens(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.LensDeep:
		return domain.LensDeep
	default:
		return domain.LensShallow
	}
}
