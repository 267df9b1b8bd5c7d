package compiler

import (
	"fmt"
	"strings"

	"github.com/shouni/go-scene-kit/pkg/domain"
)

// セクション見出しの定数。レンダリング文法は表示契約であり、
// 同一レコードからはバイト単位で同一の出力を再現しなければなりません。
const (
	sectionSceneHeart   = "### SCENE HEART ###"
	sectionCamera       = "### CAMERA ###"
	sectionCast         = "### CAST ###"
	sectionAnchors      = "### ENVIRONMENT ANCHORS ###"
	sectionMicroDetails = "### MICRO DETAILS ###"
	sectionMechanicLock = "### MECHANIC LOCK ###"
	sectionFocusTarget  = "### FOCUS TARGET ###"
)

// framingQualifiers はフレーミング値を画像モデル向けの修飾句に変換します。
var framingQualifiers = map[domain.Framing]string{
	domain.FramingTight:  "tight close-up framing",
	domain.FramingMedium: "balanced medium shot",
	domain.FramingWide:   "wide establishing shot",
}

// lensQualifiers はレンズ値を被写界深度の修飾句に変換します。
var lensQualifiers = map[domain.Lens]string{
	domain.LensShallow: "shallow depth of field, soft defocused background",
	domain.LensDeep:    "deep focus, every plane rendered crisp",
}

// Render はバリデーションを通過したレコードを最終プロンプトテキストに
// 直列化します。固定されたセクション順で連結し、元データが空のセクションは
// 出力しません。内容の発明は一切行いません。
//
// 前提条件として record は Validate で CanCompile = true でなければ
// なりません。ハードルールに失敗したレコードを渡すのは呼び出し側の
// プログラミングエラーであり、診断ではなく error として返します。
func Render(record domain.SceneRecord) (string, error) {
	if result := Validate(record); !result.CanCompile {
		return "", fmt.Errorf("レンダラーの前提条件違反: hard 診断が残っているレコードが渡されました（%d件）", len(result.Errors()))
	}
	if len(record.EnvironmentAnchors) != domain.AnchorSlotCount {
		return "", fmt.Errorf("レンダラーの前提条件違反: アンカースロット数が %d ではありません（%d）",
			domain.AnchorSlotCount, len(record.EnvironmentAnchors))
	}

	var sb strings.Builder

	// 1. シーンハート（ハードルールにより常に非空）
	sb.WriteString(sectionSceneHeart)
	sb.WriteString("\n")
	sb.WriteString(record.SceneHeart)
	sb.WriteString("\n")

	// 2. フレーミング/レンズ修飾句
	sb.WriteString("\n")
	sb.WriteString(sectionCamera)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("- FRAMING: %s\n", framingQualifiers[record.Framing]))
	sb.WriteString(fmt.Sprintf("- LENS: %s\n", lensQualifiers[record.Lens]))

	// 3. キャスト
	if len(record.Cast) > 0 {
		sb.WriteString("\n")
		sb.WriteString(sectionCast)
		sb.WriteString("\n")
		for _, member := range record.Cast {
			if member.Description != "" {
				sb.WriteString(fmt.Sprintf("- %s: %s\n", member.Name, member.Description))
			} else {
				sb.WriteString(fmt.Sprintf("- %s\n", member.Name))
			}
		}
	}

	// 4. エンバイロメントアンカー（埋まっているスロットのみ、スロット順）
	sb.WriteString("\n")
	sb.WriteString(sectionAnchors)
	sb.WriteString("\n")
	for i, anchor := range record.FilledAnchors() {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, anchor))
	}

	// 5. マイクロディテール
	if len(record.MicroDetails) > 0 {
		sb.WriteString("\n")
		sb.WriteString(sectionMicroDetails)
		sb.WriteString("\n")
		for _, detail := range record.MicroDetails {
			sb.WriteString(fmt.Sprintf("- %s\n", detail))
		}
	}

	// 6. メカニックロック
	if record.MechanicLock != "" {
		sb.WriteString("\n")
		sb.WriteString(sectionMechanicLock)
		sb.WriteString("\n")
		sb.WriteString(record.MechanicLock)
		sb.WriteString("\n")
	}

	// 7. フォーカスターゲット
	if record.FocusTarget != "" {
		sb.WriteString("\n")
		sb.WriteString(sectionFocusTarget)
		sb.WriteString("\n")
		sb.WriteString(record.FocusTarget)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
