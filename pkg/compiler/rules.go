package compiler

import (
	"fmt"
	"strings"

	"github.com/shouni/go-scene-kit/pkg/domain"
)

// Rule は正規化済みレコードを検査する独立した1つのバリデーションルールです。
// ルール同士は互いの出力に依存してはいけません。どの順序で実行しても
// 診断の「集合」は変わらず、宣言順は表示順のみを決めます。
type Rule struct {
	ID    string
	Field domain.FieldID
	Check func(domain.SceneRecord) []domain.Diagnostic
}

// microDetailMinimums はフレーミングごとのマイクロディテール推奨最小数です。
// 広い画角ほど埋めるべき情報量が増えます。
var microDetailMinimums = map[domain.Framing]int{
	domain.FramingTight:  2,
	domain.FramingMedium: 3,
	domain.FramingWide:   4,
}

// causalConnectives はメカニックロックの「原因→結果」らしさを判定する
// 接続表現のリストです。厳密な文法ではなく、調整可能なヒューリスティックです。
var causalConnectives = []string{
	"causing", "making", "sending", "so ", " as ", "while", "→", ", and",
}

// DefaultRules はコンパイラが適用するルールセットの宣言順テーブルです。
// ルールの追加・削除はこのテーブルへのデータ変更であり、
// バリデーションエンジン側の変更を必要としません。
var DefaultRules = []Rule{
	{
		ID:    "scene-heart-presence",
		Field: domain.FieldSceneHeart,
		Check: checkSceneHeartPresence,
	},
	{
		ID:    "anchor-count",
		Field: domain.FieldAnchors,
		Check: checkAnchorCount,
	},
	{
		ID:    "anchor-slot-priority",
		Field: domain.FieldAnchors,
		Check: checkAnchorSlotPriority,
	},
	{
		ID:    "mechanic-lock-shape",
		Field: domain.FieldMechanicLock,
		Check: checkMechanicLockShape,
	},
	{
		ID:    "focus-target-shape",
		Field: domain.FieldFocusTarget,
		Check: checkFocusTargetShape,
	},
	{
		ID:    "micro-detail-richness",
		Field: domain.FieldMicroDetails,
		Check: checkMicroDetailRichness,
	},
}

func checkSceneHeartPresence(s domain.SceneRecord) []domain.Diagnostic {
	if s.SceneHeart != "" {
		return nil
	}
	return []domain.Diagnostic{{
		Severity: domain.SeverityHard,
		Field:    domain.FieldSceneHeart,
		Message:  "Scene Heart is required.",
	}}
}

func checkAnchorCount(s domain.SceneRecord) []domain.Diagnostic {
	filled := s.FilledAnchorCount()
	if filled >= domain.MinFilledAnchors {
		// 正規化後はスロット数が AnchorSlotCount を超えることはないため、
		// 上限違反はユーザー向け診断ではなく内部不変条件として扱う。
		return nil
	}
	return []domain.Diagnostic{{
		Severity: domain.SeverityHard,
		Field:    domain.FieldAnchors,
		Message: fmt.Sprintf("At least %d environment anchors are required; %d more needed.",
			domain.MinFilledAnchors, domain.MinFilledAnchors-filled),
	}}
}

func checkAnchorSlotPriority(s domain.SceneRecord) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for req := 0; req < domain.RequiredAnchorSlots && req < len(s.EnvironmentAnchors); req++ {
		if s.EnvironmentAnchors[req] != "" {
			continue
		}
		for opt := domain.RequiredAnchorSlots; opt < len(s.EnvironmentAnchors); opt++ {
			if s.EnvironmentAnchors[opt] != "" {
				diags = append(diags, domain.Diagnostic{
					Severity: domain.SeveritySoft,
					Field:    domain.FieldAnchors,
					Message: fmt.Sprintf("Required anchor slot %d is empty while optional slot %d is filled; consider moving it up.",
						req+1, opt+1),
				})
				break
			}
		}
	}
	return diags
}

// checkMechanicLockShape は「1つの原因と1つの目に見える結果」を
// 単文で記述しているかをヒューリスティックに判定します。
// フィールド自体が任意のため、この警告は常に soft です。
func checkMechanicLockShape(s domain.SceneRecord) []domain.Diagnostic {
	if s.MechanicLock == "" {
		return []domain.Diagnostic{{
			Severity: domain.SeveritySoft,
			Field:    domain.FieldMechanicLock,
			Message:  "No mechanic lock set; the frozen moment may lack a cause-and-effect action.",
		}}
	}

	var diags []domain.Diagnostic
	if terminalPunctuationCount(s.MechanicLock) > 1 {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeveritySoft,
			Field:    domain.FieldMechanicLock,
			Message:  "Mechanic lock reads as multiple sentences; describe one cause and one visible effect.",
		})
	}
	if !hasCausalConnective(s.MechanicLock) {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeveritySoft,
			Field:    domain.FieldMechanicLock,
			Message:  "Mechanic lock has no visible cause→effect link; connect the action to its result.",
		})
	}
	return diags
}

func checkFocusTargetShape(s domain.SceneRecord) []domain.Diagnostic {
	if s.FocusTarget == "" {
		return []domain.Diagnostic{{
			Severity: domain.SeveritySoft,
			Field:    domain.FieldFocusTarget,
			Message:  "No focus target set; consider naming the subject that must render sharp.",
		}}
	}
	if len(strings.Fields(s.FocusTarget)) < 2 {
		return []domain.Diagnostic{{
			Severity: domain.SeveritySoft,
			Field:    domain.FieldFocusTarget,
			Message:  "Focus target is very short; name a primary subject, optionally with a secondary element.",
		}}
	}
	return nil
}

func checkMicroDetailRichness(s domain.SceneRecord) []domain.Diagnostic {
	minimum := microDetailMinimums[s.Framing]
	if minimum == 0 {
		minimum = microDetailMinimums[domain.FramingMedium]
	}
	if len(s.MicroDetails) >= minimum {
		return nil
	}
	return []domain.Diagnostic{{
		Severity: domain.SeveritySoft,
		Field:    domain.FieldMicroDetails,
		Message: fmt.Sprintf("Only %d micro-details for a %s shot; the scene may read as sparse (aim for %d or more).",
			len(s.MicroDetails), s.Framing, minimum),
	}}
}

func terminalPunctuationCount(s string) int {
	count := 0
	for _, r := range s {
		switch r {
		case '.', '!', '?', '。', '！', '？':
			count++
		}
	}
	return count
}

func hasCausalConnective(s string) bool {
	lower := strings.ToLower(s)
	for _, conn := range causalConnectives {
		if strings.Contains(lower, conn) {
			return true
		}
	}
	return false
}
