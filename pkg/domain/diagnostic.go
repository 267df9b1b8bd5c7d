package domain

// Severity は診断の重大度です。hard はコンパイルをブロックし、soft は助言に留まります。
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// FieldID は診断が指すシーンフィールドの識別子です。UI側の表示位置決定に使います。
type FieldID string

const (
	FieldSceneHeart   FieldID = "scene_heart"
	FieldFraming      FieldID = "framing"
	FieldLens         FieldID = "lens"
	FieldCast         FieldID = "cast"
	FieldAnchors      FieldID = "environment_anchors"
	FieldMicroDetails FieldID = "micro_details"
	FieldMechanicLock FieldID = "mechanic_lock"
	FieldFocusTarget  FieldID = "focus_target"
)

// Diagnostic はバリデーションが生成する1件の診断結果です。
// ユーザーが編集によって解消できる「期待された結果」であり、
// 内部エラー（error）とは決して混同してはいけません。
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Field    FieldID  `json:"field"`
	Message  string   `json:"message"`
}

// IsHard はこの診断がコンパイルをブロックするかを返します。
func (d Diagnostic) IsHard() bool {
	return d.Severity == SeverityHard
}

// ValidationResult はルールセット全体の実行結果です。
// Diagnostics はルール宣言順に並び、同一入力に対して常に同一の並びを再現します。
type ValidationResult struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	CanCompile  bool         `json:"can_compile"`
}

// Warnings は soft 診断のみを宣言順で返します。
func (r ValidationResult) Warnings() []Diagnostic {
	return r.filter(SeveritySoft)
}

// Errors は hard 診断のみを宣言順で返します。
func (r ValidationResult) Errors() []Diagnostic {
	return r.filter(SeverityHard)
}

func (r ValidationResult) filter(sev Severity) []Diagnostic {
	out := make([]Diagnostic, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// CompileStatus はコンパイル結果のタグです。
type CompileStatus string

const (
	CompileOK      CompileStatus = "ok"
	CompileBlocked CompileStatus = "blocked"
)

// CompileResult はコンパイラファサードの戻り値となるタグ付き結果です。
// Status が CompileOK のとき Prompt と Warnings が有効、
// CompileBlocked のとき Errors（hardのみ）と Warnings が有効です。
type CompileResult struct {
	Status   CompileStatus `json:"status"`
	Prompt   string        `json:"prompt,omitempty"`
	Errors   []Diagnostic  `json:"errors,omitempty"`
	Warnings []Diagnostic  `json:"warnings,omitempty"`
}

// Blocked はコンパイルがブロックされたかを返します。
func (r CompileResult) Blocked() bool {
	return r.Status == CompileBlocked
}
