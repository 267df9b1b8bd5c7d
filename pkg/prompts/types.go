package prompts

// SuggestionData は候補生成プロンプトのテンプレートに渡すデータ構造です。
type SuggestionData struct {
	SceneHeart   string
	Framing      string
	Lens         string
	Cast         []string
	Anchors      []string
	MicroDetails []string
	MechanicLock string
	FocusTarget  string

	// ContextText は Web ページ等から抽出した追加の文脈テキストです。
	ContextText string

	// CandidateCount / RecommendedCount はカテゴリ固定の要求件数です。
	CandidateCount   int
	RecommendedCount int
}

// SuggestionResponse は AI モデルから返される候補リストの構造です。
type SuggestionResponse struct {
	Candidates  []string `json:"candidates"`
	Recommended []string `json:"recommended,omitempty"`
}
