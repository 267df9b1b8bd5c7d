package domain

// Framing はシーンのカメラフレーミングを表す列挙型です。
type Framing string

// Lens は被写界深度のヒントを表す列挙型です。
type Lens string

// サポートされるフレーミングとレンズの値
const (
	FramingTight  Framing = "tight"
	FramingMedium Framing = "medium"
	FramingWide   Framing = "wide"

	LensShallow Lens = "shallow"
	LensDeep    Lens = "deep"
)

// AnchorSlotCount はエンバイロメントアンカーの論理スロット数です。
// 正規化後の SceneRecord.EnvironmentAnchors は常にこの長さを持ちます。
const AnchorSlotCount = 5

// RequiredAnchorSlots は「必須」扱いとなる先頭スロット数です。
// スロット 0〜2 が必須、3〜4 が任意という位置セマンティクスを持ちます。
const RequiredAnchorSlots = 3

// MinFilledAnchors はコンパイルを許可するために埋まっている必要がある最小アンカー数です。
const MinFilledAnchors = 3

// CastMember はシーンに登場する人物・存在の1エントリです。
type CastMember struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	// WardrobeID を指定すると、コンパイル前にワードローブプリセットの
	// ビジュアル情報が Description に合成されます。
	WardrobeID string `json:"wardrobe_id,omitempty" yaml:"wardrobe_id,omitempty"`
}

// SceneInput はユーザー入力そのままの、部分的に欠けている可能性があるシーン定義です。
// YAML で記述されたシーンファイルや、エディタUIからの断片的な入力がこの形で渡されます。
type SceneInput struct {
	SceneHeart         string       `json:"scene_heart" yaml:"scene_heart"`
	Framing            string       `json:"framing" yaml:"framing"`
	Lens               string       `json:"lens" yaml:"lens"`
	Cast               []CastMember `json:"cast" yaml:"cast"`
	EnvironmentAnchors []string     `json:"environment_anchors" yaml:"environment_anchors"`
	MicroDetails       []string     `json:"micro_details" yaml:"micro_details"`
	MechanicLock       string       `json:"mechanic_lock" yaml:"mechanic_lock"`
	FocusTarget        string       `json:"focus_target" yaml:"focus_target"`
}

// SceneRecord は正規化済みのシーン定義です。コンパイラの処理単位となります。
//
// 正規化後は全文字列がトリム済みで、EnvironmentAnchors は常にちょうど
// AnchorSlotCount 個のスロットを持ちます（空スロットは空文字列）。
type SceneRecord struct {
	SceneHeart         string
	Framing            Framing
	Lens               Lens
	Cast               []CastMember
	EnvironmentAnchors []string
	MicroDetails       []string
	MechanicLock       string
	FocusTarget        string
}
