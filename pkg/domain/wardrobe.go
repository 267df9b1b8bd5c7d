package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
)

// WardrobeItem はキャストに適用できる外見プリセットの定義を保持します。
type WardrobeItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	VisualCues   []string `json:"visual_cues"`   // 生成プロンプトに注入する外見上の特徴
	ReferenceURL string   `json:"reference_url"` // 一貫性保持のための参照画像URL
	Seed         int64    `json:"seed"`          // DB保存等のために広い型を維持
	IsPrimary    bool     `json:"is_primary"`    // 画像生成時のシード決定に使う主役フラグ
}

// WardrobeMap はIDや名前をキーとしたプリセットの検索用マップなのだ。
type WardrobeMap map[string]WardrobeItem

// LoadWardrobe は指定されたファイルパスからJSONを読み込み、ワードローブマップを返すのだ。
func LoadWardrobe(path string) (WardrobeMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ワードローブファイルの読み込みに失敗したのだ: %w", err)
	}
	return GetWardrobe(data)
}

// GetWardrobe はJSONバイト列からワードローブマップをパースして返します。
// この関数はステートレスであり、キャッシュを行いません。
func GetWardrobe(wardrobeJSON []byte) (WardrobeMap, error) {
	var items WardrobeMap
	if err := json.Unmarshal(wardrobeJSON, &items); err != nil {
		return nil, fmt.Errorf("ワードローブ情報のJSONパースに失敗しました: %w", err)
	}
	return items, nil
}

// String はプリセットの情報を文字列で返すのだ。
func (w WardrobeItem) String() string {
	return fmt.Sprintf("%s (%s)", w.Name, w.ID)
}

// GetSeedFromName は名前から決定論的なシード値を生成します。
// マップに登録済みで Seed が設定されていればそれを優先します。
func GetSeedFromName(name string, m WardrobeMap) int64 {
	if item, ok := m[name]; ok && item.Seed != 0 {
		return item.Seed
	}

	hash := sha256.Sum256([]byte(name))
	// ハッシュの最初の4バイトを int32 に変換
	seed := int32(binary.BigEndian.Uint32(hash[:4]))
	// Geminiのシード値は正の数が望ましいため、最上位ビットを落とすのが安全なのだ
	return int64(seed & 0x7FFFFFFF)
}
