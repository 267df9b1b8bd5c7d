package domain

import "time"

// Project はプロジェクトストアに永続化される1つのドキュメントです。
// シーン定義は正規化前の SceneInput のまま保存します。
// 保存時に正規化結果を固定してしまうと、再コンパイル時の正規化と
// 二重適用になるためです（コンパイラは毎回入力から純粋に計算します）。
type Project struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Scene       SceneInput  `json:"scene"`
	Wardrobe    WardrobeMap `json:"wardrobe,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	LastPrompt  string      `json:"last_prompt,omitempty"`  // 直近のコンパイル成功時のプロンプト
	LastBlocked bool        `json:"last_blocked,omitempty"` // 直近のコンパイルがブロックされたか
}
