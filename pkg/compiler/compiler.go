package compiler

import (
	"fmt"

	"github.com/shouni/go-scene-kit/pkg/domain"
)

// Compile は正規化 → バリデーション → レンダリングの全工程を実行する
// ファサードです。同じ入力で2回呼べば同一の CompileResult が得られます。
//
// hard 診断が1件でもあればレンダラーは呼ばれず、blocked 結果を返します。
// soft 診断はどちらの結果にも警告として添付されます。
// 戻り値の error はコンパイラ自体の欠陥（内部不変条件の破れ）のみを表し、
// ユーザーが編集で直せる問題は常に CompileResult 側の診断として返ります。
func Compile(raw domain.SceneInput) (domain.CompileResult, error) {
	return CompileRecord(Normalize(raw))
}

// CompileRecord は正規化済みレコードを直接コンパイルします。
// ワードローブ適用など、正規化後の加工を挟みたい呼び出し側向けです。
func CompileRecord(record domain.SceneRecord) (domain.CompileResult, error) {
	result := Validate(record)

	if !result.CanCompile {
		return domain.CompileResult{
			Status:   domain.CompileBlocked,
			Errors:   result.Errors(),
			Warnings: result.Warnings(),
		}, nil
	}

	prompt, err := Render(record)
	if err != nil {
		// Validate を通過したレコードのレンダリング失敗は到達し得ないはずの
		// 内部欠陥。診断に変換せず、そのまま上位へ伝える。
		return domain.CompileResult{}, fmt.Errorf("コンパイラ内部エラー: %w", err)
	}

	return domain.CompileResult{
		Status:   domain.CompileOK,
		Prompt:   prompt,
		Warnings: result.Warnings(),
	}, nil
}
