package compiler

import "github.com/shouni/go-scene-kit/pkg/domain"

// Validate は DefaultRules を宣言順に適用し、診断を集約します。
func Validate(record domain.SceneRecord) domain.ValidationResult {
	return ValidateWith(record, DefaultRules)
}

// ValidateWith は任意のルールテーブルでバリデーションを実行します。
//
// 診断はルール宣言順に連結され、重大度による並べ替えは行いません。
// 同一入力は常に同一の診断列を再現します（UI表示とテストの再現性のため）。
// CanCompile は hard 診断が1件も無い場合にのみ true になります。
//
// ルール実装が panic するのは実装側の欠陥であり、ユーザーエラーでは
// ありません。エンジンは部分回復を試みず、そのまま伝播させます。
func ValidateWith(record domain.SceneRecord, rules []Rule) domain.ValidationResult {
	result := domain.ValidationResult{
		Diagnostics: []domain.Diagnostic{},
		CanCompile:  true,
	}

	for _, rule := range rules {
		diags := rule.Check(record)
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, d)
			if d.IsHard() {
				result.CanCompile = false
			}
		}
	}

	return result
}
