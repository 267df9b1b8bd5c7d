package prompts

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"
)

// 候補生成のカテゴリ名。サジェスチョンプロバイダと共有する契約です。
const (
	CategoryFocusTarget  = "focus_target"
	CategoryAnchors      = "environment_anchors"
	CategoryMicroDetails = "micro_details"
	CategoryMechanicLock = "mechanic_lock"
)

//go:embed templates/focus_target.md
var focusTargetTemplate string

//go:embed templates/environment_anchors.md
var anchorsTemplate string

//go:embed templates/micro_details.md
var microDetailsTemplate string

//go:embed templates/mechanic_lock.md
var mechanicLockTemplate string

// categoryTemplates はカテゴリとテンプレート文字列を紐づけるマップなのだ。
var categoryTemplates = map[string]string{
	CategoryFocusTarget:  focusTargetTemplate,
	CategoryAnchors:      anchorsTemplate,
	CategoryMicroDetails: microDetailsTemplate,
	CategoryMechanicLock: mechanicLockTemplate,
}

// SuggestionPromptBuilder は、シーンの文脈を考慮して候補生成プロンプトを構築します。
type SuggestionPromptBuilder struct {
	templates map[string]*template.Template
}

// NewSuggestionPromptBuilder は全カテゴリのテンプレートを事前パースして返します。
// embed されたテンプレートが壊れている場合はここで失敗します。
func NewSuggestionPromptBuilder() (*SuggestionPromptBuilder, error) {
	parsed := make(map[string]*template.Template, len(categoryTemplates))
	for category, content := range categoryTemplates {
		if content == "" {
			return nil, fmt.Errorf("カテゴリ '%s' のテンプレートが空なのだ。embed設定を確認してほしいのだ", category)
		}
		tmpl, err := template.New(category).Parse(content)
		if err != nil {
			return nil, fmt.Errorf("カテゴリ '%s' のテンプレートのパースに失敗したのだ: %w", category, err)
		}
		parsed[category] = tmpl
	}
	return &SuggestionPromptBuilder{templates: parsed}, nil
}

// Build は指定されたカテゴリとシーン文脈から候補生成プロンプトを生成します。
func (b *SuggestionPromptBuilder) Build(category string, data SuggestionData) (string, error) {
	tmpl, ok := b.templates[category]
	if !ok {
		supported := slices.Collect(maps.Keys(b.templates))
		slices.Sort(supported)
		return "", fmt.Errorf("サポートされていないカテゴリ: '%s'。サポートされているカテゴリは [%s] です",
			category, strings.Join(supported, ", "))
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("カテゴリ '%s' のテンプレート展開に失敗しました: %w", category, err)
	}
	return sb.String(), nil
}
