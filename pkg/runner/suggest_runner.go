package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-scene-kit/pkg/domain"
	"github.com/shouni/go-scene-kit/pkg/suggest"

	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// SuggestRunner は、シーン文脈から候補文字列を取得する核となる構造体なのだ。
// URLが指定された場合は Web ページから本文を抽出し、追加文脈として
// プロバイダに渡すのだ。
type SuggestRunner struct {
	provider  *suggest.Provider
	extractor *extract.Extractor
	loader    *SceneCompileRunner
}

// NewSuggestRunner は SuggestRunner の新しいインスタンスを生成して返すのだ。
func NewSuggestRunner(provider *suggest.Provider, extractor *extract.Extractor, loader *SceneCompileRunner) *SuggestRunner {
	return &SuggestRunner{
		provider:  provider,
		extractor: extractor,
		loader:    loader,
	}
}

// Run はシーンをロードし、指定カテゴリ（"all" で全カテゴリ）の候補を取得するのだ。
func (r *SuggestRunner) Run(ctx context.Context, scenePath, wardrobePath, category, contextURL string) ([]suggest.Result, error) {
	record, err := r.loader.LoadRecord(ctx, scenePath, wardrobePath)
	if err != nil {
		return nil, err
	}

	contextText, err := r.extractContext(ctx, contextURL)
	if err != nil {
		return nil, err
	}

	if category == "all" {
		return r.provider.SuggestAll(ctx, record, contextText)
	}

	result, err := r.provider.Suggest(ctx, category, record, contextText)
	if err != nil {
		return nil, err
	}
	return []suggest.Result{result}, nil
}

// RunForRecord は正規化済みレコードから直接候補を取得します。
// プロジェクトストア経由でロード済みのシーンを扱う呼び出し側向けです。
func (r *SuggestRunner) RunForRecord(ctx context.Context, record domain.SceneRecord, category string) ([]suggest.Result, error) {
	if category == "all" {
		return r.provider.SuggestAll(ctx, record, "")
	}
	result, err := r.provider.Suggest(ctx, category, record, "")
	if err != nil {
		return nil, err
	}
	return []suggest.Result{result}, nil
}

func (r *SuggestRunner) extractContext(ctx context.Context, contextURL string) (string, error) {
	if contextURL == "" {
		return "", nil
	}
	if r.extractor == nil {
		return "", fmt.Errorf("URL抽出が構成されていないのだ: --scene-url を使うには HTTP クライアントが必要なのだ")
	}

	slog.InfoContext(ctx, "Webページから追加文脈を抽出するのだ", "url", contextURL)
	text, _, err := r.extractor.FetchAndExtractText(ctx, contextURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from URL: %w", err)
	}
	return text, nil
}
