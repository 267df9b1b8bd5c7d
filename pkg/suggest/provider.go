// Package suggest は Gemini を使ってシーンフィールドの候補文字列を生成する
// サジェスチョンプロバイダです。生成された候補は通常のユーザー入力と同じ
// 扱いであり、コンパイラのルールセット以外の特別な検証は行いません。
package suggest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-scene-kit/pkg/domain"
	"github.com/shouni/go-scene-kit/pkg/prompts"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// CategorySpec はカテゴリごとの固定の要求件数です。
type CategorySpec struct {
	Candidates  int
	Recommended int
}

// categorySpecs はプロバイダが返す件数のカテゴリ別契約なのだ。
var categorySpecs = map[string]CategorySpec{
	prompts.CategoryFocusTarget:  {Candidates: 3},
	prompts.CategoryAnchors:      {Candidates: 10, Recommended: 5},
	prompts.CategoryMicroDetails: {Candidates: 12},
	prompts.CategoryMechanicLock: {Candidates: 5},
}

// categoryOrder は SuggestAll の結果順を固定するための宣言順リストです。
var categoryOrder = []string{
	prompts.CategoryFocusTarget,
	prompts.CategoryAnchors,
	prompts.CategoryMicroDetails,
	prompts.CategoryMechanicLock,
}

// Result は1カテゴリ分の候補生成結果です。
type Result struct {
	Category    string   `json:"category"`
	Candidates  []string `json:"candidates"`
	Recommended []string `json:"recommended,omitempty"`
}

// Provider はカテゴリ別の候補フェッチを担う構造体です。
// レートリミッタで呼び出し頻度を抑え、同一文脈の結果をTTLキャッシュし、
// 飛行中の同一リクエストは singleflight で1回にまとめます。
type Provider struct {
	aiClient gemini.GenerativeModel
	model    string
	builder  *prompts.SuggestionPromptBuilder
	limiter  *rate.Limiter
	cache    *cache.Cache
	group    singleflight.Group
}

// NewProvider は Provider の新しいインスタンスを生成して返すのだ。
func NewProvider(aiClient gemini.GenerativeModel, model string, limiter *rate.Limiter, resultCache *cache.Cache) (*Provider, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient は必須です")
	}
	if limiter == nil {
		return nil, fmt.Errorf("limiter は必須です")
	}
	if resultCache == nil {
		return nil, fmt.Errorf("resultCache は必須です")
	}

	builder, err := prompts.NewSuggestionPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("プロンプトビルダーの作成に失敗しました: %w", err)
	}

	return &Provider{
		aiClient: aiClient,
		model:    model,
		builder:  builder,
		limiter:  limiter,
		cache:    resultCache,
	}, nil
}

// Categories はサポートされる全カテゴリを固定順で返します。
func Categories() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Suggest は1カテゴリ分の候補を取得します。
// 同一のシーン文脈に対する結果はキャッシュされ、キャッシュミス時のみ
// レートリミッタを待ってから Gemini を呼び出します。
func (p *Provider) Suggest(ctx context.Context, category string, record domain.SceneRecord, contextText string) (Result, error) {
	spec, ok := categorySpecs[category]
	if !ok {
		return Result{}, fmt.Errorf("サポートされていないカテゴリ: '%s'", category)
	}

	key := cacheKey(category, record, contextText)
	if cached, found := p.cache.Get(key); found {
		if result, ok := cached.(Result); ok {
			return result, nil
		}
	}

	val, err, _ := p.group.Do(key, func() (interface{}, error) {
		// singleflight で待機中に他のゴルーチンが取得を完了させている
		// 可能性があるため、コールバック内で再度キャッシュを確認
		if cached, found := p.cache.Get(key); found {
			if result, ok := cached.(Result); ok {
				return result, nil
			}
		}

		result, fetchErr := p.fetch(ctx, category, spec, record, contextText)
		if fetchErr != nil {
			return nil, fetchErr
		}

		p.cache.Set(key, result, cache.DefaultExpiration)
		return result, nil
	})
	if err != nil {
		return Result{}, err
	}

	return val.(Result), nil
}

// SuggestAll は全カテゴリの候補を並列に取得し、固定のカテゴリ順で返します。
func (p *Provider) SuggestAll(ctx context.Context, record domain.SceneRecord, contextText string) ([]Result, error) {
	results := make([]Result, len(categoryOrder))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, category := range categoryOrder {
		i, category := i, category
		eg.Go(func() error {
			result, err := p.Suggest(egCtx, category, record, contextText)
			if err != nil {
				return fmt.Errorf("カテゴリ '%s' の候補取得に失敗しました: %w", category, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// fetch はプロンプト構築 → レート待ち → Gemini 呼び出し → パースの本体です。
func (p *Provider) fetch(ctx context.Context, category string, spec CategorySpec, record domain.SceneRecord, contextText string) (Result, error) {
	data := buildSuggestionData(record, contextText, spec)

	promptContent, err := p.builder.Build(category, data)
	if err != nil {
		return Result{}, err
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}

	slog.InfoContext(ctx, "候補生成のためGemini APIを呼び出すのだ", "category", category, "model", p.model)
	resp, err := p.aiClient.GenerateContent(ctx, promptContent, p.model)
	if err != nil {
		return Result{}, fmt.Errorf("候補の生成に失敗したのだ: %w", err)
	}

	parsed, err := prompts.ParseSuggestionResponse(resp.Text)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Category:    category,
		Candidates:  clampList(parsed.Candidates, spec.Candidates),
		Recommended: clampList(parsed.Recommended, spec.Recommended),
	}
	if len(result.Candidates) < spec.Candidates {
		// モデルが要求件数を下回るのは助言品質の問題であって障害ではない
		slog.WarnContext(ctx, "候補数が要求件数に満たないのだ",
			"category", category, "want", spec.Candidates, "got", len(result.Candidates))
	}
	return result, nil
}

// buildSuggestionData はシーンレコードをテンプレートデータに写し替えます。
func buildSuggestionData(record domain.SceneRecord, contextText string, spec CategorySpec) prompts.SuggestionData {
	castLines := make([]string, 0, len(record.Cast))
	for _, member := range record.Cast {
		if member.Description != "" {
			castLines = append(castLines, member.Name+": "+member.Description)
		} else {
			castLines = append(castLines, member.Name)
		}
	}

	return prompts.SuggestionData{
		SceneHeart:       record.SceneHeart,
		Framing:          string(record.Framing),
		Lens:             string(record.Lens),
		Cast:             castLines,
		Anchors:          record.FilledAnchors(),
		MicroDetails:     record.MicroDetails,
		MechanicLock:     record.MechanicLock,
		FocusTarget:      record.FocusTarget,
		ContextText:      contextText,
		CandidateCount:   spec.Candidates,
		RecommendedCount: spec.Recommended,
	}
}

// clampList は余分な候補を切り詰め、空白のみのエントリを除去します。
func clampList(list []string, max int) []string {
	if max == 0 {
		return nil
	}
	clean := make([]string, 0, max)
	for _, s := range list {
		if t := strings.TrimSpace(s); t != "" {
			clean = append(clean, t)
		}
		if len(clean) == max {
			break
		}
	}
	return clean
}

// cacheKey はカテゴリとシーン文脈から決定論的なキャッシュキーを導出します。
func cacheKey(category string, record domain.SceneRecord, contextText string) string {
	h := sha256.New()
	h.Write([]byte(category))
	h.Write([]byte{0})
	h.Write([]byte(record.SceneHeart))
	h.Write([]byte{0})
	h.Write([]byte(record.Framing))
	h.Write([]byte{0})
	h.Write([]byte(record.Lens))
	for _, a := range record.EnvironmentAnchors {
		h.Write([]byte{0})
		h.Write([]byte(a))
	}
	for _, m := range record.MicroDetails {
		h.Write([]byte{0})
		h.Write([]byte(m))
	}
	h.Write([]byte{0})
	h.Write([]byte(record.MechanicLock))
	h.Write([]byte{0})
	h.Write([]byte(record.FocusTarget))
	h.Write([]byte{0})
	h.Write([]byte(contextText))
	return category + ":" + hex.EncodeToString(h.Sum(nil))
}
