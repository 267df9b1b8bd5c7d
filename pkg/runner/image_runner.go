package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-scene-kit/pkg/compiler"
	"github.com/shouni/go-scene-kit/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// NegativeScenePrompt は画像生成時に常に除外する要素の指定です。
const NegativeScenePrompt = "text, watermark, signature, extra limbs, distorted anatomy, low quality"

// SceneAspectRatio は1枚絵のデフォルトアスペクト比なのだ。
const SceneAspectRatio = "3:4"

// ImageAdapter は画像生成エンジンへのインターフェースです。
type ImageAdapter interface {
	GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

// SceneImageRunner は、コンパイル済みプロンプトから最終イラストを
// 生成する構造体なのだ。プロンプトコンパイルの下流の消費者にあたるのだ。
type SceneImageRunner struct {
	imgGen      ImageAdapter
	styleSuffix string
}

// NewSceneImageRunner は SceneImageRunner の新しいインスタンスを生成して返すのだ。
func NewSceneImageRunner(imgGen ImageAdapter, styleSuffix string) *SceneImageRunner {
	return &SceneImageRunner{
		imgGen:      imgGen,
		styleSuffix: styleSuffix,
	}
}

// Run はレコードをコンパイルし、成功した場合のみ画像を生成するのだ。
// コンパイルがブロックされた場合は hard 診断を並べたエラーを返し、
// 画像生成には決して進まないのだ。
func (r *SceneImageRunner) Run(ctx context.Context, record domain.SceneRecord, wardrobe domain.WardrobeMap) (*imagedom.ImageResponse, error) {
	result, err := compiler.CompileRecord(record.ApplyWardrobe(wardrobe))
	if err != nil {
		return nil, err
	}
	if result.Blocked() {
		messages := make([]string, 0, len(result.Errors))
		for _, d := range result.Errors {
			messages = append(messages, d.Message)
		}
		return nil, fmt.Errorf("シーンがコンパイルをブロックされているため画像を生成できないのだ: %s",
			strings.Join(messages, " / "))
	}

	seed := r.resolveSeed(record, wardrobe)

	systemPrompt := "Create a single high-quality cinematic illustration of the described frozen moment."
	if r.styleSuffix != "" {
		systemPrompt = systemPrompt + "\n\n### GLOBAL VISUAL STYLE ###\n" + r.styleSuffix
	}

	slog.InfoContext(ctx, "シーン画像の生成を開始するのだ", "seed", seed)
	startTime := time.Now()
	resp, err := r.imgGen.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         result.Prompt,
		NegativePrompt: NegativeScenePrompt,
		SystemPrompt:   systemPrompt,
		Seed:           &seed,
		AspectRatio:    SceneAspectRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("シーン画像の生成に失敗したのだ: %w", err)
	}

	slog.InfoContext(ctx, "シーン画像の生成が完了したのだ", "duration", time.Since(startTime).Round(time.Millisecond))
	return resp, nil
}

// resolveSeed は再現性のためのシード値を決定します。
// ワードローブの主役プリセット → 先頭キャストの名前、の順で引き当てます。
func (r *SceneImageRunner) resolveSeed(record domain.SceneRecord, wardrobe domain.WardrobeMap) int64 {
	if primary := wardrobe.GetPrimary(); primary != nil && primary.Seed != 0 {
		return primary.Seed
	}
	if len(record.Cast) > 0 {
		return domain.GetSeedFromName(record.Cast[0].Name, wardrobe)
	}
	return domain.GetSeedFromName(record.SceneHeart, wardrobe)
}
