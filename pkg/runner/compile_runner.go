package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-scene-kit/pkg/compiler"
	"github.com/shouni/go-scene-kit/pkg/domain"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// CompileRunner は、シーン定義ファイルをプロンプトにコンパイルする契約です。
type CompileRunner interface {
	// Run はシーンをロードし、コンパイル結果を返すのだ。
	Run(ctx context.Context, scenePath, wardrobePath string) (domain.CompileResult, error)
}

// SceneCompileRunner は、シーンYAMLとワードローブJSONを読み込み、
// コンパイラファサードを実行する核となる構造体なのだ。
type SceneCompileRunner struct {
	reader remoteio.InputReader
}

// NewSceneCompileRunner は SceneCompileRunner の新しいインスタンスを生成して返すのだ。
func NewSceneCompileRunner(reader remoteio.InputReader) *SceneCompileRunner {
	return &SceneCompileRunner{reader: reader}
}

// Run はシーンのロード、ワードローブ適用、コンパイルを一気に行うのだ。
func (r *SceneCompileRunner) Run(ctx context.Context, scenePath, wardrobePath string) (domain.CompileResult, error) {
	record, err := r.LoadRecord(ctx, scenePath, wardrobePath)
	if err != nil {
		return domain.CompileResult{}, err
	}

	result, err := compiler.CompileRecord(record)
	if err != nil {
		return domain.CompileResult{}, err
	}

	slog.InfoContext(ctx, "シーンのコンパイルが完了したのだ",
		"status", result.Status,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings))
	return result, nil
}

// LoadRecord はシーンYAMLを読み込み、正規化とワードローブ適用まで済ませた
// レコードを返します。他のランナー（画像生成・候補生成）と共用します。
func (r *SceneCompileRunner) LoadRecord(ctx context.Context, scenePath, wardrobePath string) (domain.SceneRecord, error) {
	input, err := r.loadSceneInput(ctx, scenePath)
	if err != nil {
		return domain.SceneRecord{}, err
	}

	record := compiler.Normalize(input)

	if wardrobePath != "" {
		wardrobe, err := r.loadWardrobe(ctx, wardrobePath)
		if err != nil {
			return domain.SceneRecord{}, err
		}
		record = record.ApplyWardrobe(wardrobe)
	}

	return record, nil
}

func (r *SceneCompileRunner) loadSceneInput(ctx context.Context, scenePath string) (domain.SceneInput, error) {
	rc, err := r.reader.Open(ctx, scenePath)
	if err != nil {
		return domain.SceneInput{}, fmt.Errorf("シーンファイルのオープンに失敗しました (%s): %w", scenePath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.SceneInput{}, fmt.Errorf("シーンファイルの読み込みに失敗しました: %w", err)
	}

	return domain.ParseSceneYAML(data)
}

func (r *SceneCompileRunner) loadWardrobe(ctx context.Context, wardrobePath string) (domain.WardrobeMap, error) {
	rc, err := r.reader.Open(ctx, wardrobePath)
	if err != nil {
		return nil, fmt.Errorf("ワードローブファイルのオープンに失敗しました (%s): %w", wardrobePath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("ワードローブファイルの読み込みに失敗しました: %w", err)
	}

	return domain.GetWardrobe(data)
}
