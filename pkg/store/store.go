// Package store はプロジェクトドキュメントをローカルパスまたは GCS URI に
// JSON として永続化するプロジェクトストアです。コンパイラコアはこの
// ストアを直接読み書きしません。呼び出し側がロード → コンパイル → 保存を
// 自分で組み立てます。
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shouni/go-scene-kit/pkg/domain"

	"github.com/google/uuid"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const projectMimeType = "application/json"

// ProjectStore はプロジェクトドキュメントの保存と取得を担います。
type ProjectStore struct {
	reader  remoteio.InputReader
	writer  remoteio.OutputWriter
	baseDir string
}

// NewProjectStore は新しい ProjectStore インスタンスを生成します。
// baseDir はローカルディレクトリまたは gs://bucket/prefix 形式の URI です。
func NewProjectStore(reader remoteio.InputReader, writer remoteio.OutputWriter, baseDir string) (*ProjectStore, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader は必須です")
	}
	if writer == nil {
		return nil, fmt.Errorf("writer は必須です")
	}
	if baseDir == "" {
		return nil, fmt.Errorf("baseDir は必須です")
	}
	return &ProjectStore{reader: reader, writer: writer, baseDir: baseDir}, nil
}

// Save はプロジェクトを保存し、割り当てられたIDを返します。
// IDが未設定の場合は新しい UUID を発行し、タイムスタンプを更新します。
func (s *ProjectStore) Save(ctx context.Context, project *domain.Project) (string, error) {
	if project == nil {
		return "", fmt.Errorf("project は必須です")
	}

	now := time.Now().UTC()
	if project.ID == "" {
		project.ID = uuid.NewString()
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return "", fmt.Errorf("プロジェクトのJSONエンコードに失敗しました: %w", err)
	}

	path := s.documentPath(project.ID)
	if err := s.writer.Write(ctx, path, bytes.NewReader(data), projectMimeType); err != nil {
		return "", fmt.Errorf("プロジェクトの保存に失敗しました (%s): %w", path, err)
	}

	slog.InfoContext(ctx, "プロジェクトを保存したのだ", "id", project.ID, "path", path)
	return project.ID, nil
}

// Load は指定されたIDのプロジェクトドキュメントを読み込みます。
func (s *ProjectStore) Load(ctx context.Context, id string) (*domain.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("id は必須です")
	}

	path := s.documentPath(id)
	rc, err := s.reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトのオープンに失敗しました (%s): %w", path, err)
	}
	defer rc.Close()

	project := &domain.Project{}
	if err := json.NewDecoder(rc).Decode(project); err != nil {
		return nil, fmt.Errorf("プロジェクトJSONのパースに失敗しました: %w", err)
	}

	return project, nil
}

// List は保存済みプロジェクトの一覧をID昇順で返します。
// ディレクトリの列挙はローカルパスのみ対応です（remoteio の読み書きは
// パス単位の契約であり、GCS プレフィックスの列挙は持ちません）。
func (s *ProjectStore) List(ctx context.Context) ([]*domain.Project, error) {
	if strings.HasPrefix(s.baseDir, "gs://") {
		return nil, fmt.Errorf("プロジェクト一覧はローカルディレクトリのみ対応です (%s)", s.baseDir)
	}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("プロジェクトディレクトリの読み取りに失敗しました (%s): %w", s.baseDir, err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)

	projects := make([]*domain.Project, 0, len(ids))
	for _, id := range ids {
		project, err := s.Load(ctx, id)
		if err != nil {
			slog.WarnContext(ctx, "壊れたプロジェクトドキュメントをスキップするのだ", "id", id, "error", err)
			continue
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (s *ProjectStore) documentPath(id string) string {
	return s.baseDir + "/" + id + ".json"
}
