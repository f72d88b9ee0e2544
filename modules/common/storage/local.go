package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"doodle-magic-server/modules/common/apperrors"
	"doodle-magic-server/modules/common/model"
)

// fsStore is the shared filesystem implementation behind the durable (local)
// and transient backends. The two differ only in where the tree lives, what
// locators they hand out and whether responses must inline image bytes.
type fsStore struct {
	baseDir string
	inline  bool

	// locatorFor builds the client-facing reference for an artifact.
	locatorFor func(id, filename string) string
}

// NewLocalStore persists artifacts under baseDir on a durable filesystem.
// Locators are stable /uploads/... paths a client can request directly when
// the directory is exposed as static content.
func NewLocalStore(baseDir string) Store {
	return &fsStore{
		baseDir: baseDir,
		inline:  false,
		locatorFor: func(id, filename string) string {
			return fmt.Sprintf("/uploads/%s/%s", id, filename)
		},
	}
}

// NewTransientStore writes under a directory that does not survive across
// process invocations (e.g. /tmp on a read-only deployment). Locators route
// through the in-process byte-serving endpoint, and Inline() tells callers to
// embed image bytes in immediate responses so no follow-up fetch is needed.
func NewTransientStore(baseDir string) Store {
	return &fsStore{
		baseDir: baseDir,
		inline:  true,
		locatorFor: func(id, filename string) string {
			return fmt.Sprintf("/api/images/%s/%s", id, filename)
		},
	}
}

func (s *fsStore) dirFor(id string) string {
	return filepath.Join(s.baseDir, id)
}

// ensureDir lazily creates the per-id container. MkdirAll is idempotent.
func (s *fsStore) ensureDir(id string) error {
	return os.MkdirAll(s.dirFor(id), 0o755)
}

func (s *fsStore) Put(ctx context.Context, id, role string, data []byte) (string, error) {
	if err := s.ensureDir(id); err != nil {
		return "", storageErr("mkdir", id, err)
	}

	filename := model.FileNameFor(role)
	if err := os.WriteFile(filepath.Join(s.dirFor(id), filename), data, 0o644); err != nil {
		return "", storageErr("write", id, err)
	}

	log.Printf("💾 Saved %s artifact for %s (%d bytes)", role, id, len(data))
	return s.locatorFor(id, filename), nil
}

func (s *fsStore) Get(ctx context.Context, id, role string) ([]byte, error) {
	return s.GetFile(ctx, id, model.FileNameFor(role))
}

func (s *fsStore) GetFile(ctx context.Context, id, filename string) ([]byte, error) {
	// Artifacts never live outside their id directory.
	if filepath.Base(filename) != filename {
		return nil, apperrors.NotFound(fmt.Sprintf("artifact not found: %s/%s", id, filename))
	}

	data, err := os.ReadFile(filepath.Join(s.dirFor(id), filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound(fmt.Sprintf("artifact not found: %s/%s", id, filename))
		}
		return nil, storageErr("read", id, err)
	}
	return data, nil
}

func (s *fsStore) PutRecord(ctx context.Context, rec *model.RequestRecord) error {
	if err := s.ensureDir(rec.ID); err != nil {
		return storageErr("mkdir", rec.ID, err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return storageErr("encode record", rec.ID, err)
	}

	if err := os.WriteFile(filepath.Join(s.dirFor(rec.ID), model.RecordFileName), data, 0o644); err != nil {
		return storageErr("write record", rec.ID, err)
	}

	log.Printf("💾 Saved metadata for %s", rec.ID)
	return nil
}

func (s *fsStore) GetRecord(ctx context.Context, id string) (*model.RequestRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.dirFor(id), model.RecordFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound(fmt.Sprintf("results not found: %s", id))
		}
		return nil, storageErr("read record", id, err)
	}

	var rec model.RequestRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, storageErr("decode record", id, err)
	}
	return &rec, nil
}

func (s *fsStore) Locator(id, role string) string {
	return s.locatorFor(id, model.FileNameFor(role))
}

func (s *fsStore) Inline() bool {
	return s.inline
}
