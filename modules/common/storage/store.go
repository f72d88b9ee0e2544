package storage

import (
	"context"
	"fmt"

	"doodle-magic-server/modules/common/apperrors"
	"doodle-magic-server/modules/common/config"
	"doodle-magic-server/modules/common/model"
)

// Store maps an opaque request id to its artifact bundle: the original
// drawing, the generated (or fallback) image and one metadata record.
//
// Put creates the per-id container lazily and returns a locator the client
// can use to reach the artifact. GetFile serves the raw-artifact route, which
// addresses artifacts by file name rather than role. Inline reports whether
// responses must embed image bytes because locators do not outlive the
// serving process.
type Store interface {
	Put(ctx context.Context, id, role string, data []byte) (string, error)
	Get(ctx context.Context, id, role string) ([]byte, error)
	GetFile(ctx context.Context, id, filename string) ([]byte, error)
	PutRecord(ctx context.Context, rec *model.RequestRecord) error
	GetRecord(ctx context.Context, id string) (*model.RequestRecord, error)
	Locator(id, role string) string
	Inline() bool
}

// New selects the backend once at process start; the choice is fixed for the
// process lifetime.
func New(cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case config.BackendLocal:
		return NewLocalStore(cfg.UploadDir), nil
	case config.BackendTransient:
		return NewTransientStore(cfg.TransientDir), nil
	case config.BackendSupabase:
		return NewSupabaseStore(cfg)
	case config.BackendS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

func storageErr(op, id string, err error) error {
	return apperrors.Storage(fmt.Sprintf("storage %s failed for id %s", op, id), err)
}
