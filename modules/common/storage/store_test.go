package storage

import (
	"testing"

	"doodle-magic-server/modules/common/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StorageBackend: config.BackendLocal,
		UploadDir:      t.TempDir(),
		TransientDir:   t.TempDir(),
	}
}
