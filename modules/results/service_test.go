package results

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"doodle-magic-server/modules/common/apperrors"
	"doodle-magic-server/modules/common/imaging"
	"doodle-magic-server/modules/common/model"
	"doodle-magic-server/modules/common/storage"
)

const pixelBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/x8AAwMB/6X+ZQAAAABJRU5ErkJggg=="

func seedBundle(t *testing.T, store storage.Store) *model.RequestRecord {
	t.Helper()
	ctx := context.Background()

	pixel, err := base64.StdEncoding.DecodeString(pixelBase64)
	if err != nil {
		t.Fatal(err)
	}

	rec := &model.RequestRecord{
		ID:        "seed-1",
		Prompt:    "a happy cat, vibrant colors",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	if rec.Original, err = store.Put(ctx, rec.ID, model.RoleOriginal, pixel); err != nil {
		t.Fatal(err)
	}
	if rec.Generated, err = store.Put(ctx, rec.ID, model.RoleGenerated, pixel); err != nil {
		t.Fatal(err)
	}
	if err := store.PutRecord(ctx, rec); err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestGetResultUnknownIDIsNotFound(t *testing.T) {
	service := NewService(storage.NewLocalStore(t.TempDir()))

	_, err := service.GetResult(context.Background(), "no-such-id")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("expected not-found kind, got %v", err)
	}
}

func TestGetResultDurableBackendReturnsReferences(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())
	rec := seedBundle(t, store)
	service := NewService(store)

	result, err := service.GetResult(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("GetResult() error = %v", err)
	}

	if result.Original != rec.Original || result.Generated != rec.Generated {
		t.Errorf("reference fields mismatch: %+v", result.RequestRecord)
	}
	if result.OriginalImage != "" || result.GeneratedImage != "" {
		t.Error("durable backend must not inline images")
	}
}

func TestGetResultIsIdempotent(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())
	rec := seedBundle(t, store)
	service := NewService(store)
	ctx := context.Background()

	first, err := service.GetResult(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := service.GetResult(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two reads of the same id must return the same record")
	}
}

func TestGetResultTransientBackendInlinesImages(t *testing.T) {
	store := storage.NewTransientStore(t.TempDir())
	rec := seedBundle(t, store)
	service := NewService(store)

	result, err := service.GetResult(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("GetResult() error = %v", err)
	}

	pixel, _ := base64.StdEncoding.DecodeString(pixelBase64)
	for name, uri := range map[string]string{
		"originalImage":  result.OriginalImage,
		"generatedImage": result.GeneratedImage,
	} {
		data, err := imaging.DecodeDataURI(uri)
		if err != nil {
			t.Fatalf("%s is not a data URI: %v", name, err)
		}
		if !bytes.Equal(data, pixel) {
			t.Errorf("%s differs from stored bytes", name)
		}
	}
}

func TestGetResultToleratesInlineReadFailure(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewTransientStore(dir)
	rec := seedBundle(t, store)
	service := NewService(store)

	// Simulate the ephemeral filesystem having been reclaimed between the
	// record write and the artifact read.
	if err := os.Remove(filepath.Join(dir, rec.ID, "generated.png")); err != nil {
		t.Fatal(err)
	}

	result, err := service.GetResult(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("lookup must not fail when inline read fails: %v", err)
	}
	if result.OriginalImage != "" || result.GeneratedImage != "" {
		t.Error("partial inline content must be dropped entirely")
	}
	if result.Original != rec.Original || result.Generated != rec.Generated {
		t.Error("reference fields must remain valid")
	}
}
