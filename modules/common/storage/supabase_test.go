package storage

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"doodle-magic-server/modules/common/apperrors"
	"doodle-magic-server/modules/common/config"
	"doodle-magic-server/modules/common/model"
)

func newTestSupabaseStore(t *testing.T, handler http.Handler) (Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		StorageBackend:         config.BackendSupabase,
		SupabaseURL:            server.URL,
		SupabaseServiceKey:     "service-key",
		SupabaseStorageBaseURL: server.URL + "/storage/v1/object/public/attachments/",
		SupabaseBucket:         "attachments",
		SupabaseRecordsTable:   "drawing_records",
	}

	store, err := NewSupabaseStore(cfg)
	if err != nil {
		t.Fatalf("NewSupabaseStore() error = %v", err)
	}
	return store, server
}

func TestSupabasePutUploadsToBucketPath(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody []byte

	store, _ := newTestSupabaseStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		gotBody = buf.Bytes()
		w.WriteHeader(http.StatusOK)
	}))

	data := []byte("png bytes")
	locator, err := store.Put(context.Background(), "id-9", model.RoleGenerated, data)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if gotPath != "/storage/v1/object/attachments/drawings/id-9/generated.png" {
		t.Errorf("upload path = %q", gotPath)
	}
	if gotAuth != "Bearer service-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotContentType != "image/png" {
		t.Errorf("content type = %q", gotContentType)
	}
	if !bytes.Equal(gotBody, data) {
		t.Error("uploaded body differs from input")
	}
	want := "drawings/id-9/generated.png"
	if locator[len(locator)-len(want):] != want {
		t.Errorf("locator = %q, want suffix %q", locator, want)
	}
}

func TestSupabasePutUploadFailureIsStorageError(t *testing.T) {
	store, _ := newTestSupabaseStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bucket not found"}`, http.StatusInternalServerError)
	}))

	_, err := store.Put(context.Background(), "id-9", model.RoleOriginal, []byte("x"))
	if apperrors.KindOf(err) != apperrors.KindStorage {
		t.Errorf("expected storage kind, got %v", err)
	}
}

func TestSupabaseGetFile(t *testing.T) {
	want := []byte("stored bytes")

	store, _ := newTestSupabaseStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/storage/v1/object/public/attachments/drawings/id-9/original.png" {
			w.Write(want)
			return
		}
		http.NotFound(w, r)
	}))

	got, err := store.GetFile(context.Background(), "id-9", "original.png")
	if err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("downloaded bytes differ")
	}

	_, err = store.GetFile(context.Background(), "id-9", "missing.png")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("expected not-found kind, got %v", err)
	}
}
