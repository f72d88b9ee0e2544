package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/supabase-community/supabase-go"

	"doodle-magic-server/modules/common/apperrors"
	"doodle-magic-server/modules/common/config"
	"doodle-magic-server/modules/common/imaging"
	"doodle-magic-server/modules/common/model"
)

// supabaseStore keeps artifacts in Supabase Storage and records in a
// postgrest table. Artifact upload/download goes over the Storage HTTP API
// directly; only the record table uses the supabase client.
type supabaseStore struct {
	client     *supabase.Client
	httpClient *http.Client

	url        string
	serviceKey string
	baseURL    string
	bucket     string
	table      string
}

// recordRow mirrors the records table layout.
type recordRow struct {
	ID           string    `json:"id"`
	Original     string    `json:"original"`
	Generated    string    `json:"generated"`
	Prompt       string    `json:"prompt"`
	CreatedAt    time.Time `json:"created_at"`
	Error        bool      `json:"error"`
	ErrorMessage string    `json:"error_message"`
}

func NewSupabaseStore(cfg *config.Config) (Store, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	log.Println("✅ [Supabase] Storage backend initialized")
	return &supabaseStore{
		client:     client,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		url:        cfg.SupabaseURL,
		serviceKey: cfg.SupabaseServiceKey,
		baseURL:    cfg.SupabaseStorageBaseURL,
		bucket:     cfg.SupabaseBucket,
		table:      cfg.SupabaseRecordsTable,
	}, nil
}

func (s *supabaseStore) pathFor(id, filename string) string {
	return fmt.Sprintf("drawings/%s/%s", id, filename)
}

func (s *supabaseStore) Put(ctx context.Context, id, role string, data []byte) (string, error) {
	filename := model.FileNameFor(role)
	filePath := s.pathFor(id, filename)

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.url, s.bucket, filePath)

	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", storageErr("upload", id, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", imaging.ContentTypeFor(filename))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", storageErr("upload", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", storageErr("upload", id, fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	log.Printf("📤 [Supabase] Uploaded %s (%d bytes)", filePath, len(data))
	return s.baseURL + filePath, nil
}

func (s *supabaseStore) Get(ctx context.Context, id, role string) ([]byte, error) {
	return s.GetFile(ctx, id, model.FileNameFor(role))
}

func (s *supabaseStore) GetFile(ctx context.Context, id, filename string) ([]byte, error) {
	fullURL := s.baseURL + s.pathFor(id, filename)

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, storageErr("download", id, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, storageErr("download", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		return nil, apperrors.NotFound(fmt.Sprintf("artifact not found: %s/%s", id, filename))
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, storageErr("download", id, fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	return io.ReadAll(resp.Body)
}

func (s *supabaseStore) PutRecord(ctx context.Context, rec *model.RequestRecord) error {
	insertData := map[string]interface{}{
		"id":            rec.ID,
		"original":      rec.Original,
		"generated":     rec.Generated,
		"prompt":        rec.Prompt,
		"created_at":    rec.CreatedAt,
		"error":         rec.Error,
		"error_message": rec.ErrorMessage,
	}

	_, _, err := s.client.From(s.table).
		Insert(insertData, false, "", "", "").
		Execute()
	if err != nil {
		return storageErr("insert record", rec.ID, err)
	}

	log.Printf("💾 [Supabase] Record created: %s", rec.ID)
	return nil
}

func (s *supabaseStore) GetRecord(ctx context.Context, id string) (*model.RequestRecord, error) {
	data, _, err := s.client.From(s.table).
		Select("*", "exact", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, storageErr("query record", id, err)
	}

	var rows []recordRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, storageErr("decode record", id, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound(fmt.Sprintf("results not found: %s", id))
	}

	row := rows[0]
	return &model.RequestRecord{
		ID:           row.ID,
		Original:     row.Original,
		Generated:    row.Generated,
		Prompt:       row.Prompt,
		CreatedAt:    row.CreatedAt,
		Error:        row.Error,
		ErrorMessage: row.ErrorMessage,
	}, nil
}

func (s *supabaseStore) Locator(id, role string) string {
	return s.baseURL + s.pathFor(id, model.FileNameFor(role))
}

func (s *supabaseStore) Inline() bool {
	return false
}
