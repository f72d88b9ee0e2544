package generate

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"doodle-magic-server/modules/common/apperrors"
	"doodle-magic-server/modules/common/imaging"
	"doodle-magic-server/modules/common/model"
	"doodle-magic-server/modules/common/storage"
	"doodle-magic-server/modules/generation"
	"doodle-magic-server/modules/realtime"
)

// Service orchestrates one submission end to end: persist the original,
// call the engine, persist the generated (or fallback) image, write the
// record. A generation failure never fails the submission; only local
// storage faults do.
type Service struct {
	store  storage.Store
	engine generation.Engine
	hub    *realtime.Hub
}

func NewService(store storage.Store, engine generation.Engine, hub *realtime.Hub) *Service {
	return &Service{
		store:  store,
		engine: engine,
		hub:    hub,
	}
}

// HandleSubmission processes one drawing. Errors returned carry an
// apperrors kind: KindValidation for a missing payload, KindStorage for
// unrecoverable local I/O. Upstream failures are absorbed into the response.
func (s *Service) HandleSubmission(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req.ImageData == "" {
		return nil, apperrors.Validation("No image data provided")
	}

	original, err := imaging.DecodeDataURI(req.ImageData)
	if err != nil {
		return nil, apperrors.Validation("Invalid image data: " + err.Error())
	}

	// The id is assigned before any I/O and is the sole key for every later
	// lookup.
	id := uuid.New().String()
	log.Printf("🆔 Generated ID: %s", id)

	s.notify(realtime.Event{Type: realtime.EventGenerationStarted, ID: id})

	// Without the original artifact there is nothing to serve, so this write
	// is not recovered.
	originalRef, err := s.store.Put(ctx, id, model.RoleOriginal, original)
	if err != nil {
		return nil, err
	}

	prompt := AugmentPrompt(req.Prompt)

	generated, genErr := s.engine.Generate(ctx, original, prompt, NegativePrompt)
	if genErr != nil {
		// Fall back to a copy of the original so the record always resolves
		// to a viewable generated artifact.
		log.Printf("⚠️ [%s] Generation failed, using original as fallback: %v", s.engine.Name(), genErr)
		generated = make([]byte, len(original))
		copy(generated, original)
	}

	generatedRef, err := s.store.Put(ctx, id, model.RoleGenerated, generated)
	if err != nil {
		return nil, err
	}

	rec := &model.RequestRecord{
		ID:        id,
		Original:  originalRef,
		Generated: generatedRef,
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
	}
	if genErr != nil {
		rec.Error = true
		rec.ErrorMessage = genErr.Error()
	}

	if err := s.store.PutRecord(ctx, rec); err != nil {
		return nil, err
	}

	s.notify(realtime.Event{Type: realtime.EventGenerationCompleted, ID: id, Error: rec.Error})

	resp := &GenerateResponse{ID: id}
	if rec.Error {
		resp.Error = true
		resp.Message = "Showing your original drawing because the stylizer was unavailable"
	}

	// On ephemeral storage the response must be self-sufficient: embed both
	// images so the client never needs a second fetch.
	if s.store.Inline() {
		resp.OriginalImage = imaging.EncodeDataURI(original)
		resp.GeneratedImage = imaging.EncodeDataURI(generated)
		resp.Prompt = prompt
	}

	log.Printf("✅ Submission %s completed (error: %v)", id, rec.Error)
	return resp, nil
}

func (s *Service) notify(event realtime.Event) {
	if s.hub != nil {
		s.hub.Broadcast(event)
	}
}
