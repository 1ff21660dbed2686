// Package service contains the server-side business logic behind the RPC
// endpoints.
package service

import (
	"context"
	"encoding/json/v2"
	"log/slog"
	"time"

	"github.com/ideaboard/ideaboard-server/internal/domain"
	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
	"github.com/ideaboard/ideaboard-server/internal/record"
	"github.com/ideaboard/ideaboard-server/internal/store"
)

// defaultOpTimeout bounds a single storage operation when the config gives
// no value. Expiry surfaces as storage-unavailable, which callers may retry.
const defaultOpTimeout = 10 * time.Second

// IdeaService orchestrates idea workflows: validation and derivation, the
// record codec, and the storage gateway. It holds no per-call state; every
// invocation re-resolves the memoized gateway handle.
type IdeaService struct {
	gateway   *store.Gateway
	logger    *slog.Logger
	opTimeout time.Duration
}

// NewIdeaService creates a new idea service.
func NewIdeaService(gateway *store.Gateway, opTimeout time.Duration, logger *slog.Logger) *IdeaService {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &IdeaService{
		gateway:   gateway,
		logger:    logger,
		opTimeout: opTimeout,
	}
}

// SubmitIdeaRequest carries the fields of a new idea submission. Tags
// arrive as one comma-delimited string and are derived server-side.
type SubmitIdeaRequest struct {
	Title       string
	Description string
	TagsRaw     string
	Conditions  []string
	Notes       string
}

// UpdateIdeaRequest carries the full replacement content for an idea.
type UpdateIdeaRequest struct {
	Title            string
	Description      string
	Tags             []string
	WhatMustBeTrue   []string
	DevelopmentNotes string
}

// SubmitIdea validates the submission, derives the tag list, and persists a
// new idea. The returned entity carries the identity the backend assigned.
func (s *IdeaService) SubmitIdea(ctx context.Context, req SubmitIdeaRequest) (*domain.Idea, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	idea := &domain.Idea{
		Title:            req.Title,
		Description:      req.Description,
		Tags:             domain.ParseTags(req.TagsRaw),
		WhatMustBeTrue:   req.Conditions,
		DevelopmentNotes: req.Notes,
	}
	if idea.WhatMustBeTrue == nil {
		idea.WhatMustBeTrue = []string{}
	}

	rec, err := record.EncodeIdea(idea)
	if err != nil {
		return nil, err
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode idea record")
	}

	st, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	row, err := st.Create(opCtx, record.IdeaTable, doc)
	if err != nil {
		return nil, err
	}

	created, err := decodeRow(row)
	if err != nil {
		return nil, err
	}

	s.logger.Info("idea submitted",
		"id", created.Identity(),
		"tags", len(created.Tags),
	)

	return created, nil
}

// ListIdeas returns all ideas in backend-native order. A row that cannot be
// decoded is skipped and logged; one corrupt record never fails the batch.
func (s *IdeaService) ListIdeas(ctx context.Context) ([]*domain.Idea, error) {
	st, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := st.List(opCtx, record.IdeaTable)
	if err != nil {
		return nil, err
	}

	ideas := make([]*domain.Idea, 0, len(rows))
	for _, row := range rows {
		idea, err := decodeRow(row)
		if err != nil {
			s.logger.Warn("skipping undecodable idea record",
				"id", row.Ref.String(),
				"error", err,
			)
			continue
		}
		ideas = append(ideas, idea)
	}

	return ideas, nil
}

// GetIdea returns one idea by its canonical identity.
func (s *IdeaService) GetIdea(ctx context.Context, identity string) (*domain.Idea, error) {
	ref, err := record.ParseRef(identity)
	if err != nil {
		return nil, err
	}

	st, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	row, err := st.Get(opCtx, ref)
	if err != nil {
		return nil, err
	}

	return decodeRow(row)
}

// UpdateIdea replaces the full content of an existing idea. The identity is
// never changed by an update.
func (s *IdeaService) UpdateIdea(ctx context.Context, identity string, req UpdateIdeaRequest) (*domain.Idea, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	ref, err := record.ParseRef(identity)
	if err != nil {
		return nil, err
	}

	rec := &record.IdeaRecord{
		Title:            req.Title,
		Description:      req.Description,
		Tags:             req.Tags,
		WhatMustBeTrue:   req.WhatMustBeTrue,
		DevelopmentNotes: req.DevelopmentNotes,
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode idea record")
	}

	st, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	row, err := st.Update(opCtx, ref, doc)
	if err != nil {
		return nil, err
	}

	updated, err := decodeRow(row)
	if err != nil {
		return nil, err
	}

	s.logger.Info("idea updated", "id", updated.Identity())

	return updated, nil
}

// DeleteIdea removes an idea by its canonical identity. Unknown identities
// report not-found rather than silently succeeding.
func (s *IdeaService) DeleteIdea(ctx context.Context, identity string) error {
	ref, err := record.ParseRef(identity)
	if err != nil {
		return err
	}

	st, err := s.resolve(ctx)
	if err != nil {
		return err
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	if err := st.Delete(opCtx, ref); err != nil {
		return err
	}

	s.logger.Info("idea deleted", "id", identity)

	return nil
}

// resolve fetches the memoized storage handle.
func (s *IdeaService) resolve(ctx context.Context) (store.Store, error) {
	return s.gateway.Resolve(ctx)
}

// opContext bounds a single storage operation.
func (s *IdeaService) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// validateTitle converts the pure title check into a coded validation error
// with the violated bound attached for exact client messages.
func validateTitle(title string) error {
	err := domain.ValidateTitle(title)
	if err == nil {
		return nil
	}

	var titleErr *domain.TitleError
	if apperrors.As(err, &titleErr) {
		details := map[string]any{"field": "title", "limit": titleErr.Limit}
		if titleErr.Bound == domain.TitleTooShort {
			details["bound"] = "min"
		} else {
			details["bound"] = "max"
		}
		return apperrors.ValidationWithDetails(titleErr.Error(), details)
	}

	return apperrors.Validation(err.Error())
}

// decodeRow joins a storage row back into a wire entity.
func decodeRow(row store.Row) (*domain.Idea, error) {
	rec := &record.IdeaRecord{}
	if err := json.Unmarshal(row.Doc, rec); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageRejected, "failed to decode idea record")
	}
	ref := row.Ref
	rec.ID = &ref
	return record.DecodeIdea(rec), nil
}
