package service_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideaboard/ideaboard-server/internal/config"
	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
	"github.com/ideaboard/ideaboard-server/internal/service"
	"github.com/ideaboard/ideaboard-server/internal/store"
)

func setupIdeaService(t *testing.T) (*service.IdeaService, *store.Gateway) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	gateway := store.NewGateway(config.StorageConfig{
		Kind: config.BackendEmbedded,
		Path: t.TempDir(),
	}, logger)

	t.Cleanup(func() {
		_ = gateway.Close()
	})

	return service.NewIdeaService(gateway, 5*time.Second, logger), gateway
}

func TestIdeaService_SubmitDerivesTagsAndIdentity(t *testing.T) {
	svc, _ := setupIdeaService(t)

	idea, err := svc.SubmitIdea(context.Background(), service.SubmitIdeaRequest{
		Title:       "Build a widget",
		Description: "A very small widget",
		TagsRaw:     " a, b ,, c ",
		Conditions:  []string{"widget fits the page"},
		Notes:       "prototype first",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, idea.Identity())
	assert.Equal(t, "Build a widget", idea.Title)
	assert.Equal(t, []string{"a", "b", "c"}, idea.Tags)
	assert.Equal(t, []string{"widget fits the page"}, idea.WhatMustBeTrue)
	assert.Equal(t, "prototype first", idea.DevelopmentNotes)
}

func TestIdeaService_SubmitRejectsShortTitle(t *testing.T) {
	svc, _ := setupIdeaService(t)

	_, err := svc.SubmitIdea(context.Background(), service.SubmitIdeaRequest{Title: "ab"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)
	details, ok := domainErr.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "title", details["field"])
	assert.Equal(t, "min", details["bound"])
}

func TestIdeaService_SubmitRejectsLongTitle(t *testing.T) {
	svc, _ := setupIdeaService(t)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}

	_, err := svc.SubmitIdea(context.Background(), service.SubmitIdeaRequest{Title: string(long)})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)
	details, ok := domainErr.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "max", details["bound"])
}

func TestIdeaService_SubmitThenList(t *testing.T) {
	svc, _ := setupIdeaService(t)
	ctx := context.Background()

	first, err := svc.SubmitIdea(ctx, service.SubmitIdeaRequest{Title: "First idea", TagsRaw: "a, b"})
	require.NoError(t, err)
	second, err := svc.SubmitIdea(ctx, service.SubmitIdeaRequest{Title: "Second idea"})
	require.NoError(t, err)

	ideas, err := svc.ListIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, ideas, 2)

	byID := map[string][]string{}
	for _, idea := range ideas {
		byID[idea.Identity()] = idea.Tags
	}
	assert.Equal(t, []string{"a", "b"}, byID[first.Identity()])
	assert.Equal(t, []string{}, byID[second.Identity()])
}

func TestIdeaService_ListSkipsCorruptRecords(t *testing.T) {
	svc, gateway := setupIdeaService(t)
	ctx := context.Background()

	_, err := svc.SubmitIdea(ctx, service.SubmitIdeaRequest{Title: "Healthy idea"})
	require.NoError(t, err)

	// Plant a document the codec cannot decode.
	st, err := gateway.Resolve(ctx)
	require.NoError(t, err)
	_, err = st.Create(ctx, "ideas", []byte("not json at all"))
	require.NoError(t, err)

	ideas, err := svc.ListIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "Healthy idea", ideas[0].Title)
}

func TestIdeaService_GetRoundTrip(t *testing.T) {
	svc, _ := setupIdeaService(t)
	ctx := context.Background()

	created, err := svc.SubmitIdea(ctx, service.SubmitIdeaRequest{
		Title:   "Fetch me",
		TagsRaw: "x",
	})
	require.NoError(t, err)

	got, err := svc.GetIdea(ctx, created.Identity())
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestIdeaService_GetUnknownIdentity(t *testing.T) {
	svc, _ := setupIdeaService(t)

	_, err := svc.GetIdea(context.Background(), "ideas:doesnotexist")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIdeaService_GetMalformedIdentity(t *testing.T) {
	svc, _ := setupIdeaService(t)

	_, err := svc.GetIdea(context.Background(), "no-separator")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentity)
}

func TestIdeaService_UpdatePreservesIdentity(t *testing.T) {
	svc, _ := setupIdeaService(t)
	ctx := context.Background()

	created, err := svc.SubmitIdea(ctx, service.SubmitIdeaRequest{Title: "Original title"})
	require.NoError(t, err)

	updated, err := svc.UpdateIdea(ctx, created.Identity(), service.UpdateIdeaRequest{
		Title:            "Replacement title",
		Description:      "now with words",
		Tags:             []string{"revised"},
		WhatMustBeTrue:   []string{"reviewer approves"},
		DevelopmentNotes: "second draft",
	})
	require.NoError(t, err)

	assert.Equal(t, created.Identity(), updated.Identity())
	assert.Equal(t, "Replacement title", updated.Title)
	assert.Equal(t, []string{"revised"}, updated.Tags)
}

func TestIdeaService_UpdateValidatesTitle(t *testing.T) {
	svc, _ := setupIdeaService(t)
	ctx := context.Background()

	created, err := svc.SubmitIdea(ctx, service.SubmitIdeaRequest{Title: "Keep me intact"})
	require.NoError(t, err)

	_, err = svc.UpdateIdea(ctx, created.Identity(), service.UpdateIdeaRequest{Title: "xx"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// The failed update left the record untouched.
	got, err := svc.GetIdea(ctx, created.Identity())
	require.NoError(t, err)
	assert.Equal(t, "Keep me intact", got.Title)
}

func TestIdeaService_UpdateUnknownIdentity(t *testing.T) {
	svc, _ := setupIdeaService(t)

	_, err := svc.UpdateIdea(context.Background(), "ideas:missing", service.UpdateIdeaRequest{Title: "Valid title"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIdeaService_Delete(t *testing.T) {
	svc, _ := setupIdeaService(t)
	ctx := context.Background()

	created, err := svc.SubmitIdea(ctx, service.SubmitIdeaRequest{Title: "Short lived"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteIdea(ctx, created.Identity()))

	_, err = svc.GetIdea(ctx, created.Identity())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting again reports not-found instead of silently succeeding.
	err = svc.DeleteIdea(ctx, created.Identity())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIdeaService_BackendFailureIsUnavailable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	opener := func(context.Context, config.StorageConfig, *slog.Logger) (store.Store, error) {
		return nil, apperrors.StorageUnavailable("backend down")
	}
	gateway := store.NewGatewayWithOpener(config.StorageConfig{}, logger, opener)
	svc := service.NewIdeaService(gateway, time.Second, logger)

	_, err := svc.ListIdeas(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
}
