package client_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideaboard/ideaboard-server/internal/api"
	"github.com/ideaboard/ideaboard-server/internal/client"
	"github.com/ideaboard/ideaboard-server/internal/config"
	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
	"github.com/ideaboard/ideaboard-server/internal/service"
	"github.com/ideaboard/ideaboard-server/internal/store"
)

// setupClient spins up a real server over an embedded backend and returns a
// client pointed at it.
func setupClient(t *testing.T) *client.Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	gateway := store.NewGateway(config.StorageConfig{
		Kind: config.BackendEmbedded,
		Path: t.TempDir(),
	}, logger)
	t.Cleanup(func() {
		_ = gateway.Close()
	})

	svc := service.NewIdeaService(gateway, 5*time.Second, logger)
	server := api.NewServer(&api.Services{Idea: svc}, gateway, logger)

	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	return client.New(ts.URL)
}

func TestClient_SubmitAndList(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	idea, err := c.SubmitIdea(ctx, api.SubmitIdeaRequest{
		Title:   "Client-side submission",
		TagsRaw: "remote, rpc",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, idea.ID)
	assert.Equal(t, []string{"remote", "rpc"}, idea.Tags)

	ideas, err := c.ListIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, *idea, ideas[0])
}

func TestClient_ValidationErrorSurvivesTheWire(t *testing.T) {
	c := setupClient(t)

	_, err := c.SubmitIdea(context.Background(), api.SubmitIdeaRequest{Title: "ab"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeValidation, domainErr.Code)
	assert.NotNil(t, domainErr.Details)
}

func TestClient_NotFoundSurvivesTheWire(t *testing.T) {
	c := setupClient(t)

	_, err := c.GetIdea(context.Background(), "ideas:doesnotexist")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_GetUpdateDelete(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	created, err := c.SubmitIdea(ctx, api.SubmitIdeaRequest{Title: "Full lifecycle"})
	require.NoError(t, err)

	got, err := c.GetIdea(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := c.UpdateIdea(ctx, api.UpdateIdeaRequest{
		ID:    created.ID,
		Title: "Full lifecycle, renamed",
		Tags:  []string{"done"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Full lifecycle, renamed", updated.Title)

	require.NoError(t, c.DeleteIdea(ctx, created.ID))

	_, err = c.GetIdea(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
