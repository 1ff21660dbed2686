package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
)

func TestRowFromResult_SplitsIdentityFromDocument(t *testing.T) {
	result := map[string]any{
		"id":    models.NewRecordID("ideas", "abc123"),
		"title": "Remote idea",
		"tags":  []any{"a", "b"},
	}

	row, err := rowFromResult(result)
	require.NoError(t, err)

	assert.Equal(t, "ideas", row.Ref.Table)
	assert.Equal(t, "abc123", row.Ref.Key)

	// The id never leaks into the document body.
	assert.NotContains(t, string(row.Doc), "abc123")
	assert.Contains(t, string(row.Doc), "Remote idea")
}

func TestRowFromResult_MissingID(t *testing.T) {
	_, err := rowFromResult(map[string]any{"title": "No identity"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentity)
}

func TestRowFromResult_WrongIDType(t *testing.T) {
	_, err := rowFromResult(map[string]any{"id": "ideas:abc", "title": "Stringly typed"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentity)
}

func TestDecodeDoc(t *testing.T) {
	fields, err := decodeDoc([]byte(`{"title":"ok","tags":["a"]}`))
	require.NoError(t, err)
	assert.Equal(t, "ok", fields["title"])

	_, err = decodeDoc([]byte("not json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorageRejected)
}
