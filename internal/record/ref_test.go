package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
	"github.com/ideaboard/ideaboard-server/internal/record"
)

func TestParseRef_Valid(t *testing.T) {
	ref, err := record.ParseRef("ideas:abc123")
	require.NoError(t, err)
	assert.Equal(t, "ideas", ref.Table)
	assert.Equal(t, "abc123", ref.Key)
	assert.Equal(t, "ideas:abc123", ref.String())
}

func TestParseRef_Malformed(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"no separator", "ideasabc123"},
		{"empty table", ":abc123"},
		{"empty key", "ideas:"},
		{"bare separator", ":"},
		{"extra separator", "ideas:abc:123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := record.ParseRef(tt.id)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidIdentity)
		})
	}
}

func TestRef_IsZero(t *testing.T) {
	assert.True(t, record.Ref{}.IsZero())
	assert.False(t, record.Ref{Table: "ideas", Key: "x"}.IsZero())
}

func TestRef_RoundTrip(t *testing.T) {
	orig := record.Ref{Table: "ideas", Key: "k7f2m"}
	parsed, err := record.ParseRef(orig.String())
	require.NoError(t, err)
	assert.Equal(t, orig, parsed)
}
