package record

import (
	"github.com/ideaboard/ideaboard-server/internal/domain"
)

// IdeaTable is the storage table for idea records.
const IdeaTable = "ideas"

// IdeaRecord is the storage-facing shape of an idea. The identity lives
// outside the document body; the fields marshal to the persisted document.
type IdeaRecord struct {
	ID               *Ref     `json:"-"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	WhatMustBeTrue   []string `json:"what_must_be_true"`
	DevelopmentNotes string   `json:"development_notes"`
}

// EncodeIdea converts a wire entity into its storage record. Every field is
// copied as-is; the identity, when present, must parse as "<table>:<key>"
// or the encode fails with an invalid-identity error.
func EncodeIdea(idea *domain.Idea) (*IdeaRecord, error) {
	rec := &IdeaRecord{
		Title:            idea.Title,
		Description:      idea.Description,
		Tags:             idea.Tags,
		WhatMustBeTrue:   idea.WhatMustBeTrue,
		DevelopmentNotes: idea.DevelopmentNotes,
	}

	if idea.ID != nil {
		ref, err := ParseRef(*idea.ID)
		if err != nil {
			return nil, err
		}
		rec.ID = &ref
	}

	return rec, nil
}

// DecodeIdea converts a storage record back into the wire entity,
// stringifying the composite reference. It never fails for well-formed
// records; both directions are field-for-field copies.
func DecodeIdea(rec *IdeaRecord) *domain.Idea {
	idea := &domain.Idea{
		Title:            rec.Title,
		Description:      rec.Description,
		Tags:             rec.Tags,
		WhatMustBeTrue:   rec.WhatMustBeTrue,
		DevelopmentNotes: rec.DevelopmentNotes,
	}

	if rec.ID != nil {
		id := rec.ID.String()
		idea.ID = &id
	}

	// New optional fields default on read; old documents may omit them.
	if idea.Tags == nil {
		idea.Tags = []string{}
	}
	if idea.WhatMustBeTrue == nil {
		idea.WhatMustBeTrue = []string{}
	}

	return idea
}
