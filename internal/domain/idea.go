// Package domain contains the wire-facing data model and its pure
// validation and derivation rules.
package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Idea is the client-facing entity shape. The ID is absent until the
// record has been persisted; after that it carries the canonical
// "<table>:<key>" identity for the rest of the entity's life.
type Idea struct {
	ID               *string  `json:"id,omitempty"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	WhatMustBeTrue   []string `json:"what_must_be_true"`
	DevelopmentNotes string   `json:"development_notes"`
}

// Identity returns the assigned identity, or "" if the idea has not been
// persisted yet.
func (i *Idea) Identity() string {
	if i.ID == nil {
		return ""
	}
	return *i.ID
}

// Title length bounds, in characters (runes, not bytes).
const (
	TitleMinLength = 3
	TitleMaxLength = 100
)

// TitleBound identifies which title length bound a validation failure hit.
type TitleBound int

// Title bound kinds.
const (
	TitleTooShort TitleBound = iota
	TitleTooLong
)

// TitleError reports a title length violation with the violated bound, so
// callers can render an exact message against the field.
type TitleError struct {
	Bound TitleBound
	Limit int
}

// Error implements the error interface.
func (e *TitleError) Error() string {
	if e.Bound == TitleTooShort {
		return fmt.Sprintf("title must be at least %d characters", e.Limit)
	}
	return fmt.Sprintf("title must not exceed %d characters", e.Limit)
}

// ValidateTitle checks the title length against [TitleMinLength] and
// [TitleMaxLength]. Returns a *TitleError naming the violated bound, or nil.
func ValidateTitle(title string) error {
	switch n := utf8.RuneCountInString(title); {
	case n < TitleMinLength:
		return &TitleError{Bound: TitleTooShort, Limit: TitleMinLength}
	case n > TitleMaxLength:
		return &TitleError{Bound: TitleTooLong, Limit: TitleMaxLength}
	}
	return nil
}

// ParseTags splits a comma-delimited string into tags, trimming surrounding
// whitespace and dropping empty pieces. Order of first occurrence is
// preserved; duplicates are kept and case is untouched.
func ParseTags(raw string) []string {
	tags := []string{}
	for piece := range strings.SplitSeq(raw, ",") {
		tag := strings.TrimSpace(piece)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
