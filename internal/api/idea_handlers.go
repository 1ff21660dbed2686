package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ideaboard/ideaboard-server/internal/domain"
	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
	"github.com/ideaboard/ideaboard-server/internal/service"
)

// registerIdeaRoutes registers the idea endpoints. All of them use POST
// semantics with JSON bodies: they are remote procedure calls, not
// resources, and the client invokes them like ordinary local functions.
func (s *Server) registerIdeaRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "submitIdea",
		Method:      http.MethodPost,
		Path:        "/api/ideas/submit",
		Summary:     "Submit idea",
		Description: "Validates and persists a new idea; tags are derived from the raw comma-delimited string",
		Tags:        []string{"Ideas"},
	}, s.handleSubmitIdea)

	huma.Register(s.api, huma.Operation{
		OperationID: "listIdeas",
		Method:      http.MethodPost,
		Path:        "/api/ideas/list",
		Summary:     "List ideas",
		Description: "Returns all ideas in backend-native order",
		Tags:        []string{"Ideas"},
	}, s.handleListIdeas)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIdea",
		Method:      http.MethodPost,
		Path:        "/api/ideas/get",
		Summary:     "Get idea",
		Description: "Returns a single idea by its identity",
		Tags:        []string{"Ideas"},
	}, s.handleGetIdea)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateIdea",
		Method:      http.MethodPost,
		Path:        "/api/ideas/update",
		Summary:     "Update idea",
		Description: "Replaces the full content of an existing idea",
		Tags:        []string{"Ideas"},
	}, s.handleUpdateIdea)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteIdea",
		Method:      http.MethodPost,
		Path:        "/api/ideas/delete",
		Summary:     "Delete idea",
		Description: "Deletes an idea by its identity",
		Tags:        []string{"Ideas"},
	}, s.handleDeleteIdea)
}

// === DTOs ===

// IdeaResponse contains idea data in API responses.
type IdeaResponse struct {
	ID               string   `json:"id" doc:"Canonical record identity (table:key)"`
	Title            string   `json:"title" doc:"Idea title"`
	Description      string   `json:"description" doc:"Idea description"`
	Tags             []string `json:"tags" doc:"Tags in insertion order"`
	WhatMustBeTrue   []string `json:"what_must_be_true" doc:"Acceptance conditions"`
	DevelopmentNotes string   `json:"development_notes" doc:"Development notes"`
}

// SubmitIdeaRequest is the request body for submitting an idea.
type SubmitIdeaRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=100" doc:"Idea title"`
	Description string   `json:"description" required:"false" doc:"Idea description"`
	TagsRaw     string   `json:"tags_raw,omitempty" doc:"Comma-delimited tags"`
	Conditions  []string `json:"conditions,omitempty" doc:"Acceptance conditions"`
	Notes       string   `json:"notes,omitempty" doc:"Development notes"`
}

// SubmitIdeaInput wraps the submit request for Huma.
type SubmitIdeaInput struct {
	Body SubmitIdeaRequest
}

// IdeaOutput wraps a single idea response for Huma.
type IdeaOutput struct {
	Body IdeaResponse
}

// ListIdeasOutput wraps the idea list for Huma.
type ListIdeasOutput struct {
	Body []IdeaResponse
}

// IdeaRefRequest is the request body for operations addressing one idea.
type IdeaRefRequest struct {
	ID string `json:"id" validate:"required" doc:"Canonical record identity (table:key)"`
}

// IdeaRefInput wraps an identity-only request for Huma.
type IdeaRefInput struct {
	Body IdeaRefRequest
}

// UpdateIdeaRequest is the request body for replacing an idea's content.
type UpdateIdeaRequest struct {
	ID               string   `json:"id" validate:"required" doc:"Canonical record identity (table:key)"`
	Title            string   `json:"title" validate:"required,min=3,max=100" doc:"Idea title"`
	Description      string   `json:"description" required:"false" doc:"Idea description"`
	Tags             []string `json:"tags" required:"false" doc:"Tags in insertion order"`
	WhatMustBeTrue   []string `json:"what_must_be_true" required:"false" doc:"Acceptance conditions"`
	DevelopmentNotes string   `json:"development_notes" required:"false" doc:"Development notes"`
}

// UpdateIdeaInput wraps the update request for Huma.
type UpdateIdeaInput struct {
	Body UpdateIdeaRequest
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleSubmitIdea(ctx context.Context, input *SubmitIdeaInput) (*IdeaOutput, error) {
	if err := s.requireServerCapability("submitIdea"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	idea, err := s.services.Idea.SubmitIdea(ctx, service.SubmitIdeaRequest{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		TagsRaw:     input.Body.TagsRaw,
		Conditions:  input.Body.Conditions,
		Notes:       input.Body.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &IdeaOutput{Body: ideaResponse(idea)}, nil
}

func (s *Server) handleListIdeas(ctx context.Context, _ *struct{}) (*ListIdeasOutput, error) {
	if err := s.requireServerCapability("listIdeas"); err != nil {
		return nil, err
	}

	ideas, err := s.services.Idea.ListIdeas(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]IdeaResponse, len(ideas))
	for i, idea := range ideas {
		resp[i] = ideaResponse(idea)
	}

	return &ListIdeasOutput{Body: resp}, nil
}

func (s *Server) handleGetIdea(ctx context.Context, input *IdeaRefInput) (*IdeaOutput, error) {
	if err := s.requireServerCapability("getIdea"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	idea, err := s.services.Idea.GetIdea(ctx, input.Body.ID)
	if err != nil {
		return nil, err
	}

	return &IdeaOutput{Body: ideaResponse(idea)}, nil
}

func (s *Server) handleUpdateIdea(ctx context.Context, input *UpdateIdeaInput) (*IdeaOutput, error) {
	if err := s.requireServerCapability("updateIdea"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	idea, err := s.services.Idea.UpdateIdea(ctx, input.Body.ID, service.UpdateIdeaRequest{
		Title:            input.Body.Title,
		Description:      input.Body.Description,
		Tags:             input.Body.Tags,
		WhatMustBeTrue:   input.Body.WhatMustBeTrue,
		DevelopmentNotes: input.Body.DevelopmentNotes,
	})
	if err != nil {
		return nil, err
	}

	return &IdeaOutput{Body: ideaResponse(idea)}, nil
}

func (s *Server) handleDeleteIdea(ctx context.Context, input *IdeaRefInput) (*MessageOutput, error) {
	if err := s.requireServerCapability("deleteIdea"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&input.Body); err != nil {
		return nil, err
	}

	if err := s.services.Idea.DeleteIdea(ctx, input.Body.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Idea deleted"}}, nil
}

// requireServerCapability fails the call before any storage access when the
// server instance lacks the server-only execution context. This is a
// deployment error: it gets logged, never rendered to an end user.
func (s *Server) requireServerCapability(operation string) error {
	if s.hasServerCapability() {
		return nil
	}
	s.logger.Error("server-only endpoint invoked without server capability", "operation", operation)
	return apperrors.ServerOnly(operation + " is a server-only operation")
}

// ideaResponse maps a wire entity to its response DTO.
func ideaResponse(idea *domain.Idea) IdeaResponse {
	return IdeaResponse{
		ID:               idea.Identity(),
		Title:            idea.Title,
		Description:      idea.Description,
		Tags:             idea.Tags,
		WhatMustBeTrue:   idea.WhatMustBeTrue,
		DevelopmentNotes: idea.DevelopmentNotes,
	}
}
