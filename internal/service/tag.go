package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/savorly/savorly-server/internal/domain"
	domainerrors "github.com/savorly/savorly-server/internal/errors"
	"github.com/savorly/savorly-server/internal/id"
	"github.com/savorly/savorly-server/internal/store"
	"github.com/savorly/savorly-server/internal/util"
)

// TagService serves the read-only tag catalog. Tags are reference data
// loaded by operators; clients never mutate them.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(st store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: st, logger: logger}
}

// CreateTagRequest contains the fields of a new catalog tag.
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
	Slug  string `json:"slug" validate:"omitempty,max=200"`
}

// List returns every tag.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Get returns one tag by ID.
func (s *TagService) Get(ctx context.Context, tagID string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

// Create adds a tag to the catalog. Used by the seeding tool.
func (s *TagService) Create(ctx context.Context, req CreateTagRequest) (*domain.Tag, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	// The slug is the canonical tag identity; normalize whatever the
	// operator typed before storing it.
	slug := util.NormalizeTagSlug(req.Slug)
	if slug == "" {
		slug = util.NormalizeTagSlug(req.Name)
	}
	if slug == "" {
		return nil, domainerrors.Validation("tag slug must contain letters or digits")
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	tag := &domain.Tag{
		ID:    tagID,
		Name:  req.Name,
		Color: req.Color,
		Slug:  slug,
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("tag slug already in use")
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.Info("tag created", "tag_id", tagID, "slug", tag.Slug)
	return tag, nil
}
