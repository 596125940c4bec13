package cms

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/publishing"
)

type ContentService interface {
	Create(ctx context.Context, input ContentInput) (*Content, error)
	Get(ctx context.Context, lookup publishing.Lookup) (*Content, error)
	List(ctx context.Context, query ListQuery) ([]Content, error)
	Update(ctx context.Context, id string, patch ContentPatch) (*Content, error)
	Delete(ctx context.Context, id string) error
}

type contentService struct {
	base
	repo ContentRepository
}

var _ ContentService = (*contentService)(nil)

// NewContentService wires the content service. A colliding slug is rejected outright.
func NewContentService(repo ContentRepository, opts Options) (ContentService, error) {
	if repo == nil {
		return nil, eris.New("content repository is required")
	}

	return &contentService{
		base: newBase(KindContent, opts, false, false),
		repo: repo,
	}, nil
}

func (s *contentService) Create(ctx context.Context, input ContentInput) (*Content, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	input.Type = normalizeUpper(input.Type)

	if err := validateContentInput(&input); err != nil {
		return nil, err
	}

	status, publishedAt, err := s.initial(input.Status)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveSlug(ctx, input.Title, input.Slug, s.repo.SlugExists)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"title": input.Title}, err, "resolving content slug")
	}

	content := &Content{
		Meta: publishing.Meta{
			Title:       input.Title,
			Slug:        resolved,
			Status:      status,
			PublishedAt: publishedAt,
			Tags:        publishing.CleanTags(input.Tags),
		},
		Content: input.Content,
		Excerpt: strings.TrimSpace(input.Excerpt),
		Type:    ContentType(input.Type),
	}

	if err := s.repo.Create(ctx, content); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"slug": resolved}, err, "creating content")
	}

	return content, nil
}

func (s *contentService) Get(ctx context.Context, lookup publishing.Lookup) (*Content, error) {
	normalized, err := lookup.Normalize()
	if err != nil {
		return nil, err
	}

	content, err := s.repo.RecordView(ctx, normalized)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"lookup": normalized.String()}, err, "fetching content")
	}

	s.viewed()
	return content, nil
}

func (s *contentService) List(ctx context.Context, query ListQuery) ([]Content, error) {
	status, err := publishing.ParseFilter(query.Status, publishing.StatusPublished, s.parseStatus)
	if err != nil {
		return nil, err
	}

	filter := ContentFilter{Status: status}
	if raw := normalizeUpper(query.Type); raw != "" {
		contentType, err := parseContentType(raw)
		if err != nil {
			return nil, err
		}
		filter.Type = contentType
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing content")
	}

	return items, nil
}

func (s *contentService) Update(ctx context.Context, id string, patch ContentPatch) (*Content, error) {
	trimmedID, err := requireID(id)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, trimmedID)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "loading content for update")
	}

	common, err := s.common(ctx, patch.CommonPatch, current.Meta, s.repo.SlugExists)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "preparing content update")
	}

	changes := ContentChanges{
		Changes: common,
		Content: present(patch.Content),
		Excerpt: present(patch.Excerpt),
	}

	if raw := present(patch.Type); raw != nil {
		contentType, err := parseContentType(*raw)
		if err != nil {
			return nil, err
		}
		changes.Type = &contentType
	}

	updated, err := s.repo.Update(ctx, trimmedID, changes)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "updating content")
	}

	return updated, nil
}

func (s *contentService) Delete(ctx context.Context, id string) error {
	trimmedID, err := requireID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, trimmedID); err != nil {
		return s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "deleting content")
	}
	return nil
}

func parseContentType(raw string) (ContentType, error) {
	contentType := ContentType(normalizeUpper(raw))
	switch contentType {
	case ContentTypeNews, ContentTypeActivity, ContentTypeAnnouncement:
		return contentType, nil
	default:
		return "", publishing.NewValidationError("type", "must be one of NEWS, ACTIVITY, ANNOUNCEMENT")
	}
}

func validateContentInput(input *ContentInput) error {
	return publishing.Validated(validation.ValidateStruct(input,
		validation.Field(&input.Title, validation.Required.Error("title is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.Content, validation.Required.Error("content is required")),
		validation.Field(&input.Type,
			validation.Required.Error("type is required"),
			validation.In(string(ContentTypeNews), string(ContentTypeActivity), string(ContentTypeAnnouncement)).
				Error("must be one of NEWS, ACTIVITY, ANNOUNCEMENT"),
		),
	))
}
