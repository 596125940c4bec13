package cms

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/publishing"
)

// NewsService exposes the news operations used by the transport layer.
type NewsService interface {
	Create(ctx context.Context, input NewsInput) (*News, error)
	Get(ctx context.Context, lookup publishing.Lookup) (*News, error)
	List(ctx context.Context, query ListQuery) ([]News, error)
	Update(ctx context.Context, id string, patch NewsPatch) (*News, error)
	Delete(ctx context.Context, id string) error
}

type newsService struct {
	base
	repo    NewsRepository
	authors AuthorResolver
}

var _ NewsService = (*newsService)(nil)

// NewNewsService wires the news service. News slugs carry a creation timestamp
// and are disambiguated with random suffixes on collision. authors may be nil.
func NewNewsService(repo NewsRepository, authors AuthorResolver, opts Options) (NewsService, error) {
	if repo == nil {
		return nil, eris.New("news repository is required")
	}

	return &newsService{
		base:    newBase(KindNews, opts, true, true),
		repo:    repo,
		authors: authors,
	}, nil
}

func (s *newsService) Create(ctx context.Context, input NewsInput) (*News, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	input.CategoryID = strings.TrimSpace(input.CategoryID)
	input.Priority = normalizeUpper(input.Priority)
	if input.Priority == "" {
		input.Priority = string(PriorityMedium)
	}

	if err := validateNewsInput(&input); err != nil {
		return nil, err
	}

	status, publishedAt, err := s.initial(input.Status)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveSlug(ctx, input.Title, input.Slug, s.repo.SlugExists)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"title": input.Title}, err, "resolving news slug")
	}

	var authorID *string
	if s.authors != nil {
		authorID, err = s.authors.DefaultAuthorID(ctx)
		if err != nil {
			return nil, s.fail(ctx, nil, err, "resolving news author")
		}
	}

	news := &News{
		Meta: publishing.Meta{
			Title:       input.Title,
			Slug:        resolved,
			Status:      status,
			PublishedAt: publishedAt,
			Tags:        publishing.CleanTags(input.Tags),
		},
		Content:    input.Content,
		Excerpt:    strings.TrimSpace(input.Excerpt),
		CategoryID: input.CategoryID,
		Priority:   Priority(input.Priority),
		Image:      strings.TrimSpace(input.Image),
		AuthorID:   authorID,
	}

	if err := s.repo.Create(ctx, news); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"slug": resolved}, err, "creating news")
	}

	return news, nil
}

func (s *newsService) Get(ctx context.Context, lookup publishing.Lookup) (*News, error) {
	normalized, err := lookup.Normalize()
	if err != nil {
		return nil, err
	}

	news, err := s.repo.RecordView(ctx, normalized)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"lookup": normalized.String()}, err, "fetching news")
	}

	s.viewed()
	return news, nil
}

func (s *newsService) List(ctx context.Context, query ListQuery) ([]News, error) {
	status, err := publishing.ParseFilter(query.Status, publishing.StatusPublished, s.parseStatus)
	if err != nil {
		return nil, err
	}

	filter := NewsFilter{
		CategoryID: strings.TrimSpace(query.Category),
		Status:     status,
	}

	if raw := normalizeUpper(query.Priority); raw != "" {
		priority := Priority(raw)
		if priority.Rank() == 0 {
			return nil, publishing.NewValidationError("priority", "must be one of LOW, MEDIUM, HIGH, URGENT")
		}
		filter.Priority = priority
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing news")
	}

	return items, nil
}

func (s *newsService) Update(ctx context.Context, id string, patch NewsPatch) (*News, error) {
	trimmedID, err := requireID(id)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, trimmedID)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "loading news for update")
	}

	common, err := s.common(ctx, patch.CommonPatch, current.Meta, s.repo.SlugExists)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "preparing news update")
	}

	changes := NewsChanges{
		Changes:    common,
		Content:    present(patch.Content),
		Excerpt:    present(patch.Excerpt),
		CategoryID: present(patch.CategoryID),
		Image:      present(patch.Image),
	}

	if raw := present(patch.Priority); raw != nil {
		priority := Priority(strings.ToUpper(*raw))
		if priority.Rank() == 0 {
			return nil, publishing.NewValidationError("priority", "must be one of LOW, MEDIUM, HIGH, URGENT")
		}
		changes.Priority = &priority
	}

	updated, err := s.repo.Update(ctx, trimmedID, changes)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "updating news")
	}

	return updated, nil
}

func (s *newsService) Delete(ctx context.Context, id string) error {
	trimmedID, err := requireID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, trimmedID); err != nil {
		return s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "deleting news")
	}
	return nil
}

func validateNewsInput(input *NewsInput) error {
	return publishing.Validated(validation.ValidateStruct(input,
		validation.Field(&input.Title, validation.Required.Error("title is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.Content, validation.Required.Error("content is required")),
		validation.Field(&input.CategoryID, validation.Required.Error("categoryId is required")),
		validation.Field(&input.Priority, validation.In(
			string(PriorityLow), string(PriorityMedium), string(PriorityHigh), string(PriorityUrgent),
		).Error("must be one of LOW, MEDIUM, HIGH, URGENT")),
	))
}
