package cms

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"smoweb/app/internal/domain/publishing"
)

const defaultUploader = "system"

type GalleryService interface {
	Create(ctx context.Context, input GalleryInput) (*Gallery, error)
	Get(ctx context.Context, lookup publishing.Lookup) (*Gallery, error)
	List(ctx context.Context, query ListQuery) ([]Gallery, error)
	Update(ctx context.Context, id string, patch GalleryPatch) (*Gallery, error)
	Delete(ctx context.Context, id string) error
}

type galleryService struct {
	base
	repo GalleryRepository
}

var _ GalleryService = (*galleryService)(nil)

func NewGalleryService(repo GalleryRepository, opts Options) (GalleryService, error) {
	if repo == nil {
		return nil, eris.New("gallery repository is required")
	}

	return &galleryService{
		base: newBase(KindGallery, opts, false, false),
		repo: repo,
	}, nil
}

func (s *galleryService) Create(ctx context.Context, input GalleryInput) (*Gallery, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.CategoryID = strings.TrimSpace(input.CategoryID)
	input.EventDate = strings.TrimSpace(input.EventDate)

	if err := validateGalleryInput(&input); err != nil {
		return nil, err
	}

	eventDate, err := ParseEventDate(input.EventDate)
	if err != nil {
		return nil, err
	}

	status, publishedAt, err := s.initial(input.Status)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveSlug(ctx, input.Title, input.Slug, s.repo.SlugExists)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"title": input.Title}, err, "resolving gallery slug")
	}

	uploader := strings.TrimSpace(input.UploadedBy)
	if uploader == "" {
		uploader = defaultUploader
	}

	gallery := &Gallery{
		Meta: publishing.Meta{
			Title:       input.Title,
			Slug:        resolved,
			Status:      status,
			PublishedAt: publishedAt,
			Tags:        publishing.CleanTags(input.Tags),
		},
		Description: strings.TrimSpace(input.Description),
		CategoryID:  input.CategoryID,
		Images:      publishing.CleanTags(input.Images),
		EventDate:   eventDate,
		UploadedBy:  uploader,
	}

	if err := s.repo.Create(ctx, gallery); err != nil {
		return nil, s.fail(ctx, logrus.Fields{"slug": resolved}, err, "creating gallery")
	}

	return gallery, nil
}

func (s *galleryService) Get(ctx context.Context, lookup publishing.Lookup) (*Gallery, error) {
	normalized, err := lookup.Normalize()
	if err != nil {
		return nil, err
	}

	gallery, err := s.repo.RecordView(ctx, normalized)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"lookup": normalized.String()}, err, "fetching gallery")
	}

	s.viewed()
	return gallery, nil
}

func (s *galleryService) List(ctx context.Context, query ListQuery) ([]Gallery, error) {
	status, err := publishing.ParseFilter(query.Status, publishing.StatusPublished, s.parseStatus)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, GalleryFilter{
		CategoryID: strings.TrimSpace(query.Category),
		Status:     status,
	})
	if err != nil {
		return nil, s.fail(ctx, nil, err, "listing galleries")
	}

	return items, nil
}

func (s *galleryService) Update(ctx context.Context, id string, patch GalleryPatch) (*Gallery, error) {
	trimmedID, err := requireID(id)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, trimmedID)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "loading gallery for update")
	}

	common, err := s.common(ctx, patch.CommonPatch, current.Meta, s.repo.SlugExists)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "preparing gallery update")
	}

	changes := GalleryChanges{
		Changes:     common,
		Description: present(patch.Description),
		CategoryID:  present(patch.CategoryID),
		UploadedBy:  present(patch.UploadedBy),
	}

	if patch.Images != nil {
		images := publishing.CleanTags(*patch.Images)
		changes.Images = &images
	}

	if raw := present(patch.EventDate); raw != nil {
		eventDate, err := ParseEventDate(*raw)
		if err != nil {
			return nil, err
		}
		changes.EventDate = &eventDate
	}

	updated, err := s.repo.Update(ctx, trimmedID, changes)
	if err != nil {
		return nil, s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "updating gallery")
	}

	return updated, nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	trimmedID, err := requireID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, trimmedID); err != nil {
		return s.fail(ctx, logrus.Fields{"id": trimmedID}, err, "deleting gallery")
	}
	return nil
}

// ParseEventDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func ParseEventDate(raw string) (time.Time, error) {
	return publishing.ParseDate("eventDate", raw)
}

func validateGalleryInput(input *GalleryInput) error {
	return publishing.Validated(validation.ValidateStruct(input,
		validation.Field(&input.Title, validation.Required.Error("title is required"), validation.RuneLength(0, 255)),
		validation.Field(&input.CategoryID, validation.Required.Error("categoryId is required")),
		validation.Field(&input.EventDate, validation.Required.Error("eventDate is required")),
	))
}
