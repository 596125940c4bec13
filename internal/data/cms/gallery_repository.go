package cms

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domaincms "smoweb/app/internal/domain/cms"
	"smoweb/app/internal/domain/publishing"
)

// GalleryRepository persists photo galleries.
type GalleryRepository struct {
	table table[GalleryRecord]
}

var _ domaincms.GalleryRepository = (*GalleryRepository)(nil)

func NewGalleryRepository(db *gorm.DB, logger *logrus.Logger) (*GalleryRepository, error) {
	t, err := newTable[GalleryRecord](db, logger, domaincms.KindGallery)
	if err != nil {
		return nil, err
	}
	return &GalleryRepository{table: t}, nil
}

func (r *GalleryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.table.slugExists(ctx, slug)
}

func (r *GalleryRepository) Create(ctx context.Context, gallery *domaincms.Gallery) error {
	if gallery == nil {
		return eris.New("gallery is nil")
	}

	images := gallery.Images
	if images == nil {
		images = []string{}
	}

	record := &GalleryRecord{
		ItemColumns: newItemColumns(gallery.Meta),
		Description: gallery.Description,
		CategoryID:  gallery.CategoryID,
		Images:      datatypes.JSONSlice[string](images),
		EventDate:   gallery.EventDate.UTC(),
		UploadedBy:  gallery.UploadedBy,
	}

	if err := r.table.create(ctx, record, record.Slug, "categoryId"); err != nil {
		return err
	}

	gallery.Meta = toMeta(record.ItemColumns)
	return nil
}

func (r *GalleryRepository) Get(ctx context.Context, id string) (*domaincms.Gallery, error) {
	record, err := r.table.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainGallery(record), nil
}

func (r *GalleryRepository) RecordView(ctx context.Context, lookup publishing.Lookup) (*domaincms.Gallery, error) {
	record, err := r.table.recordView(ctx, lookup)
	if err != nil {
		return nil, err
	}
	return toDomainGallery(record), nil
}

// List returns galleries with the most recent event first.
func (r *GalleryRepository) List(ctx context.Context, filter domaincms.GalleryFilter) ([]domaincms.Gallery, error) {
	query := r.table.query(ctx)

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var records []GalleryRecord
	if err := query.Order("event_date DESC").Order("created_at DESC").Find(&records).Error; err != nil {
		r.table.logError(nil, err, "listing galleries")
		return nil, eris.Wrap(err, "listing galleries")
	}

	items := make([]domaincms.Gallery, 0, len(records))
	for i := range records {
		items = append(items, *toDomainGallery(&records[i]))
	}
	return items, nil
}

func (r *GalleryRepository) Update(ctx context.Context, id string, changes domaincms.GalleryChanges) (*domaincms.Gallery, error) {
	columns, publishedAt := commonColumns(changes.Changes)
	setString(columns, "description", changes.Description)
	setString(columns, "category_id", changes.CategoryID)
	setString(columns, "uploaded_by", changes.UploadedBy)
	if changes.Images != nil {
		columns["images"] = datatypes.JSONSlice[string](*changes.Images)
	}
	if changes.EventDate != nil {
		columns["event_date"] = changes.EventDate.UTC()
	}

	record, err := r.table.update(ctx, id, columns, publishedAt, "categoryId")
	if err != nil {
		return nil, err
	}
	return toDomainGallery(record), nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(ctx, id)
}

func toDomainGallery(record *GalleryRecord) *domaincms.Gallery {
	images := []string(record.Images)
	if images == nil {
		images = []string{}
	}

	return &domaincms.Gallery{
		Meta:        toMeta(record.ItemColumns),
		Description: record.Description,
		CategoryID:  record.CategoryID,
		Images:      images,
		EventDate:   record.EventDate.UTC(),
		UploadedBy:  record.UploadedBy,
	}
}
