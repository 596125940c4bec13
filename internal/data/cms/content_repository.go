package cms

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domaincms "smoweb/app/internal/domain/cms"
	"smoweb/app/internal/domain/publishing"
)

// ContentRepository persists general content pages.
type ContentRepository struct {
	table table[ContentRecord]
}

var _ domaincms.ContentRepository = (*ContentRepository)(nil)

func NewContentRepository(db *gorm.DB, logger *logrus.Logger) (*ContentRepository, error) {
	t, err := newTable[ContentRecord](db, logger, domaincms.KindContent)
	if err != nil {
		return nil, err
	}
	return &ContentRepository{table: t}, nil
}

func (r *ContentRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.table.slugExists(ctx, slug)
}

func (r *ContentRepository) Create(ctx context.Context, content *domaincms.Content) error {
	if content == nil {
		return eris.New("content is nil")
	}

	record := &ContentRecord{
		ItemColumns: newItemColumns(content.Meta),
		Content:     content.Content,
		Excerpt:     content.Excerpt,
		Type:        string(content.Type),
	}

	if err := r.table.create(ctx, record, record.Slug, ""); err != nil {
		return err
	}

	content.Meta = toMeta(record.ItemColumns)
	return nil
}

func (r *ContentRepository) Get(ctx context.Context, id string) (*domaincms.Content, error) {
	record, err := r.table.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainContent(record), nil
}

func (r *ContentRepository) RecordView(ctx context.Context, lookup publishing.Lookup) (*domaincms.Content, error) {
	record, err := r.table.recordView(ctx, lookup)
	if err != nil {
		return nil, err
	}
	return toDomainContent(record), nil
}

func (r *ContentRepository) List(ctx context.Context, filter domaincms.ContentFilter) ([]domaincms.Content, error) {
	query := r.table.query(ctx)

	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var records []ContentRecord
	err := query.
		Order("published_at IS NULL").
		Order("published_at DESC").
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		r.table.logError(nil, err, "listing content")
		return nil, eris.Wrap(err, "listing content")
	}

	items := make([]domaincms.Content, 0, len(records))
	for i := range records {
		items = append(items, *toDomainContent(&records[i]))
	}
	return items, nil
}

func (r *ContentRepository) Update(ctx context.Context, id string, changes domaincms.ContentChanges) (*domaincms.Content, error) {
	columns, publishedAt := commonColumns(changes.Changes)
	setString(columns, "content", changes.Content)
	setString(columns, "excerpt", changes.Excerpt)
	if changes.Type != nil {
		columns["type"] = string(*changes.Type)
	}

	record, err := r.table.update(ctx, id, columns, publishedAt, "")
	if err != nil {
		return nil, err
	}
	return toDomainContent(record), nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(ctx, id)
}

func toDomainContent(record *ContentRecord) *domaincms.Content {
	return &domaincms.Content{
		Meta:    toMeta(record.ItemColumns),
		Content: record.Content,
		Excerpt: record.Excerpt,
		Type:    domaincms.ContentType(record.Type),
	}
}
