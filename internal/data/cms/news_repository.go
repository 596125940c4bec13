package cms

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domaincms "smoweb/app/internal/domain/cms"
	"smoweb/app/internal/domain/publishing"
)

// NewsRepository persists news items using a Gorm database connection.
type NewsRepository struct {
	table table[NewsRecord]
}

var _ domaincms.NewsRepository = (*NewsRepository)(nil)

// NewNewsRepository constructs a Gorm-backed news repository.
func NewNewsRepository(db *gorm.DB, logger *logrus.Logger) (*NewsRepository, error) {
	t, err := newTable[NewsRecord](db, logger, domaincms.KindNews)
	if err != nil {
		return nil, err
	}
	t.preload = func(q *gorm.DB) *gorm.DB {
		return q.Preload("Author")
	}

	return &NewsRepository{table: t}, nil
}

func (r *NewsRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.table.slugExists(ctx, slug)
}

// Create stores a new news item and fills in its id and timestamps.
func (r *NewsRepository) Create(ctx context.Context, news *domaincms.News) error {
	if news == nil {
		return eris.New("news is nil")
	}

	record := &NewsRecord{
		ItemColumns: newItemColumns(news.Meta),
		Content:     news.Content,
		Excerpt:     news.Excerpt,
		CategoryID:  news.CategoryID,
		Priority:    string(news.Priority),
		Image:       news.Image,
		AuthorID:    news.AuthorID,
	}

	if err := r.table.create(ctx, record, record.Slug, "categoryId"); err != nil {
		return err
	}

	news.Meta = toMeta(record.ItemColumns)
	return nil
}

func (r *NewsRepository) Get(ctx context.Context, id string) (*domaincms.News, error) {
	record, err := r.table.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainNews(record), nil
}

func (r *NewsRepository) RecordView(ctx context.Context, lookup publishing.Lookup) (*domaincms.News, error) {
	record, err := r.table.recordView(ctx, lookup)
	if err != nil {
		return nil, err
	}
	return toDomainNews(record), nil
}

// List returns news ordered by priority rank, then newest publication, then newest creation.
func (r *NewsRepository) List(ctx context.Context, filter domaincms.NewsFilter) ([]domaincms.News, error) {
	query := r.table.query(ctx)

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", string(filter.Priority))
	}

	var records []NewsRecord
	err := query.
		Order(PriorityOrder()).
		Order("published_at IS NULL").
		Order("published_at DESC").
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		r.table.logError(nil, err, "listing news")
		return nil, eris.Wrap(err, "listing news")
	}

	items := make([]domaincms.News, 0, len(records))
	for i := range records {
		items = append(items, *toDomainNews(&records[i]))
	}
	return items, nil
}

func (r *NewsRepository) Update(ctx context.Context, id string, changes domaincms.NewsChanges) (*domaincms.News, error) {
	columns, publishedAt := commonColumns(changes.Changes)
	setString(columns, "content", changes.Content)
	setString(columns, "excerpt", changes.Excerpt)
	setString(columns, "category_id", changes.CategoryID)
	setString(columns, "image", changes.Image)
	if changes.Priority != nil {
		columns["priority"] = string(*changes.Priority)
	}

	record, err := r.table.update(ctx, id, columns, publishedAt, "categoryId")
	if err != nil {
		return nil, err
	}
	return toDomainNews(record), nil
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(ctx, id)
}

// PriorityOrder is an ORDER BY clause that sorts rows by priority rank, highest first.
func PriorityOrder() string {
	var b strings.Builder
	b.WriteString("CASE priority")
	for _, priority := range domaincms.Priorities {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", priority, priority.Rank())
	}
	b.WriteString(" ELSE 0 END DESC")
	return b.String()
}

func toDomainNews(record *NewsRecord) *domaincms.News {
	if record == nil {
		return nil
	}

	news := &domaincms.News{
		Meta:       toMeta(record.ItemColumns),
		Content:    record.Content,
		Excerpt:    record.Excerpt,
		CategoryID: record.CategoryID,
		Priority:   domaincms.Priority(record.Priority),
		Image:      record.Image,
		AuthorID:   record.AuthorID,
	}

	if record.Author != nil {
		news.Author = &domaincms.Author{
			FirstName: record.Author.FirstName,
			LastName:  record.Author.LastName,
			Email:     record.Author.Email,
		}
	}

	return news
}
