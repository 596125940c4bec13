package cms

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domaincms "smoweb/app/internal/domain/cms"
	"smoweb/app/internal/domain/publishing"
)

// table implements the storage operations shared by every publishable record type.
type table[R any] struct {
	db      *gorm.DB
	logger  *logrus.Logger
	kind    domaincms.Kind
	preload func(*gorm.DB) *gorm.DB
}

func newTable[R any](db *gorm.DB, logger *logrus.Logger, kind domaincms.Kind) (table[R], error) {
	if db == nil {
		return table[R]{}, eris.New("gorm DB is required")
	}
	return table[R]{db: db, logger: logger, kind: kind}, nil
}

func (t table[R]) query(ctx context.Context) *gorm.DB {
	return t.scoped(t.db.WithContext(ctx))
}

func (t table[R]) scoped(db *gorm.DB) *gorm.DB {
	if t.preload != nil {
		return t.preload(db)
	}
	return db
}

func (t table[R]) slugExists(ctx context.Context, slug string) (bool, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return false, eris.New("slug is required")
	}

	var count int64
	if err := t.db.WithContext(ctx).Model(new(R)).Where("slug = ?", trimmed).Count(&count).Error; err != nil {
		t.logError(logrus.Fields{"slug": trimmed}, err, "checking slug")
		return false, eris.Wrapf(err, "checking %s slug: %s", t.kind, trimmed)
	}

	return count > 0, nil
}

func (t table[R]) create(ctx context.Context, record *R, slug, foreignKeyField string) error {
	if err := t.db.WithContext(ctx).Create(record).Error; err != nil {
		return t.translateWriteError(logrus.Fields{"slug": slug}, err, foreignKeyField, "creating "+string(t.kind))
	}
	return nil
}

func (t table[R]) get(ctx context.Context, id string) (*R, error) {
	var record R
	if err := t.query(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "%s id %s", t.kind, id)
		}
		t.logError(logrus.Fields{"id": id}, err, "fetching record")
		return nil, eris.Wrapf(err, "fetching %s: %s", t.kind, id)
	}
	return &record, nil
}

// recordView increments view_count in place and reads the row back in the same
// transaction, so concurrent views are never lost.
func (t table[R]) recordView(ctx context.Context, lookup publishing.Lookup) (*R, error) {
	column, value := lookupColumn(lookup)

	var record R
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(new(R)).Where(column+" = ?", value).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return publishing.ErrNotFound
		}

		return t.scoped(tx).Where(column+" = ?", value).First(&record).Error
	})
	if err != nil {
		if eris.Is(err, publishing.ErrNotFound) || eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "%s %s", t.kind, lookup)
		}
		t.logError(logrus.Fields{"lookup": lookup.String()}, err, "recording view")
		return nil, eris.Wrapf(err, "recording %s view: %s", t.kind, lookup)
	}

	return &record, nil
}

// update applies columns to the row with id and returns the stored result. A
// non-nil publishedAt only fills an empty published_at.
func (t table[R]) update(ctx context.Context, id string, columns map[string]any, publishedAt *time.Time, foreignKeyField string) (*R, error) {
	if publishedAt != nil {
		columns["published_at"] = gorm.Expr("COALESCE(published_at, ?)", publishedAt.UTC())
	}
	columns["updated_at"] = time.Now().UTC()

	var record R
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(new(R)).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return publishing.ErrNotFound
		}

		return t.scoped(tx).Where("id = ?", id).First(&record).Error
	})
	if err != nil {
		if eris.Is(err, publishing.ErrNotFound) || eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "%s id %s", t.kind, id)
		}
		return nil, t.translateWriteError(logrus.Fields{"id": id}, err, foreignKeyField, "updating "+string(t.kind))
	}

	return &record, nil
}

func (t table[R]) delete(ctx context.Context, id string) error {
	result := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(R))
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return publishing.NewValidationError("id", string(t.kind)+" is still referenced")
		}
		t.logError(logrus.Fields{"id": id}, result.Error, "deleting record")
		return eris.Wrapf(result.Error, "deleting %s: %s", t.kind, id)
	}
	if result.RowsAffected == 0 {
		return eris.Wrapf(publishing.ErrNotFound, "%s id %s", t.kind, id)
	}
	return nil
}

func (t table[R]) translateWriteError(fields logrus.Fields, err error, foreignKeyField, message string) error {
	switch {
	case isDuplicateKey(err):
		dupErr := eris.Wrapf(publishing.ErrSlugConflict, "%s slug", t.kind)
		t.logError(fields, err, message+" with duplicate slug")
		return dupErr
	case foreignKeyField != "" && isForeignKeyViolation(err):
		return publishing.NewValidationError(foreignKeyField, "references a record that does not exist")
	default:
		t.logError(fields, err, message)
		return eris.Wrap(err, message)
	}
}

func (t table[R]) logError(fields logrus.Fields, err error, message string) {
	if t.logger == nil || err == nil {
		return
	}

	entry := t.logger.WithField("error", err.Error()).WithField("table_kind", string(t.kind))
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique")
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

func lookupColumn(lookup publishing.Lookup) (string, string) {
	if lookup.ID != "" {
		return "id", lookup.ID
	}
	return "slug", lookup.Slug
}

func newItemColumns(meta publishing.Meta) ItemColumns {
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}

	return ItemColumns{
		ID:          uuid.NewString(),
		Title:       meta.Title,
		Slug:        meta.Slug,
		Status:      string(meta.Status),
		PublishedAt: meta.PublishedAt,
		Tags:        datatypes.JSONSlice[string](tags),
	}
}

func toMeta(columns ItemColumns) publishing.Meta {
	tags := []string(columns.Tags)
	if tags == nil {
		tags = []string{}
	}

	var publishedAt *time.Time
	if columns.PublishedAt != nil {
		stamp := columns.PublishedAt.UTC()
		publishedAt = &stamp
	}

	return publishing.Meta{
		ID:          columns.ID,
		Title:       columns.Title,
		Slug:        columns.Slug,
		Status:      publishing.Status(columns.Status),
		PublishedAt: publishedAt,
		ViewCount:   columns.ViewCount,
		Tags:        tags,
		CreatedAt:   columns.CreatedAt.UTC(),
		UpdatedAt:   columns.UpdatedAt.UTC(),
	}
}

// commonColumns maps the shared changes to column assignments. The publication
// stamp is returned separately because it is written conditionally.
func commonColumns(changes domaincms.Changes) (map[string]any, *time.Time) {
	columns := map[string]any{}

	if changes.Title != nil {
		columns["title"] = *changes.Title
	}
	if changes.Slug != nil {
		columns["slug"] = *changes.Slug
	}
	if changes.Status != nil {
		columns["status"] = string(*changes.Status)
	}
	if changes.Tags != nil {
		columns["tags"] = datatypes.JSONSlice[string](*changes.Tags)
	}

	return columns, changes.PublishedAt
}

func setString(columns map[string]any, column string, value *string) {
	if value != nil {
		columns[column] = *value
	}
}
