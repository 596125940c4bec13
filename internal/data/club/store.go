// Package club stores the club records behind the club domain services.
package club

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"smoweb/app/internal/domain/directory"
	"smoweb/app/internal/domain/publishing"
)

// table implements the storage operations shared by every club record type.
type table[R any] struct {
	db     *gorm.DB
	logger *logrus.Logger
	noun   string
	// foreignKeys names the input fields blamed when a reference does not resolve.
	foreignKeys []string
	preload     func(*gorm.DB) *gorm.DB
}

func newTable[R any](db *gorm.DB, logger *logrus.Logger, noun string, foreignKeys ...string) (table[R], error) {
	if db == nil {
		return table[R]{}, eris.New("gorm DB is required")
	}
	return table[R]{db: db, logger: logger, noun: noun, foreignKeys: foreignKeys}, nil
}

func (t table[R]) scoped(db *gorm.DB) *gorm.DB {
	if t.preload != nil {
		return t.preload(db)
	}
	return db
}

func (t table[R]) query(ctx context.Context) *gorm.DB {
	return t.scoped(t.db.WithContext(ctx))
}

// create inserts every column, so false booleans are stored over their defaults.
func (t table[R]) create(ctx context.Context, record *R) error {
	if err := t.db.WithContext(ctx).Select("*").Create(record).Error; err != nil {
		return t.translateWriteError(nil, err, "creating "+t.noun)
	}
	return nil
}

func (t table[R]) get(ctx context.Context, id string) (*R, error) {
	var record R
	if err := t.query(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "%s id %s", t.noun, id)
		}
		t.logError(logrus.Fields{"id": id}, err, "fetching "+t.noun)
		return nil, eris.Wrapf(err, "fetching %s: %s", t.noun, id)
	}
	return &record, nil
}

func (t table[R]) list(query *gorm.DB) ([]R, error) {
	var records []R
	if err := query.Find(&records).Error; err != nil {
		t.logError(nil, err, "listing "+t.noun)
		return nil, eris.Wrapf(err, "listing %s", t.noun)
	}
	return records, nil
}

// save overwrites every column except id, created_at and the counters in keep, then reads the row back.
func (t table[R]) save(ctx context.Context, id string, record *R, keep ...string) (*R, error) {
	omit := append([]string{"id", "created_at"}, keep...)

	var stored R
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(new(R)).Where("id = ?", id).Select("*").Omit(omit...).Updates(record)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return publishing.ErrNotFound
		}
		return t.scoped(tx).Where("id = ?", id).First(&stored).Error
	})
	if err != nil {
		if eris.Is(err, publishing.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(publishing.ErrNotFound, "%s id %s", t.noun, id)
		}
		return nil, t.translateWriteError(logrus.Fields{"id": id}, err, "updating "+t.noun)
	}
	return &stored, nil
}

func (t table[R]) delete(ctx context.Context, id string) error {
	result := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(R))
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return publishing.NewValidationError("id", t.noun+" is still referenced")
		}
		t.logError(logrus.Fields{"id": id}, result.Error, "deleting "+t.noun)
		return eris.Wrapf(result.Error, "deleting %s: %s", t.noun, id)
	}
	if result.RowsAffected == 0 {
		return eris.Wrapf(publishing.ErrNotFound, "%s id %s", t.noun, id)
	}
	return nil
}

func (t table[R]) translateWriteError(fields logrus.Fields, err error, message string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique"):
		return eris.Wrap(directory.ErrDuplicate, message)
	case isForeignKeyViolation(err):
		return t.danglingReference()
	default:
		t.logError(fields, err, message)
		return eris.Wrap(err, message)
	}
}

func (t table[R]) danglingReference() *publishing.ValidationError {
	fields := make(validation.Errors, len(t.foreignKeys))
	for _, field := range t.foreignKeys {
		fields[field] = errors.New("must reference an existing record")
	}
	if len(fields) == 0 {
		fields["input"] = errors.New("references a record that does not exist")
	}
	return &publishing.ValidationError{Fields: fields}
}

func (t table[R]) logError(fields logrus.Fields, err error, message string) {
	if t.logger == nil || err == nil {
		return
	}

	entry := t.logger.WithField("error", err.Error()).WithField("table", t.noun)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

// containsFold matches rows whose column contains value, ignoring case.
func containsFold(query *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return query
	}
	return query.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(value)+"%")
}
