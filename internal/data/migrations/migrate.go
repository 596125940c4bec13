package migrations

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	clubdata "smoweb/app/internal/data/club"
	cmsdata "smoweb/app/internal/data/cms"
	directorydata "smoweb/app/internal/data/directory"
)

// Models returns every persisted model. Referenced tables come first.
func Models() []any {
	models := directorydata.Records()
	models = append(models, cmsdata.Records()...)
	return append(models, clubdata.Records()...)
}

// Migrate applies the schema using Gorm's AutoMigrate and logs progress.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "schema.migrate"}
	if logger != nil {
		logger.WithFields(logFields).Info("applying schema")
	}

	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("schema migration failed")
		}
		return eris.Wrap(err, "auto migrating schema")
	}

	if logger != nil {
		logger.WithFields(logFields).WithField("tables", len(Models())).Info("schema migration complete")
	}

	return nil
}
