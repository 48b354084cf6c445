package blog

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate applies the blog schema using Gorm's AutoMigrate and logs progress.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "blog.migrate"}
	if logger != nil {
		logger.WithFields(logFields).Info("applying blog schema")
	}

	if err := db.WithContext(ctx).AutoMigrate(&Post{}); err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("blog schema migration failed")
		}
		return eris.Wrap(err, "auto migrating blog schema")
	}

	if logger != nil {
		logger.WithFields(logFields).Info("blog schema migration complete")
	}

	return nil
}
