package database

import (
	"log/slog"

	"github.com/mmatt-net/site/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every table the site owns, in copy order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.Post{},
		&models.Comment{},
	}
}

// Migrate migrates the database schema
func Migrate(db *gorm.DB) error {
	slog.Info("migrating database schema")
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}
	return nil
}

const copyBatchSize = 200

// CopyData copies every row from source into target. Rows whose primary
// key already exists in target are left untouched, so the copy can be rerun.
func CopyData(source, target *gorm.DB) error {
	slog.Info("starting data copy from source to target")

	if err := copyTable[models.User](source, target, "users"); err != nil {
		return err
	}
	if err := copyTable[models.Project](source, target, "projects"); err != nil {
		return err
	}
	if err := copyTable[models.Post](source, target, "posts"); err != nil {
		return err
	}
	if err := copyTable[models.Comment](source, target, "comments"); err != nil {
		return err
	}

	slog.Info("data copy completed")
	return nil
}

func copyTable[T any](source, target *gorm.DB, name string) error {
	var rows []T
	if err := source.Find(&rows).Error; err != nil {
		return errors.Wrapf(err, "failed to fetch %s", name)
	}
	slog.Info("copying rows", "table", name, "count", len(rows))
	if len(rows) == 0 {
		return nil
	}
	err := target.Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		CreateInBatches(&rows, copyBatchSize).Error
	if err != nil {
		return errors.Wrapf(err, "failed to copy %s", name)
	}
	return nil
}
