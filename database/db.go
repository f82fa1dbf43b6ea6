// Package database owns the gorm connection to the relational store and
// the schema migration of the catalog tables.
package database

import (
	"errors"
	"log"

	"github.com/atelier-moveis/atelier-backend/config"
	"github.com/atelier-moveis/atelier-backend/database/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels(d *gorm.DB) error {
	models := []any{
		&model.Profile{},
		&model.Product{},
		&model.ProductImage{},
		&model.Photo{},
		&model.Stats{},
	}
	for _, m := range models {
		if err := d.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initStats seeds the singleton counters row. Increments target id=1 and
// never create it, so it has to exist before the first request.
func initStats(d *gorm.DB) error {
	var count int64
	if err := d.Model(&model.Stats{}).Where("id = ?", 1).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return d.Create(&model.Stats{Id: 1}).Error
	}
	return nil
}

// InitDB opens the relational store described by cfg and migrates the
// schema. Postgres is the production backend; SQLite serves development.
func InitDB(cfg *config.DatabaseConfig) error {
	if err := cfg.ValidateConfig(); err != nil {
		return err
	}
	if err := cfg.EnsureDirectoryExists(); err != nil {
		return err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	var err error
	if cfg.IsPostgreSQL() {
		db, err = gorm.Open(postgres.Open(cfg.GetDSN()), c)
	} else {
		dsn := cfg.GetDSN() + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
		db, err = gorm.Open(sqlite.Open(dsn), c)
	}
	if err != nil {
		return err
	}

	if cfg.IsSQLite() {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			return err
		}
	}

	return Migrate(db)
}

// Migrate runs schema migration and seeding against d.
func Migrate(d *gorm.DB) error {
	if err := initModels(d); err != nil {
		return err
	}
	return initStats(d)
}

// SetDB replaces the process-wide connection. Tests use it to point the
// services at an in-memory store.
func SetDB(d *gorm.DB) {
	db = d
}

func CloseDB() error {
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
