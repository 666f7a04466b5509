// Package db contains the database connection setup
package db

import (
	"errors"
	"fmt"
	"healthwallet/api/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the database configured under database.type and runs
// the automigrations. SQLite is the default and needs foreign keys
// enabled explicitly for the cascade rules to work.
func New() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	// TranslateError maps driver specific unique/foreign key errors
	// onto gorm's sentinels, which the handlers match against
	cfg := &gorm.Config{TranslateError: true}

	switch viper.GetString("database.type") {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(viper.GetString("database.dsn")+"?_foreign_keys=on"), cfg)
	case "postgres":
		db, err = gorm.Open(postgres.Open(viper.GetString("database.dsn")), cfg)
	default:
		return nil, errors.New("invalid database type provided")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Report{}, model.Vital{}, model.SharedAccess{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
