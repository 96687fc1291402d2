package database

import (
	"fmt"
	"os"
	"path/filepath"

	"techfest-backend/config"
	"techfest-backend/internal/model"
	"techfest-backend/tools"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

var autoMigrateModels = []any{
	&model.User{},
}

func Init() {
	db, err := Open(config.Get())
	tools.PanicOnErr(err)
	DB = db
}

// Open connects to the configured driver and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	}
	switch cfg.Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	default:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == config.DriverSQLite {
		// sqlite serializes writers anyway; one connection keeps :memory: databases shared
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(autoMigrateModels...); err != nil {
		return nil, err
	}
	if cfg.Database.Driver == config.DriverMySQL {
		if err := binaryCollations(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// binaryColumns compare byte for byte on MySQL as they do on SQLite; the default
// utf8mb4 collation ignores case.
var binaryColumns = []struct {
	table, column, def string
}{
	{"user", "roll_no", "varchar(50)"},
}

func binaryCollations(db *gorm.DB) error {
	for _, c := range binaryColumns {
		err := db.Exec(fmt.Sprintf(
			"ALTER TABLE `%s` MODIFY `%s` %s CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NULL",
			c.table, c.column, c.def,
		)).Error
		if err != nil {
			return fmt.Errorf("set binary collation on %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}

func dialectorFor(c config.Database) (gorm.Dialector, error) {
	switch c.Driver {
	case config.DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.Username,
			c.Password,
			c.Host,
			c.Port,
			c.DBName,
		)
		return mysql.Open(dsn), nil
	case config.DriverSQLite, "":
		if c.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(c.SQLitePath), 0o755); err != nil {
				return nil, err
			}
		}
		return sqlite.Open(c.SQLitePath + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", c.Driver)
	}
}
