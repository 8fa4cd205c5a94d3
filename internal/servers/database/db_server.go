package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"whiteboardLabeler/configs"
	"whiteboardLabeler/internal/enums"
	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/models"
)

// Open connects to the relational store selected by storage.driver and
// migrates the schema. The caller owns the returned handle.
func Open(config *configs.Config, log *zap.Logger) (*gorm.DB, error) {
	driver := config.Viper.GetString("storage.driver")
	switch driver {
	case enums.STORAGE_DRIVER_POSTGRES:
		return OpenPostgres(getPSQL(config), log)
	case enums.STORAGE_DRIVER_SQLITE:
		return OpenSQLite(config.Viper.GetString("database.sqlite_path"), log)
	default:
		return nil, fmt.Errorf("unsupported relational driver %q", driver)
	}
}

func OpenPostgres(psql *models.PSQL, log *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%v user=%v password=%v dbname=%v port=%v sslmode=%v TimeZone=%v",
		psql.Host, psql.User, psql.Password, psql.Name, psql.Port, psql.SSL, psql.Timezone,
	)
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to postgres: %v", errs.ErrStorageUnavailable, err)
	}
	if err := migrate(db, log); err != nil {
		return nil, err
	}
	log.Info("connected to postgres", zap.String("host", psql.Host), zap.String("database", psql.Name))
	return db, nil
}

// OpenSQLite opens (or creates) a sqlite file. Writes are serialized on a
// single connection.
func OpenSQLite(path string, log *zap.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating data directory: %v", errs.ErrStorageUnavailable, err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: opening sqlite: %v", errs.ErrStorageUnavailable, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrate(db, log); err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Info("opened sqlite store", zap.String("path", path))
	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
}

func getPSQL(config *configs.Config) *models.PSQL {
	return &models.PSQL{
		Host:     config.Viper.GetString("database.host"),
		Port:     config.Viper.GetInt("database.port"),
		User:     config.Viper.GetString("database.user"),
		Password: config.Viper.GetString("database.password"),
		Name:     config.Viper.GetString("database.name"),
		SSL:      config.Viper.GetString("database.ssl"),
		Timezone: config.Viper.GetString("database.timezone"),
	}
}

func migrate(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&models.Whiteboard{},
		&models.Chunk{},
		&models.Contractor{},
	)
	if err != nil {
		return fmt.Errorf("%w: migrating database: %v", errs.ErrStorageUnavailable, err)
	}
	log.Info("database migrated successfully")
	return nil
}
