package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ConnectorConfig struct {
	Host     string
	Port     string
	Username string
	DbName   string
	Password string
	SslMode  string
}

type ConnectorFunc func() (*gorm.DB, error)

// Shared returns a connector that connects once and hands the same database to every caller.
func Shared(connect ConnectorFunc) ConnectorFunc {
	var once sync.Once
	var db *gorm.DB
	var err error

	return func() (*gorm.DB, error) {
		once.Do(func() {
			db, err = connect()
		})
		return db, err
	}
}

// NewSQLiteConnector opens a private in-memory database. Every call to the returned
// connector yields a fresh, empty database.
func NewSQLiteConnector(ctx context.Context) ConnectorFunc {
	return func() (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
			Logger:          logger.Default.LogMode(logger.Silent),
			CreateBatchSize: 1000,
		})

		if err == nil {
			db.Exec("PRAGMA foreign_keys = ON")
			sqldb, _ := db.DB()
			sqldb.SetMaxOpenConns(1)
		}

		return db, err
	}
}

func NewPostgreSQLConnector(ctx context.Context, cfg ConnectorConfig) ConnectorFunc {
	dbURI := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s password=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.DbName, cfg.SslMode, cfg.Password)

	log := logging.GetFromContext(ctx)

	return func() (*gorm.DB, error) {
		sublogger := log.With().Str("host", cfg.Host).Str("database", cfg.DbName).Logger()

		const maxAttempts = 5

		var err error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			sublogger.Info().Msgf("connecting to database host (attempt %d)", attempt)

			var db *gorm.DB
			db, err = gorm.Open(postgres.Open(dbURI), &gorm.Config{
				Logger: logger.New(
					&logadapter{logger: sublogger},
					logger.Config{
						SlowThreshold:             time.Second,
						LogLevel:                  logger.Warn,
						IgnoreRecordNotFoundError: true,
						Colorful:                  false,
					},
				),
			})
			if err == nil {
				return db, nil
			}

			sublogger.Error().Err(err).Msg("failed to connect to database")
			time.Sleep(3 * time.Second)
		}

		return nil, fmt.Errorf("giving up on database after %d attempts: %w", maxAttempts, err)
	}
}

// logadapter provides a Printf interface to the gorm logger
// so that we can forward the log data to zerolog
type logadapter struct {
	logger zerolog.Logger
}

func (adapter *logadapter) Printf(format string, args ...interface{}) {
	adapter.logger.Info().Msgf(format, args...)
}
