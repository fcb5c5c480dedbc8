package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

// KVEntry is the single table behind GormStore. Value is raw bytes so that
// text which no longer parses still round-trips untouched.
type KVEntry struct {
	Key       string `gorm:"column:key;primaryKey;size:255"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entry" }

type GormStore struct {
	db  *gorm.DB
	log *logger.Logger
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func gormConfig() *gorm.Config {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	}
}

func NewPostgresStore(cfg PostgresConfig, logg *logger.Logger) (*GormStore, error) {
	return openPostgresDSN(cfg.DSN(), logg)
}

func openPostgresDSN(dsn string, logg *logger.Logger) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return NewGormStore(db, logg.With("store", "postgres"))
}

// NewSQLiteStore opens a file-backed store; ":memory:" gives a private
// in-memory database.
func NewSQLiteStore(path string, logg *logger.Logger) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	return NewGormStore(db, logg.With("store", "sqlite"))
}

// NewGormStore migrates the kv table on an already opened connection.
func NewGormStore(db *gorm.DB, logg *logger.Logger) (*GormStore, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db required")
	}
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entry: %w", err)
	}
	return &GormStore{db: db, log: logg.With("service", "GormStore")}, nil
}

func (s *GormStore) DB() *gorm.DB { return s.db }

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return row.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key string, val []byte) error {
	row := KVEntry{Key: key, Value: val, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
