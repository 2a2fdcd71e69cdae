package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/ports"
)

// DefaultHistoryLimit caps listings that do not ask for a limit
const DefaultHistoryLimit = 50

// SQLiteHistoryRepository implements ports.HistoryRepository using GORM
type SQLiteHistoryRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.HistoryRepository = (*SQLiteHistoryRepository)(nil)

// NewSQLiteHistoryRepository opens (creating if needed) the journal database
func NewSQLiteHistoryRepository(dbPath string) (*SQLiteHistoryRepository, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Several console processes may share one journal
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&ExchangeModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate exchanges schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(0)

	logging.Logger.Debug("History database opened", "path", dbPath)
	return &SQLiteHistoryRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteHistoryRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Append implements HistoryWriter.Append
func (r *SQLiteHistoryRepository) Append(ctx context.Context, record domain.ExchangeRecord) error {
	model := domainToExchangeModel(record)
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return fmt.Errorf("failed to append exchange %s: %w", record.ID, err)
	}
	return nil
}

// List implements HistoryReader.List, newest first
func (r *SQLiteHistoryRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.ExchangeRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var models []ExchangeModel
	err := withRetry(func() error {
		query := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit)
		if filter.Verb != "" {
			query = query.Where("verb = ?", string(filter.Verb))
		}
		return query.Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges: %w", err)
	}

	records := make([]domain.ExchangeRecord, 0, len(models))
	for _, m := range models {
		records = append(records, exchangeModelToDomain(m))
	}
	return records, nil
}

// Clear implements HistoryWriter.Clear
func (r *SQLiteHistoryRepository) Clear(ctx context.Context) (int64, error) {
	var removed int64
	err := withRetry(func() error {
		result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ExchangeModel{})
		removed = result.RowsAffected
		return result.Error
	}, 3)
	if err != nil {
		return 0, fmt.Errorf("failed to clear exchanges: %w", err)
	}
	return removed, nil
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
