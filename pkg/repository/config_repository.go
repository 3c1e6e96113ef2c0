package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/overlay/pkg/domain"
)

// ConfigKey is the settings key holding the last saved overlay record
const ConfigKey = "overlay_config"

// ConfigRepository persists serialized overlay records
type ConfigRepository struct {
	db       *sqlx.DB
	settings *SettingRepository
}

type savedConfigRow struct {
	ID           int64     `db:"id"`
	Theme        string    `db:"theme"`
	WritingStyle string    `db:"writing_style"`
	SavedAt      time.Time `db:"saved_at"`
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *sqlx.DB, settings *SettingRepository) *ConfigRepository {
	return &ConfigRepository{db: db, settings: settings}
}

// SaveRecord stores the record as the current saved config and appends it to the save log
func (r *ConfigRepository) SaveRecord(ctx context.Context, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("begin transaction: %w", err)}
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			ConfigKey, string(data)); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("store current config: %w", err)}
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO saved_configs (record, theme, writing_style, saved_at) VALUES (?, ?, ?, ?)",
			string(data), rec.Settings.Theme, rec.Settings.WritingStyle, rec.Timestamp.UTC()); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("append save log: %w", err)}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("commit save: %w", err)}
		}
		return nil
	})
}

// SaveCurrent stores the record as the current saved config without touching the save log
func (r *ConfigRepository) SaveCurrent(ctx context.Context, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := r.settings.SetSetting(ctx, ConfigKey, string(data)); err != nil {
		return fmt.Errorf("store current config: %w", err)
	}
	return nil
}

// LoadRecord returns raw JSON of the last saved record, nil if nothing was saved.
// The caller decodes it, so a corrupted value is reported by the parser rather than here.
func (r *ConfigRepository) LoadRecord(ctx context.Context) ([]byte, error) {
	value, err := r.settings.GetSetting(ctx, ConfigKey)
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	if value == "" {
		return nil, nil
	}
	return []byte(value), nil
}

// ListSaved returns the most recent saves, newest first
func (r *ConfigRepository) ListSaved(ctx context.Context, limit int) ([]domain.SavedConfig, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []savedConfigRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT id, theme, writing_style, saved_at FROM saved_configs ORDER BY saved_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list saved configs: %w", err)
	}

	res := make([]domain.SavedConfig, len(rows))
	for i, row := range rows {
		res[i] = domain.SavedConfig{ID: row.ID, Theme: row.Theme, WritingStyle: row.WritingStyle, SavedAt: row.SavedAt}
	}
	return res, nil
}

// GetSaved returns raw JSON of a saved record by id
func (r *ConfigRepository) GetSaved(ctx context.Context, id int64) ([]byte, error) {
	var record string
	if err := r.db.GetContext(ctx, &record, "SELECT record FROM saved_configs WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get saved config %d: %w", id, err)
	}
	return []byte(record), nil
}

// Clear removes the current saved record, the save log is kept
func (r *ConfigRepository) Clear(ctx context.Context) error {
	return r.settings.DeleteSetting(ctx, ConfigKey)
}
