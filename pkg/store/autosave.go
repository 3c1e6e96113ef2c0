package store

import (
	"context"
	"log"
	"time"

	"github.com/umputun/overlay/pkg/domain"
)

// Saver persists the current settings record
type Saver interface {
	SaveCurrent(ctx context.Context, rec domain.Record) error
}

// AutoSave persists current settings every interval when they changed since the last save.
// Pending changes are flushed on context cancellation. Save errors are logged and retried on the next tick.
func (s *SettingsStore) AutoSave(ctx context.Context, saver Saver, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := s.Current()
	save := func(ctx context.Context) {
		rec := s.Serialize()
		if rec.Settings.Equal(last) {
			return
		}
		if err := saver.SaveCurrent(ctx, rec); err != nil {
			log.Printf("[WARN] autosave failed: %v", err)
			return
		}
		last = rec.Settings
		log.Printf("[DEBUG] settings autosaved, theme=%s, style=%s", rec.Settings.Theme, rec.Settings.WritingStyle)
	}

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			save(flushCtx)
			cancel()
			return nil
		case <-ticker.C:
			save(ctx)
		}
	}
}
