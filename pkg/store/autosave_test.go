package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/overlay/pkg/domain"
)

type saverFunc func(ctx context.Context, rec domain.Record) error

func (f saverFunc) SaveCurrent(ctx context.Context, rec domain.Record) error { return f(ctx, rec) }

type recordingSaver struct {
	mu    sync.Mutex
	saved []domain.Record
	fail  bool
}

func (r *recordingSaver) SaveCurrent(_ context.Context, rec domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("save failed")
	}
	r.saved = append(r.saved, rec)
	return nil
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func TestSettingsStore_AutoSave(t *testing.T) {
	t.Run("saves only changes", func(t *testing.T) {
		s := New()
		saver := &recordingSaver{}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.AutoSave(ctx, saver, 10*time.Millisecond) }()

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 0, saver.count(), "nothing changed yet")

		s.Update(domain.Patch{Theme: strPtr("dark")})
		require.Eventually(t, func() bool { return saver.count() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 1, saver.count(), "no duplicate saves")

		cancel()
		require.NoError(t, <-done)
		assert.Equal(t, "dark", saver.saved[0].Settings.Theme)
	})

	t.Run("flushes on cancel", func(t *testing.T) {
		s := New()
		saver := &recordingSaver{}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.AutoSave(ctx, saver, time.Hour) }()

		s.Update(domain.Patch{WritingStyle: strPtr("funny")})
		cancel()
		require.NoError(t, <-done)
		require.Equal(t, 1, saver.count())
		assert.Equal(t, "funny", saver.saved[0].Settings.WritingStyle)
	})

	t.Run("reverted change not saved", func(t *testing.T) {
		s := New()
		saver := &recordingSaver{}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.AutoSave(ctx, saver, time.Hour) }()

		s.Update(domain.Patch{Theme: strPtr("dark")})
		_, ok := s.Undo()
		require.True(t, ok)
		cancel()
		require.NoError(t, <-done)
		assert.Equal(t, 0, saver.count())
	})

	t.Run("errors retried on next tick", func(t *testing.T) {
		s := New()
		saver := &recordingSaver{fail: true}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = s.AutoSave(ctx, saver, 10*time.Millisecond) }()

		s.Update(domain.Patch{Theme: strPtr("light")})
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 0, saver.count())

		saver.mu.Lock()
		saver.fail = false
		saver.mu.Unlock()
		require.Eventually(t, func() bool { return saver.count() == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("func saver", func(t *testing.T) {
		s := New()
		var got domain.Record
		ctx, cancel := context.WithCancel(context.Background())
		s.Update(domain.Patch{Theme: strPtr("minimal")})
		// change happened before start, so it is not pending
		cancel()
		err := s.AutoSave(ctx, saverFunc(func(_ context.Context, rec domain.Record) error {
			got = rec
			return nil
		}), time.Hour)
		require.NoError(t, err)
		assert.Equal(t, domain.Record{}, got)
	})
}
