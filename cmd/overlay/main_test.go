package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/overlay/pkg/config"
	"github.com/umputun/overlay/pkg/domain"
	"github.com/umputun/overlay/pkg/repository"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: cfgFile})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_PersistsAcrossRestarts(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "overlay.db")
	t.Setenv("OVERLAY_DB", dbFile)

	// first run, change theme and let shutdown flush autosave
	port := freePort(t)
	t.Setenv("OVERLAY_LISTEN", fmt.Sprintf("127.0.0.1:%d", port))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: "testdata/config.yml"}) }()
	waitForServer(t, port)

	req, err := http.NewRequest(http.MethodPatch, fmt.Sprintf("http://127.0.0.1:%d/api/v1/settings", port),
		strings.NewReader(`{"theme":"dark","fontSize":"150%"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server didn't stop")
	}

	// second run picks up saved settings
	port = freePort(t)
	t.Setenv("OVERLAY_LISTEN", fmt.Sprintf("127.0.0.1:%d", port))
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	go func() { done <- run(ctx, Opts{Config: "testdata/config.yml"}) }()
	waitForServer(t, port)

	resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/api/v1/settings", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	var state struct {
		Settings domain.Settings `json:"settings"`
		CanUndo  bool            `json:"canUndo"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, "dark", state.Settings.Theme)
	assert.Equal(t, domain.FontSize(150), state.Settings.FontSize)
	assert.False(t, state.CanUndo, "loaded settings are the initial snapshot")

	cancel()
	require.NoError(t, <-done)

	// autosave keeps the current record only, the explicit save log stays empty
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: "file:" + dbFile})
	require.NoError(t, err)
	defer repos.Close()
	saved, err := repos.Config.ListSaved(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := loadConfig(Opts{})
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 10, cfg.Store.HistorySize)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("OVERLAY_LISTEN", ":9000")
		t.Setenv("OVERLAY_DB", "test.db")
		cfg, err := loadConfig(Opts{Config: "testdata/config.yml", Listen: ":9999", DSN: "file::memory:"})
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.Server.Listen)
		assert.Equal(t, "file::memory:", cfg.Database.DSN)
		assert.Equal(t, 5, cfg.Store.HistorySize)
		assert.Equal(t, time.Second, cfg.Store.AutoSave)
	})
}

type loaderFunc func(ctx context.Context) ([]byte, error)

func (f loaderFunc) LoadRecord(ctx context.Context) ([]byte, error) { return f(ctx) }

func TestMakeStore(t *testing.T) {
	saved := []byte(`{"settings":{"theme":"colorful","writingStyle":"funny","fontSize":120},"timestamp":"2024-01-01T10:00:00Z"}`)
	tbl := []struct {
		name      string
		data      []byte
		err       error
		wantTheme string
		wantStyle string
	}{
		{name: "saved record", data: saved, wantTheme: "colorful", wantStyle: "funny"},
		{name: "nothing saved", data: nil, wantTheme: "default", wantStyle: "default"},
		{name: "broken record", data: []byte(`{"settings":`), wantTheme: "default", wantStyle: "default"},
		{name: "storage error", err: errors.New("db is gone"), wantTheme: "default", wantStyle: "default"},
	}

	for _, tc := range tbl {
		t.Run(tc.name, func(t *testing.T) {
			st := makeStore(context.Background(), config.StoreConfig{HistorySize: 10},
				loaderFunc(func(context.Context) ([]byte, error) { return tc.data, tc.err }))
			cur := st.Current()
			assert.Equal(t, tc.wantTheme, cur.Theme)
			assert.Equal(t, tc.wantStyle, cur.WritingStyle)
			assert.False(t, st.CanUndo())
		})
	}

	t.Run("load disabled", func(t *testing.T) {
		off := false
		called := false
		st := makeStore(context.Background(), config.StoreConfig{HistorySize: 3, LoadOnStart: &off},
			loaderFunc(func(context.Context) ([]byte, error) { called = true; return saved, nil }))
		assert.False(t, called)
		assert.Equal(t, domain.Defaults(), st.Current())
	})
}

func TestSetupLog(t *testing.T) {
	// smoke test, setup must not panic in either mode
	setupLog(false)
	setupLog(true)
	setupLog(false)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func waitForServer(t *testing.T, port int) {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)
}
