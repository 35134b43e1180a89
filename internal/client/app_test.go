package client

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ride-keeper/internal/config"
	"github.com/MKhiriev/go-ride-keeper/internal/crypto"
	"github.com/MKhiriev/go-ride-keeper/internal/logger"
	"github.com/MKhiriev/go-ride-keeper/internal/service"
	"github.com/MKhiriev/go-ride-keeper/internal/store"
	"github.com/MKhiriev/go-ride-keeper/models"
)

// newTestApp wires the real stack over a SQLite file in a temp dir.
func newTestApp(t *testing.T, workers config.Workers) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	storages, err := store.NewLocalStorages(ctx, config.DB{DSN: filepath.Join(t.TempDir(), "rides.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	cipher, err := crypto.NewFieldCipher(bytes.Repeat([]byte{0x11}, crypto.KeySize))
	require.NoError(t, err)

	services := service.NewServices(storages, cipher, config.App{Version: "1.2.3"},
		models.NewAppBuildInfo("1.2.3", "2026-03-01", "abc123"), logger.Nop())

	app, err := NewApp(services, cipher, workers, logger.Nop())
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app.out = out
	return app, out
}

func TestNewApp_RequiresServices(t *testing.T) {
	_, err := NewApp(nil, nil, config.Workers{}, logger.Nop())
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestApp_Run_Usage(t *testing.T) {
	app, out := newTestApp(t, config.Workers{})

	err := app.Run(context.Background(), nil)
	require.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, out.String(), "usage: ridekeeper")
	assert.Contains(t, out.String(), "simulate [-from ADDR]")

	out.Reset()
	err = app.Run(context.Background(), []string{"fly"})
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.True(t, IsUsageError(err))
	assert.Contains(t, out.String(), "commands:")
}

func TestApp_Keygen(t *testing.T) {
	app, out := newTestApp(t, config.Workers{})

	require.NoError(t, app.Run(context.Background(), []string{"keygen"}))
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}\n$`), out.String())
}

func TestApp_EncryptDecrypt(t *testing.T) {
	app, out := newTestApp(t, config.Workers{})
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"encrypt", "+49", "151", "23456789"}))
	payload := strings.TrimSpace(out.String())
	assert.True(t, crypto.IsEncrypted(payload), payload)

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"decrypt", payload}))
	assert.Equal(t, "+49 151 23456789\n", out.String())

	err := app.Run(ctx, []string{"decrypt", "00:00"})
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)

	err = app.Run(ctx, []string{"encrypt"})
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestApp_CardWithoutSave(t *testing.T) {
	app, out := newTestApp(t, config.Workers{})

	require.NoError(t, app.Run(context.Background(), []string{"card", "4111 1111 1111 1111"}))
	assert.Contains(t, out.String(), "**** **** **** 1111")
	assert.NotContains(t, out.String(), "4111 1111")
}

func TestApp_CardLifecycle(t *testing.T) {
	app, out := newTestApp(t, config.Workers{})
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"card", "-holder", "Jane Roe", "-save", "4111-1111-1111-1111"}))
	assert.Contains(t, out.String(), "saved **** **** **** 1111")

	cards, err := app.services.CardService.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	id := cards[0].ID

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"cards"}))
	assert.Contains(t, out.String(), "Jane Roe")
	assert.Contains(t, out.String(), "1 card(s)")
	assert.NotContains(t, out.String(), "4111111111111111")

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"reveal", id}))
	assert.Equal(t, "4111111111111111\n", out.String())

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"forget", id}))
	assert.Contains(t, out.String(), "deleted")

	err = app.Run(ctx, []string{"reveal", id})
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	err = app.Run(ctx, []string{"forget"})
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestApp_SimulateAndHistory(t *testing.T) {
	app, out := newTestApp(t, config.Workers{})
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"simulate", "-driver", "Ana", "-fare", "22.50"}))
	for _, phase := range []string{"searching", "driver_assigned", "in_progress", "completed"} {
		assert.Contains(t, out.String(), "Phase: "+phase)
	}
	assert.Contains(t, out.String(), "Final fare: 22.50")

	require.NoError(t, app.Run(ctx, []string{"simulate", "-cancel", "-from", "Tegel", "-to", "Mitte"}))

	records, err := app.services.TripService.History(ctx, models.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"history", "-status", "cancelled"}))
	assert.Contains(t, out.String(), "Tegel")
	assert.NotContains(t, out.String(), "Alexanderplatz")
	assert.Contains(t, out.String(), "1 trip(s)")

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"history", "-since", "1h", "-limit", "5"}))
	assert.Contains(t, out.String(), "2 trip(s)")

	var completed models.TripRecord
	for _, r := range records {
		if r.Status == models.RecordCompleted {
			completed = r
		}
	}
	require.NotEmpty(t, completed.ID)

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"trip", completed.ID}))
	assert.Contains(t, out.String(), "Alexanderplatz")
	assert.Contains(t, out.String(), "22.50")

	err = app.Run(ctx, []string{"history", "-status", "lost"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = app.Run(ctx, []string{"trip", "no-such-trip"})
	assert.ErrorIs(t, err, store.ErrTripNotFound)
}

func TestApp_Prune(t *testing.T) {
	app, out := newTestApp(t, config.Workers{HistoryRetention: time.Millisecond, PruneInterval: time.Hour})
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"simulate"}))
	time.Sleep(20 * time.Millisecond)

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"prune"}))
	assert.Contains(t, out.String(), "1 finished trip(s)")

	records, err := app.services.TripService.History(ctx, models.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestApp_PruneWatchStopsOnCancel(t *testing.T) {
	app, _ := newTestApp(t, config.Workers{HistoryRetention: time.Hour, PruneInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx, []string{"prune", "-watch"}) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("prune -watch did not stop")
	}
}

func TestApp_Version(t *testing.T) {
	app, out := newTestApp(t, config.Workers{})

	require.NoError(t, app.Run(context.Background(), []string{"version"}))
	assert.Contains(t, out.String(), "Version: 1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestKeygen(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Keygen(&out))
	assert.Len(t, strings.TrimSpace(out.String()), 2*crypto.KeySize)
}
