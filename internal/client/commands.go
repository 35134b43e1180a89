package client

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-ride-keeper/internal/crypto"
	"github.com/MKhiriev/go-ride-keeper/internal/tui"
	"github.com/MKhiriev/go-ride-keeper/internal/utils"
	"github.com/MKhiriev/go-ride-keeper/internal/workers"
	"github.com/MKhiriev/go-ride-keeper/models"
)

// Keygen prints a fresh hex-encoded field key. It needs no configuration,
// so main calls it before loading any.
func Keygen(out io.Writer) error {
	key, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hex.EncodeToString(key))
	return err
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) runKeygen(ctx context.Context, args []string) error {
	return Keygen(a.out)
}

func (a *App) runEncrypt(ctx context.Context, args []string) error {
	fs := a.newFlagSet("encrypt")
	copyResult := fs.Bool("copy", false, "copy the encrypted field to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := joinedArg(fs, "text")
	if err != nil {
		return err
	}

	encrypted, err := a.cipher.Encrypt(text)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, encrypted)

	if *copyResult {
		if err = tui.CopyToClipboard(encrypted); err != nil {
			return err
		}
		fmt.Fprint(a.out, tui.RenderStatus("copied to clipboard"))
	}
	return nil
}

func (a *App) runDecrypt(ctx context.Context, args []string) error {
	payload, err := singleArg(args, "payload")
	if err != nil {
		return err
	}

	plain, err := a.cipher.Decrypt(payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, plain)
	return nil
}

func (a *App) runCard(ctx context.Context, args []string) error {
	fs := a.newFlagSet("card")
	holder := fs.String("holder", "", "card holder name")
	save := fs.Bool("save", false, "store the encrypted card locally")
	if err := fs.Parse(args); err != nil {
		return err
	}
	number, err := joinedArg(fs, "number")
	if err != nil {
		return err
	}

	if !*save {
		field, err := a.cipher.EncryptCard(number)
		if err != nil {
			return err
		}
		fmt.Fprint(a.out, tui.RenderCardField(field))
		return nil
	}

	card, err := a.services.CardService.SaveCard(ctx, *holder, number)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, tui.RenderStatus("saved %s as %s", card.Masked, card.ID))
	return nil
}

func (a *App) runCards(ctx context.Context, args []string) error {
	cards, err := a.services.CardService.ListCards(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, tui.RenderCards(cards))
	return nil
}

func (a *App) runReveal(ctx context.Context, args []string) error {
	id, err := singleArg(args, "card-id")
	if err != nil {
		return err
	}

	number, err := a.services.CardService.RevealCard(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, number)
	return nil
}

func (a *App) runForget(ctx context.Context, args []string) error {
	id, err := singleArg(args, "card-id")
	if err != nil {
		return err
	}

	if err = a.services.CardService.DeleteCard(ctx, id); err != nil {
		return err
	}
	fmt.Fprint(a.out, tui.RenderStatus("card %s deleted", id))
	return nil
}

// runSimulate drives one trip through every phase, printing the state after
// each step. With -cancel the running trip is cancelled instead of ended.
func (a *App) runSimulate(ctx context.Context, args []string) error {
	fs := a.newFlagSet("simulate")
	from := fs.String("from", "Alexanderplatz 1, Berlin", "pickup address")
	to := fs.String("to", "Pariser Platz, Berlin", "drop-off address")
	driverName := fs.String("driver", "Ana", "driver name")
	quote := fs.Float64("quote", 18.40, "estimated fare")
	fare := fs.Float64("fare", 19.75, "final fare")
	cancel := fs.Bool("cancel", false, "cancel the trip instead of finishing it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	trips := a.services.TripService
	driver := models.Driver{
		ID:           utils.NewUUIDGenerator().Generate(),
		Name:         *driverName,
		VehiclePlate: "B-RK 42",
	}

	steps := []func() error{
		func() error {
			return trips.StartSearch(ctx, models.Location{Address: *from}, models.Location{Address: *to})
		},
		func() error { return trips.Quote(ctx, *quote) },
		func() error { return trips.AssignDriver(ctx, driver) },
		func() error { _, err := trips.StartTrip(ctx); return err },
		func() error {
			if *cancel {
				_, _, err := trips.Cancel(ctx)
				return err
			}
			_, err := trips.EndTrip(ctx, *fare)
			return err
		},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(); err != nil {
			return err
		}
		fmt.Fprint(a.out, tui.RenderTripState(trips.State()))
	}
	return nil
}

func (a *App) runHistory(ctx context.Context, args []string) error {
	fs := a.newFlagSet("history")
	status := fs.String("status", "", "only trips with this status (in_progress, completed, cancelled)")
	since := fs.Duration("since", 0, "only trips started within this long")
	limit := fs.Uint64("limit", 20, "maximum number of trips, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := models.HistoryFilter{
		Status: models.RecordStatus(*status),
		Limit:  *limit,
	}
	switch filter.Status {
	case "", models.RecordInProgress, models.RecordCompleted, models.RecordCancelled:
	default:
		return fmt.Errorf("%w: status %q", ErrInvalidArgument, *status)
	}
	if *since > 0 {
		filter.Since = time.Now().Add(-*since)
	}

	records, err := a.services.TripService.History(ctx, filter)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, tui.RenderHistory(records))
	return nil
}

func (a *App) runTrip(ctx context.Context, args []string) error {
	id, err := singleArg(args, "trip-id")
	if err != nil {
		return err
	}

	record, err := a.services.TripService.GetTrip(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, tui.RenderHistory([]models.TripRecord{record}))
	return nil
}

// runPrune does a single retention pass, or with -watch keeps the pruner
// running until ctx is cancelled.
func (a *App) runPrune(ctx context.Context, args []string) error {
	fs := a.newFlagSet("prune")
	watch := fs.Bool("watch", false, "keep pruning every prune interval until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *watch {
		workers.NewWorkers(
			workers.NewHistoryPruner(a.services.TripService, a.workers, a.logger),
		).Run(ctx)
		return nil
	}

	deleted, err := a.services.TripService.PruneHistory(ctx, a.workers.HistoryRetention)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, tui.RenderStatus("%d finished trip(s) older than %s removed", deleted, a.workers.HistoryRetention))
	return nil
}

func (a *App) runVersion(ctx context.Context, args []string) error {
	info := a.services.AppInfoService
	fmt.Fprint(a.out, tui.RenderBuildInfo(info.GetAppVersion(ctx), info.GetBuildInfo(ctx)))
	return nil
}

func singleArg(args []string, name string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return args[0], nil
}

func joinedArg(fs *flag.FlagSet, name string) (string, error) {
	v := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return v, nil
}

// IsUsageError reports whether err came from bad command-line input rather
// than from the work itself.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, flag.ErrHelp)
}
