package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/MKhiriev/go-ride-keeper/internal/config"
	"github.com/MKhiriev/go-ride-keeper/internal/crypto"
	"github.com/MKhiriev/go-ride-keeper/internal/logger"
	"github.com/MKhiriev/go-ride-keeper/internal/service"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type App struct {
	services *service.Services
	cipher   crypto.FieldCipher
	workers  config.Workers

	out    io.Writer
	logger *logger.Logger

	commands map[string]command
}

func NewApp(services *service.Services, cipher crypto.FieldCipher, cfg config.Workers, log *logger.Logger) (*App, error) {
	if services == nil || cipher == nil {
		return nil, fmt.Errorf("%w: services and cipher are required", ErrMissingArgument)
	}

	a := &App{
		services: services,
		cipher:   cipher,
		workers:  cfg,
		out:      os.Stdout,
		logger:   log,
	}
	a.commands = map[string]command{
		"keygen":   {"keygen", a.runKeygen},
		"encrypt":  {"encrypt [-copy] <text>", a.runEncrypt},
		"decrypt":  {"decrypt <payload>", a.runDecrypt},
		"card":     {"card [-holder NAME] [-save] <number>", a.runCard},
		"cards":    {"cards", a.runCards},
		"reveal":   {"reveal <card-id>", a.runReveal},
		"forget":   {"forget <card-id>", a.runForget},
		"simulate": {"simulate [-from ADDR] [-to ADDR] [-driver NAME] [-quote F] [-fare F] [-cancel]", a.runSimulate},
		"history":  {"history [-status S] [-since DUR] [-limit N]", a.runHistory},
		"trip":     {"trip <trip-id>", a.runTrip},
		"prune":    {"prune [-watch]", a.runPrune},
		"version":  {"version", a.runVersion},
	}
	return a, nil
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, a.usage())
		return fmt.Errorf("%w: command", ErrMissingArgument)
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		fmt.Fprint(a.out, a.usage())
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	a.logger.Debug().Str("func", "App.Run").Str("command", args[0]).Msg("running command")
	return cmd.run(ctx, args[1:])
}

func (a *App) usage() string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: ridekeeper [config flags] <command> [args]\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", a.commands[name].usage)
	}
	return b.String()
}
