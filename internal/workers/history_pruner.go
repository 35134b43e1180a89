// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ride-keeper/internal/config"
	"github.com/MKhiriev/go-ride-keeper/internal/logger"
)

type historyPruner struct {
	pruner    Pruner
	retention time.Duration
	interval  time.Duration

	logger *logger.Logger
}

// NewHistoryPruner returns a worker that prunes the trip history once on
// start and then every cfg.PruneInterval. A zero retention keeps nothing
// finished.
func NewHistoryPruner(pruner Pruner, cfg config.Workers, logger *logger.Logger) Worker {
	interval := cfg.PruneInterval
	if interval <= 0 {
		interval = config.DefaultPruneInterval
	}

	return &historyPruner{
		pruner:    pruner,
		retention: cfg.HistoryRetention,
		interval:  interval,
		logger:    logger,
	}
}

func (p *historyPruner) Run(ctx context.Context) {
	p.prune(ctx)

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Str("func", "historyPruner.Run").Msg("history pruner stopped")
			return
		case <-t.C:
			p.prune(ctx)
		}
	}
}

func (p *historyPruner) prune(ctx context.Context) {
	deleted, err := p.pruner.PruneHistory(ctx, p.retention)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Err(err).Str("func", "historyPruner.prune").Msg("failed to prune trip history")
		}
		return
	}

	if deleted > 0 {
		p.logger.Info().
			Str("func", "historyPruner.prune").
			Int64("deleted", deleted).
			Dur("retention", p.retention).
			Msg("pruned finished trips")
	}
}
