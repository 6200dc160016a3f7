// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vinted/internal/logger"
)

const (
	defaultProbeInterval = 15 * time.Second
	maxProbeTimeout      = 5 * time.Second
)

// healthProbe pings the database on a fixed interval and reports whether
// it answered. Status changes are logged once.
type healthProbe struct {
	db        Pinger
	reporters []HealthReporter
	interval  time.Duration
	timeout   time.Duration
	logger    *logger.Logger

	// healthy is the last reported state; nil before the first probe.
	healthy *bool
}

func newHealthProbe(db Pinger, interval time.Duration, logger *logger.Logger, reporters ...HealthReporter) *healthProbe {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	return &healthProbe{
		db:        db,
		reporters: reporters,
		interval:  interval,
		timeout:   min(interval, maxProbeTimeout),
		logger:    logger,
	}
}

// Run probes once synchronously, then keeps probing in the background until
// ctx is cancelled.
func (p *healthProbe) Run(ctx context.Context) {
	p.probe(ctx)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.probe(ctx)
			}
		}
	}()
}

func (p *healthProbe) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.db.PingContext(pingCtx)
	healthy := err == nil

	if p.healthy == nil || *p.healthy != healthy {
		if healthy {
			p.logger.Info().Msg("database is reachable")
		} else {
			p.logger.Warn().Err(err).Msg("database is unreachable")
		}
	}
	p.healthy = &healthy

	for _, r := range p.reporters {
		r.SetServing(healthy)
	}
}
