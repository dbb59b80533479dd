// Package poller reads pressure on a fixed cadence. It is strictly a
// repeated caller of the gauge client; no protocol state lives here.
package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/beamctl/tpgctl/internal/gauge"
)

// Publisher receives each completed reading. Publish failures are
// logged and never stop the loop.
type Publisher interface {
	Publish(ctx context.Context, r gauge.Reading) error
}

type Config struct {
	Interval time.Duration
	Channels []int
}

type Poller struct {
	ctrl *gauge.Controller
	pub  Publisher
	cfg  Config
	log  zerolog.Logger
}

// New builds a poller. pub may be nil to poll without publishing.
func New(ctrl *gauge.Controller, pub Publisher, cfg Config, log zerolog.Logger) *Poller {
	return &Poller{ctrl: ctrl, pub: pub, cfg: cfg, log: log}
}

// Run polls every configured channel once per interval until ctx is
// done. A failed read marks that reading lost and moves on; only
// cancellation ends the loop.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		p.pollOnce(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	for _, channel := range p.cfg.Channels {
		reading, err := p.ctrl.ReadPressure(channel)
		if err != nil {
			p.log.Warn().Int("channel", channel).Err(err).Msg("pressure read failed")
			continue
		}
		if !reading.Valid {
			p.log.Debug().
				Int("channel", channel).
				Stringer("status", reading.Status).
				Msg("reading invalid")
		}
		if p.pub == nil {
			continue
		}
		if err := p.pub.Publish(ctx, reading); err != nil {
			p.log.Warn().Int("channel", channel).Err(err).Msg("publish failed")
		}
	}
}
