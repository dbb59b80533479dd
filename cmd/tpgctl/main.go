package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/beamctl/tpgctl/internal/config"
	"github.com/beamctl/tpgctl/internal/gauge"
	"github.com/beamctl/tpgctl/internal/logging"
	"github.com/beamctl/tpgctl/internal/observability"
	"github.com/beamctl/tpgctl/internal/poller"
	"github.com/beamctl/tpgctl/internal/protocol"
	"github.com/beamctl/tpgctl/internal/transport"
)

func main() {
	configPath := flag.String("config", "tpgctl.toml", "path to the controller config")
	rawCommand := flag.String("cmd", "", "send one mnemonic (comma-separated args) and exit")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tpgctl: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *rawCommand); err != nil {
		log.Error().Err(err).Msg("tpgctl exited")
		os.Exit(1)
	}
}

func run(cfg config.Config, rawCommand string) error {
	tr, err := openTransport(cfg.Controller)
	if err != nil {
		// No further command is meaningful without a transport.
		return err
	}
	client := gauge.NewClient(tr, cfg.Controller.ReadTimeoutD)
	defer client.Close()

	if rawCommand != "" {
		return runOnce(client, rawCommand)
	}

	model, err := gauge.ParseModel(cfg.Controller.Model)
	if err != nil {
		return err
	}
	ctrl := gauge.NewController(client, model, log.Logger)

	ident, err := ctrl.Identify()
	if err != nil {
		return err
	}
	log.Info().
		Str("model", ident.Model).
		Str("serial", ident.SerialNumber).
		Str("firmware", ident.FirmwareVersion).
		Msg("connected to controller")

	if cfg.Metrics.Enabled {
		go func() {
			if err := observability.Serve(cfg.Metrics.Addr); err != nil {
				log.Warn().Err(err).Str("addr", cfg.Metrics.Addr).Msg("metrics endpoint stopped")
			}
		}()
	}

	if !cfg.Poll.Enabled {
		return printSnapshot(ctrl, cfg.Poll.Channels)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pub poller.Publisher
	if cfg.Redis.Enabled {
		rp, err := poller.NewRedisPublisher(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.Channel, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rp.Close()
		pub = rp
	}

	p := poller.New(ctrl, pub, poller.Config{
		Interval: cfg.Poll.IntervalD,
		Channels: cfg.Poll.Channels,
	}, log.Logger)
	if err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("poll loop stopped")
	return nil
}

func openTransport(cfg config.ControllerConfig) (transport.Transport, error) {
	if strings.EqualFold(cfg.Transport, "serial") {
		return transport.OpenSerial(cfg.Device)
	}
	return transport.DialEthernet(cfg.Host, cfg.Port, cfg.ConnectTimeoutD)
}

// runOnce sends a single raw mnemonic like "PR1" or "UNI,0" and prints
// the tokenized response.
func runOnce(client *gauge.Client, raw string) error {
	parts := strings.Split(raw, ",")
	cmd, err := protocol.NewCommand(parts[0], parts[1:]...)
	if err != nil {
		return err
	}
	resp, err := client.Send(cmd)
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(resp, ","))
	return nil
}

// printSnapshot reads each channel once and logs the result.
func printSnapshot(ctrl *gauge.Controller, channels []int) error {
	for _, channel := range channels {
		reading, err := ctrl.ReadPressure(channel)
		if err != nil {
			log.Warn().Int("channel", channel).Err(err).Msg("pressure read failed")
			continue
		}
		log.Info().
			Int("channel", reading.Channel).
			Float64("pressure", reading.Pressure).
			Bool("valid", reading.Valid).
			Stringer("status", reading.Status).
			Msg("pressure")
	}
	return nil
}
