// Command sunwatchd runs the sunwatch display daemon: the view
// scheduler, the touch gesture recognizer, and the HTTP control API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sunwatch/sunwatch/internal/display"
	"github.com/sunwatch/sunwatch/internal/input"
	"github.com/sunwatch/sunwatch/pkg/config"
	"github.com/sunwatch/sunwatch/pkg/gesture"
	"github.com/sunwatch/sunwatch/pkg/httpapi"
	"github.com/sunwatch/sunwatch/pkg/logging"
	"github.com/sunwatch/sunwatch/pkg/lunar"
	"github.com/sunwatch/sunwatch/pkg/ratelimit"
	"github.com/sunwatch/sunwatch/pkg/scheduler"
	"github.com/sunwatch/sunwatch/pkg/solar"
	"github.com/sunwatch/sunwatch/pkg/view"
	"github.com/sunwatch/sunwatch/pkg/views"
	"github.com/sunwatch/sunwatch/pkg/weather"
)

var (
	flagConfig  string
	flagVerbose bool
	flagBindAll bool
)

func main() {
	root := &cobra.Command{
		Use:   "sunwatchd",
		Short: "Always-on desk display for time, weather, and sky data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
		SilenceUsage: true,
	}
	root.Flags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	root.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	root.Flags().BoolVar(&flagBindAll, "bind-all", false, "bind the HTTP API on all interfaces")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Secrets may live in a .env next to the binary; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := logging.LogLevel(cfg.Logging.Level)
	if flagVerbose {
		level = logging.LevelDebug
	}
	logger := logging.Setup(logging.Config{Level: level, Pretty: cfg.Logging.Pretty})
	logger.Info().Str("config", flagConfig).Msg("sunwatchd starting")

	if cfg.Location.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Location.Timezone)
		if err != nil {
			return fmt.Errorf("load timezone %q: %w", cfg.Location.Timezone, err)
		}
		time.Local = loc
	}

	// Data providers.
	weatherClient := weather.NewClient(
		cfg.Weather.APIKey, cfg.Location.Latitude, cfg.Location.Longitude, cfg.Weather.Units)
	weatherProvider := weather.NewProvider(
		weatherClient, cfg.Weather.RefreshInterval(), cfg.Weather.AirQualityInterval())
	sunProvider := solar.NewProvider(cfg.Location.Latitude, cfg.Location.Longitude)
	skyProvider := lunar.NewProvider(cfg.Location.Latitude)

	// View rotation and manager.
	layout := views.Layout{
		Width:        cfg.Display.Width,
		Height:       cfg.Display.Height,
		NavBarHeight: cfg.Display.NavBarHeight,
	}
	rotation := views.Build(layout, weatherProvider, sunProvider, skyProvider)
	manager, err := view.NewManager(rotation, cfg.Display.DefaultView)
	if err != nil {
		return fmt.Errorf("build view manager: %w", err)
	}

	// Output sink.
	sink, err := display.Open(cfg.Display.Framebuffer, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		return fmt.Errorf("open display: %w", err)
	}
	defer sink.Close()

	// HTTP control surface.
	httpCfg := httpapi.DefaultConfig()
	httpCfg.Host = cfg.HTTP.Host
	httpCfg.Port = cfg.HTTP.Port
	if flagBindAll {
		httpCfg.Host = "0.0.0.0"
	}
	httpCfg.AuthUser, httpCfg.AuthPass = config.AuthCredentials()

	bucket := ratelimit.New(int(cfg.HTTP.RateLimit), cfg.HTTP.RateLimit)
	server, err := httpapi.New(httpCfg, manager, bucket)
	if err != nil {
		return fmt.Errorf("build http server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return scheduler.New(manager, sink).Run(gctx)
	})
	g.Go(func() error {
		return server.Run(gctx)
	})

	// Touch input is optional: the daemon stays useful over HTTP alone.
	if cfg.Touch.Device != "" {
		touch, err := input.Open(cfg.Touch.Device, cfg.Display.Width, cfg.Display.Height)
		if err != nil {
			log.Warn().Err(err).Str("device", cfg.Touch.Device).
				Msg("Touch input unavailable, continuing without it")
		} else {
			gestureCfg := gesture.DefaultConfig()
			gestureCfg.SwipeThreshold = cfg.Touch.SwipeThreshold
			gestureCfg.TapThreshold = cfg.Touch.TapThreshold
			gestureCfg.TapMaxDuration = cfg.Touch.TapTimeout()
			gestureCfg.DisplayWidth = cfg.Display.Width
			gestureCfg.DisplayHeight = cfg.Display.Height
			gestureCfg.NavBarHeight = cfg.Display.NavBarHeight

			recognizer := gesture.New(gestureCfg, touch, manager)
			g.Go(func() error {
				// Closing the device on shutdown unblocks the read loop.
				go func() {
					<-gctx.Done()
					touch.Close()
				}()
				return recognizer.Run(gctx)
			})
		}
	}

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("sunwatchd exited with error")
		return err
	}
	logger.Info().Msg("sunwatchd stopped")
	return nil
}
