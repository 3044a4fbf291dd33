package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/danmuck/disctl/internal/capture"
	"github.com/danmuck/disctl/internal/config"
	"github.com/danmuck/disctl/internal/inspect"
	"github.com/danmuck/disctl/internal/observability"
	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/danmuck/disctl/internal/receiver"
	"github.com/danmuck/disctl/internal/server"
	"github.com/spf13/cobra"
)

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

func listenCmd() *cobra.Command {
	var (
		path     string
		listen   string
		exercise int
		captures bool
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Receive DIS traffic over UDP and serve the HTTP inspector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Receiver.Listen = listen
			}
			if cmd.Flags().Changed("exercise") {
				if exercise < 0 || exercise > 255 {
					return fmt.Errorf("--exercise out of range: %d", exercise)
				}
				cfg.Receiver.Exercise = uint8(exercise)
			}
			if cmd.Flags().Changed("capture") {
				cfg.Capture.Enabled = captures
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runListener(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "path to disctl.toml (defaults apply when empty)")
	cmd.Flags().StringVar(&listen, "listen", "", "override receiver.listen")
	cmd.Flags().IntVar(&exercise, "exercise", 0, "override receiver.exercise")
	cmd.Flags().BoolVar(&captures, "capture", false, "override capture.enabled")
	return cmd
}

func runListener(ctx context.Context, cfg config.Config) error {
	logger := observability.InitLogger("disctl")
	observability.RegisterMetrics()

	recent := inspect.NewRecent(cfg.HTTP.RecentCapacity)
	var opts []receiver.Option
	if cfg.Capture.Enabled {
		store, err := capture.Open(cfg.Capture.Dir, capture.Options{})
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn().Err(err).Msg("capture close failed")
			}
		}()
		opts = append(opts, receiver.WithCapture(store))
		logger.Info().Str("dir", cfg.Capture.Dir).Msg("capture enabled")
	}

	rx, err := receiver.New(receiver.Config{
		Listen:     cfg.Receiver.Listen,
		Exercise:   cfg.Receiver.Exercise,
		ReadBuffer: cfg.Receiver.ReadBuffer,
		Limits:     cfg.Limits.Wire(),
	}, func(d receiver.Delivery) {
		id := ""
		if !d.CaptureID.IsNil() {
			id = d.CaptureID.String()
		}
		recent.Add(inspect.Summarize(d.Pdu, id, d.Source, d.Received))
		logger.Debug().
			Str("type", d.Pdu.Header.PduType.String()).
			Uint8("exercise", d.Pdu.Header.ExerciseID).
			Str("source", d.Source).
			Msg("pdu received")
	}, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				errCh <- fmt.Errorf("%s: %w", name, err)
				cancel()
			}
		}()
	}

	run("receiver", rx.Listen)
	if cfg.HTTP.Enabled {
		inspector := server.New(server.Config{
			Addr:            cfg.HTTP.Addr,
			CorsOrigins:     cfg.HTTP.CorsOrigins,
			ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
			Limits:          cfg.Limits.Wire(),
		}, recent, pdu.DefaultRegistry(), rx.Stats)
		run("inspector", inspector.Serve)
	}

	wg.Wait()
	close(errCh)
	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	stats := rx.Stats()
	logger.Info().
		Uint64("datagrams", stats.Datagrams).
		Uint64("pdus", stats.Pdus).
		Uint64("dropped", stats.Dropped).
		Uint64("filtered", stats.Filtered).
		Msg("listener stopped")
	return errors.Join(errs...)
}

func replayCmd() *cobra.Command {
	var (
		path   string
		dir    string
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Decode every captured datagram in capture order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") && path != "" {
				dir = cfg.Capture.Dir
			}
			store, err := capture.Open(dir, capture.Options{MustExist: true})
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			dec := pdu.NewDecoder(nil, cfg.Limits.Wire())
			var datagrams, decoded, failed int
			err = store.Scan(func(e capture.Entry) error {
				datagrams++
				pdus, err := dec.DecodeStream(e.Datagram)
				for _, p := range pdus {
					decoded++
					if format == "summary" {
						fmt.Fprintf(out, "%s %s %s exercise=%d length=%d\n",
							e.ID, e.Received.Format("15:04:05.000"), p.Header.PduType, p.Header.ExerciseID, p.Header.Length)
						continue
					}
					if err := writePdu(out, p, format); err != nil {
						return err
					}
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s %s decode failed: %v\n", e.ID, e.Source, err)
					if strict {
						return fmt.Errorf("capture %s: %w", e.ID, err)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "replayed %d datagram(s): %d pdu(s), %d failure(s)\n", datagrams, decoded, failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "disctl.toml supplying [limits] and capture.dir")
	cmd.Flags().StringVar(&dir, "dir", "disctl-capture", "capture directory")
	cmd.Flags().StringVar(&format, "format", "summary", "output format: summary|text|toml|json")
	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first datagram that fails to decode")
	return cmd
}
