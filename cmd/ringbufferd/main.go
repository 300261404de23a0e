package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jittakal/ringbuffer/internal/buffer"
	"github.com/jittakal/ringbuffer/internal/config"
	"github.com/jittakal/ringbuffer/internal/config/dto"
	"github.com/jittakal/ringbuffer/internal/observability"
	"github.com/jittakal/ringbuffer/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

func run() error {
	var cfgPath string
	if len(os.Args) > 2 && os.Args[1] == "-config" {
		cfgPath = os.Args[2]
	} else if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		cfgPath = envPath
	}

	loader := config.NewLoader()
	cfg, err := loader.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := observability.NewLogger(observability.LoggingConfig{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
		Output: cfg.Observability.Logging.Output,
	})
	logger = logger.With("run_id", uuid.NewString())
	logger.Info("starting ringbufferd",
		"version", cfg.Application.Version,
		"environment", cfg.Application.Environment,
		"ring_size_bytes", cfg.Buffer.RingSizeBytes,
		"max_blocks", cfg.Buffer.MaxBlocks,
	)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	var cleanupFuncs []func() error
	addCleanup := func(name string, fn func() error) {
		cleanupFuncs = append(cleanupFuncs, fn)
		logger.Debug("registered cleanup", "component", name)
	}

	mgr := buffer.NewManager(cfg.Buffer.MaxBlocks)
	if cfg.Buffer.RingSizeBytes > 0 {
		if err := mgr.SetMode(cfg.Buffer.RingSizeBytes, cfg.Buffer.MaxBlocks); err != nil {
			return fmt.Errorf("failed to set buffer mode: %w", err)
		}
	}
	mgr.SetLimit(cfg.Buffer.LimitBytes, cfg.Buffer.LimitCount)

	healthChecker := &exerciserHealthChecker{healthy: true}

	httpServer := server.NewServer(
		cfg.Observability.Health.Port,
		cfg.Observability.Metrics.Port,
		healthChecker,
		registry,
		logger,
	)
	if err := httpServer.Start(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	addCleanup("http-server", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	})

	logger.Info("application started successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// frameReady hands a completed frame's length from the producer to the
	// drainer. The manager itself is only ever touched from this
	// goroutine's caller graph on one side at a time: produceLoop owns the
	// push/merge end, drainLoop owns the pop end, and frameReady is the
	// only thing that crosses between them.
	frameReady := make(chan int, 64)
	runErrChan := make(chan error, 2)

	go func() {
		runErrChan <- produceLoop(ctx, mgr, cfg.Buffer, frameReady, logger, metrics)
	}()
	go func() {
		runErrChan <- drainLoop(ctx, mgr, frameReady, logger, metrics)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("received termination signal")
	case err := <-runErrChan:
		if err != nil {
			logger.Error("exerciser loop failed", "error", err)
			healthChecker.healthy = false
		}
	}

	logger.Info("initiating graceful shutdown")
	cancel()
	time.Sleep(time.Duration(cfg.Shutdown.GracePeriodSeconds) * time.Second)

	for _, fn := range cleanupFuncs {
		if err := fn(); err != nil {
			logger.Error("cleanup failed", "error", err)
		}
	}

	logger.Info("application stopped successfully")
	return nil
}

// produceLoop is the sole goroutine that calls PushBack/MergeBack. It
// stages a random-length frame, occasionally grows it in place with
// MergeBack to exercise that path, then hands its final length to the
// drainer over frameReady.
func produceLoop(
	ctx context.Context,
	mgr *buffer.Manager,
	cfg dto.BufferConfig,
	frameReady chan<- int,
	logger *slog.Logger,
	metrics *observability.Metrics,
) error {
	span := cfg.MaxFrameSizeBytes - cfg.MinFrameSizeBytes + 1
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n := cfg.MinFrameSizeBytes
			if span > 0 {
				n += rand.Intn(span)
			}
			start := time.Now()
			b, err := mgr.PushBack(n)
			metrics.ObserveOp("PushBack", time.Since(start).Seconds(), err)
			if err != nil {
				logger.Warn("push_back failed, waiting for the drainer", "n", n, "error", err)
				continue
			}
			fillFrame(b)
			total := n

			if rand.Intn(4) == 0 {
				extra := 1 + rand.Intn(8)
				start = time.Now()
				ext, err := mgr.MergeBack(extra)
				metrics.ObserveOp("MergeBack", time.Since(start).Seconds(), err)
				if err == nil {
					fillFrame(ext)
					total += extra
				}
			}

			lim := mgr.Limit()
			metrics.ObserveLimit(lim.CostBytes, lim.CostCount)

			select {
			case frameReady <- total:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// drainLoop is the sole goroutine that calls PopFront. It consumes
// exactly the frame lengths the producer reports, always releasing any
// reserved-but-unfilled tail (free_unwritable=true) since every frame
// here is written in full before being handed off.
func drainLoop(
	ctx context.Context,
	mgr *buffer.Manager,
	frameReady <-chan int,
	logger *slog.Logger,
	metrics *observability.Metrics,
) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-frameReady:
			start := time.Now()
			dropped, err := mgr.PopFront(n, true)
			metrics.ObserveOp("PopFront", time.Since(start).Seconds(), err)
			if err != nil {
				logger.Error("pop_front failed", "n", n, "error", err)
				continue
			}
			if dropped != n {
				logger.Warn("pop_front dropped fewer bytes than the frame reported", "requested", n, "dropped", dropped)
			}
			lim := mgr.Limit()
			metrics.ObserveLimit(lim.CostBytes, lim.CostCount)
		}
	}
}

func fillFrame(b []byte) {
	for i := range b {
		b[i] = byte('a' + i%26)
	}
}

type exerciserHealthChecker struct {
	healthy bool
}

func (h *exerciserHealthChecker) Liveness() bool { return h.healthy }

func (h *exerciserHealthChecker) Readiness(ctx context.Context) bool { return h.healthy }

func (h *exerciserHealthChecker) IsHealthy() bool { return h.healthy }

func (h *exerciserHealthChecker) GetStatus() map[string]string {
	if h.healthy {
		return map[string]string{"status": "healthy"}
	}
	return map[string]string{"status": "unhealthy"}
}
