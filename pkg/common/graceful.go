package common

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
)

// ShutdownHook runs after a termination signal and before the HTTP server shuts
// down. A failing hook is logged and shutdown continues.
type ShutdownHook func(ctx context.Context) error

// RunServerWithShutdown starts the server and blocks until SIGINT or SIGTERM. Hooks
// then run in order, each with its own timeout inside the overall shutdown
// deadline, before the server is shut down gracefully.
func RunServerWithShutdown(server *http.Server, name string, shutdownTimeout, hookTimeout time.Duration, hooks ...ShutdownHook) {
	go func() {
		log.Info("starting server", "name", name, "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen error", "name", name, "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutdown signal received", "name", name)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	RunShutdownHooks(ctx, hookTimeout, hooks...)

	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "name", name, "err", err)
	} else {
		log.Info("shutdown complete", "name", name)
	}
}

// RunShutdownHooks runs hooks sequentially, a hookTimeout <= 0 means 5s.
func RunShutdownHooks(ctx context.Context, hookTimeout time.Duration, hooks ...ShutdownHook) {
	if hookTimeout <= 0 {
		hookTimeout = 5 * time.Second
	}
	for i, h := range hooks {
		if h == nil {
			continue
		}
		hCtx, hCancel := context.WithTimeout(ctx, hookTimeout)
		if err := h(hCtx); err != nil {
			log.Error("shutdown hook failed", "hook", i, "err", err)
		}
		if errors.Is(hCtx.Err(), context.DeadlineExceeded) {
			log.Warn("shutdown hook timed out", "hook", i)
		}
		hCancel()
	}
}

type TimeoutConfig struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
	Hook       time.Duration
}

// LoadTimeoutConfig overrides the defaults with whole seconds from
// MENU_READ_HEADER_TIMEOUT, MENU_READ_TIMEOUT, MENU_WRITE_TIMEOUT,
// MENU_IDLE_TIMEOUT, MENU_SHUTDOWN_TIMEOUT and MENU_HOOK_TIMEOUT. Invalid or
// non positive values keep the default.
func LoadTimeoutConfig(defaults TimeoutConfig) TimeoutConfig {
	apply := func(curr *time.Duration, env string) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*curr = time.Duration(n) * time.Second
			}
		}
	}
	apply(&defaults.ReadHeader, "MENU_READ_HEADER_TIMEOUT")
	apply(&defaults.Read, "MENU_READ_TIMEOUT")
	apply(&defaults.Write, "MENU_WRITE_TIMEOUT")
	apply(&defaults.Idle, "MENU_IDLE_TIMEOUT")
	apply(&defaults.Shutdown, "MENU_SHUTDOWN_TIMEOUT")
	apply(&defaults.Hook, "MENU_HOOK_TIMEOUT")
	return defaults
}

func NewServerWithTimeouts(base *http.Server, cfg TimeoutConfig) *http.Server {
	if base == nil {
		base = &http.Server{}
	}
	base.ReadHeaderTimeout = cfg.ReadHeader
	base.ReadTimeout = cfg.Read
	base.WriteTimeout = cfg.Write
	base.IdleTimeout = cfg.Idle
	return base
}
