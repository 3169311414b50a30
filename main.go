package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"net/http/pprof"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/matst80/slask-menu/pkg/common"
	"github.com/matst80/slask-menu/pkg/config"
	"github.com/matst80/slask-menu/pkg/engine"
	"github.com/matst80/slask-menu/pkg/index"
	"github.com/matst80/slask-menu/pkg/messaging"
	"github.com/matst80/slask-menu/pkg/presets"
	"github.com/matst80/slask-menu/pkg/server"
	"github.com/matst80/slask-menu/pkg/source"
	"github.com/matst80/slask-menu/pkg/storage"
	"github.com/matst80/slask-menu/pkg/tracking"
	"github.com/matst80/slask-menu/pkg/types"
)

var enableProfiling = flag.Bool("profiling", false, "enable profiling endpoints")
var envFile = flag.String("env", ".env", "optional .env file")

var ready atomic.Bool

func loadMenu(ctx context.Context, cfg *config.Config, disk *storage.DiskStorage, catalog *index.Catalog) {
	src, err := source.New(ctx, cfg.Source, cfg.SourceFile, cfg.FirebaseDatabaseUrl, cfg.FirebaseCredentials, cfg.Vendor)
	if err != nil {
		log.Error("failed to create menu source", "source", cfg.Source, "err", err)
	}
	if src != nil {
		items, err := src.Load(ctx)
		if err == nil {
			catalog.Replace(items)
			log.Info("menu loaded from source", "source", cfg.Source, "items", catalog.Len())
			return
		}
		log.Error("failed to load menu from source, trying snapshot", "source", cfg.Source, "err", err)
	}
	if err = disk.LoadItems(catalog); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("no menu snapshot found, starting empty", "vendor", cfg.Vendor)
		} else {
			log.Error("failed to load menu snapshot", "err", err)
		}
	}
}

func setupPresets(cfg *config.Config, disk *storage.DiskStorage) (presets.Store, func(context.Context) error) {
	if cfg.RedisUrl != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisUrl,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		log.Info("presets stored in redis", "addr", cfg.RedisUrl)
		return presets.NewRedisStore(rdb, cfg.Vendor), func(ctx context.Context) error {
			return rdb.Close()
		}
	}
	store, err := presets.NewMemoryStore(disk)
	if err != nil {
		log.Error("failed to load presets, starting empty", "err", err)
		store, _ = presets.NewMemoryStore(nil)
	}
	return store, nil
}

func setupMessaging(cfg *config.Config, catalog *index.Catalog) (types.Tracking, []common.ShutdownHook) {
	hooks := make([]common.ShutdownHook, 0)
	if cfg.RabbitUrl == "" {
		return nil, hooks
	}
	trk, err := tracking.NewRabbitTracking(cfg.RabbitUrl, cfg.Vendor)
	if err != nil {
		log.Error("failed to create rabbit tracking", "err", err)
	} else {
		hooks = append(hooks, func(ctx context.Context) error { return trk.Close() })
	}

	conn, err := amqp.DialConfig(cfg.RabbitUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", "err", err)
	}

	if cfg.PublishChanges {
		if err = messaging.DefineTopics(conn, cfg.Vendor, messaging.MenuItemUpserted, messaging.MenuItemDeleted); err != nil {
			log.Fatal("failed to define menu topics", "err", err)
		}
		publisher := messaging.NewMenuPublisher(messaging.NewSender(conn, cfg.Vendor), time.Second)
		catalog.AddChangeHandler(publisher)
		hooks = append(hooks, func(ctx context.Context) error {
			publisher.Close()
			return nil
		})
		log.Info("publishing menu changes", "vendor", cfg.Vendor)
	} else {
		listener := messaging.NewMenuListener(conn, cfg.Vendor, catalog, catalog)
		if err = listener.Start(); err != nil {
			log.Fatal("failed to listen for menu changes", "err", err)
		}
		hooks = append(hooks, func(ctx context.Context) error { return listener.Close() })
		log.Info("listening for menu changes", "vendor", cfg.Vendor)
	}
	hooks = append(hooks, func(ctx context.Context) error { return conn.Close() })

	if trk == nil {
		return nil, hooks
	}
	return trk, hooks
}

func debugHandler() *http.ServeMux {
	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	debugMux.Handle("/metrics", promhttp.Handler())
	if *enableProfiling {
		log.Info("profiling enabled")
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return debugMux
}

func main() {
	flag.Parse()
	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal("failed to load configuration", "err", err)
	}
	common.SetupLogging(cfg.LogLevel, cfg.LogJson)

	ctx := context.Background()
	disk := storage.NewDiskStorage(cfg.Vendor, cfg.DataDir)
	catalog := index.NewCatalog()
	loadMenu(ctx, cfg, disk, catalog)

	snapshotter := storage.NewSnapshotter(disk, catalog.Items, cfg.SnapshotWait, storage.DefaultSnapshotMaxWait)
	catalog.OnChange(snapshotter.Trigger)

	store, closePresets := setupPresets(cfg, disk)
	trk, hooks := setupMessaging(cfg, catalog)

	srv := server.NewWebServer(catalog, engine.New(engine.WithPreviewLimit(cfg.PreviewLimit)), store, trk, cfg.CacheSize)

	mux := http.NewServeMux()
	mux.Handle("/admin/", http.StripPrefix("/admin", srv.AdminHandler()))
	mux.Handle("/api/", http.StripPrefix("/api", srv.ClientHandler()))

	go func() {
		log.Info("starting debug server", "addr", cfg.DebugAddress)
		if err := http.ListenAndServe(cfg.DebugAddress, debugHandler()); err != nil {
			log.Error("debug server stopped", "err", err)
		}
	}()
	ready.Store(true)

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      30 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})
	httpServer := common.NewServerWithTimeouts(&http.Server{Addr: cfg.ListenAddress, Handler: mux}, timeouts)

	hooks = append([]common.ShutdownHook{
		func(ctx context.Context) error {
			ready.Store(false)
			return snapshotter.Close()
		},
	}, hooks...)
	hooks = append(hooks, closePresets)
	common.RunServerWithShutdown(httpServer, "slask-menu", timeouts.Shutdown, timeouts.Hook, hooks...)
}
