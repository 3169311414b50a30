package main

import (
	"context"
	"flag"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matst80/slask-menu/pkg/common"
	"github.com/matst80/slask-menu/pkg/config"
	"github.com/matst80/slask-menu/pkg/messaging"
	"github.com/matst80/slask-menu/pkg/source"
	"github.com/matst80/slask-menu/pkg/storage"
	amqp "github.com/rabbitmq/amqp091-go"
)

var envFile = flag.String("env", ".env", "optional .env file")
var saveSnapshot = flag.Bool("snapshot", true, "also write the menu snapshot to the data dir")
var timeout = flag.Duration("timeout", time.Minute, "time allowed for loading the menu")

func main() {
	flag.Parse()
	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal("failed to load configuration", "err", err)
	}
	common.SetupLogging(cfg.LogLevel, cfg.LogJson)

	if cfg.Source == config.SourceNone {
		log.Fatal("MENU_SOURCE must be file or firebase")
	}
	if cfg.RabbitUrl == "" {
		log.Fatal("MENU_RABBIT_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	src, err := source.New(ctx, cfg.Source, cfg.SourceFile, cfg.FirebaseDatabaseUrl, cfg.FirebaseCredentials, cfg.Vendor)
	if err != nil {
		log.Fatal("failed to create menu source", "err", err)
	}
	items, err := src.Load(ctx)
	if err != nil {
		log.Fatal("failed to load menu", "source", cfg.Source, "err", err)
	}
	log.Info("menu loaded", "vendor", cfg.Vendor, "items", len(items))

	conn, err := amqp.DialConfig(cfg.RabbitUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", "err", err)
	}
	defer conn.Close()

	if err = messaging.DefineTopics(conn, cfg.Vendor, messaging.MenuItemUpserted, messaging.MenuItemDeleted); err != nil {
		log.Fatal("failed to define topics", "err", err)
	}
	publisher := messaging.NewMenuPublisher(messaging.NewSender(conn, cfg.Vendor), time.Second)
	defer publisher.Close()
	if err = publisher.PublishItems(items); err != nil {
		log.Fatal("failed to publish menu", "err", err)
	}
	log.Info("menu published", "vendor", cfg.Vendor, "items", len(items))

	if *saveSnapshot {
		disk := storage.NewDiskStorage(cfg.Vendor, cfg.DataDir)
		if err = disk.SaveItems(slices.Values(items)); err != nil {
			log.Error("failed to save menu snapshot", "err", err)
		}
	}
}
