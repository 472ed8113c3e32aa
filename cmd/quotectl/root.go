package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pcbxpress/internal/config"
	"pcbxpress/internal/gateway"
	"pcbxpress/internal/logging"
	"pcbxpress/internal/pubsub"
	pubsubmemory "pcbxpress/internal/pubsub/memory"
	pubsubnats "pcbxpress/internal/pubsub/nats"
	"pcbxpress/internal/registry"
	"pcbxpress/internal/routing"
	"pcbxpress/internal/storage"
	storagemongo "pcbxpress/internal/storage/mongo"
)

var configPath string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "quotectl",
	Short: "Operate on the quote store across all service collections",
	Long: `quotectl talks to the quote persistence layer directly: create,
inspect, count and delete quotes across every backing collection as if they
lived in one.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yml", "path to the configuration file")
}

// app bundles everything a command needs against a live deployment.
type app struct {
	cfg     *config.Config
	store   storage.CollectionStore
	reg     *registry.Registry
	gateway *gateway.Gateway
	pub     pubsub.Publisher
}

// newApp loads configuration, initializes logging and connects to the
// backing store. Close releases the connections.
func newApp(ctx context.Context) (*app, error) {
	// A missing .env is fine; deployments use real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return nil, err
	}

	store, err := storagemongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	var pub pubsub.Publisher
	switch cfg.Events.Provider {
	case "memory":
		pub = pubsubmemory.New()
	case "nats":
		pub, err = pubsubnats.Connect(cfg.Events.NatsURL)
		if err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
	}

	reg := registry.NewWithDefault(registry.Service(cfg.Routing.DefaultService))
	router := routing.New(reg, cfg.Routing.Strict)
	gw := gateway.New(store, reg, router, gateway.Options{Publisher: pub})

	return &app{cfg: cfg, store: store, reg: reg, gateway: gw, pub: pub}, nil
}

func (a *app) Close(ctx context.Context) {
	if a.pub != nil {
		_ = a.pub.Close()
	}
	_ = a.store.Close(ctx)
	_ = logging.Shutdown()
}

// commandContext returns the context commands run under.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
