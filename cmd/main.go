package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"storefront-client/internal/api"
	"storefront-client/internal/config"
	"storefront-client/internal/logger"
	"storefront-client/internal/navigation"
	"storefront-client/internal/services/catalog"
	"storefront-client/internal/services/history"
	"storefront-client/internal/services/order"
	"storefront-client/internal/session"
	"storefront-client/internal/shell"
	"storefront-client/internal/storage"
)

func main() {
	var (
		mode       = flag.String("mode", "shop", "Client mode (shop, history)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
	)
	flag.Parse()

	// Optional .env for local overrides
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("client_started", fmt.Sprintf("Starting storefront client in %s mode", *mode), requestID, map[string]interface{}{
		"mode":     *mode,
		"base_url": cfg.API.BaseURL,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	store, err := newStore(cfg)
	if err != nil {
		log.Error("store_failed", "Failed to open session store", requestID, err, nil)
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), log)
	sessions := session.NewManager(client, store, log)

	if _, err := sessions.Restore(); err != nil {
		log.Error("session_restore_failed", "Failed to restore session", requestID, err, nil)
		os.Exit(1)
	}

	switch *mode {
	case "shop":
		if err := runShop(ctx, sessions, client, log); err != nil {
			log.Error("client_failed", "Shop session failed", requestID, err, nil)
			os.Exit(1)
		}
	case "history":
		if err := runHistory(ctx, sessions, client, log); err != nil {
			log.Error("client_failed", "History listing failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("client_stopped", "Client stopped", requestID, nil)
}

// newStore picks the session store: file-backed when configured, otherwise
// in-memory for the lifetime of the process.
func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Session.File == "" {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewFileStore(cfg.Session.File)
}

// runShop runs the interactive storefront session.
func runShop(ctx context.Context, sessions *session.Manager, client *api.Client, log *logger.Logger) error {
	catalogSvc := catalog.NewService(client, log)
	orderSvc := order.NewService(client, log)
	historySvc := history.NewService(client, log)
	router := navigation.NewLogRouter(log)

	sh := shell.New(sessions, catalogSvc, orderSvc, historySvc, router, log, os.Stdout)
	return sh.Run(ctx, os.Stdin)
}

// runHistory prints the grouped order history once and exits.
func runHistory(ctx context.Context, sessions *session.Manager, client *api.Client, log *logger.Logger) error {
	if !sessions.Current().Authenticated() {
		return fmt.Errorf("no stored session: login with --mode shop first")
	}

	historySvc := history.NewService(client, log)

	grouped, err := historySvc.Fetch(ctx)
	if err != nil {
		if errors.Is(err, history.ErrNoOrders) {
			fmt.Println("no orders yet")
			return nil
		}
		return err
	}

	for _, group := range grouped {
		fmt.Printf("order #%d  %s\n", group.OrderID, group.OrderDate)
		for _, item := range group.Items {
			fmt.Printf("    %-30s lot %-12s x%d\n", item.ItemName, item.LotNo, item.Quantity)
		}
	}
	return nil
}
