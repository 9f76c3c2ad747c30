package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/qarzdaftar/qarzdaftar/internal/api"
	"github.com/qarzdaftar/qarzdaftar/internal/auth"
	"github.com/qarzdaftar/qarzdaftar/internal/config"
	"github.com/qarzdaftar/qarzdaftar/internal/models"
	"github.com/qarzdaftar/qarzdaftar/internal/service"
	"github.com/qarzdaftar/qarzdaftar/internal/storage"
	"github.com/qarzdaftar/qarzdaftar/internal/storage/postgres"
	"github.com/qarzdaftar/qarzdaftar/internal/storage/sqlite"
	"github.com/qarzdaftar/qarzdaftar/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Log.Level)

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "driver", cfg.Database.Driver)

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	if err := bootstrap(context.Background(), store, authenticator, cfg, logger); err != nil {
		logger.Error("Failed to bootstrap data", "error", err)
		os.Exit(1)
	}

	server := api.NewServer(
		service.NewAuthService(authenticator, jwtManager, store, logger),
		service.NewDebtService(store, logger),
		service.NewPaymentService(store, logger),
		service.NewReportService(store, logger),
		service.NewUserService(store, authenticator, logger),
		service.NewTariffService(store, logger),
		jwtManager,
		logger,
	)
	if cfg.Server.Metrics {
		server.EnableMetrics()
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return postgres.New(context.Background(), cfg.Database.DSN)
	default:
		return sqlite.New(cfg.Database.Path)
	}
}

// bootstrap seeds an empty database with the default tariff plans and the
// platform owner account so a fresh install is usable immediately.
func bootstrap(ctx context.Context, store storage.Store, authenticator auth.Authenticator, cfg *config.Config, logger *slog.Logger) error {
	tariffs, err := store.ListTariffs(ctx)
	if err != nil {
		return err
	}
	if len(tariffs) == 0 {
		for _, t := range defaultTariffs() {
			if err := store.CreateTariff(ctx, &t); err != nil {
				return err
			}
			logger.Info("Seeded tariff", "name", t.Name)
		}
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	if cfg.Auth.OwnerPassword == "" {
		logger.Warn("No users exist and auth.ownerpassword is unset; owner account not seeded")
		return nil
	}
	owner, err := authenticator.Register(ctx, cfg.Auth.OwnerPhone, "Platforma egasi", cfg.Auth.OwnerPassword, models.RoleOwner)
	if err != nil {
		return err
	}
	logger.Info("Seeded owner account", "phone", owner.Phone)
	return nil
}

func defaultTariffs() []models.Tariff {
	return []models.Tariff{
		{
			Name:         "Boshlang'ich",
			MonthlyPrice: 0,
			MaxDebtors:   50,
			SMSPerMonth:  20,
			Features: []string{
				"50 tagacha mijoz",
				"Qarz hisoboti",
				"SMS eslatmalar (cheklangan)",
				"Mobil qulay interfeys",
			},
		},
		{
			Name:          "Professional",
			MonthlyPrice:  99000,
			MaxDebtors:    0,
			SMSPerMonth:   0,
			ExportEnabled: true,
			Features: []string{
				"Cheksiz mijozlar",
				"Batafsil hisobotlar va analitika",
				"Cheksiz SMS eslatmalar",
				"Excel eksport",
				"Ustuvor yordam xizmati",
			},
		},
	}
}
