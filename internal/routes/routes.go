package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/meridian-pay/meridian_pay/internal/account"
	"github.com/meridian-pay/meridian_pay/internal/cheque"
	"github.com/meridian-pay/meridian_pay/internal/config"
	"github.com/meridian-pay/meridian_pay/internal/middleware"
	"github.com/meridian-pay/meridian_pay/internal/notification"
	"github.com/meridian-pay/meridian_pay/internal/partner"
	"github.com/meridian-pay/meridian_pay/internal/transfer"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger

	// Transport overrides the partner HTTP transport, used by tests.
	Transport partner.Transport
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Partner adapter
	transport := d.Transport
	if transport == nil {
		transport = partner.NewHTTPTransport(d.Cfg.Partner.BaseURL, d.Cfg.Partner.Token, nil, d.Logger)
	}
	notifier := notification.NewLoggerNotifier(d.Logger)
	adapter := partner.New(transport, partner.Config{
		TariffID:        d.Cfg.Partner.TariffID,
		PermsGroup:      d.Cfg.Partner.PermsGroup,
		CardPrint:       d.Cfg.Partner.CardPrint,
		FeeWalletID:     d.Cfg.Partner.FeeWalletID,
		WalletEventName: d.Cfg.Partner.WalletEventName,
	}, notifier, d.Logger)

	// Services and handlers
	var accountRepo account.Repository
	var chequeRepo cheque.Repository
	var transferRepo transfer.Repository
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
		chequeRepo = cheque.NewPostgresRepository(d.DB)
		transferRepo = transfer.NewPostgresRepository(d.DB)
	} else {
		accountRepo = account.NewMemoryRepository()
		chequeRepo = cheque.NewMemoryRepository()
		transferRepo = transfer.NewMemoryRepository()
	}

	accountSvc := account.NewService(accountRepo, adapter)
	chequeSvc := cheque.NewService(chequeRepo, adapter, notifier)
	transferSvc := transfer.NewService(transferRepo, adapter, notifier)

	accountHandler := account.NewHandler(accountSvc)
	chequeHandler := cheque.NewHandler(chequeSvc)
	transferHandler := transfer.NewHandler(transferSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Partner webhooks authenticate by payload inspection, not bearer token.
	RegisterWebhookRoutes(api, chequeSvc, transferSvc, notifier, d.Logger)

	// Protected routes
	protected := api.Group("", middleware.BearerAuth(d.Cfg.APITokenHash), middleware.Audit(d.Logger))
	RegisterAccountRoutes(protected, accountHandler)
	RegisterChequeRoutes(protected, chequeHandler)
	RegisterPayoutRoutes(protected, transferHandler)
	RegisterCardRoutes(protected, adapter)
	RegisterDirectDebitRoutes(protected, adapter)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
