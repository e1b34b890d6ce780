package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"proppilot/internal/amqp"
	"proppilot/internal/backend"
	"proppilot/internal/cli"
	apphttp "proppilot/internal/http"
	"proppilot/internal/i18n"
	"proppilot/internal/locale"
	"proppilot/internal/log"
	"proppilot/internal/services"
	"proppilot/internal/session"
	"proppilot/internal/tracing"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadAndValidateConfig()
			if err != nil {
				return err
			}
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Port = port
			}
			logger := cli.SetupLogger(cfg.LogLevel)

			shutdownTracing, err := tracing.Init(cmd.Context(), logger.Logger, cfg.OTLPEndpoint, cfg.Environment)
			if err != nil {
				return fmt.Errorf("init tracing: %w", err)
			}

			backendCfg, err := backend.FromAppConfig(cfg)
			if err != nil {
				return err
			}
			result, err := backend.NewFactory(logger.Logger).CreateBackend(cmd.Context(), backendCfg)
			if err != nil {
				return fmt.Errorf("create backend: %w", err)
			}

			var publisher services.Publisher
			if cfg.AMQPURL != "" {
				// Dials lazily; a broker down at startup is retried on publish.
				client := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
				connectCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
				if err := client.Connect(connectCtx, 3); err != nil {
					logger.Warn("AMQP broker unavailable, activity events will retry lazily", log.FieldError, err)
				}
				cancel()
				publisher = client
			} else {
				logger.Info("AMQP disabled: AMQP_URL not set")
			}

			svc := services.NewRentalService(result.Backend, publisher).WithCleanup(result.Cleanup)

			sessions := session.NewStore(svc, session.Config{
				TTL:         cfg.SessionTTL,
				MaxSessions: cfg.SessionMax,
				SearchDelay: cfg.SearchDebounce,
				Defaults: locale.Locale{
					Language: locale.Language(cfg.DefaultLanguage),
					Currency: locale.Currency(cfg.DefaultCurrency),
				},
				Secure: cfg.Environment == "production",
			})
			sessions.StartCleanup(time.Minute)

			srv, err := apphttp.NewServer(apphttp.Options{
				Addr:               ":" + cfg.Port,
				Service:            svc,
				Sessions:           sessions,
				Dictionary:         i18n.Default(),
				RateLimitPerMinute: cfg.RateLimitPerMinute,
				Logger:             logger,
			})
			if err != nil {
				return err
			}

			ctx, done := cli.GracefulShutdown(logger.Logger, cfg.ShutdownTimeout, func(ctx context.Context) {
				if err := srv.Shutdown(ctx); err != nil {
					logger.Error("Server shutdown error", log.FieldError, err)
				}
				if err := svc.Close(); err != nil {
					logger.Error("Service close error", log.FieldError, err)
				}
				if err := shutdownTracing(ctx); err != nil {
					logger.Error("Tracing shutdown error", log.FieldError, err)
				}
			})

			logger.Info("Starting proppilot server",
				"port", cfg.Port,
				"backend", cfg.DataBackend,
				"environment", cfg.Environment,
				"version", version)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}

			cli.WaitForShutdown(ctx, done)
			logger.Info("Server stopped gracefully")
			return nil
		},
	}
	cmd.Flags().String("port", "", "Override the PORT environment variable")
	return cmd
}
