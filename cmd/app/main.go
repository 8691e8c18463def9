package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	httpin "github.com/devtec-sai/queue-coordinator/internal/adapters/in/http"
	"github.com/devtec-sai/queue-coordinator/internal/adapters/in/rabbitmq"
	"github.com/devtec-sai/queue-coordinator/internal/adapters/out/cache"
	"github.com/devtec-sai/queue-coordinator/internal/adapters/out/credentials"
	"github.com/devtec-sai/queue-coordinator/internal/adapters/out/logger"
	"github.com/devtec-sai/queue-coordinator/internal/adapters/out/registry"
	"github.com/devtec-sai/queue-coordinator/internal/config"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/out"
	"github.com/devtec-sai/queue-coordinator/internal/core/services"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"registryUrl":     cfg.Registry.URL,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Session credential for the registry, seeded from config. Replaced on
	// re-authentication, discarded when the registry rejects it.
	sessionStore := credentials.NewSessionStore(mainLogger.WithModule("SessionStore"))
	if cfg.Registry.Token != "" {
		sessionStore.Set(cfg.Registry.Token)
	}

	registryAdapter := registry.NewRegistryAdapter(cfg, sessionStore, mainLogger.WithModule("RegistryAdapter"))

	coordinator := services.NewQueueCoordinatorService(
		registryAdapter,
		sessionStore,
		mainLogger,
	)

	// Best effort initial snapshot; the dashboard starts with an empty queue
	// if the registry is down and recovers on the next refresh.
	if err := coordinator.Refresh(context.Background()); err != nil {
		log.Warn("app.initial_refresh.failed", out.LogFields{
			"error": err.Error(),
		})
	}

	router := gin.Default()
	controller := httpin.NewQueueController(
		coordinator,
		cfg,
		mainLogger.WithModule("QueueController"),
	)
	controller.RegisterRoutes(router)

	if cfg.RabbitMQ.Enabled {
		dedup, err := cache.NewEventDedupAdapter(cfg, mainLogger.WithModule("EventDedup"))
		if err != nil {
			log.Error("app.dedup.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		listener, err := rabbitmq.NewAppointmentListener(
			coordinator,
			dedup,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
