package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	httpin "github.com/suchimauz/healthchat-backend/internal/adapters/in/http"
	"github.com/suchimauz/healthchat-backend/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/healthchat-backend/internal/adapters/out/cache"
	"github.com/suchimauz/healthchat-backend/internal/adapters/out/firebase"
	"github.com/suchimauz/healthchat-backend/internal/adapters/out/logger"
	"github.com/suchimauz/healthchat-backend/internal/adapters/out/openrouter"
	"github.com/suchimauz/healthchat-backend/internal/adapters/out/redis"
	"github.com/suchimauz/healthchat-backend/internal/adapters/out/supabase"
	"github.com/suchimauz/healthchat-backend/internal/config"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
	"github.com/suchimauz/healthchat-backend/internal/core/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"backendProvider": cfg.Backend.Provider,
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Шлюз аутентификации и данных выбирается по конфигурации
	var gatewayAdapter out.GatewayPort
	switch cfg.Backend.Provider {
	case config.BackendProviderSupabase:
		gatewayAdapter = supabase.NewSupabaseAdapter(cfg, mainLogger)
	case config.BackendProviderFirebase:
		firebaseAdapter, err := firebase.NewFirebaseAdapter(ctx, cfg, mainLogger)
		if err != nil {
			logger.Error("app.firebase.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer firebaseAdapter.Close()
		gatewayAdapter = firebaseAdapter
	}

	// Адаптер модели
	completionAdapter := openrouter.NewOpenRouterAdapter(cfg, mainLogger.WithModule("OpenRouterAdapter"))

	// Хранилище переписок
	historyAdapter, err := redis.NewHistoryAdapter(cfg, mainLogger)
	if err != nil {
		logger.Error("app.redis.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer historyAdapter.Close()

	// Кэш данных шлюза, nil если выключен
	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, mainLogger)
		if err != nil {
			logger.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		location = time.UTC
	}

	// Инициализация сервисов
	chatService := services.NewChatService(completionAdapter, historyAdapter, mainLogger)
	bookingService := services.NewBookingService(gatewayAdapter, cacheAdapter, mainLogger, location)
	authService := services.NewAuthService(gatewayAdapter, mainLogger)
	defer authService.Close()

	// Настройка HTTP сервера
	router := gin.Default()
	httpin.NewAuthController(authService).RegisterRoutes(router)
	httpin.NewChatController(chatService, authService).RegisterRoutes(router)
	httpin.NewBookingController(bookingService, authService).RegisterRoutes(router)

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewCacheHitListener(
			bookingService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		// Добавляем остановку RabbitMQ в defer
		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	// Дополнительное логирование для разработки
	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"backend": map[string]interface{}{
					"provider": cfg.Backend.Provider,
				},
				"openrouter": map[string]string{
					"url":   cfg.OpenRouter.URL,
					"model": cfg.OpenRouter.Model,
				},
				"redis": map[string]interface{}{
					"addr": cfg.Redis.Addr,
					"db":   cfg.Redis.DB,
				},
				"rabbitmq": map[string]interface{}{
					"enabled": cfg.RabbitMq.Enabled,
				},
				"cache": map[string]interface{}{
					"enabled":           cfg.Cache.Enabled,
					"availability_size": cfg.Cache.AvailabilitySize,
				},
			},
		})
	}
}
