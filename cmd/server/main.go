package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/seantp00/RealGoodEstate/internal/config"
	"github.com/seantp00/RealGoodEstate/internal/handler"
	"github.com/seantp00/RealGoodEstate/internal/repository"
	"github.com/seantp00/RealGoodEstate/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Загрузка конфигурации приложения
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Уровень логирования из конфигурации
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Подключение к Redis для кэша снимков объявлений. Без Redis сервис
	// работает, но каждый поиск идет напрямую к источнику данных.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithError(err).Warn("Redis недоступен, кэш снимков отключен")
			redisClient = nil
		}
	}

	// Инициализация репозиториев
	logger.Info("Инициализация репозиториев...")
	snapshotRepo := repository.NewSnapshotRepository(redisClient, cfg.SnapshotTTL, logger)

	// Инициализация сервисов
	logger.Info("Инициализация сервисов...")
	affordabilityService := service.NewAffordabilityService(logger)
	plannerService := service.NewPlannerService(affordabilityService, logger)
	estimatorService := service.NewEstimatorService(logger)
	thinkImmoClient := service.NewThinkImmoClient(cfg.ThinkImmoURL, cfg.ThinkImmoPageSize, logger)
	listingService := service.NewListingService(thinkImmoClient, snapshotRepo, logger)
	advisorService := service.NewAdvisorService(
		cfg.GeminiURL,
		cfg.GeminiModel,
		cfg.GeminiAPIKey,
		cfg.AdvisorEnabled,
		logger,
	)

	// Инициализация HTTP обработчиков
	logger.Info("Инициализация обработчиков API...")
	analyzeHandler := handler.NewAnalyzeHandler(affordabilityService, logger)
	planHandler := handler.NewPlanHandler(plannerService, logger)
	listingsHandler := handler.NewListingsHandler(listingService, logger)
	estimateHandler := handler.NewEstimateHandler(estimatorService, logger)
	adviceHandler := handler.NewAdviceHandler(advisorService, affordabilityService, logger)
	healthHandler := handler.NewHealthHandler(logger)

	// Настройка маршрутизатора
	router := mux.NewRouter()

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(handler.CORSMiddleware())
	apiRouter.Use(handler.RequestLogMiddleware(logger))

	// Маршруты расчета доступности
	analyzeRouter := apiRouter.PathPrefix("/analyze").Subrouter()
	analyzeHandler.RegisterRoutes(analyzeRouter)

	// Маршруты планирования накоплений
	planRouter := apiRouter.PathPrefix("/plan").Subrouter()
	planHandler.RegisterRoutes(planRouter)

	// Маршруты поиска объектов
	listingsRouter := apiRouter.PathPrefix("/listings").Subrouter()
	listingsHandler.RegisterRoutes(listingsRouter)

	// Маршруты оценки стоимости
	estimateRouter := apiRouter.PathPrefix("/estimate-price").Subrouter()
	estimateHandler.RegisterRoutes(estimateRouter)

	// Маршруты советника
	adviceRouter := apiRouter.PathPrefix("/advice").Subrouter()
	adviceHandler.RegisterRoutes(adviceRouter)

	healthRouter := apiRouter.PathPrefix("/health").Subrouter()
	healthHandler.RegisterRoutes(healthRouter)

	// Настройка планировщика фонового обновления снимков объявлений
	logger.Info("Настройка планировщика обновления снимков...")
	c := cron.New()
	_, err = c.AddFunc(cfg.RefreshCronSpec, func() {
		logger.Info("Запуск фонового обновления снимков объявлений")
		if err := listingService.RefreshSnapshots(context.Background()); err != nil {
			logger.WithError(err).Error("Ошибка обновления снимков")
		} else {
			logger.Info("Фоновое обновление снимков завершено успешно")
		}
	})
	if err != nil {
		logger.Fatalf("Ошибка настройки планировщика: %v", err)
	}
	c.Start()

	// Настройка и запуск HTTP сервера
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Infof("Запуск сервера на %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание сигналов для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Завершение работы сервера...")
	c.Stop()
	if err := server.Shutdown(context.Background()); err != nil {
		logger.Errorf("Ошибка при завершении работы сервера: %v", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}
	logger.Info("Сервер успешно остановлен")
}
