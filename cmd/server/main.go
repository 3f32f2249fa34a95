package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Freeeeeet/barber_booking/internal/app"
	"github.com/Freeeeeet/barber_booking/internal/cache"
	"github.com/Freeeeeet/barber_booking/internal/config"
	"github.com/Freeeeeet/barber_booking/internal/controller"
	"github.com/Freeeeeet/barber_booking/internal/controller/api"
	"github.com/Freeeeeet/barber_booking/internal/model"
	"github.com/Freeeeeet/barber_booking/internal/notify"
	"github.com/Freeeeeet/barber_booking/internal/repository"
	"github.com/Freeeeeet/barber_booking/internal/repository/memory"
	"github.com/Freeeeeet/barber_booking/internal/service"
	"github.com/Freeeeeet/barber_booking/migrations"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// stores набор хранилищ, выбранный по STORAGE_DRIVER
type stores struct {
	bookings  service.BookingStore
	templates service.TemplateStore
	shops     service.ShopDirectory
	catalog   service.ServiceCatalog
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting barber booking service",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.StorageDriver),
		zap.String("timezone", cfg.ShopTimezone),
		zap.Bool("telegram", cfg.TelegramToken != ""))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}
	logger.Info("Service stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	st, closeStores, err := openStores(ctx, cfg, location, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	templates := st.templates
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis is unreachable, schedule cache will fall through to storage",
				zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		templates = cache.NewTemplateCache(st.templates, client, cfg.TemplateCacheTTL, logger)
		logger.Info("Schedule template cache enabled", zap.Duration("ttl", cfg.TemplateCacheTTL))
	}

	broker := notify.NewBroker(notify.DefaultSubscriberBuffer, logger)
	notifiers := notify.Fanout{broker, notify.NewLogNotifier(logger)}
	if cfg.AMQPURL != "" {
		publisher, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return fmt.Errorf("connect to amqp: %w", err)
		}
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
		logger.Info("Publishing booking events to AMQP", zap.String("exchange", cfg.AMQPExchange))
	}

	slotService := service.NewSlotService(templates, st.bookings, logger)
	bookingService := service.NewBookingService(st.bookings, slotService, st.catalog, notifiers, location, logger)
	queryService := service.NewQueryService(bookingService, st.shops, logger)
	shopService := service.NewShopService(st.shops, st.catalog, templates, logger)

	scheduler := app.NewScheduler(bookingService, cfg.AutoCompleteInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Бот останавливается по отмене ctx, поэтому отменяем его до ожидания
	var wg sync.WaitGroup
	defer func() {
		stop()
		wg.Wait()
	}()

	if cfg.TelegramToken != "" {
		b, err := bot.New(cfg.TelegramToken)
		if err != nil {
			return fmt.Errorf("create telegram bot: %w", err)
		}
		botController := controller.NewBotController(b, slotService, bookingService, queryService, shopService, logger)
		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Bot commands menu not set", zap.Error(err))
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			botController.Start(ctx)
		}()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := api.NewHandler(slotService, bookingService, queryService, shopService, broker, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		Verifier:       api.NewTokenVerifier(cfg.JWTSecret),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		AllowedOrigins: cfg.AllowedOrigins(),
	}, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Долгие SSE-подключения завершаются вместе с ctx
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// openStores открывает хранилища выбранного драйвера. Возвращаемая функция освобождает ресурсы.
func openStores(ctx context.Context, cfg *config.Config, location *time.Location, logger *zap.Logger) (stores, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		shops := memory.NewShopStore()
		if err := memory.Seed(ctx, shops); err != nil {
			return stores{}, nil, fmt.Errorf("seed memory store: %w", err)
		}
		bookings := memory.NewBookingStore()
		if err := memory.SeedBookings(ctx, bookings, model.DateOf(time.Now().In(location))); err != nil {
			return stores{}, nil, fmt.Errorf("seed memory bookings: %w", err)
		}
		logger.Info("Using in-memory storage with demo shops")
		return stores{
			bookings:  bookings,
			templates: shops.Templates(),
			shops:     shops,
			catalog:   shops,
		}, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return stores{}, nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return stores{}, nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("Connected to PostgreSQL")

	if cfg.MigrationsEnabled {
		migrator, err := app.NewMigrator(pool, migrations.FS, logger)
		if err != nil {
			pool.Close()
			return stores{}, nil, err
		}
		err = migrator.Run(ctx)
		_ = migrator.Close()
		if err != nil {
			pool.Close()
			return stores{}, nil, err
		}
	}

	return stores{
		bookings:  repository.NewBookingRepository(pool),
		templates: repository.NewScheduleRepository(pool, logger),
		shops:     repository.NewShopRepository(pool),
		catalog:   repository.NewCatalogRepository(pool, logger),
	}, pool.Close, nil
}
