package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"charity-lottery-backend/docs"
	"charity-lottery-backend/internal/common/config"
	"charity-lottery-backend/internal/common/logger"
	"charity-lottery-backend/internal/common/middleware"
	"charity-lottery-backend/internal/common/validation"
	"charity-lottery-backend/internal/features/lottery/contract"
	lotteryHTTP "charity-lottery-backend/internal/features/lottery/delivery/http"
	"charity-lottery-backend/internal/features/lottery/repository"
	boltRepo "charity-lottery-backend/internal/features/lottery/repository/bolt"
	redisRepo "charity-lottery-backend/internal/features/lottery/repository/redis"
	lotteryService "charity-lottery-backend/internal/features/lottery/service"
	"charity-lottery-backend/internal/platform/bolt"
	"charity-lottery-backend/internal/platform/redis"
	"charity-lottery-backend/internal/workers"
)

// @title           Charity Lottery API
// @version         1.0
// @description     Commit-reveal charity lottery rounds. Mutating calls are signed by the caller's Ethereum key.

// @BasePath  /api/v1

// @securityDefinitions.apikey CallerSignature
// @in header
// @name X-Signature
// @description EIP-191 signature of "METHOD\nPATH\nX-Timestamp\nBODY" by the X-Caller account

// @tag.name lotteries
// @tag.description Lottery lifecycle: start, seed, participate, reveal, end, cancel, deposit, withdraw

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.ServiceName, cfg.Debug, cfg.LogJSON)
	logger.Info().
		Str("version", "1.0.0").
		Bool("debug", cfg.Debug).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting charity lottery backend")

	transport, err := parseTransportAccount(cfg.Auth.TransportAccount)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid TRANSPORT_ACCOUNT")
	}
	if cfg.Auth.AllowUnsigned {
		logger.Warn().Msg("AUTH_ALLOW_UNSIGNED is set: X-Caller is trusted without a signature")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		redisClient, err = redis.Open(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
	}

	var lotteryRepository repository.LotteryRepository
	switch cfg.Storage.Driver {
	case "redis":
		lotteryRepository = redisRepo.NewRedisLotteryRepository(redisClient.Client)
	default:
		db, err := bolt.Open(cfg.Storage.BoltPath, boltRepo.BucketLotteries)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open bolt database")
		}
		defer db.Close()
		lotteryRepository = boltRepo.NewBoltLotteryRepository(db.DB)
	}

	var publisher lotteryService.EventPublisher = lotteryService.NopPublisher{}
	if cfg.Workers.EventsEnabled {
		publisher = workers.NewStreamPublisher(redisClient, cfg.Workers.EventsStream)
	}

	policy := contract.Policy{
		EndAuthority: contract.EndAuthority(cfg.Lottery.EndAuthority),
		NoRevealers:  contract.NoRevealersPolicy(cfg.Lottery.NoRevealers),
	}
	lotterySvc := lotteryService.NewLotteryService(lotteryRepository, lotteryService.SystemClock{}, publisher, policy, logger.With("component", "lottery_service"))

	logger.Info().Msg("Services initialized")

	var wg sync.WaitGroup
	if cfg.Workers.PaymentsEnabled {
		worker := workers.NewPaymentStreamWorker(redisClient, lotterySvc, cfg.Workers.PaymentsStream, cfg.Workers.ConsumerGroup, cfg.Workers.ConsumerName)
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Start(ctx)
		}()
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Errors())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Accept",
		middleware.RequestIDHeader, middleware.CallerHeader, middleware.SignatureHeader, middleware.TimestampHeader,
	}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	setupRoutes(router, cfg, lotterySvc, transport, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	wg.Wait()

	logger.Info().Msg("Server exited")
}

func setupRoutes(router *gin.Engine, cfg *config.Config, svc lotteryService.LotteryService, transport common.Address, redisClient *redis.Client) {
	docs.SwaggerInfo.BasePath = "/api/v1"

	v1 := router.Group("/api/v1")
	auth := middleware.CallerAuth(middleware.AuthOptions{
		AllowUnsigned: cfg.Auth.AllowUnsigned,
		MaxSkew:       cfg.Auth.MaxSkew,
	})
	depositGuard := middleware.RequireAccount(transport, "deposits are accepted from the payment relay only")
	lotteryHTTP.NewLotteryHandler(svc).RegisterRoutes(v1, auth, depositGuard)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", lotteryHTTP.Health)

	router.GET("/ready", func(c *gin.Context) {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   cfg.ServiceName,
		})
	})
}

func parseTransportAccount(raw string) (common.Address, error) {
	if raw == "" {
		logger.Warn().Msg("TRANSPORT_ACCOUNT is not set: HTTP deposits are disabled")
		return common.Address{}, nil
	}
	return validation.ParseNonZeroAddress(raw, "TRANSPORT_ACCOUNT")
}
