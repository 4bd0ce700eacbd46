package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/At1ass/Bakery/internal/config"
	httpctrl "github.com/At1ass/Bakery/internal/controllers/http"
	"github.com/At1ass/Bakery/internal/infra"
	"github.com/At1ass/Bakery/internal/infra/mysql"
	"github.com/At1ass/Bakery/internal/infra/rabbitmq"
	"github.com/At1ass/Bakery/internal/metrics"
	mysqlrepo "github.com/At1ass/Bakery/internal/repository/mysql"
	"github.com/At1ass/Bakery/internal/services"
)

func main() {
	cfg := config.Load()

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := mysql.Open(cfg.MySQLDSN())
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	store := mysqlrepo.NewOrderStore(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	identity := infra.NewIdentityClient(cfg.AuthServiceURL, cfg.DependencyTimeout, logger)
	catalog := infra.NewCatalogClient(cfg.CatalogServiceURL, cfg.DependencyTimeout, logger).
		WithCache(redisClient, cfg.CatalogCacheTTL)

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.OrderExchange, logger)
	if err != nil {
		logger.Fatal("rabbitmq connect failed", zap.Error(err))
	}
	defer publisher.Close()

	m := metrics.New(prometheus.DefaultRegisterer)

	assembler := services.NewOrderAssembler(store, identity, catalog, publisher, m, logger)
	lifecycle := services.NewOrderLifecycle(store, publisher, m, logger)
	query := services.NewOrderQuery(store, cfg.MaxPageSize)

	handler := httpctrl.NewHandler(assembler, lifecycle, query, identity)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	handler.RegisterRoutes(r)

	logger.Info("starting order service", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server run failed", zap.Error(err))
	}
}

func buildLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
