package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/commerce-platform/backoffice-service/pkg/cloudevents"
	"github.com/commerce-platform/backoffice-service/pkg/kafka"
	"github.com/commerce-platform/backoffice-service/pkg/logging"
	"github.com/commerce-platform/backoffice-service/pkg/metrics"
	"github.com/commerce-platform/backoffice-service/pkg/middleware"
	"github.com/commerce-platform/backoffice-service/pkg/mongodb"
	"github.com/commerce-platform/backoffice-service/pkg/outbox"
	"github.com/commerce-platform/backoffice-service/pkg/tracing"

	"github.com/commerce-platform/backoffice-service/internal/api/handlers"
	"github.com/commerce-platform/backoffice-service/internal/application"
	"github.com/commerce-platform/backoffice-service/internal/domain"
	mongoRepo "github.com/commerce-platform/backoffice-service/internal/infrastructure/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

const serviceName = "backoffice-service"

type instrumentedMongoClient interface {
	Database() *mongo.Database
	Close(context.Context) error
	HealthCheck(context.Context) error
}

type kafkaProducer interface {
	PublishEvent(ctx context.Context, topic string, event *cloudevents.CommerceCloudEvent) error
	Close() error
}

type outboxPublisher interface {
	Start(context.Context) error
	Stop() error
}

type logisticRepository interface {
	domain.LogisticRepository
	GetOutboxRepository() outbox.Repository
}

var newInstrumentedMongoClient = func(ctx context.Context, cfg *mongodb.Config, m *metrics.Metrics, logger *logging.Logger) (instrumentedMongoClient, error) {
	return mongodb.NewProductionClient(ctx, cfg, m, logger)
}

var newInstrumentedKafkaProducer = func(cfg *kafka.Config, m *metrics.Metrics, logger *logging.Logger) kafkaProducer {
	return kafka.NewProductionProducer(cfg, m, logger)
}

var newOutboxPublisher = func(repo outbox.Repository, producer kafkaProducer, logger *logging.Logger, m *metrics.Metrics, cfg *outbox.PublisherConfig) outboxPublisher {
	return outbox.NewPublisher(repo, producer, logger, m, cfg)
}

var newOrderRepository = func(db *mongo.Database) domain.OrderRepository {
	return mongoRepo.NewOrderRepository(db)
}

var newLogisticRepository = func(db *mongo.Database, eventFactory *cloudevents.EventFactory) logisticRepository {
	return mongoRepo.NewLogisticRepository(db, eventFactory)
}

var newInvoiceRepository = func(db *mongo.Database, eventFactory *cloudevents.EventFactory) domain.InvoiceRepository {
	return mongoRepo.NewInvoiceRepository(db, eventFactory)
}

var newProductRepository = func(db *mongo.Database, eventFactory *cloudevents.EventFactory) domain.ProductRepository {
	return mongoRepo.NewProductRepository(db, eventFactory)
}

var (
	newLogisticsService = application.NewLogisticsService
	newInvoiceService   = application.NewInvoiceService
	newProductService   = application.NewProductService
	newOrderService     = application.NewOrderService
)

var (
	newLogisticsHandler = handlers.NewLogisticsHandler
	newInvoiceHandler   = handlers.NewInvoiceHandler
	newProductHandler   = handlers.NewProductHandler
	newOrderHandler     = handlers.NewOrderHandler
)

var newMetrics = metrics.New

var initTracing = tracing.Initialize

var startHTTPServer = func(srv *http.Server) error {
	return srv.ListenAndServe()
}

func main() {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	if err := run(context.Background(), signalCh); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, signalCh <-chan os.Signal) error {
	// Setup enhanced logger
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting backoffice-service API")

	// Load configuration
	config := loadConfig()

	// Initialize OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnv("TRACING_ENABLED", "true") == "true"

	tracerProvider, err := initTracing(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	// Initialize Prometheus metrics
	metricsConfig := metrics.DefaultConfig(serviceName)
	m := newMetrics(metricsConfig)
	businessMetrics := middleware.NewBusinessMetrics(m)
	logger.Info("Metrics initialized")

	// Initialize MongoDB with instrumentation
	instrumentedMongo, err := newInstrumentedMongoClient(ctx, config.MongoDB, m, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		return err
	}
	defer instrumentedMongo.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	// Initialize Kafka producer with instrumentation
	instrumentedProducer := newInstrumentedKafkaProducer(config.Kafka, m, logger)
	defer instrumentedProducer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	// Initialize CloudEvents factory
	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceBackoffice)

	// Initialize repositories
	orderRepo := newOrderRepository(instrumentedMongo.Database())
	logisticRepo := newLogisticRepository(instrumentedMongo.Database(), eventFactory)
	invoiceRepo := newInvoiceRepository(instrumentedMongo.Database(), eventFactory)
	productRepo := newProductRepository(instrumentedMongo.Database(), eventFactory)

	// Initialize and start outbox publisher
	outboxPublisher := newOutboxPublisher(
		logisticRepo.GetOutboxRepository(),
		instrumentedProducer,
		logger,
		m,
		&outbox.PublisherConfig{
			PollInterval: 1 * time.Second,
			BatchSize:    100,
		},
	)
	if err := outboxPublisher.Start(ctx); err != nil {
		logger.WithError(err).Error("Failed to start outbox publisher")
		return err
	}
	defer func() {
		if err := outboxPublisher.Stop(); err != nil {
			logger.WithError(err).Warn("Failed to stop outbox publisher")
		}
	}()
	logger.Info("Outbox publisher started")

	// Initialize application services
	logisticsService := newLogisticsService(logisticRepo, orderRepo, logger)
	invoiceService := newInvoiceService(invoiceRepo, orderRepo, logger)
	productService := newProductService(productRepo, logger)
	orderService := newOrderService(orderRepo, logger)

	// Initialize handlers
	logisticsHandler := newLogisticsHandler(logisticsService, logger, businessMetrics)
	invoiceHandler := newInvoiceHandler(invoiceService, logger, businessMetrics)
	productHandler := newProductHandler(productService, logger, businessMetrics)
	orderHandler := newOrderHandler(orderService, logger)

	// Setup Gin router with middleware
	router := gin.New()

	// Apply standard middleware
	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)

	// Add metrics middleware
	router.Use(middleware.MetricsMiddleware(m))

	// Add tracing middleware
	router.Use(middleware.SimpleTracingMiddleware(serviceName))

	// Handle 404 and 405 errors
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	// Health check endpoints
	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return instrumentedMongo.HealthCheck(ctx)
	}))

	// Metrics endpoint
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Logistics
		logistics := v1.Group("/logistics")
		{
			logistics.POST("", logisticsHandler.IngestBatch)
			logistics.GET("", logisticsHandler.ListEntries)
			logistics.GET("/:orderId", logisticsHandler.GetEntriesByOrderRef)
			logistics.PUT("/:id", logisticsHandler.UpdateEntry)
			logistics.DELETE("/:id", logisticsHandler.DeleteEntry)
		}

		// Invoices
		invoices := v1.Group("/invoices")
		{
			invoices.POST("", invoiceHandler.CreateInvoice)
			invoices.GET("", invoiceHandler.ListInvoices)
			invoices.GET("/:orderId", invoiceHandler.GetInvoicesByOrderRef)
			invoices.PUT("/:id", invoiceHandler.UpdateInvoice)
			invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
		}

		// Products
		products := v1.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.GET("", productHandler.ListProducts)
			products.GET("/:productId", productHandler.GetProduct)
			products.PUT("/:productId", productHandler.UpdateProduct)
			products.DELETE("/:productId", productHandler.DeleteProduct)
		}

		// Orders (read-only)
		orders := v1.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:orderId", orderHandler.GetOrder)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := startHTTPServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	// Wait for interrupt signal
	<-signalCh
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
	return nil
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8018"),
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "backoffice_db"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
		},
		Kafka: &kafka.Config{
			Brokers:       []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ConsumerGroup: serviceName,
			ClientID:      serviceName,
			BatchSize:     100,
			BatchTimeout:  10 * time.Millisecond,
			RequiredAcks:  -1,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
