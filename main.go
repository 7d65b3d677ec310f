package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/firmdex/firmdex-api/handlers"
	"github.com/firmdex/firmdex-api/internal/auth"
	"github.com/firmdex/firmdex-api/internal/config"
	"github.com/firmdex/firmdex-api/internal/dashboard"
	"github.com/firmdex/firmdex-api/internal/database"
	"github.com/firmdex/firmdex-api/internal/models"
	"github.com/firmdex/firmdex-api/internal/store"
	"github.com/firmdex/firmdex-api/pkg/logger"
	"github.com/firmdex/firmdex-api/pkg/metrics"
	"github.com/firmdex/firmdex-api/pkg/middleware"
)

func main() {
	// logging first (LOG_LEVEL env: debug|info|warn|error)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v env=%s", cfg.MongoDB.URI != "", cfg.Server.Environment)

	r := gin.New()

	// Lightweight CORS middleware for the admin client: set common headers and
	// respond to OPTIONS. Production should use a stricter policy.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID(), middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	ctx := context.Background()

	// Document stores: MongoDB when configured, in-memory otherwise so the API
	// stays usable in development without a database.
	var (
		companyStore store.Store[models.Company]
		productStore store.Store[models.Product]
		userStore    store.Store[models.User]
		dashReader   dashboard.Reader
	)
	if cfg.MongoDB.URI != "" {
		// Retry/backoff when connecting to MongoDB to tolerate startup races
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		defer func() { _ = client.Disconnect(ctx) }()

		db := client.Database(cfg.MongoDB.Database)
		companiesCol := db.Collection("companies")
		productsCol := db.Collection("products")
		if companyStore, errConn = store.NewMongo[models.Company](companiesCol, "legalNumber"); errConn != nil {
			logger.Fatalf("company store: %v", errConn)
		}
		if productStore, errConn = store.NewMongo[models.Product](productsCol); errConn != nil {
			logger.Fatalf("product store: %v", errConn)
		}
		if userStore, errConn = store.NewMongo[models.User](db.Collection("users"), "email"); errConn != nil {
			logger.Fatalf("user store: %v", errConn)
		}
		dashReader = dashboard.NewMongoReader(companiesCol, productsCol)
		logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)
	} else {
		logger.Warnf("MONGODB_URI not set, using in-memory stores; data will not persist")
		mc := store.NewMemory[models.Company]("legalNumber")
		mp := store.NewMemory[models.Product]()
		companyStore = mc
		productStore = mp
		userStore = store.NewMemory[models.User]("email")
		dashReader = dashboard.NewStoreReader(mc, mp)
	}

	authSvc := auth.NewService(userStore, cfg.JWT.Secret)
	protect := middleware.Auth(authSvc)

	api := r.Group("/api")
	handlers.NewAuthHandler(authSvc).Register(api)
	handlers.NewCompanyHandler(companyStore).Register(api, protect)
	handlers.NewProductHandler(productStore, companyStore).Register(api, protect)
	handlers.NewDashboardHandler(dashReader).Register(api)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting API server on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
