package main

import (
	"client-records-service/internal/api"
	"client-records-service/internal/config"
	"client-records-service/internal/repository"
	"client-records-service/internal/service"
	"client-records-service/migrations"
	"database/sql"
	"fmt"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"log"
	"net/http"
	"time"
)

func connectDB(host, port, user, pass, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, pass, host, port, dbname)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, dbname, host, port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", dbname, host, port, err)
}

func main() {
	// .env is optional; real deployments set the variables directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := connectDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBDatabase)
	if err != nil {
		panic(err)
	}

	err = migrations.AutoMigrateClientRecords(3, db)
	if err != nil {
		log.Fatalf("Failed to migrate client_records table: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	kafkaWriter := config.NewKafkaWriter("client-record-topic")

	recordRepo := repository.NewRecordRepository(db)
	recordService := service.NewRecordService(recordRepo, kafkaWriter, rdb)
	recordHandler := api.NewRecordHandler(recordService)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(1),
				Burst:     3,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.GET("/test", recordHandler.ListRecords)
	e.GET("/test/:id", recordHandler.GetRecordByID)

	// Mutating routes require a bearer token when JWT_SECRET is set.
	mutating := e.Group("")
	if cfg.JWTSecret != "" {
		mutating.Use(echojwt.WithConfig(echojwt.Config{
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(api.JwtCustomClaims)
			},
			SigningKey: []byte(cfg.JWTSecret),
		}))
	}
	mutating.POST("/test", recordHandler.CreateRecord)
	mutating.PUT("/test/:id", recordHandler.UpdateRecord)
	mutating.DELETE("/test/:id", recordHandler.DeleteRecord)

	e.GET("/test/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "client-records-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
