package main

// @title           Catalog API
// @version         1.0
// @description     Permission-aware library catalog: books, authors, libraries, librarians.

// @host      localhost:8080
// @BasePath  /api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shelfwise/catalog-api/internal/auth"
	"github.com/shelfwise/catalog-api/internal/config"
	"github.com/shelfwise/catalog-api/internal/db"
	"github.com/shelfwise/catalog-api/internal/handler"
	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/repository"
)

const appVersion = "0.1.0"

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	e := gin.Default()

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	if err := database.AutoMigrate(
		&model.Author{},
		&model.Book{},
		&model.Library{},
		&model.Librarian{},
		&model.User{},
		&model.UserProfile{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	tokens := auth.NewTokens([]byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLMin)*time.Minute)

	var policy auth.Policy
	if cfg.PolicyVariant == "legacy" {
		policy = auth.LegacyPolicy()
	} else {
		policy = auth.RolePolicy()
	}

	mode := auth.Forbid()
	if cfg.AuthFailureMode == "redirect" {
		mode = auth.RedirectTo(cfg.LoginURL)
	}

	style := handler.RoutePathID
	if cfg.BookRouteStyle == "body" {
		style = handler.RouteBodyID
	}

	healthHandler := handler.NewHealthHandler(database, handler.ServiceInfo{
		Name:       "catalog-api",
		Version:    appVersion,
		Policy:     cfg.PolicyVariant,
		BookRoutes: cfg.BookRouteStyle,
	}, startTime)
	healthHandler.RegisterRoutes(e)

	userRepo := repository.NewGormUserRepository(database)

	api := e.Group("/api")
	api.Use(auth.Authenticate(tokens))
	{
		handler.NewAccountHandler(userRepo, tokens).RegisterRoutes(api)
		handler.NewBookHandler(repository.NewGormBookRepository(database)).RegisterRoutes(api, policy, mode, style)
		handler.NewAuthorHandler(repository.NewGormAuthorRepository(database)).RegisterRoutes(api, policy, mode)
		handler.NewLibraryHandler(repository.NewGormLibraryRepository(database)).RegisterRoutes(api, policy, mode)
		handler.NewLibrarianHandler(repository.NewGormLibrarianRepository(database)).RegisterRoutes(api, policy, mode)
		handler.NewAreaHandler(userRepo).RegisterRoutes(api, mode)
	}

	if err := e.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
