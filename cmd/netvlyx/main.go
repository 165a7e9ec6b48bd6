package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/netvlyx/netvlyx/internal/constants"
	"github.com/netvlyx/netvlyx/internal/middleware"
)

func main() {
	initializeLogger()
	initializeConfig()
	initializeDatabase()
	initializeServices()
	defer db.Close()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(appLogger))
	r.Use(middleware.Gzip())
	r.Use(middleware.CORS(appConfig.AllowedOrigin))

	handler.RegisterRoutes(r)

	// Expired cache entries are swept hourly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	memoryCache.StartCleanup(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = constants.DefaultPort
	}

	appLogger.Infof("[App] starting HTTP server on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
