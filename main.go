package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"inkwell/config"
	"inkwell/database"
	"inkwell/handlers"
	"inkwell/routes"
	"inkwell/store"
	"inkwell/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer utils.Logger.Sync()

	gin.SetMode(cfg.GinMode)

	utils.Sugar.Infof("connecting to MongoDB at %s", cfg.MongoURI)
	client, db, err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		utils.Sugar.Fatalf("connecting to MongoDB: %v", err)
	}
	defer database.Disconnect(client)

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		utils.Sugar.Fatalf("creating indexes: %v", err)
	}

	h := handlers.New(store.NewMongo(db), cfg)
	router := routes.SetupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Sugar.Infof("server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Sugar.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Sugar.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.Sugar.Errorf("forced shutdown: %v", err)
	}

	utils.Sugar.Info("server stopped")
}
