package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"newsdesk/config"
	"newsdesk/controllers"
	"newsdesk/router"
	"newsdesk/services"
)

func main() {
	config.InitConfig()

	// Run database migrations
	config.MigrateDB()

	controllers.SetNewsClient(services.NewNewsAPIClient(
		config.AppConfig.NewsAPI.Key,
		config.AppConfig.NewsAPI.BaseURL,
	))

	r := router.InitRouter()
	port := config.AppConfig.App.Port
	if port == "" {
		port = ":8080"
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logrus.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server Shutdown: %v", err)
	}
	logrus.Info("Server exiting")
}
