package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"chalet-backend/config"
	"chalet-backend/controllers"
	"chalet-backend/routes"
	"chalet-backend/services"
	"chalet-backend/utils"
	"chalet-backend/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := config.ConnectDatabase(); err != nil {
		logrus.Fatalf("Failed to connect database: %v", err)
	}

	availabilitySvc := services.NewAvailabilityService(config.DB)
	pricingSvc := services.NewPricingService(config.DB)
	holdSvc := services.NewHoldService(config.DB)
	bookingSvc := services.NewBookingService(config.DB)
	blockageSvc := services.NewBlockageService(config.DB)
	rateSvc := services.NewRateService(config.DB)

	router := routes.SetupRouter(
		controllers.NewAvailabilityController(availabilitySvc),
		controllers.NewPricingController(pricingSvc),
		controllers.NewHoldController(holdSvc),
		controllers.NewBookingController(bookingSvc, holdSvc),
		controllers.NewBlockageController(blockageSvc),
		controllers.NewRateController(rateSvc),
	)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	expiryWorker := worker.NewHoldExpiryWorker(holdSvc, time.Minute)
	go expiryWorker.Start(workerCtx)

	port := utils.EnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server")
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Forced shutdown: %v", err)
	}
	logrus.Info("Server stopped")
}
