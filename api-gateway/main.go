package main

import (
	"net/http"
	"os"
	"time"

	"cafe-menu/api-gateway/internal/gateway"
	"cafe-menu/config"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Fatal("failed to load .env")
	}
	logger := config.NewLogger(getEnv("LOG_LEVEL", "info"))
	log := logger.WithField("service", "api-gateway")

	port := getEnv("GATEWAY_PORT", "8080")
	handler := newHandler(gateway.Config{
		MenuSvcURL: getEnv("MENU_SVC_URL", "http://localhost:8081"),
		StaticDir:  getEnv("STATIC_DIR", "./frontend"),
	}, log)

	log.WithField("port", port).Info("API Gateway starting")
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("gateway stopped")
	}
}

func newHandler(cfg gateway.Config, log logrus.FieldLogger) http.Handler {
	gw := gateway.NewGateway(cfg, &http.Client{Timeout: 30 * time.Second}, log)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Admin-Session"},
	})
	return c.Handler(gw.SetupRoutes())
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
