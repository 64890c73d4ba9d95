package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/khushiag23/POS-System/internal/payment"
	"github.com/khushiag23/POS-System/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "payment", "0.1.0", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	delay := payment.DefaultDelay
	if raw := os.Getenv("PAYMENT_DELAY"); raw != "" {
		delay, err = time.ParseDuration(raw)
		if err != nil {
			logger.Error("invalid PAYMENT_DELAY", "value", raw, "error", err)
			os.Exit(1)
		}
	}

	handler := payment.NewHandler(delay, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /confirm", telemetry.WithHTTPRoute(handler.HandleConfirm))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      otelhttp.NewHandler(mux, "payment"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + delay,
	}

	go func() {
		logger.Info("starting payment service", "port", port, "delay", delay.String())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
