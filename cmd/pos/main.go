package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/khushiag23/POS-System/internal/catalog"
	"github.com/khushiag23/POS-System/internal/messaging"
	"github.com/khushiag23/POS-System/internal/payment"
	"github.com/khushiag23/POS-System/internal/pos"
	"github.com/khushiag23/POS-System/internal/telemetry"
)

const serviceVersion = "0.1.0"

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "pos", serviceVersion, os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("pos", serviceVersion)
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	products, err := catalog.Load(os.Getenv("CATALOG_PATH"))
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	delay := payment.DefaultDelay
	if raw := os.Getenv("PAYMENT_DELAY"); raw != "" {
		delay, err = time.ParseDuration(raw)
		if err != nil {
			logger.Error("invalid PAYMENT_DELAY", "value", raw, "error", err)
			os.Exit(1)
		}
	}

	var confirmer payment.Confirmer = payment.NewSimulator(delay)
	if paymentServiceURL := os.Getenv("PAYMENT_SERVICE_URL"); paymentServiceURL != "" {
		httpClient := &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
		confirmer = payment.NewClient(paymentServiceURL, httpClient)
	}

	var opts []pos.Option
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		producer := messaging.NewProducer(brokers, messaging.OrderCompletedTopic)
		defer func() { _ = producer.Close() }()
		opts = append(opts, pos.WithPublisher(producer))
	}

	svc, err := pos.NewService(products, pos.NewStore(), confirmer, logger, opts...)
	if err != nil {
		logger.Error("failed to create pos service", "error", err)
		os.Exit(1)
	}
	handler := pos.NewHandler(svc, logger)

	mux := http.NewServeMux()
	handler.Register(mux, telemetry.WithHTTPRoute)
	mux.Handle("GET /metrics", metricsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "pos",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + delay,
	}

	go func() {
		logger.Info("starting pos service", "port", port, "products", len(products.Products()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second+delay)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
