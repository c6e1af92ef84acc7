package main

import (
	"context"
	"net/http"
	"time"

	"github.com/agendafacil/platform/libs/config"
	"github.com/agendafacil/platform/libs/db"
	"github.com/agendafacil/platform/libs/httpx"
	otelx "github.com/agendafacil/platform/libs/otel"
	"github.com/agendafacil/platform/libs/runtime"
	"github.com/agendafacil/platform/services/company-service/internal/cnpj"
	"github.com/agendafacil/platform/services/company-service/internal/handlers"
	"github.com/agendafacil/platform/services/company-service/internal/outbox"
	"github.com/agendafacil/platform/services/company-service/internal/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	service := config.String("SERVICE_NAME", "company-service")
	port, err := config.Port("PORT", "8082")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	jwtSecret, err := config.RequiredString("JWT_SECRET")
	if err != nil {
		panic(err)
	}

	repo := storage.NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	cnpjClient := cnpj.NewClient(config.String("CNPJ_API_URL", ""))
	httpHandler := handlers.New(repo, outboxRepo, cnpjClient, logger, jwtSecret)

	publisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers: config.String("KAFKA_BROKERS", ""),
	})
	go publisher.Run(ctx)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
	)
	mux.HandleFunc("/api/v1/companies/register", httpHandler.Register)
	mux.HandleFunc("/api/v1/companies/login", httpHandler.Login)
	mux.HandleFunc("/api/v1/companies/profile", httpHandler.Profile)
	mux.HandleFunc("/api/v1/public/companies", httpHandler.ListCompanies)
	mux.HandleFunc("/api/v1/public/companies/get", httpHandler.GetCompany)
	mux.HandleFunc("/api/v1/public/cnpj", httpHandler.LookupCNPJ)
	mux.HandleFunc("/api/v1/public/services", httpHandler.ListServices)
	mux.HandleFunc("/api/v1/catalog/services", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			httpHandler.DeleteService(w, r)
			return
		}
		httpHandler.CreateService(w, r)
	})
	mux.HandleFunc("/api/v1/catalog/hours", httpHandler.Hours)

	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "company")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	if err := startGrpcServer(ctx, logger, pool, repo); err != nil {
		logger.Error("grpc server failed to start", "err", err)
	}

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
