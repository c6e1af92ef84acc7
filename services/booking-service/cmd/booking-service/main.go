package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agendafacil/platform/libs/config"
	"github.com/agendafacil/platform/libs/db"
	"github.com/agendafacil/platform/libs/httpx"
	"github.com/agendafacil/platform/libs/kafkax"
	otelx "github.com/agendafacil/platform/libs/otel"
	"github.com/agendafacil/platform/libs/runtime"
	"github.com/agendafacil/platform/services/booking-service/internal/consumer"
	"github.com/agendafacil/platform/services/booking-service/internal/handlers"
	"github.com/agendafacil/platform/services/booking-service/internal/hours"
	"github.com/agendafacil/platform/services/booking-service/internal/inbox"
	"github.com/agendafacil/platform/services/booking-service/internal/outbox"
	"github.com/agendafacil/platform/services/booking-service/internal/slotgrid"
	"github.com/agendafacil/platform/services/booking-service/internal/storage"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func parseReminderOffsets(raw string, logger *slog.Logger) []time.Duration {
	var offsets []time.Duration
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mins, err := strconv.Atoi(part)
		if err != nil || mins <= 0 {
			logger.Warn("invalid reminder offset", "value", part)
			continue
		}
		offsets = append(offsets, time.Duration(mins)*time.Minute)
	}
	if len(offsets) == 0 {
		offsets = []time.Duration{24 * time.Hour}
	}
	return offsets
}

func main() {
	service := config.String("SERVICE_NAME", "booking-service")
	port, err := config.Port("PORT", "8083")
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

	repo := storage.NewBookingRepository(pool)
	slotRepo := storage.NewSlotRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	offsets := parseReminderOffsets(config.String("REMINDER_OFFSETS_MINUTES", "1440,60"), logger)

	hoursProvider, err := hours.NewCompanyHoursProvider(logger, config.String("COMPANY_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("hours provider init failed; using defaults", "err", err)
		hoursProvider = hours.NewStaticProvider(slotgrid.DefaultHours())
	}

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	inboxRepo := inbox.NewRepository(pool)
	catalogTopic := config.String("KAFKA_CONSUME_TOPIC", "catalog.service.created.v1")
	if strings.TrimSpace(catalogTopic) != "" {
		consumerCfg := consumer.Config{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", "booking-service"),
			Topic:   catalogTopic,
		}
		// A new catalog service gets its 7-day slot grid seeded from the
		// provider's business hours.
		eventConsumer := consumer.New(logger, inboxRepo, consumerCfg, func(ctx context.Context, msg kafka.Message) error {
			var payload struct {
				ServiceID string `json:"service_id"`
				CompanyID string `json:"company_id"`
			}
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				logger.Error("invalid event payload", "err", err, "topic", msg.Topic)
				return nil
			}
			if payload.ServiceID == "" || payload.CompanyID == "" {
				logger.Error("missing required event fields", "topic", msg.Topic)
				return nil
			}

			exists, err := slotRepo.HasGrid(ctx, payload.ServiceID)
			if err != nil {
				return err
			}
			if exists {
				return nil
			}

			src, err := hoursProvider.BusinessHours(ctx, payload.CompanyID)
			if err != nil {
				logger.Warn("business hours fetch failed; using defaults", "err", err, "company_id", payload.CompanyID)
				src = slotgrid.DefaultHours()
			}
			slots := slotgrid.Generate(time.Now().UTC(), src)

			tx, err := pool.Begin(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = tx.Rollback(ctx) }()

			if err := slotRepo.InsertGrid(ctx, tx, payload.ServiceID, slots); err != nil {
				return err
			}
			if err := tx.Commit(ctx); err != nil {
				return err
			}
			logger.Info("slot grid generated", "service_id", payload.ServiceID, "slots", len(slots))
			return nil
		})
		go eventConsumer.Run(ctx)
	}

	opts := handlers.Options{
		StrictNotFound:    config.String("BOOKING_STRICT_NOT_FOUND", "false") == "true",
		StrictTransitions: config.String("BOOKING_STRICT_TRANSITIONS", "false") == "true",
	}
	bookingHandler := handlers.NewBookingHandler(repo, slotRepo, outboxRepo, logger, opts, offsets)
	slotHandler := handlers.NewSlotHandler(slotRepo, logger, opts.StrictNotFound)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/public/slots", slotHandler.List)
	mux.HandleFunc("/api/v1/public/book", bookingHandler.Create)
	mux.HandleFunc("/api/v1/slots/toggle", slotHandler.Toggle)
	mux.HandleFunc("/api/v1/slots/bulk", slotHandler.BulkSet)
	mux.HandleFunc("/api/v1/appointments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			bookingHandler.Remove(w, r)
			return
		}
		bookingHandler.List(w, r)
	})
	mux.HandleFunc("/api/v1/appointments/stats", bookingHandler.Stats)
	mux.HandleFunc("/api/v1/appointments/status", bookingHandler.SetStatus)
	mux.HandleFunc("/api/v1/appointments/cancel", bookingHandler.Cancel)
	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "booking")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
