package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/agendafacil/platform/libs/config"
	"github.com/agendafacil/platform/libs/db"
	"github.com/agendafacil/platform/libs/httpx"
	"github.com/agendafacil/platform/libs/kafkax"
	otelx "github.com/agendafacil/platform/libs/otel"
	"github.com/agendafacil/platform/libs/runtime"
	"github.com/agendafacil/platform/services/notification-service/internal/consumer"
	"github.com/agendafacil/platform/services/notification-service/internal/email"
	"github.com/agendafacil/platform/services/notification-service/internal/inbox"
	"github.com/agendafacil/platform/services/notification-service/internal/outbox"
	"github.com/agendafacil/platform/services/notification-service/internal/sms"
	"github.com/agendafacil/platform/services/notification-service/internal/storage"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type reminderPayload struct {
	AppointmentID string         `json:"appointment_id"`
	CompanyID     string         `json:"company_id"`
	Channel       string         `json:"channel"`
	Recipient     string         `json:"recipient"`
	RemindAt      string         `json:"remind_at"`
	TemplateData  map[string]any `json:"template_data"`
}

type bookedPayload struct {
	AppointmentID string `json:"appointment_id"`
	ServiceName   string `json:"service_name"`
	CompanyID     string `json:"company_id"`
	CompanyName   string `json:"company_name"`
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

func writeOutboxSent(ctx context.Context, pool *db.Pool, outboxRepo *outbox.Repository, appointmentID, companyID, channel, providerID string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if strings.TrimSpace(providerID) == "" {
		providerID = "unknown"
	}
	eventPayload, err := json.Marshal(map[string]any{
		"appointment_id": appointmentID,
		"company_id":     companyID,
		"channel":        channel,
		"provider_id":    providerID,
		"sent_at":        time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	if err := outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "notification",
		AggregateID:   appointmentID,
		EventType:     "notification.sent.v1",
		Payload:       eventPayload,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func writeOutboxFailed(ctx context.Context, pool *db.Pool, outboxRepo *outbox.Repository, appointmentID, companyID, channel, reason string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	eventPayload, err := json.Marshal(map[string]any{
		"appointment_id": appointmentID,
		"company_id":     companyID,
		"channel":        channel,
		"error_reason":   reason,
		"failed_at":      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	if err := outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "notification",
		AggregateID:   appointmentID,
		EventType:     "notification.failed.v1",
		Payload:       eventPayload,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func main() {
	service := config.String("SERVICE_NAME", "notification-service")
	port, err := config.Port("PORT", "8086")
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

	inboxRepo := inbox.NewRepository(pool)
	notificationsRepo := storage.NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	smtpHost := config.String("SMTP_HOST", "mailpit")
	smtpPort := config.String("SMTP_PORT", "1025")
	smtpFrom := config.String("SMTP_FROM", "no-reply@agendafacil.local")
	emailSender := email.NewSMTPSender(smtpHost, smtpPort, smtpFrom)
	emailProviderID := "smtp"

	smsProvider := strings.ToLower(config.String("SMS_PROVIDER", "noop"))
	smsWebhookURL := config.String("SMS_WEBHOOK_URL", "")
	smsWebhookToken := config.String("SMS_WEBHOOK_TOKEN", "")
	var smsSender sms.Sender
	switch smsProvider {
	case "webhook":
		smsSender = sms.NewWebhookSender(smsWebhookURL, smsWebhookToken)
	case "noop":
		smsSender = sms.NewNoopSender()
	default:
		smsSender = sms.NewWebhookSender(smsWebhookURL, smsWebhookToken)
	}

	brokers := config.String("KAFKA_BROKERS", "")
	groupID := config.String("KAFKA_GROUP_ID", "notification-service")
	failSuffix := config.String("NOTIFICATION_FAIL_SUFFIX", "")

	reminderConsumer := consumer.New(logger, inboxRepo, consumer.Config{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   config.String("KAFKA_REMINDER_TOPIC", "scheduler.reminder.due.v1"),
	}, func(ctx context.Context, msg kafka.Message) error {
		var payload reminderPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			logger.Error("invalid reminder payload", "err", err)
			return nil
		}
		if payload.AppointmentID == "" || payload.CompanyID == "" || payload.Channel == "" || payload.Recipient == "" || payload.RemindAt == "" {
			logger.Error("missing reminder fields")
			return nil
		}
		if _, err := time.Parse(time.RFC3339, payload.RemindAt); err != nil {
			logger.Error("invalid remind_at", "err", err)
			return nil
		}

		status := "sent"
		failureReason := ""
		if failSuffix != "" && strings.HasSuffix(payload.Recipient, failSuffix) {
			status = "failed"
			failureReason = "simulated failure"
		}

		serviceName, _ := payload.TemplateData["service_name"].(string)
		when := payload.RemindAt
		if d, ok := payload.TemplateData["date"].(string); ok {
			if t, ok := payload.TemplateData["time"].(string); ok {
				when = d + " " + t
			}
		}

		providerID := ""
		if status == "sent" {
			switch strings.ToLower(payload.Channel) {
			case "email":
				subject := "Appointment reminder"
				body := fmt.Sprintf("Reminder: your appointment is scheduled for %s.", when)
				if serviceName != "" {
					body = fmt.Sprintf("Reminder: %s is scheduled for %s.", serviceName, when)
				}
				if err := emailSender.Send(payload.Recipient, subject, body); err != nil {
					status = "failed"
					failureReason = err.Error()
					logger.Error("email send failed", "err", err, "recipient", payload.Recipient)
				} else {
					providerID = emailProviderID
				}
			case "sms":
				body := fmt.Sprintf("Reminder: appointment at %s.", when)
				if serviceName != "" {
					body = fmt.Sprintf("Reminder: %s at %s.", serviceName, when)
				}
				if err := smsSender.Send(ctx, payload.Recipient, body); err != nil {
					status = "failed"
					failureReason = err.Error()
					logger.Error("sms send failed", "err", err, "recipient", payload.Recipient)
				} else {
					providerID = smsSender.ProviderID()
				}
			default:
				status = "failed"
				failureReason = "unsupported channel: " + payload.Channel
				logger.Error("unsupported channel", "channel", payload.Channel)
			}
		}

		if err := notificationsRepo.Insert(ctx, storage.Notification{
			AppointmentID: payload.AppointmentID,
			CompanyID:     payload.CompanyID,
			Kind:          "reminder",
			Channel:       payload.Channel,
			Recipient:     payload.Recipient,
			Payload:       payload.TemplateData,
			Status:        status,
		}); err != nil {
			logger.Error("failed to persist notification", "err", err)
			return err
		}

		if status == "failed" {
			if err := writeOutboxFailed(ctx, pool, outboxRepo, payload.AppointmentID, payload.CompanyID, payload.Channel, failureReason); err != nil {
				logger.Error("failed to enqueue notification.failed", "err", err)
				return err
			}
		} else {
			if err := writeOutboxSent(ctx, pool, outboxRepo, payload.AppointmentID, payload.CompanyID, payload.Channel, providerID); err != nil {
				logger.Error("failed to enqueue notification.sent", "err", err)
				return err
			}
		}

		logger.Info("reminder processed", "appointment_id", payload.AppointmentID, "channel", payload.Channel, "status", status)
		return nil
	})
	go reminderConsumer.Run(ctx)

	bookedConsumer := consumer.New(logger, inboxRepo, consumer.Config{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   config.String("KAFKA_BOOKED_TOPIC", "booking.appointment.booked.v1"),
	}, func(ctx context.Context, msg kafka.Message) error {
		var payload bookedPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			logger.Error("invalid booking event", "err", err)
			return nil
		}
		if payload.AppointmentID == "" || payload.UserEmail == "" {
			return nil
		}

		subject := "Booking confirmed"
		body := fmt.Sprintf("Hi %s, your booking of %s with %s on %s at %s is confirmed.",
			payload.UserName, payload.ServiceName, payload.CompanyName, payload.Date, payload.Time)

		status := "sent"
		failureReason := ""
		if err := emailSender.Send(payload.UserEmail, subject, body); err != nil {
			status = "failed"
			failureReason = err.Error()
			logger.Error("confirmation email failed", "err", err, "recipient", payload.UserEmail)
		}

		if err := notificationsRepo.Insert(ctx, storage.Notification{
			AppointmentID: payload.AppointmentID,
			CompanyID:     payload.CompanyID,
			Kind:          "confirmation",
			Channel:       "email",
			Recipient:     payload.UserEmail,
			Payload: map[string]any{
				"service_name": payload.ServiceName,
				"company_name": payload.CompanyName,
				"date":         payload.Date,
				"time":         payload.Time,
			},
			Status: status,
		}); err != nil {
			logger.Error("failed to persist notification", "err", err)
			return err
		}

		if status == "failed" {
			return writeOutboxFailed(ctx, pool, outboxRepo, payload.AppointmentID, payload.CompanyID, "email", failureReason)
		}
		return writeOutboxSent(ctx, pool, outboxRepo, payload.AppointmentID, payload.CompanyID, "email", emailProviderID)
	})
	go bookedConsumer.Run(ctx)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "notification")
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

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
