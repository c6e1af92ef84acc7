//go:build !protogen

package main

import (
	"context"
	"log/slog"

	"github.com/agendafacil/platform/libs/db"
	"github.com/agendafacil/platform/services/company-service/internal/storage"
)

func startGrpcServer(_ context.Context, _ *slog.Logger, _ *db.Pool, _ *storage.Repository) error {
	return nil
}
