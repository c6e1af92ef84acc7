//go:build !protogen

package hours

import (
	"log/slog"

	"github.com/agendafacil/platform/services/booking-service/internal/slotgrid"
)

func NewCompanyHoursProvider(_ *slog.Logger, _ string) (Provider, error) {
	return NewStaticProvider(slotgrid.DefaultHours()), nil
}
