package hours

import (
	"context"

	"github.com/agendafacil/platform/services/booking-service/internal/slotgrid"
)

// Provider resolves the business hours used to seed a service's slot
// grid. Implementations must be safe for concurrent use.
type Provider interface {
	BusinessHours(ctx context.Context, companyID string) (slotgrid.HoursSource, error)
}

type staticProvider struct {
	hours slotgrid.HoursSource
}

func NewStaticProvider(hours slotgrid.HoursSource) Provider {
	return &staticProvider{hours: hours}
}

func (p *staticProvider) BusinessHours(_ context.Context, _ string) (slotgrid.HoursSource, error) {
	return p.hours, nil
}
