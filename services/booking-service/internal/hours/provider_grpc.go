//go:build protogen

package hours

import (
	"context"
	"log/slog"
	"time"

	"github.com/agendafacil/platform/libs/grpcx"
	companyv1 "github.com/agendafacil/platform/protos/gen/company/v1"
	"github.com/agendafacil/platform/services/booking-service/internal/slotgrid"
)

type grpcProvider struct {
	client companyv1.CompanyServiceClient
	logger *slog.Logger
}

// NewCompanyHoursProvider dials company-service. An empty addr falls
// back to the static default hours.
func NewCompanyHoursProvider(logger *slog.Logger, addr string) (Provider, error) {
	if addr == "" {
		return NewStaticProvider(slotgrid.DefaultHours()), nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcProvider{client: companyv1.NewCompanyServiceClient(conn), logger: logger}, nil
}

func (p *grpcProvider) BusinessHours(ctx context.Context, companyID string) (slotgrid.HoursSource, error) {
	resp, err := p.client.GetBusinessHours(ctx, &companyv1.BusinessHoursRequest{CompanyId: companyID})
	if err != nil {
		return slotgrid.HoursSource{}, err
	}
	var src slotgrid.HoursSource
	for _, d := range resp.GetDays() {
		wd := int(d.GetWeekday())
		if wd < 0 || wd > 6 {
			continue
		}
		src.Hours[wd] = slotgrid.DayHours{Open: int(d.GetOpenHour()), Close: int(d.GetCloseHour())}
	}
	return src, nil
}
