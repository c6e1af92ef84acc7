//go:build protogen

package grpcserver

import (
	"context"

	"github.com/agendafacil/platform/libs/db"
	companyv1 "github.com/agendafacil/platform/protos/gen/company/v1"
	"github.com/agendafacil/platform/services/company-service/internal/storage"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type server struct {
	companyv1.UnimplementedCompanyServiceServer
	pool *db.Pool
	repo *storage.Repository
}

func Register(grpcServer *grpc.Server, pool *db.Pool, repo *storage.Repository) {
	companyv1.RegisterCompanyServiceServer(grpcServer, &server{pool: pool, repo: repo})
}

// GetBusinessHours returns only the open weekdays. Consumers treat a
// missing weekday as closed.
func (s *server) GetBusinessHours(ctx context.Context, req *companyv1.BusinessHoursRequest) (*companyv1.BusinessHoursResponse, error) {
	resp := &companyv1.BusinessHoursResponse{CompanyId: req.GetCompanyId()}
	if s.repo == nil || req.GetCompanyId() == "" {
		return resp, nil
	}

	week, err := s.repo.ListBusinessHours(ctx, req.GetCompanyId())
	if err != nil {
		return nil, err
	}
	for _, d := range week {
		if !d.Open {
			continue
		}
		resp.Days = append(resp.Days, &companyv1.DayWindow{
			Weekday:   int32(d.Weekday),
			OpenHour:  int32(d.OpenHour),
			CloseHour: int32(d.CloseHour),
		})
	}
	return resp, nil
}

func (s *server) GetCompanyProfile(ctx context.Context, req *companyv1.CompanyProfileRequest) (*companyv1.CompanyProfileResponse, error) {
	resp := &companyv1.CompanyProfileResponse{CompanyId: req.GetCompanyId()}
	if s.repo == nil || req.GetCompanyId() == "" {
		return resp, nil
	}

	company, err := s.repo.GetCompany(ctx, req.GetCompanyId())
	if err != nil {
		if storage.IsNotFound(err) {
			return resp, nil
		}
		return nil, err
	}
	resp.Name = company.Name
	resp.Category = company.Category
	resp.Email = company.Email
	resp.Phone = company.Phone
	resp.CreatedAt = timestamppb.New(company.CreatedAt)
	return resp, nil
}
