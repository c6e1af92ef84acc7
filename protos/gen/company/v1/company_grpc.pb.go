// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.3.0
// - protoc             (unknown)
// source: company/v1/company.proto

package companyv1

import (
	context "context"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// This is a compile-time assertion to ensure that this generated file
// is compatible with the grpc package it is being compiled against.
// Requires gRPC-Go v1.32.0 or later.
const _ = grpc.SupportPackageIsVersion7

const (
	CompanyService_GetBusinessHours_FullMethodName  = "/company.v1.CompanyService/GetBusinessHours"
	CompanyService_GetCompanyProfile_FullMethodName = "/company.v1.CompanyService/GetCompanyProfile"
)

// CompanyServiceClient is the client API for CompanyService service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
type CompanyServiceClient interface {
	GetBusinessHours(ctx context.Context, in *BusinessHoursRequest, opts ...grpc.CallOption) (*BusinessHoursResponse, error)
	GetCompanyProfile(ctx context.Context, in *CompanyProfileRequest, opts ...grpc.CallOption) (*CompanyProfileResponse, error)
}

type companyServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCompanyServiceClient(cc grpc.ClientConnInterface) CompanyServiceClient {
	return &companyServiceClient{cc}
}

func (c *companyServiceClient) GetBusinessHours(ctx context.Context, in *BusinessHoursRequest, opts ...grpc.CallOption) (*BusinessHoursResponse, error) {
	out := new(BusinessHoursResponse)
	err := c.cc.Invoke(ctx, CompanyService_GetBusinessHours_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *companyServiceClient) GetCompanyProfile(ctx context.Context, in *CompanyProfileRequest, opts ...grpc.CallOption) (*CompanyProfileResponse, error) {
	out := new(CompanyProfileResponse)
	err := c.cc.Invoke(ctx, CompanyService_GetCompanyProfile_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CompanyServiceServer is the server API for CompanyService service.
// All implementations must embed UnimplementedCompanyServiceServer
// for forward compatibility
type CompanyServiceServer interface {
	GetBusinessHours(context.Context, *BusinessHoursRequest) (*BusinessHoursResponse, error)
	GetCompanyProfile(context.Context, *CompanyProfileRequest) (*CompanyProfileResponse, error)
	mustEmbedUnimplementedCompanyServiceServer()
}

// UnimplementedCompanyServiceServer must be embedded to have forward compatible implementations.
type UnimplementedCompanyServiceServer struct {
}

func (UnimplementedCompanyServiceServer) GetBusinessHours(context.Context, *BusinessHoursRequest) (*BusinessHoursResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBusinessHours not implemented")
}
func (UnimplementedCompanyServiceServer) GetCompanyProfile(context.Context, *CompanyProfileRequest) (*CompanyProfileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCompanyProfile not implemented")
}
func (UnimplementedCompanyServiceServer) mustEmbedUnimplementedCompanyServiceServer() {}

// UnsafeCompanyServiceServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to CompanyServiceServer will
// result in compilation errors.
type UnsafeCompanyServiceServer interface {
	mustEmbedUnimplementedCompanyServiceServer()
}

func RegisterCompanyServiceServer(s grpc.ServiceRegistrar, srv CompanyServiceServer) {
	s.RegisterService(&CompanyService_ServiceDesc, srv)
}

func _CompanyService_GetBusinessHours_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(BusinessHoursRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CompanyServiceServer).GetBusinessHours(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CompanyService_GetBusinessHours_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CompanyServiceServer).GetBusinessHours(ctx, req.(*BusinessHoursRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CompanyService_GetCompanyProfile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CompanyProfileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CompanyServiceServer).GetCompanyProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CompanyService_GetCompanyProfile_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CompanyServiceServer).GetCompanyProfile(ctx, req.(*CompanyProfileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CompanyService_ServiceDesc is the grpc.ServiceDesc for CompanyService service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var CompanyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "company.v1.CompanyService",
	HandlerType: (*CompanyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetBusinessHours",
			Handler:    _CompanyService_GetBusinessHours_Handler,
		},
		{
			MethodName: "GetCompanyProfile",
			Handler:    _CompanyService_GetCompanyProfile_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "company/v1/company.proto",
}
