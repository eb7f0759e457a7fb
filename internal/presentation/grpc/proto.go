package grpc

// proto.go defines the gRPC server interface for vaddi/calculator/v1/calculator.proto.
// It stands in for buf-generated code; messages travel with the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "vaddi.calculator.v1.CalculatorService"

// CalculateRequest is the wire form of an interest calculation. Monetary and
// rate values are decimal strings.
type CalculateRequest struct {
	InterestType            string `json:"interest_type"`
	RateType                string `json:"rate_type"`
	Amount                  string `json:"amount"`
	InterestRate            string `json:"interest_rate"`
	DurationType            string `json:"duration_type"`
	Years                   int32  `json:"years"`
	Months                  int32  `json:"months"`
	Days                    int32  `json:"days"`
	StartDate               string `json:"start_date"`
	EndDate                 string `json:"end_date"`
	CompoundFrequency       string `json:"compound_frequency"`
	CompoundFrequencyMonths int32  `json:"compound_frequency_months"`
	Currency                string `json:"currency"`
}

// GetCalculationRequest asks for a stored calculation.
type GetCalculationRequest struct {
	ID string `json:"id"`
}

// CalculationMsg is the wire form of a calculation result.
type CalculationMsg struct {
	ID                      string `json:"id"`
	InterestType            string `json:"interest_type"`
	RateType                string `json:"rate_type"`
	Amount                  string `json:"amount"`
	InterestRate            string `json:"interest_rate"`
	AnnualRate              string `json:"annual_rate"`
	DurationType            string `json:"duration_type"`
	Years                   int32  `json:"years"`
	Months                  int32  `json:"months"`
	Days                    int32  `json:"days"`
	FractionalYears         string `json:"fractional_years"`
	CompoundFrequencyMonths int32  `json:"compound_frequency_months,omitempty"`
	Interest                string `json:"interest"`
	TotalPayable            string `json:"total_payable"`
	Currency                string `json:"currency"`
	Cached                  bool   `json:"cached"`
	CreatedAt               string `json:"created_at"`
}

// CalculatorServiceServer is the server API for CalculatorService.
type CalculatorServiceServer interface {
	Calculate(context.Context, *CalculateRequest) (*CalculationMsg, error)
	GetCalculation(context.Context, *GetCalculationRequest) (*CalculationMsg, error)
	mustEmbedUnimplementedCalculatorServiceServer()
}

// UnimplementedCalculatorServiceServer provides forward-compatible default implementations.
type UnimplementedCalculatorServiceServer struct{}

func (UnimplementedCalculatorServiceServer) Calculate(context.Context, *CalculateRequest) (*CalculationMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Calculate not implemented")
}
func (UnimplementedCalculatorServiceServer) GetCalculation(context.Context, *GetCalculationRequest) (*CalculationMsg, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCalculation not implemented")
}
func (UnimplementedCalculatorServiceServer) mustEmbedUnimplementedCalculatorServiceServer() {}

// RegisterCalculatorServiceServer registers the CalculatorServiceServer with the gRPC server.
func RegisterCalculatorServiceServer(s grpclib.ServiceRegistrar, srv CalculatorServiceServer) {
	s.RegisterService(&_CalculatorService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CalculatorService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CalculatorServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Calculate", Handler: _CalculatorService_Calculate_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "GetCalculation", Handler: _CalculatorService_GetCalculation_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "vaddi/calculator/v1/calculator.proto",
}

//nolint:revive,errcheck // gRPC handler registration
func _CalculatorService_Calculate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CalculateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServiceServer).Calculate(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Calculate",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculatorServiceServer).Calculate(ctx, req.(*CalculateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CalculatorService_GetCalculation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCalculationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServiceServer).GetCalculation(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/GetCalculation",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculatorServiceServer).GetCalculation(ctx, req.(*GetCalculationRequest))
	}
	return interceptor(ctx, in, info, handler)
}
