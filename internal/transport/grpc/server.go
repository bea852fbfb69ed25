// Package grpc provides a gRPC server for the product service.
package grpc

import (
	"context"
	"errors"
	"log/slog"

	pb "github.com/abgdnv/product-grpc/api/gen/go/product/v1"
	perrors "github.com/abgdnv/product-grpc/internal/errors"
	"github.com/abgdnv/product-grpc/internal/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Server struct {
	// Embed the unimplemented server for forward compatibility
	pb.UnimplementedProductServiceServer
	service service.ProductService
}

func NewServer(service service.ProductService) *Server {
	return &Server{service: service}
}

func (s *Server) CreateProduct(ctx context.Context, req *pb.CreateProductRequest) (*pb.ProductResponse, error) {
	logger := slog.With(slog.String("rpc", "CreateProduct"), slog.String("name", req.GetName()))
	logger.DebugContext(ctx, "received grpc request")

	result, err := s.service.Create(ctx, service.ProductCreateDto{
		Name:        req.GetName(),
		Description: req.GetDescription(),
		Price:       req.GetPrice(),
		Quantity:    req.GetQuantity(),
	})
	if err != nil {
		return nil, toStatus(ctx, logger, "service.Create", err)
	}
	return toProductResponse(result), nil
}

func (s *Server) GetProduct(ctx context.Context, req *pb.GetProductRequest) (*pb.ProductResponse, error) {
	logger := slog.With(slog.String("rpc", "GetProduct"), slog.Int64("product_id", req.GetId()))
	logger.DebugContext(ctx, "received grpc request")

	result, err := s.service.FindByID(ctx, req.GetId())
	if err != nil {
		return nil, toStatus(ctx, logger, "service.FindByID", err)
	}
	return toProductResponse(result), nil
}

func (s *Server) UpdateProduct(ctx context.Context, req *pb.UpdateProductRequest) (*pb.ProductResponse, error) {
	logger := slog.With(slog.String("rpc", "UpdateProduct"), slog.Int64("product_id", req.GetId()))
	logger.DebugContext(ctx, "received grpc request")

	result, err := s.service.Update(ctx, service.ProductDto{
		ID:          req.GetId(),
		Name:        req.GetName(),
		Description: req.GetDescription(),
		Price:       req.GetPrice(),
		Quantity:    req.GetQuantity(),
	})
	if err != nil {
		return nil, toStatus(ctx, logger, "service.Update", err)
	}
	return toProductResponse(result), nil
}

func (s *Server) DeleteProduct(ctx context.Context, req *pb.DeleteProductRequest) (*pb.DeleteProductResponse, error) {
	logger := slog.With(slog.String("rpc", "DeleteProduct"), slog.Int64("product_id", req.GetId()))
	logger.DebugContext(ctx, "received grpc request")

	result, err := s.service.DeleteByID(ctx, req.GetId())
	if err != nil {
		return nil, toStatus(ctx, logger, "service.DeleteByID", err)
	}
	return &pb.DeleteProductResponse{
		Success: result.Success,
		Message: result.Message,
	}, nil
}

func (s *Server) ListProducts(ctx context.Context, req *pb.ListProductsRequest) (*pb.ListProductsResponse, error) {
	logger := slog.With(slog.String("rpc", "ListProducts"), slog.Int("page", int(req.GetPage())), slog.Int("size", int(req.GetSize())))
	logger.DebugContext(ctx, "received grpc request")

	page, err := s.service.FindAll(ctx, req.GetPage(), req.GetSize())
	if err != nil {
		return nil, toStatus(ctx, logger, "service.FindAll", err)
	}
	products := make([]*pb.Product, 0, len(page.Products))
	for _, p := range page.Products {
		products = append(products, toProto(p))
	}
	return &pb.ListProductsResponse{
		Products: products,
		Total:    page.Total,
	}, nil
}

// toStatus maps a service error to a gRPC status.
// Not-found keeps its message, everything else is hidden behind codes.Internal.
func toStatus(ctx context.Context, logger *slog.Logger, op string, err error) error {
	var notFound *perrors.NotFoundError
	if errors.As(err, &notFound) {
		logger.InfoContext(ctx, "product not found")
		return status.Error(codes.NotFound, notFound.Error())
	}
	logger.ErrorContext(ctx, op+" failed", slog.Any("error", err))
	return status.Error(codes.Internal, "internal server error")
}

func toProductResponse(result *service.ProductResult) *pb.ProductResponse {
	return &pb.ProductResponse{
		Product: toProto(result.Product),
		Message: result.Message,
	}
}

func toProto(p service.ProductDto) *pb.Product {
	return &pb.Product{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
}
