// Package client is a typed wrapper around the ProductService gRPC stub.
package client

import (
	"context"
	"fmt"

	pb "github.com/abgdnv/product-grpc/api/gen/go/product/v1"
	"github.com/abgdnv/product-grpc/pkg/client/grpc/interceptors"
	"github.com/abgdnv/product-grpc/pkg/config"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type ProductClient struct {
	products pb.ProductServiceClient
	health   healthpb.HealthClient
}

// New creates a ProductClient over an existing connection.
func New(conn grpc.ClientConnInterface) *ProductClient {
	return &ProductClient{
		products: pb.NewProductServiceClient(conn),
		health:   healthpb.NewHealthClient(conn),
	}
}

// Dial opens a plaintext connection to the product service. Every unary call is bounded by cfg.Timeout.
func Dial(cfg config.GrpcClientConfig, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(interceptors.UnaryClientTimeoutInterceptor(cfg.Timeout)),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}, opts...)
	conn, err := grpc.NewClient(cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC client connection: %w", err)
	}
	return conn, nil
}

// CheckHealth reports an error unless the server answers SERVING.
func (c *ProductClient) CheckHealth(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("product service is %s", resp.GetStatus())
	}
	return nil
}

func (c *ProductClient) CreateProduct(ctx context.Context, name, description string, price float64, quantity int32) (*pb.ProductResponse, error) {
	return c.products.CreateProduct(ctx, &pb.CreateProductRequest{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	})
}

func (c *ProductClient) GetProduct(ctx context.Context, id int64) (*pb.ProductResponse, error) {
	return c.products.GetProduct(ctx, &pb.GetProductRequest{Id: id})
}

func (c *ProductClient) UpdateProduct(ctx context.Context, id int64, name, description string, price float64, quantity int32) (*pb.ProductResponse, error) {
	return c.products.UpdateProduct(ctx, &pb.UpdateProductRequest{
		Id:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	})
}

func (c *ProductClient) DeleteProduct(ctx context.Context, id int64) (*pb.DeleteProductResponse, error) {
	return c.products.DeleteProduct(ctx, &pb.DeleteProductRequest{Id: id})
}

func (c *ProductClient) ListProducts(ctx context.Context, page, size int32) (*pb.ListProductsResponse, error) {
	return c.products.ListProducts(ctx, &pb.ListProductsRequest{Page: page, Size: size})
}
