package client

import (
	"context"
	"fmt"
	"io"

	pb "github.com/abgdnv/product-grpc/api/gen/go/product/v1"
)

var demoProducts = []struct {
	name        string
	description string
	price       float64
	quantity    int32
}{
	{name: "Laptop Dell XPS 15", description: "High-performance laptop with Intel i7", price: 25000000, quantity: 10},
	{name: "iPhone 15 Pro", description: "Latest iPhone with A17 chip", price: 30000000, quantity: 15},
	{name: "Samsung Galaxy S24", description: "Flagship Android phone", price: 22000000, quantity: 20},
}

// RunDemo exercises every operation once and writes a readable transcript to out:
// three creates, a get, an update, a list, a delete of the second product,
// a repeated delete that reports success=false and a final list.
func RunDemo(ctx context.Context, c *ProductClient, out io.Writer) error {
	fmt.Fprintln(out, "1. Creating products...")
	ids := make([]int64, 0, len(demoProducts))
	for _, p := range demoProducts {
		resp, err := c.CreateProduct(ctx, p.name, p.description, p.price, p.quantity)
		if err != nil {
			return fmt.Errorf("create %q: %w", p.name, err)
		}
		ids = append(ids, resp.GetProduct().GetId())
		fmt.Fprintf(out, "Created: %s (ID: %d)\n", resp.GetProduct().GetName(), resp.GetProduct().GetId())
	}

	fmt.Fprintln(out, "\n2. Getting product by ID...")
	got, err := c.GetProduct(ctx, ids[0])
	if err != nil {
		return fmt.Errorf("get %d: %w", ids[0], err)
	}
	printProduct(out, got.GetProduct())

	fmt.Fprintln(out, "\n3. Updating product...")
	updated, err := c.UpdateProduct(ctx, ids[0],
		"Laptop Dell XPS 15 (Updated)", "High-performance laptop with Intel i9 and 32GB RAM", 28000000, 8)
	if err != nil {
		return fmt.Errorf("update %d: %w", ids[0], err)
	}
	printProduct(out, updated.GetProduct())

	fmt.Fprintln(out, "\n4. Listing all products...")
	if err := printList(ctx, c, out); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n5. Deleting product...")
	for range 2 {
		deleted, err := c.DeleteProduct(ctx, ids[1])
		if err != nil {
			return fmt.Errorf("delete %d: %w", ids[1], err)
		}
		fmt.Fprintf(out, "Delete result: %s (success: %t)\n", deleted.GetMessage(), deleted.GetSuccess())
	}

	fmt.Fprintln(out, "\n6. Listing products after deletion...")
	return printList(ctx, c, out)
}

func printProduct(out io.Writer, p *pb.Product) {
	fmt.Fprintf(out, "  ID: %d\n  Name: %s\n  Description: %s\n  Price: %.2f\n  Quantity: %d\n",
		p.GetId(), p.GetName(), p.GetDescription(), p.GetPrice(), p.GetQuantity())
}

func printList(ctx context.Context, c *ProductClient, out io.Writer) error {
	list, err := c.ListProducts(ctx, 0, 10)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	fmt.Fprintf(out, "Total products: %d\n", list.GetTotal())
	for _, p := range list.GetProducts() {
		fmt.Fprintf(out, "  - %s | Price: %.2f | Qty: %d\n", p.GetName(), p.GetPrice(), p.GetQuantity())
	}
	return nil
}
