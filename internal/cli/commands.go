package cli

import (
	"fmt"
	"strconv"

	"github.com/abgdnv/product-grpc/internal/client"
	"github.com/spf13/cobra"
)

type productFlags struct {
	name        string
	description string
	price       float64
	quantity    int32
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().StringVar(&f.description, "description", "", "product description")
	cmd.Flags().Float64Var(&f.price, "price", 0, "unit price")
	cmd.Flags().Int32Var(&f.quantity, "quantity", 0, "quantity in stock")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}
	return id, nil
}

func newCreateCmd(s *session) *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := s.client.CreateProduct(cmd.Context(), f.name, f.description, f.price, f.quantity)
			if err != nil {
				return err
			}
			return s.print(resp)
		},
	}
	f.register(cmd)
	return cmd
}

func newGetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := s.client.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.print(resp)
		},
	}
}

func newUpdateCmd(s *session) *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace all fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := s.client.UpdateProduct(cmd.Context(), id, f.name, f.description, f.price, f.quantity)
			if err != nil {
				return err
			}
			return s.print(resp)
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := s.client.DeleteProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.print(resp)
		},
	}
}

func newListCmd(s *session) *cobra.Command {
	var page, size int32
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := s.client.ListProducts(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			return s.print(resp)
		},
	}
	cmd.Flags().Int32Var(&page, "page", 0, "zero-based page number")
	cmd.Flags().Int32Var(&size, "size", 10, "page size")
	return cmd
}

func newDemoCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a create/get/update/list/delete walkthrough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.client.CheckHealth(cmd.Context()); err != nil {
				return err
			}
			return client.RunDemo(cmd.Context(), s.client, s.out)
		},
	}
}
