package main

import (
	"fmt"
	"os"

	"github.com/abgdnv/product-grpc/internal/cli"
)

func main() {
	if err := cli.Execute(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
