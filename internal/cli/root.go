// Package cli implements productctl, a command line client for the product service.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/abgdnv/product-grpc/internal/client"
	"github.com/abgdnv/product-grpc/pkg/config"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

const (
	defaultAddr    = "localhost:9090"
	defaultTimeout = 5 * time.Second
)

// session carries the connection shared by all sub-commands of one invocation.
type session struct {
	cfg      config.GrpcClientConfig
	dialOpts []grpc.DialOption
	conn     *grpc.ClientConn
	client   *client.ProductClient
	out      io.Writer
}

// NewRootCmd builds the productctl command tree. Extra dial options are appended to the defaults.
func NewRootCmd(out io.Writer, dialOpts ...grpc.DialOption) *cobra.Command {
	s := &session{dialOpts: dialOpts, out: out}

	rootCmd := &cobra.Command{
		Use:           "productctl",
		Short:         "Command line client for the product gRPC service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := s.cfg.Validate(); err != nil {
				return err
			}
			conn, err := client.Dial(s.cfg, s.dialOpts...)
			if err != nil {
				return err
			}
			s.conn = conn
			s.client = client.New(conn)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if s.conn == nil {
				return nil
			}
			return s.conn.Close()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.PersistentFlags().StringVar(&s.cfg.Addr, "addr", defaultAddr, "product service gRPC address")
	rootCmd.PersistentFlags().DurationVar(&s.cfg.Timeout, "timeout", defaultTimeout, "per-call timeout")

	rootCmd.AddCommand(
		newCreateCmd(s),
		newGetCmd(s),
		newUpdateCmd(s),
		newDeleteCmd(s),
		newListCmd(s),
		newDemoCmd(s),
	)
	return rootCmd
}

// Execute runs the CLI
func Execute(out io.Writer, args []string) error {
	rootCmd := NewRootCmd(out)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func (s *session) print(msg proto.Message) error {
	b, err := protojson.MarshalOptions{Multiline: true, EmitUnpopulated: true}.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(s.out, string(b))
	return err
}
