package cli

import (
	"errors"
	"fmt"

	"github.com/GevorkovG/go-shortener-digest/internal/shortener"
	"github.com/spf13/cobra"
)

// ErrNotFound - пути нет в хранилище.
var ErrNotFound = errors.New("not found")

func newCreateCmd(open Opener) *cobra.Command {
	var encoded bool

	cmd := &cobra.Command{
		Use:   "create <url>",
		Short: "Shorten a URL and store it",
		Long: `Validates the URL (http:// is upgraded to https://), stores it under its
SHA-512 path and prints the path.

Example:
  shortctl create http://example.com/page`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			if encoded {
				dst, err := shortener.ParseDestination(raw)
				if err != nil {
					return err
				}
				raw = dst
			}

			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			link, err := a.Shorten(cmd.Context(), raw)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Path: %s\nDestination: %s\n", link.Path, link.Destination)
			return nil
		},
	}

	cmd.Flags().BoolVar(&encoded, "encoded", false, "the URL argument is form-encoded")
	return cmd
}

func newResolveCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "Print the destination stored under a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !shortener.IsPath(path) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q is not a %d-character lowercase hex path\n", path, shortener.PathLength)
			}

			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			link, ok, err := a.Resolve(cmd.Context(), path)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: %w", path, ErrNotFound)
			}

			fmt.Fprintln(cmd.OutOrStdout(), link.Destination)
			return nil
		},
	}
}

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest <url>",
		Short: "Print the path for a URL without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := shortener.Normalize(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), shortener.Digest(dst))
			return nil
		},
	}
}
