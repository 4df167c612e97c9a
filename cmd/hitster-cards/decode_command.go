package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/hitster-cards/internal/identity"
)

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <scanned-url>",
		Short: "Decode the content of a scanned card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, err := identity.Decode(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Token: %s\n", decoded.Token)
			fmt.Fprintf(out, "URI:   %s\n", decoded.URI)
			return nil
		},
	}
}
