package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/hitster-cards/internal/audio"
	"github.com/handiism/hitster-cards/internal/identity"
)

func newTagCommand() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "tag <file.mp3> <track-url>",
		Short: "Store a Spotify track link in an MP3 for use with --local",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ref := args[0], args[1]
			if _, err := identity.ParseReference(ref); err != nil {
				return err
			}
			if err := audio.WriteReference(path, audio.Tags{Reference: ref, Year: year}); err != nil {
				return err
			}

			tags, err := audio.ReadTags(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tagged %s: %s - %s (%s)\n", path, tags.Artist, tags.Title, tags.Reference)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Also set the release year")
	return cmd
}
