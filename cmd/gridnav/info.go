package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/o0olele/gridnav-go/builder"
)

func InfoCmd() *cobra.Command {
	var navFile string
	c := &cobra.Command{
		Use:   "info",
		Short: "describe a baked navigation file",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := builder.Stat(navFile)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
	c.Flags().StringVar(&navFile, "nav", "nav.bin", "baked navigation file")
	return c
}
