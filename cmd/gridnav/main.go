package main

import (
	"os"

	"github.com/spf13/cobra"
)

var VERSION = "1.0.0"

func main() {
	root := &cobra.Command{
		Use:     "gridnav",
		Short:   "sparse voxel navigation toolkit",
		Version: VERSION,
	}
	root.AddCommand(ServeCmd())
	root.AddCommand(BakeCmd())
	root.AddCommand(RouteCmd())
	root.AddCommand(InfoCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
