package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/o0olele/gridnav-go/builder"
	"github.com/o0olele/gridnav-go/math32"
	"github.com/o0olele/gridnav-go/volume"
)

func parseVector3(s string) (math32.Vector3, error) {
	var v math32.Vector3
	if _, err := fmt.Sscanf(s, "%f,%f,%f", &v.X, &v.Y, &v.Z); err != nil {
		return math32.Vector3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	return v, nil
}

func RouteCmd() *cobra.Command {
	var navFile string
	var startArg string
	var goalArg string
	var radius float32
	var halfHeight float32
	c := &cobra.Command{
		Use:   "route",
		Short: "query a path from a baked navigation file",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseVector3(startArg)
			if err != nil {
				return err
			}
			goal, err := parseVector3(goalArg)
			if err != nil {
				return err
			}

			vol, err := builder.LoadVolume(navFile, nil)
			if err != nil {
				return err
			}

			opts := volume.DefaultProbeOptions()
			if radius > 0 {
				opts.Radius = radius
			}
			if halfHeight > 0 {
				opts.HalfHeight = halfHeight
			}

			path, err := vol.FindPath(start, goal, opts)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(path)
		},
	}
	c.Flags().StringVar(&navFile, "nav", "nav.bin", "baked navigation file")
	c.Flags().StringVar(&startArg, "start", "0,0,0", "start position as x,y,z")
	c.Flags().StringVar(&goalArg, "goal", "0,0,0", "goal position as x,y,z")
	c.Flags().Float32Var(&radius, "radius", 0, "probe radius override")
	c.Flags().Float32Var(&halfHeight, "half-height", 0, "probe half height override")
	return c
}
