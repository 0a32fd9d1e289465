package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/o0olele/gridnav-go/builder"
	"github.com/o0olele/gridnav-go/config"
	"github.com/o0olele/gridnav-go/geometry"
	"github.com/o0olele/gridnav-go/scene"
	"github.com/o0olele/gridnav-go/volume"
)

// sceneShape is one entry of a JSON scene file.
type sceneShape struct {
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
	Category string          `json:"category,omitempty"`
}

func decodeShape(shape sceneShape) (geometry.Geometry, scene.Category, error) {
	var geom geometry.Geometry
	switch shape.Type {
	case "triangle":
		var triangle geometry.Triangle
		if err := json.Unmarshal(shape.Data, &triangle); err != nil {
			return nil, 0, fmt.Errorf("invalid triangle data: %w", err)
		}
		geom = &triangle
	case "box":
		var box geometry.Box
		if err := json.Unmarshal(shape.Data, &box); err != nil {
			return nil, 0, fmt.Errorf("invalid box data: %w", err)
		}
		geom = &box
	case "capsule":
		var capsule geometry.Capsule
		if err := json.Unmarshal(shape.Data, &capsule); err != nil {
			return nil, 0, fmt.Errorf("invalid capsule data: %w", err)
		}
		geom = &capsule
	case "convex_mesh":
		var convexMesh geometry.ConvexMesh
		if err := json.Unmarshal(shape.Data, &convexMesh); err != nil {
			return nil, 0, fmt.Errorf("invalid convex mesh data: %w", err)
		}
		geom = &convexMesh
	default:
		return nil, 0, fmt.Errorf("unknown geometry type %q", shape.Type)
	}

	category := scene.WorldStatic
	if shape.Category != "" {
		mask, err := scene.MaskFromNames([]string{shape.Category})
		if err != nil {
			return nil, 0, err
		}
		category = mask
	}
	return geom, category, nil
}

func loadScene(path string, world *scene.World) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var shapes []sceneShape
	if err := json.Unmarshal(raw, &shapes); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for i, shape := range shapes {
		geom, category, err := decodeShape(shape)
		if err != nil {
			return fmt.Errorf("%s: shape %d: %w", path, i, err)
		}
		world.AddStatic(geom, category)
	}
	return nil
}

func BakeCmd() *cobra.Command {
	var configFile string
	var sceneFile string
	var outFile string
	var noCompress bool
	c := &cobra.Command{
		Use:   "bake",
		Short: "build a navigation volume and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			world := scene.NewWorld(0)
			if sceneFile != "" {
				if err := loadScene(sceneFile, world); err != nil {
					return err
				}
			}

			vol, err := volume.New(cfg.Volume, world)
			if err != nil {
				return err
			}
			for _, warning := range vol.Warnings() {
				fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
			}

			stats, err := vol.Build()
			if err != nil {
				return err
			}

			if noCompress {
				builder.UseCompression(false)
			}
			if err := builder.BakeAndSave(vol, world, outFile); err != nil {
				return err
			}

			fmt.Printf("baked %s: %d cells, %d octree nodes, %d blocked leaves in %.1fms\n",
				outFile, stats.NodeCount, stats.OctreeNodeCount, stats.BlockedLeafCount, stats.BuildMillis)
			return nil
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "config file, built-in defaults when empty")
	c.Flags().StringVar(&sceneFile, "scene", "", "JSON scene description blocking the volume")
	c.Flags().StringVar(&outFile, "out", "nav.bin", "output navigation file")
	c.Flags().BoolVar(&noCompress, "no-compress", false, "write the snapshot uncompressed")
	return c
}
