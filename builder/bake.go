package builder

import (
	"github.com/o0olele/gridnav-go/scene"
	"github.com/o0olele/gridnav-go/volume"
)

// Bake captures a built volume's static analysis for persistence. The world
// contributes the static scene records, nil bakes the octree alone.
func Bake(v *volume.Volume, world *scene.World) (*VolumeData, error) {
	if !v.Built() {
		return nil, volume.ErrNotBuilt
	}

	var statics []scene.StaticEntry
	if world != nil {
		statics = world.Statics()
	}

	tree := v.Octree()
	return &VolumeData{
		Config:      v.Config(),
		MinCellSize: tree.MinCellSize(),
		DepthLimit:  tree.DepthLimit(),
		Statics:     statics,
		Nodes:       tree.Nodes(),
	}, nil
}

// BakeAndSave bakes a built volume straight to a file.
func BakeAndSave(v *volume.Volume, world *scene.World, filename string) error {
	data, err := Bake(v, world)
	if err != nil {
		return err
	}
	return Save(data, filename)
}

// Restore turns baked data into a queryable volume without re-running static
// collision analysis. A non-nil world is loaded with the baked statics,
// replacing whatever it held, and serves the volume's dynamic probes. A nil
// world yields a static-only volume.
func Restore(data *VolumeData, world *scene.World) (*volume.Volume, error) {
	var source volume.OverlapSource
	if world != nil {
		world.ClearStatics()
		for _, static := range data.Statics {
			world.AddStatic(static.Geometry, static.Category)
		}
		source = world
	}

	v, err := volume.New(data.Config, source)
	if err != nil {
		return nil, err
	}
	if _, err := v.RestoreBuild(data.Nodes, data.MinCellSize, data.DepthLimit); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadVolume loads a baked file and restores it into a queryable volume.
func LoadVolume(filename string, world *scene.World) (*volume.Volume, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, err
	}
	return Restore(data, world)
}
