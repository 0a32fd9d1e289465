package builder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/o0olele/gridnav-go/geometry"
	"github.com/o0olele/gridnav-go/math32"
	"github.com/o0olele/gridnav-go/octree"
	"github.com/o0olele/gridnav-go/scene"
)

var useCompression = true

// UseCompression toggles zstd compression for subsequently saved files.
// Load detects compression from the file itself, so the flag only affects
// writing.
func UseCompression(use bool) {
	useCompression = use
}

// zstd frames open with a fixed magic number, used to sniff compressed files.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Save validates and writes baked navigation data to a file.
func Save(data *VolumeData, filename string) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("invalid navigation data: %w", err)
	}

	buf := bytes.NewBuffer(nil)

	header := FileHeader{
		Magic:   FileMagic,
		Version: FileVersion,
	}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}

	if err := binary.Write(buf, binary.LittleEndian, data.Config); err != nil {
		return fmt.Errorf("failed to write config: %v", err)
	}

	if err := binary.Write(buf, binary.LittleEndian, data.MinCellSize); err != nil {
		return fmt.Errorf("failed to write min cell size: %v", err)
	}

	if err := binary.Write(buf, binary.LittleEndian, data.DepthLimit); err != nil {
		return fmt.Errorf("failed to write depth limit: %v", err)
	}

	if err := binary.Write(buf, binary.LittleEndian, uint32(len(data.Statics))); err != nil {
		return fmt.Errorf("failed to write static count: %v", err)
	}
	for i := range data.Statics {
		if err := writeStatic(buf, data.Statics[i]); err != nil {
			return fmt.Errorf("failed to write static: %v", err)
		}
	}

	if err := binary.Write(buf, binary.LittleEndian, uint32(len(data.Nodes))); err != nil {
		return fmt.Errorf("failed to write node count: %v", err)
	}

	for i := range data.Nodes {
		if err := binary.Write(buf, binary.LittleEndian, &data.Nodes[i]); err != nil {
			return fmt.Errorf("failed to write node: %v", err)
		}
	}

	content := buf.Bytes()
	if useCompression {
		content = compress(content)
	}

	if err := os.WriteFile(filename, content, 0644); err != nil {
		return fmt.Errorf("failed to write file: %v", err)
	}
	return nil
}

// Load reads baked navigation data from a file, decompressing when needed.
func Load(filename string) (*VolumeData, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}

	if bytes.HasPrefix(content, zstdMagic) {
		content, err = decompress(content)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress: %v", err)
		}
	}

	buf := bytes.NewBuffer(content)

	var header FileHeader
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %v", err)
	}
	if header.Magic != FileMagic {
		return nil, ErrBadMagic
	}
	if header.Version != FileVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, header.Version)
	}

	data := &VolumeData{}

	if err := binary.Read(buf, binary.LittleEndian, &data.Config); err != nil {
		return nil, fmt.Errorf("failed to read config: %v", err)
	}

	if err := binary.Read(buf, binary.LittleEndian, &data.MinCellSize); err != nil {
		return nil, fmt.Errorf("failed to read min cell size: %v", err)
	}

	if err := binary.Read(buf, binary.LittleEndian, &data.DepthLimit); err != nil {
		return nil, fmt.Errorf("failed to read depth limit: %v", err)
	}

	var staticCount uint32
	if err := binary.Read(buf, binary.LittleEndian, &staticCount); err != nil {
		return nil, fmt.Errorf("failed to read static count: %v", err)
	}
	if staticCount > 0 {
		data.Statics = make([]scene.StaticEntry, staticCount)
		for i := range data.Statics {
			static, err := readStatic(buf)
			if err != nil {
				return nil, fmt.Errorf("failed to read static: %v", err)
			}
			data.Statics[i] = static
		}
	}

	var nodeCount uint32
	if err := binary.Read(buf, binary.LittleEndian, &nodeCount); err != nil {
		return nil, fmt.Errorf("failed to read node count: %v", err)
	}

	data.Nodes = make([]octree.Node, nodeCount)
	for i := range data.Nodes {
		if err := binary.Read(buf, binary.LittleEndian, &data.Nodes[i]); err != nil {
			return nil, fmt.Errorf("failed to read node: %v", err)
		}
	}

	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt navigation data: %w", err)
	}
	return data, nil
}

// Geometry records open with their Shape tag so the reader can dispatch.
func writeStatic(buf *bytes.Buffer, static scene.StaticEntry) error {
	if err := binary.Write(buf, binary.LittleEndian, static.Category); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, static.Geometry.Shape()); err != nil {
		return err
	}

	switch shape := static.Geometry.(type) {
	case *geometry.Box:
		return binary.Write(buf, binary.LittleEndian, shape)
	case *geometry.Capsule:
		return binary.Write(buf, binary.LittleEndian, shape)
	case *geometry.Triangle:
		return binary.Write(buf, binary.LittleEndian, shape)
	case *geometry.ConvexMesh:
		return writeConvexMesh(buf, shape)
	default:
		return fmt.Errorf("unsupported geometry %T", static.Geometry)
	}
}

func writeConvexMesh(buf *bytes.Buffer, mesh *geometry.ConvexMesh) error {
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(mesh.Vertices))); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, mesh.Vertices); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(mesh.Faces))); err != nil {
		return err
	}
	for _, face := range mesh.Faces {
		if err := binary.Write(buf, binary.LittleEndian, uint32(len(face))); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.LittleEndian, face); err != nil {
			return err
		}
	}
	return nil
}

func readStatic(buf *bytes.Buffer) (scene.StaticEntry, error) {
	var static scene.StaticEntry
	if err := binary.Read(buf, binary.LittleEndian, &static.Category); err != nil {
		return static, err
	}

	var tag geometry.Shape
	if err := binary.Read(buf, binary.LittleEndian, &tag); err != nil {
		return static, err
	}

	switch tag {
	case geometry.ShapeBox:
		shape := &geometry.Box{}
		if err := binary.Read(buf, binary.LittleEndian, shape); err != nil {
			return static, err
		}
		static.Geometry = shape
	case geometry.ShapeCapsule:
		shape := &geometry.Capsule{}
		if err := binary.Read(buf, binary.LittleEndian, shape); err != nil {
			return static, err
		}
		static.Geometry = shape
	case geometry.ShapeTriangle:
		shape := &geometry.Triangle{}
		if err := binary.Read(buf, binary.LittleEndian, shape); err != nil {
			return static, err
		}
		static.Geometry = shape
	case geometry.ShapeConvexMesh:
		shape := &geometry.ConvexMesh{}
		if err := readConvexMesh(buf, shape); err != nil {
			return static, err
		}
		static.Geometry = shape
	default:
		return static, fmt.Errorf("unknown geometry tag %d", tag)
	}
	return static, nil
}

func readConvexMesh(buf *bytes.Buffer, mesh *geometry.ConvexMesh) error {
	var vertexCount uint32
	if err := binary.Read(buf, binary.LittleEndian, &vertexCount); err != nil {
		return err
	}
	mesh.Vertices = make([]math32.Vector3, vertexCount)
	if err := binary.Read(buf, binary.LittleEndian, mesh.Vertices); err != nil {
		return err
	}

	var faceCount uint32
	if err := binary.Read(buf, binary.LittleEndian, &faceCount); err != nil {
		return err
	}
	mesh.Faces = make([][]int32, faceCount)
	for i := range mesh.Faces {
		var indexCount uint32
		if err := binary.Read(buf, binary.LittleEndian, &indexCount); err != nil {
			return err
		}
		mesh.Faces[i] = make([]int32, indexCount)
		if err := binary.Read(buf, binary.LittleEndian, mesh.Faces[i]); err != nil {
			return err
		}
	}
	return nil
}

func compress(content []byte) []byte {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return content
	}
	defer enc.Close()
	return enc.EncodeAll(content, make([]byte, 0, len(content)/2))
}

func decompress(content []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(content, nil)
}

// FileInfo describes a baked navigation file.
type FileInfo struct {
	Filename    string          `json:"filename"`
	FileSize    int64           `json:"file_size"`
	Version     uint32          `json:"version"`
	Bounds      geometry.AABB   `json:"bounds"`
	Divisions   math32.Vector3i `json:"divisions"`
	CellSize    float32         `json:"cell_size"`
	NodeCount   int             `json:"node_count"`
	StaticCount int             `json:"static_count"`
	Compressed  bool            `json:"compressed"`
	ModTime     time.Time       `json:"mod_time"`
}

// Stat loads a navigation file and reports its layout and on-disk footprint.
func Stat(filename string) (*FileInfo, error) {
	stat, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %v", err)
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}
	compressed := bytes.HasPrefix(raw, zstdMagic)

	data, err := Load(filename)
	if err != nil {
		return nil, err
	}

	lat := data.Config.Lattice()
	return &FileInfo{
		Filename:    filename,
		FileSize:    stat.Size(),
		Version:     FileVersion,
		Bounds:      lat.Bounds(),
		Divisions:   data.Config.Divisions,
		CellSize:    data.Config.CellSize,
		NodeCount:   len(data.Nodes),
		StaticCount: len(data.Statics),
		Compressed:  compressed,
		ModTime:     stat.ModTime(),
	}, nil
}
