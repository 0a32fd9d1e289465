package geometry

import "github.com/o0olele/gridnav-go/math32"

// ConvexMesh is a convex mesh geometry
type ConvexMesh struct {
	Vertices []math32.Vector3 `json:"vertices"` // the vertices of the convex mesh
	Faces    [][]int32        `json:"faces"`    // the faces of the convex mesh, each face is an array of vertex indices
}

// GetBounds returns the bounding box of the convex mesh
func (cm *ConvexMesh) GetBounds() AABB {
	if len(cm.Vertices) == 0 {
		return AABB{}
	}

	min := cm.Vertices[0]
	max := cm.Vertices[0]

	for _, vertex := range cm.Vertices {
		if vertex.X < min.X {
			min.X = vertex.X
		}
		if vertex.Y < min.Y {
			min.Y = vertex.Y
		}
		if vertex.Z < min.Z {
			min.Z = vertex.Z
		}
		if vertex.X > max.X {
			max.X = vertex.X
		}
		if vertex.Y > max.Y {
			max.Y = vertex.Y
		}
		if vertex.Z > max.Z {
			max.Z = vertex.Z
		}
	}

	return AABB{min, max}
}

// IntersectsAABB checks if the convex mesh intersects with an AABB. The test
// is conservative: the hull's bounding box stands in for the exact hull.
func (cm *ConvexMesh) IntersectsAABB(aabb AABB) bool {
	bounds := cm.GetBounds()
	return bounds.Intersects(aabb)
}

// ContainsPoint checks if the point is inside the convex mesh
func (cm *ConvexMesh) ContainsPoint(point math32.Vector3) bool {
	// a point is inside a convex hull when it sits behind every face plane
	for _, face := range cm.Faces {
		if len(face) < 3 {
			continue // skip invalid face
		}

		v0 := cm.Vertices[face[0]]
		v1 := cm.Vertices[face[1]]
		v2 := cm.Vertices[face[2]]

		// face normal, assuming counter-clockwise winding
		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2)

		length := normal.Length()
		if length == 0 {
			continue // degenerate face
		}
		normal = normal.Scale(1.0 / length)

		toPoint := point.Sub(v0)
		if toPoint.Dot(normal) > 0 {
			return false
		}
	}

	return true
}

// Shape returns the wire tag for convex meshes.
func (cm *ConvexMesh) Shape() Shape {
	return ShapeConvexMesh
}
