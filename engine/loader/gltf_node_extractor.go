package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfExtractNodes walks the default scene depth-first and returns every node in visit order.
// Documents without scenes are walked from every node that is not another node's child.
func gltfExtractNodes(p gltfParser) ([]Node, error) {
	doc := p.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	roots, err := gltfSceneRoots(doc)
	if err != nil {
		return nil, err
	}

	var out []Node
	visited := make(map[int]bool, len(doc.Nodes))

	var walk func(idx int, parent string, parentWorld mgl32.Mat4) error
	walk = func(idx int, parent string, parentWorld mgl32.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", idx)
		}
		if visited[idx] {
			return fmt.Errorf("node %d visited twice: hierarchy is not a tree", idx)
		}
		visited[idx] = true

		gn := &doc.Nodes[idx]
		n := Node{
			Name:        gn.Name,
			Index:       idx,
			Parent:      parent,
			ParentWorld: parentWorld,
		}
		n.Translation, n.Rotation, n.Scale = gltfNodeTRS(gn)

		if gn.Mesh != nil {
			bounds, err := gltfMeshBounds(p, *gn.Mesh)
			if err != nil {
				return fmt.Errorf("node %q: %w", gn.Name, err)
			}
			n.Bounds = bounds
			n.HasMesh = true
		}
		out = append(out, n)

		world := n.World()
		for _, child := range gn.Children {
			if err := walk(child, gn.Name, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := walk(root, "", mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func gltfSceneRoots(doc *gltfDocument) ([]int, error) {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil {
			idx = *doc.Scene
		}
		if idx < 0 || idx >= len(doc.Scenes) {
			return nil, fmt.Errorf("scene index %d out of range", idx)
		}
		return doc.Scenes[idx].Nodes, nil
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

// gltfNodeTRS returns the node's local translation, rotation and scale. A node authored
// with a matrix is decomposed; shear is not representable and is discarded.
func gltfNodeTRS(n *gltfNode) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	if n.Matrix != nil {
		m := mgl32.Mat4(*n.Matrix)
		t := m.Col(3).Vec3()
		s := mgl32.Vec3{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}
		rot := mgl32.Ident4()
		for c := 0; c < 3; c++ {
			if s[c] == 0 {
				continue
			}
			col := m.Col(c).Vec3().Mul(1 / s[c])
			rot.SetCol(c, col.Vec4(0))
		}
		return t, mgl32.Mat4ToQuat(rot).Normalize(), s
	}

	t := mgl32.Vec3{}
	if n.Translation != nil {
		t = mgl32.Vec3(*n.Translation)
	}
	r := mgl32.QuatIdent()
	if n.Rotation != nil {
		// glTF stores quaternions as (x, y, z, w).
		r = mgl32.Quat{W: n.Rotation[3], V: mgl32.Vec3{n.Rotation[0], n.Rotation[1], n.Rotation[2]}}.Normalize()
	}
	s := mgl32.Vec3{1, 1, 1}
	if n.Scale != nil {
		s = mgl32.Vec3(*n.Scale)
	}
	return t, r, s
}

// gltfMeshBounds unions the POSITION bounds of every primitive of a mesh. Accessor
// min/max are used when present; otherwise the vertex data is scanned.
func gltfMeshBounds(p gltfParser, meshIndex int) (common.AABB, error) {
	doc := p.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return common.AABB{}, fmt.Errorf("mesh index %d out of range", meshIndex)
	}

	var bounds common.AABB
	first := true
	grow := func(lo, hi mgl32.Vec3) {
		if first {
			bounds = common.AABB{Min: lo, Max: hi}
			first = false
			return
		}
		for i := 0; i < 3; i++ {
			bounds.Min[i] = min(bounds.Min[i], lo[i])
			bounds.Max[i] = max(bounds.Max[i], hi[i])
		}
	}

	for pi, prim := range doc.Meshes[meshIndex].Primitives {
		accIdx, ok := prim.Attributes["POSITION"]
		if !ok {
			continue
		}
		if accIdx < 0 || accIdx >= len(doc.Accessors) {
			return common.AABB{}, fmt.Errorf("primitive %d: accessor index %d out of range", pi, accIdx)
		}
		acc := &doc.Accessors[accIdx]
		if len(acc.Min) >= 3 && len(acc.Max) >= 3 {
			grow(mgl32.Vec3{acc.Min[0], acc.Min[1], acc.Min[2]}, mgl32.Vec3{acc.Max[0], acc.Max[1], acc.Max[2]})
			continue
		}

		positions, err := p.ReadVec3Accessor(accIdx)
		if err != nil {
			return common.AABB{}, fmt.Errorf("primitive %d: %w", pi, err)
		}
		for _, v := range positions {
			pt := mgl32.Vec3(v)
			grow(pt, pt)
		}
	}
	return bounds, nil
}
