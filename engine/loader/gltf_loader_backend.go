package loader

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfLoaderBackend imports glTF 2.0 and GLB files.
type gltfLoaderBackend struct{}

var _ loaderBackend = &gltfLoaderBackend{}

func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackend{}
}

func (b *gltfLoaderBackend) Load(path string) (*importedTemplate, error) {
	doc, err := readGLTFFile(path)
	if err != nil {
		return nil, err
	}
	return templateFromDocument(doc)
}

func (b *gltfLoaderBackend) LoadReader(r io.Reader, isGLB bool) (*importedTemplate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	doc, err := decodeGLTF(data, isGLB)
	if err != nil {
		return nil, err
	}
	return templateFromDocument(doc)
}

// templateFromDocument reads the root node's name and scale and the model space bounds
// across every POSITION attribute.
func templateFromDocument(doc *gltf.Document) (*importedTemplate, error) {
	t := &importedTemplate{
		Scale:  mgl32.Vec3{1, 1, 1},
		Meshes: len(doc.Meshes),
	}
	if root := rootNode(doc); root != nil {
		t.Name = root.Name
		t.Scale = nodeScale(root)
	}

	for mi, mesh := range doc.Meshes {
		if mesh == nil {
			continue
		}
		for pi, prim := range mesh.Primitives {
			if prim == nil {
				continue
			}
			idx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			lo, hi, count, err := positionBounds(doc, idx)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			t.Vertices += count
			if count > 0 {
				t.include(lo, hi)
			}
		}
	}
	return t, nil
}

// rootNode is the first root of the default scene, falling back to the first scene and
// then to node 0.
func rootNode(doc *gltf.Document) *gltf.Node {
	if len(doc.Nodes) == 0 {
		return nil
	}
	scene := 0
	if doc.Scene != nil {
		scene = *doc.Scene
	}
	if scene >= 0 && scene < len(doc.Scenes) && doc.Scenes[scene] != nil && len(doc.Scenes[scene].Nodes) > 0 {
		if n := doc.Scenes[scene].Nodes[0]; n >= 0 && n < len(doc.Nodes) {
			return doc.Nodes[n]
		}
	}
	return doc.Nodes[0]
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeScale reads the TRS scale, or the column lengths of a node that carries a matrix.
func nodeScale(n *gltf.Node) mgl32.Vec3 {
	if n.Matrix != ([16]float64{}) && n.Matrix != identityMatrix {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return mgl32.Vec3{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}
	}
	s := n.ScaleOrDefault()
	return mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}

// positionBounds uses the accessor's declared min/max, which the format requires for
// POSITION, and scans the data when they are missing.
func positionBounds(doc *gltf.Document, index int) (lo, hi mgl32.Vec3, count int, err error) {
	if index < 0 || index >= len(doc.Accessors) || doc.Accessors[index] == nil {
		return lo, hi, 0, fmt.Errorf("POSITION accessor %d out of range", index)
	}
	acc := doc.Accessors[index]
	if len(acc.Min) >= 3 && len(acc.Max) >= 3 {
		lo = mgl32.Vec3{float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])}
		hi = mgl32.Vec3{float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])}
		return lo, hi, acc.Count, nil
	}

	points, err := modeler.ReadPosition(doc, acc, nil)
	if err != nil {
		return lo, hi, 0, fmt.Errorf("failed to read POSITION accessor %d: %w", index, err)
	}
	if len(points) == 0 {
		return lo, hi, 0, nil
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		for c := 0; c < 3; c++ {
			lo[c] = min(lo[c], p[c])
			hi[c] = max(hi[c], p[c])
		}
	}
	return lo, hi, len(points), nil
}

// include grows the bounds to cover [lo, hi].
func (t *importedTemplate) include(lo, hi mgl32.Vec3) {
	if !t.HasBounds {
		t.Min, t.Max, t.HasBounds = lo, hi, true
		return
	}
	for c := 0; c < 3; c++ {
		t.Min[c] = min(t.Min[c], lo[c])
		t.Max[c] = max(t.Max[c], hi[c])
	}
}
