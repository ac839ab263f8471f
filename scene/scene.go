package scene

import (
	"earth-render/core"
	"earth-render/math"
)

// Scene manages a collection of nodes and the active camera
type Scene struct {
	Root     *Node
	Camera   *OrbitCamera
	Light    Light
	SkyColor core.Color
}

// LightMode selects where the scene light comes from.
type LightMode int

const (
	// LightStickToCamera places the light at the camera eye every frame.
	LightStickToCamera LightMode = iota
	// LightAbsolute keeps the light at Light.Position.
	LightAbsolute
)

// Light is the scene light handed to materials. Materials that compute their
// own lighting, like the Earth material, ignore it.
type Light struct {
	Mode     LightMode
	Position math.Vec3
}

func NewScene() *Scene {
	return &Scene{
		Root:     NewNode("Root"),
		Light:    Light{Mode: LightStickToCamera},
		SkyColor: core.ColorBlack,
	}
}

func (s *Scene) SetCamera(camera *OrbitCamera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	s.Root.RemoveChild(node)
}

// LightPosition resolves the effective light position for this frame.
func (s *Scene) LightPosition() math.Vec3 {
	if s.Light.Mode == LightStickToCamera && s.Camera != nil {
		return s.Camera.Eye()
	}
	return s.Light.Position
}

// GetVisibleNodes returns all nodes with meshes that are visible
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node

	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Mesh != nil {
			visible = append(visible, node)
		}
	})

	return visible
}
