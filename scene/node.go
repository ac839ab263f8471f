package scene

import (
	"earth-render/core"
	"earth-render/math"
)

// Node represents an object in the scene graph
type Node struct {
	Name      string
	Transform core.Transform
	Parent    *Node
	Children  []*Node
	Mesh      *Mesh
	Visible   bool
	Id        uint32
}

var nodeIdCounter uint32 = 0

func NewNode(name string) *Node {
	nodeIdCounter++
	return &Node{
		Name:      name,
		Transform: core.NewTransform(),
		Children:  make([]*Node, 0),
		Visible:   true,
		Id:        nodeIdCounter,
	}
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldTransform composes the rotations and translations of every ancestor
// with this node's own. Scale is not inherited: it stays the node's local
// Transform.Scale, which the material uploads on its own.
func (n *Node) WorldTransform() core.Transform {
	t := n.Transform
	for p := n.Parent; p != nil; p = p.Parent {
		t.Position = p.Transform.Rotation.RotateVector(t.Position).Add(p.Transform.Position)
		t.Rotation = p.Transform.Rotation.Mul(t.Rotation).Normalize()
	}
	return t
}

func (n *Node) SetPosition(pos math.Vec3) {
	n.Transform.Position = pos
}

func (n *Node) SetRotation(rot math.Quaternion) {
	n.Transform.Rotation = rot
}

func (n *Node) SetScale(scale math.Vec3) {
	n.Transform.Scale = scale
}

func (n *Node) Rotate(axis math.Vec3, angle float32) {
	rotation := math.QuaternionFromAxisAngle(axis, angle)
	n.Transform.Rotation = n.Transform.Rotation.Mul(rotation).Normalize()
}

// Traverse visits all nodes in the graph
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// Find finds a node by name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
