package scene

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/Carmen-Shannon/oxy-console/engine/loader"
	"go.uber.org/zap"
)

// Role is what a model node is used for by the console.
type Role int

const (
	RoleNone Role = iota
	RoleButton
	RolePad
	RoleJoystick
	RoleScreen
)

// NamePolicy decides which model nodes become which controls. It is the single place
// that knows the naming conventions of the console model.
type NamePolicy struct {
	// ButtonPrefix selects buttons by name prefix, e.g. "Button".
	ButtonPrefix string `yaml:"button_prefix"`

	// PadName is the exact name of the directional pad node.
	PadName string `yaml:"pad"`

	// JoystickName is the exact name of the joystick node.
	JoystickName string `yaml:"joystick"`

	// ScreenName is the exact name of the node the UI surface is mapped onto.
	ScreenName string `yaml:"screen"`
}

// DefaultNamePolicy returns the naming conventions of the stock console model.
//
// Returns:
//   - NamePolicy: the default policy
func DefaultNamePolicy() NamePolicy {
	return NamePolicy{
		ButtonPrefix: "Button",
		PadName:      "D-Pad",
		JoystickName: "Joystick",
		ScreenName:   "Console_Screen",
	}
}

// Classify returns the role of a node name under this policy. Exact names take
// precedence over the button prefix.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - Role: the node's role, RoleNone if it is not part of the console
func (p NamePolicy) Classify(name string) Role {
	switch {
	case name == "":
		return RoleNone
	case name == p.PadName:
		return RolePad
	case name == p.JoystickName:
		return RoleJoystick
	case name == p.ScreenName:
		return RoleScreen
	case p.ButtonPrefix != "" && strings.HasPrefix(name, p.ButtonPrefix):
		return RoleButton
	default:
		return RoleNone
	}
}

// Discover runs the registration pass over a loaded model: every mesh node the policy
// recognises becomes a control with its authored pose as the rest pose.
//
// Parameters:
//   - nodes: the model's flattened nodes
//   - policy: the naming conventions
//   - options: functional options applied to the new scene
//
// Returns:
//   - Scene: the populated scene
//   - error: ErrDuplicateControl if two nodes share a control name or role
func Discover(nodes []loader.Node, policy NamePolicy, options ...SceneBuilderOption) (Scene, error) {
	s := NewScene(options...).(*scene)

	for _, n := range nodes {
		role := policy.Classify(n.Name)
		if role == RoleNone {
			continue
		}
		if role == RoleScreen {
			s.SetScreen(Anchor{Name: n.Name, World: n.World(), Bounds: n.Bounds})
			continue
		}
		if !n.HasMesh {
			s.logger.Debug("skipping control node without mesh", zap.String("node", n.Name))
			continue
		}

		c := control.NewControl(n.Name, roleKind(role),
			control.WithPose(control.NewPose(n.Translation, n.Rotation)),
			control.WithScale(n.Scale[0], n.Scale[1], n.Scale[2]),
			control.WithBounds(n.Bounds),
			control.WithParentTransform(n.ParentWorld),
		)
		if err := s.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register node %d: %w", n.Index, err)
		}
	}

	s.logger.Info("controls discovered",
		zap.Int("buttons", len(s.Buttons())),
		zap.Bool("pad", s.Pad() != nil),
		zap.Bool("joystick", s.Joystick() != nil),
		zap.Bool("screen", s.hasScreen),
	)
	return s, nil
}

func roleKind(r Role) control.Kind {
	switch r {
	case RolePad:
		return control.KindPad
	case RoleJoystick:
		return control.KindJoystick
	default:
		return control.KindButton
	}
}
