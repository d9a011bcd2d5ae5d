package common

import "strings"

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA     = 65  // A key (ASCII)
	KeyB     = 66  // B key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeyE     = 69  // E key (ASCII)
	KeyH     = 72  // H key (ASCII)
	KeyQ     = 81  // Q key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeyW     = 87  // W key (ASCII)
	KeyX     = 88  // X key (ASCII)
	KeyZ     = 90  // Z key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEnter = 257 // Enter key (GLFW)
	KeyEsc   = 256 // Escape key (GLFW)

	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)

	KeyBackspace = 259 // Backspace key (GLFW)
)

// keyNames maps the lower-case names accepted in configuration files to key codes.
var keyNames = map[string]uint32{
	"a":         KeyA,
	"b":         KeyB,
	"d":         KeyD,
	"e":         KeyE,
	"h":         KeyH,
	"q":         KeyQ,
	"s":         KeyS,
	"w":         KeyW,
	"x":         KeyX,
	"z":         KeyZ,
	"space":     KeySpace,
	"enter":     KeyEnter,
	"escape":    KeyEsc,
	"right":     KeyRight,
	"left":      KeyLeft,
	"down":      KeyDown,
	"up":        KeyUp,
	"backspace": KeyBackspace,
}

// KeyByName resolves a configuration key name (case-insensitive) to its key code.
//
// Parameters:
//   - name: the key name, e.g. "enter", "Left", "x"
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is not recognized
func KeyByName(name string) (uint32, bool) {
	code, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}
