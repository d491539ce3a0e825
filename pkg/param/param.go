// Package param models Frei0r parameters on the host side: descriptors
// decoded from plugin metadata, the typed Go values a caller works with, and
// the codec between those values and the ABI's fixed binary encodings.
package param

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/justyntemme/frei0rgo/pkg/f0r"
)

// Descriptor describes one declared parameter. Index is the zero-based
// declaration order in the native library and is what every native parameter
// call is keyed by.
type Descriptor struct {
	Name        string
	Type        f0r.ParamType
	Explanation string
	Index       int
}

// Color is an RGB colour parameter value. The ABI carries no alpha; decoded
// colours always have A == 1.
type Color struct {
	R, G, B, A float32
}

// Position is a 2D position parameter value.
type Position = mgl64.Vec2

// TypeOf maps a host value to its parameter type. The second return is false
// for values no parameter type accepts.
func TypeOf(v any) (f0r.ParamType, bool) {
	switch v.(type) {
	case bool:
		return f0r.ParamBool, true
	case float64:
		return f0r.ParamDouble, true
	case Color:
		return f0r.ParamColor, true
	case Position:
		return f0r.ParamPosition, true
	case string:
		return f0r.ParamString, true
	default:
		return 0, false
	}
}
