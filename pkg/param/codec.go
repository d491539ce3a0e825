package param

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/justyntemme/frei0rgo/pkg/f0r"
)

// ErrTypeMismatch reports a host value whose shape does not match the
// descriptor's declared parameter type.
var ErrTypeMismatch = errors.New("param: value type does not match parameter type")

// Scratch is the call-owned native encoding of one parameter value. Its
// address is handed to f0r_get_param_value / f0r_set_param_value as the
// f0r_param_t pointer; it lives exactly as long as one native call.
type Scratch struct {
	typ f0r.ParamType

	f   float64           // bool and double
	col f0r.ColorValue    // color
	pos f0r.PositionValue // position
	str uintptr           // string: the char* slot native code reads or writes
	buf []byte            // backing bytes for an outgoing string
}

// NewScratch returns a zeroed scratch buffer for a get call.
func NewScratch(t f0r.ParamType) *Scratch {
	return &Scratch{typ: t}
}

// Encode returns a scratch buffer holding v in the native encoding for t.
// It fails with ErrTypeMismatch when v's shape does not fit t.
func Encode(t f0r.ParamType, v any) (*Scratch, error) {
	vt, ok := TypeOf(v)
	if !ok || vt != t {
		return nil, fmt.Errorf("%w: %T is not a %s value", ErrTypeMismatch, v, t)
	}

	s := &Scratch{typ: t}
	switch t {
	case f0r.ParamBool:
		if v.(bool) {
			s.f = 1.0
		}
	case f0r.ParamDouble:
		s.f = v.(float64)
	case f0r.ParamColor:
		c := v.(Color)
		s.col = f0r.ColorValue{R: c.R, G: c.G, B: c.B}
	case f0r.ParamPosition:
		p := v.(Position)
		s.pos = f0r.PositionValue{X: p[0], Y: p[1]}
	case f0r.ParamString:
		s.buf = f0r.CString(v.(string))
		s.str = uintptr(unsafe.Pointer(&s.buf[0]))
	}
	return s, nil
}

// Addr returns the address to pass as the native f0r_param_t pointer. The
// scratch must be kept alive across the native call (runtime.KeepAlive).
func (s *Scratch) Addr() uintptr {
	switch s.typ {
	case f0r.ParamColor:
		return uintptr(unsafe.Pointer(&s.col))
	case f0r.ParamPosition:
		return uintptr(unsafe.Pointer(&s.pos))
	case f0r.ParamString:
		return uintptr(unsafe.Pointer(&s.str))
	default:
		return uintptr(unsafe.Pointer(&s.f))
	}
}

// Decode converts the scratch contents back into a host value: bools decode
// true iff the stored float is >= 0.5, colours gain a fixed alpha of 1, and
// a string decodes the char* the native call stored (null becomes "").
func (s *Scratch) Decode() any {
	switch s.typ {
	case f0r.ParamBool:
		return s.f >= 0.5
	case f0r.ParamDouble:
		return s.f
	case f0r.ParamColor:
		return Color{R: s.col.R, G: s.col.G, B: s.col.B, A: 1}
	case f0r.ParamPosition:
		return Position{s.pos.X, s.pos.Y}
	default:
		return f0r.GoString(s.str)
	}
}
