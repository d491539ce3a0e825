package f0r

import "unsafe"

// PluginInfo mirrors f0r_plugin_info_t. Field order and types must match the
// C struct exactly; native code fills this through a raw pointer. Text fields
// are raw char* addresses - decode them with GoString.
type PluginInfo struct {
	Name          uintptr
	Author        uintptr
	PluginType    int32
	ColorModel    int32
	Frei0rVersion int32
	MajorVersion  int32
	MinorVersion  int32
	NumParams     int32
	Explanation   uintptr
}

// ParamInfo mirrors f0r_param_info_t.
type ParamInfo struct {
	Name        uintptr
	Type        int32
	Explanation uintptr
}

// ColorValue mirrors f0r_param_color_t: three 32-bit floats, no alpha.
type ColorValue struct {
	R, G, B float32
}

// PositionValue mirrors f0r_param_position_t: two 64-bit floats.
type PositionValue struct {
	X, Y float64
}

// GoString decodes a NUL-terminated C string at addr. A null address decodes
// to the empty string, never an error; the ABI allows null explanation and
// author pointers.
func GoString(addr uintptr) string {
	if addr == 0 {
		return ""
	}
	var n uintptr
	for *(*byte)(unsafe.Pointer(addr + n)) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(addr)), n))
}

// CString returns s as a NUL-terminated byte buffer. The buffer must be kept
// alive (runtime.KeepAlive) for as long as native code may read it.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}
