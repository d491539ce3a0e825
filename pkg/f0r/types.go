// Package f0r describes the Frei0r plugin ABI: the exported symbol set, the
// wire-level struct layouts and the integer codes native plugins use. It is
// purely descriptive - loading and calling live in pkg/dylib and pkg/host.
package f0r

// Protocol version this host speaks.
const (
	MajorVersion = 1
	MinorVersion = 2
)

// Kind is the plugin type declared in plugin metadata.
type Kind int32

const (
	Filter Kind = 0 // one input frame, one output frame
	Source Kind = 1 // no input frame
	Mixer2 Kind = 2 // two input frames
	Mixer3 Kind = 3 // three input frames
)

// Inputs returns the number of input frames a plugin of this kind consumes.
func (k Kind) Inputs() int {
	switch k {
	case Source:
		return 0
	case Mixer2:
		return 2
	case Mixer3:
		return 3
	default:
		return 1
	}
}

// ExpectsUpdate2 reports whether plugins of this kind conventionally export
// f0r_update2 rather than f0r_update. Symbol presence is still probed per
// plugin; this only encodes the protocol's convention.
func (k Kind) ExpectsUpdate2() bool {
	return k == Mixer2 || k == Mixer3
}

func (k Kind) String() string {
	switch k {
	case Filter:
		return "filter"
	case Source:
		return "source"
	case Mixer2:
		return "mixer2"
	case Mixer3:
		return "mixer3"
	default:
		return "unknown"
	}
}

// ColorModel is the packed-pixel channel order a plugin declares.
type ColorModel int32

const (
	BGRA8888 ColorModel = 0
	RGBA8888 ColorModel = 1
	Packed32 ColorModel = 2 // plugin-defined packed format, passed through untouched
)

func (m ColorModel) String() string {
	switch m {
	case BGRA8888:
		return "bgra8888"
	case RGBA8888:
		return "rgba8888"
	case Packed32:
		return "packed32"
	default:
		return "unknown"
	}
}

// ParamType is a parameter's declared value type.
type ParamType int32

const (
	ParamBool     ParamType = 0
	ParamDouble   ParamType = 1
	ParamColor    ParamType = 2
	ParamPosition ParamType = 3
	ParamString   ParamType = 4
)

func (t ParamType) String() string {
	switch t {
	case ParamBool:
		return "bool"
	case ParamDouble:
		return "double"
	case ParamColor:
		return "color"
	case ParamPosition:
		return "position"
	case ParamString:
		return "string"
	default:
		return "unknown"
	}
}

// MaxDimension is the largest width or height a Frei0r frame may have.
// Dimensions must also be multiples of 8.
const MaxDimension = 2048

// Exported symbol names. The first eight are required; UpdateSym and
// Update2Sym are optional and probed independently.
const (
	InitSym          = "f0r_init"
	DeinitSym        = "f0r_deinit"
	PluginInfoSym    = "f0r_get_plugin_info"
	ParamInfoSym     = "f0r_get_param_info"
	ConstructSym     = "f0r_construct"
	DestructSym      = "f0r_destruct"
	GetParamValueSym = "f0r_get_param_value"
	SetParamValueSym = "f0r_set_param_value"
	UpdateSym        = "f0r_update"
	Update2Sym       = "f0r_update2"
)
