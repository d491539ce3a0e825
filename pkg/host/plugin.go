// Package host drives Frei0r plugins: it owns a loaded library's lifecycle,
// decodes its metadata and parameter table, and constructs effect instances
// that process frames.
//
// Calls into one Plugin or Instance must be externally serialized; the native
// ABI is synchronous and single-threaded. Independent instances may run on
// separate goroutines.
package host

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/justyntemme/frei0rgo/pkg/dylib"
	"github.com/justyntemme/frei0rgo/pkg/f0r"
	"github.com/justyntemme/frei0rgo/pkg/param"
)

// Metadata is a plugin's decoded self-description, immutable after load.
type Metadata struct {
	Name          string
	Author        string
	Kind          f0r.Kind
	ColorModel    f0r.ColorModel
	Frei0rVersion int
	MajorVersion  int
	MinorVersion  int
	NumParams     int
	Explanation   string
}

// Plugin is one loaded Frei0r plugin. It owns the library handle exclusively:
// Close unloads it, and Close refuses while instances are alive.
type Plugin struct {
	lib  Binder
	meta Metadata

	// The parameter table is built lazily on first access and cached for
	// the handle's lifetime. The Once guards a racing first access.
	paramsOnce sync.Once
	params     []param.Descriptor
	byName     map[string]int

	live   atomic.Int32
	closed bool
}

// Open loads the shared object at path and initializes the plugin.
func Open(path string) (*Plugin, error) {
	lib, err := dylib.Open(path)
	if err != nil {
		return nil, err
	}
	return NewPlugin(lib), nil
}

// NewPlugin wraps an already-loaded library. It calls the library's global
// init and decodes its metadata; the returned Plugin takes ownership of lib.
func NewPlugin(lib Binder) *Plugin {
	lib.Init()

	var info f0r.PluginInfo
	lib.PluginInfo(uintptr(unsafe.Pointer(&info)))
	p := &Plugin{
		lib: lib,
		meta: Metadata{
			// The ABI guarantees a name pointer; the other text fields
			// may be null and decode to "".
			Name:          f0r.GoString(info.Name),
			Author:        f0r.GoString(info.Author),
			Kind:          f0r.Kind(info.PluginType),
			ColorModel:    f0r.ColorModel(info.ColorModel),
			Frei0rVersion: int(info.Frei0rVersion),
			MajorVersion:  int(info.MajorVersion),
			MinorVersion:  int(info.MinorVersion),
			NumParams:     int(info.NumParams),
			Explanation:   f0r.GoString(info.Explanation),
		},
	}
	runtime.KeepAlive(&info)
	return p
}

// Metadata returns the plugin's decoded metadata.
func (p *Plugin) Metadata() Metadata { return p.meta }

func (p *Plugin) prime() {
	p.params = make([]param.Descriptor, 0, p.meta.NumParams)
	p.byName = make(map[string]int, p.meta.NumParams)
	var info f0r.ParamInfo
	for i := 0; i < p.meta.NumParams; i++ {
		p.lib.ParamInfo(uintptr(unsafe.Pointer(&info)), int32(i))
		d := param.Descriptor{
			Name:        f0r.GoString(info.Name),
			Type:        f0r.ParamType(info.Type),
			Explanation: f0r.GoString(info.Explanation),
			Index:       i,
		}
		p.params = append(p.params, d)
		// Duplicate names resolve to the last declaration.
		p.byName[d.Name] = i
	}
	runtime.KeepAlive(&info)
}

// Params returns the plugin's parameter descriptors in declaration order.
// The table is queried from the native library once, on first access.
func (p *Plugin) Params() []param.Descriptor {
	p.paramsOnce.Do(p.prime)
	out := make([]param.Descriptor, len(p.params))
	copy(out, p.params)
	return out
}

// Param looks a parameter up by name. When two parameters declare the same
// name, the later declaration wins.
func (p *Plugin) Param(name string) (param.Descriptor, bool) {
	p.paramsOnce.Do(p.prime)
	i, ok := p.byName[name]
	if !ok {
		return param.Descriptor{}, false
	}
	return p.params[i], true
}

// ParamByIndex looks a parameter up by declaration index.
func (p *Plugin) ParamByIndex(index int) (param.Descriptor, bool) {
	p.paramsOnce.Do(p.prime)
	if index < 0 || index >= len(p.params) {
		return param.Descriptor{}, false
	}
	return p.params[index], true
}

func validDimension(n int) bool {
	return n > 0 && n <= f0r.MaxDimension && n%8 == 0
}

// Construct builds an effect instance bound to the given output dimensions.
// Dimensions are validated before any native call: both must be multiples of
// 8 in 1..2048. The instance must be destroyed before the plugin is closed.
func (p *Plugin) Construct(width, height int) (*Instance, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if !validDimension(width) || !validDimension(height) {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	ptr := p.lib.Construct(uint32(width), uint32(height))
	if ptr == 0 {
		return nil, fmt.Errorf("%w: %q at %dx%d", ErrConstructFailed, p.meta.Name, width, height)
	}
	p.live.Add(1)
	return &Instance{
		plugin: p,
		ptr:    ptr,
		width:  width,
		height: height,
		// The host's internal layout is BGRA-equivalent; only RGBA
		// plugins need their channels rearranged. Packed32 plugins get
		// their bytes untouched by contract.
		rearrange: p.meta.ColorModel == f0r.RGBA8888,
	}, nil
}

// Close calls the plugin's global deinit exactly once and unloads the
// library. It fails with ErrInstancesAlive while instances spawned from this
// handle have not been destroyed; the native ABI makes unloading under a
// live instance undefined behavior. Closing twice is a no-op.
func (p *Plugin) Close() error {
	if p.closed {
		return nil
	}
	if n := p.live.Load(); n > 0 {
		return fmt.Errorf("%w: %d not destroyed", ErrInstancesAlive, n)
	}
	p.closed = true
	p.lib.Deinit()
	return p.lib.Close()
}
