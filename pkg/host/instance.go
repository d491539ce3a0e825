package host

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/justyntemme/frei0rgo/pkg/param"
	"github.com/justyntemme/frei0rgo/pkg/pixel"
)

// Instance is one constructed effect instance, bound to fixed output
// dimensions. Frames are caller-owned packed 32-bit pixel slices of length
// width*height; a nil frame is passed to the plugin as a null pointer, which
// source plugins require for their absent input.
type Instance struct {
	plugin    *Plugin
	ptr       uintptr
	width     int
	height    int
	rearrange bool
	destroyed bool
}

// Width returns the instance's output width in pixels.
func (inst *Instance) Width() int { return inst.width }

// Height returns the instance's output height in pixels.
func (inst *Instance) Height() int { return inst.height }

// Plugin returns the handle this instance was constructed from.
func (inst *Instance) Plugin() *Plugin { return inst.plugin }

// Rearranges reports whether frames are converted between the host's channel
// order and the plugin's on every update.
func (inst *Instance) Rearranges() bool { return inst.rearrange }

// Destroy invokes the native destructor. Exactly one native destruct happens
// no matter how often Destroy is called. The instance is unusable afterwards.
func (inst *Instance) Destroy() {
	if inst.destroyed {
		return
	}
	inst.destroyed = true
	inst.plugin.lib.Destruct(inst.ptr)
	inst.plugin.live.Add(-1)
}

// descriptor resolves a parameter key, either an int index or a string name.
func (inst *Instance) descriptor(key any) (param.Descriptor, error) {
	switch k := key.(type) {
	case int:
		if d, ok := inst.plugin.ParamByIndex(k); ok {
			return d, nil
		}
		return param.Descriptor{}, fmt.Errorf("%w: index %d", ErrUnknownParameter, k)
	case string:
		if d, ok := inst.plugin.Param(k); ok {
			return d, nil
		}
		return param.Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownParameter, k)
	default:
		return param.Descriptor{}, fmt.Errorf("%w: key must be an index or a name, not %T", ErrUnknownParameter, key)
	}
}

// Get reads a parameter value. key is an int index or a string name; both
// resolve to the same descriptor. The returned value is a bool, float64,
// param.Color, param.Position or string, per the parameter's declared type.
func (inst *Instance) Get(key any) (any, error) {
	if inst.destroyed {
		return nil, ErrDestroyed
	}
	d, err := inst.descriptor(key)
	if err != nil {
		return nil, err
	}
	s := param.NewScratch(d.Type)
	inst.plugin.lib.GetParamValue(inst.ptr, s.Addr(), int32(d.Index))
	v := s.Decode()
	runtime.KeepAlive(s)
	return v, nil
}

// Set writes a parameter value. The value's shape must match the declared
// parameter type or Set fails with ErrTypeMismatch.
func (inst *Instance) Set(key, value any) error {
	if inst.destroyed {
		return ErrDestroyed
	}
	d, err := inst.descriptor(key)
	if err != nil {
		return err
	}
	s, err := param.Encode(d.Type, value)
	if err != nil {
		return err
	}
	inst.plugin.lib.SetParamValue(inst.ptr, s.Addr(), int32(d.Index))
	runtime.KeepAlive(s)
	return nil
}

// Bool reads a bool parameter.
func (inst *Instance) Bool(key any) (bool, error) {
	v, err := inst.Get(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: parameter holds %T", ErrTypeMismatch, v)
	}
	return b, nil
}

// Double reads a double parameter.
func (inst *Instance) Double(key any) (float64, error) {
	v, err := inst.Get(key)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: parameter holds %T", ErrTypeMismatch, v)
	}
	return f, nil
}

// Color reads a colour parameter.
func (inst *Instance) Color(key any) (param.Color, error) {
	v, err := inst.Get(key)
	if err != nil {
		return param.Color{}, err
	}
	c, ok := v.(param.Color)
	if !ok {
		return param.Color{}, fmt.Errorf("%w: parameter holds %T", ErrTypeMismatch, v)
	}
	return c, nil
}

// Position reads a position parameter.
func (inst *Instance) Position(key any) (param.Position, error) {
	v, err := inst.Get(key)
	if err != nil {
		return param.Position{}, err
	}
	p, ok := v.(param.Position)
	if !ok {
		return param.Position{}, fmt.Errorf("%w: parameter holds %T", ErrTypeMismatch, v)
	}
	return p, nil
}

// String reads a string parameter.
func (inst *Instance) String(key any) (string, error) {
	v, err := inst.Get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: parameter holds %T", ErrTypeMismatch, v)
	}
	return s, nil
}

// Params snapshots every parameter value by name.
func (inst *Instance) Params() (map[string]any, error) {
	values := make(map[string]any, len(inst.plugin.Params()))
	for _, d := range inst.plugin.Params() {
		v, err := inst.Get(d.Index)
		if err != nil {
			return nil, err
		}
		values[d.Name] = v
	}
	return values, nil
}

// SetParams assigns a batch of parameter values by name.
func (inst *Instance) SetParams(values map[string]any) error {
	for name, v := range values {
		if err := inst.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

func (inst *Instance) checkFrame(frame []uint32) error {
	if frame != nil && len(frame) != inst.width*inst.height {
		return fmt.Errorf("%w: got %d pixels, want %d", ErrFrameSize, len(frame), inst.width*inst.height)
	}
	return nil
}

// stageIn returns the buffer to hand the plugin as an input frame: the
// caller's buffer untouched, or a converted scratch copy in the plugin's
// channel order. nil stays nil.
func (inst *Instance) stageIn(frame []uint32) []uint32 {
	if frame == nil || !inst.rearrange {
		return frame
	}
	scratch := make([]uint32, len(frame))
	pixel.SwapRBCopy(scratch, frame)
	return scratch
}

// stageOut returns the plugin's write target and a commit func that converts
// the result back into the caller's buffer. Without rearrangement the target
// is the caller's buffer and commit is a no-op.
func (inst *Instance) stageOut(frame []uint32) ([]uint32, func()) {
	if frame == nil || !inst.rearrange {
		return frame, func() {}
	}
	scratch := make([]uint32, len(frame))
	return scratch, func() { pixel.SwapRBCopy(frame, scratch) }
}

func frameAddr(frame []uint32) uintptr {
	if len(frame) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&frame[0]))
}

// Update processes one frame. time is a plugin-defined timestamp, passed
// through unvalidated. in may be nil for source plugins. It fails with
// ErrUnsupportedOperation when the plugin exports no f0r_update.
func (inst *Instance) Update(time float64, in, out []uint32) error {
	if inst.destroyed {
		return ErrDestroyed
	}
	if !inst.plugin.lib.HasUpdate() {
		return fmt.Errorf("%w: %q has no update", ErrUnsupportedOperation, inst.plugin.meta.Name)
	}
	if err := inst.checkFrame(in); err != nil {
		return err
	}
	if err := inst.checkFrame(out); err != nil {
		return err
	}

	stagedIn := inst.stageIn(in)
	stagedOut, commit := inst.stageOut(out)
	inst.plugin.lib.Update(inst.ptr, time, frameAddr(stagedIn), frameAddr(stagedOut))
	commit()
	runtime.KeepAlive(stagedIn)
	runtime.KeepAlive(stagedOut)
	return nil
}

// Update2 processes a frame from up to three inputs. When the plugin exports
// only f0r_update, a call with in2 and in3 both nil degrades to Update; any
// non-nil extra input fails with ErrUnsupportedOperation.
func (inst *Instance) Update2(time float64, in1, in2, in3, out []uint32) error {
	if inst.destroyed {
		return ErrDestroyed
	}
	if !inst.plugin.lib.HasUpdate2() {
		if inst.plugin.lib.HasUpdate() && in2 == nil && in3 == nil {
			return inst.Update(time, in1, out)
		}
		return fmt.Errorf("%w: %q has no update2", ErrUnsupportedOperation, inst.plugin.meta.Name)
	}
	for _, frame := range [][]uint32{in1, in2, in3, out} {
		if err := inst.checkFrame(frame); err != nil {
			return err
		}
	}

	staged1 := inst.stageIn(in1)
	staged2 := inst.stageIn(in2)
	staged3 := inst.stageIn(in3)
	stagedOut, commit := inst.stageOut(out)
	inst.plugin.lib.Update2(inst.ptr, time,
		frameAddr(staged1), frameAddr(staged2), frameAddr(staged3), frameAddr(stagedOut))
	commit()
	runtime.KeepAlive(staged1)
	runtime.KeepAlive(staged2)
	runtime.KeepAlive(staged3)
	runtime.KeepAlive(stagedOut)
	return nil
}
