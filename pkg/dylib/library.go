// Package dylib loads Frei0r shared objects and binds their exported C
// symbols. It contains no plugin semantics - just symbol resolution and typed
// call surfaces over the raw entry points.
package dylib

import (
	"fmt"

	"github.com/ebitengine/purego"
	"github.com/sirupsen/logrus"

	"github.com/justyntemme/frei0rgo/pkg/f0r"
)

// Library is one loaded Frei0r shared object with its entry points bound.
// The optional update/update2 symbols are probed once at load time; a nil
// function pointer means the plugin does not export that symbol.
type Library struct {
	handle uintptr
	path   string

	init          func()
	deinit        func()
	pluginInfo    func(info uintptr)
	paramInfo     func(info uintptr, index int32)
	construct     func(width, height uint32) uintptr
	destruct      func(instance uintptr)
	getParamValue func(instance, param uintptr, index int32)
	setParamValue func(instance, param uintptr, index int32)
	update        func(instance uintptr, time float64, in, out uintptr)
	update2       func(instance uintptr, time float64, in1, in2, in3, out uintptr)
}

// Open dlopens the shared object at path and resolves the Frei0r entry
// points. It fails if the object cannot be opened or a required symbol is
// missing. Open does not call f0r_init; that is the caller's contract.
func Open(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("dylib: open %s: %w", path, err)
	}

	l := &Library{handle: handle, path: path}
	required := []struct {
		name string
		fptr any
	}{
		{f0r.InitSym, &l.init},
		{f0r.DeinitSym, &l.deinit},
		{f0r.PluginInfoSym, &l.pluginInfo},
		{f0r.ParamInfoSym, &l.paramInfo},
		{f0r.ConstructSym, &l.construct},
		{f0r.DestructSym, &l.destruct},
		{f0r.GetParamValueSym, &l.getParamValue},
		{f0r.SetParamValueSym, &l.setParamValue},
	}
	for _, sym := range required {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil || addr == 0 {
			_ = purego.Dlclose(handle)
			return nil, fmt.Errorf("dylib: %s: missing required symbol %s", path, sym.name)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}

	// Optional symbols: presence varies per plugin and is probed
	// independently. A plugin may export either, both, or neither.
	if addr, err := purego.Dlsym(handle, f0r.UpdateSym); err == nil && addr != 0 {
		purego.RegisterFunc(&l.update, addr)
	}
	if addr, err := purego.Dlsym(handle, f0r.Update2Sym); err == nil && addr != 0 {
		purego.RegisterFunc(&l.update2, addr)
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"update":  l.update != nil,
		"update2": l.update2 != nil,
	}).Debug("frei0r library loaded")

	return l, nil
}

// Path returns the path the library was loaded from.
func (l *Library) Path() string { return l.path }

// Init calls f0r_init.
func (l *Library) Init() { l.init() }

// Deinit calls f0r_deinit.
func (l *Library) Deinit() { l.deinit() }

// PluginInfo calls f0r_get_plugin_info; info must point to an f0r.PluginInfo.
func (l *Library) PluginInfo(info uintptr) { l.pluginInfo(info) }

// ParamInfo calls f0r_get_param_info for one parameter index; info must point
// to an f0r.ParamInfo.
func (l *Library) ParamInfo(info uintptr, index int32) { l.paramInfo(info, index) }

// Construct calls f0r_construct. A zero return means the plugin refused to
// build an instance.
func (l *Library) Construct(width, height uint32) uintptr {
	return l.construct(width, height)
}

// Destruct calls f0r_destruct.
func (l *Library) Destruct(instance uintptr) { l.destruct(instance) }

// GetParamValue calls f0r_get_param_value into the buffer at param.
func (l *Library) GetParamValue(instance, param uintptr, index int32) {
	l.getParamValue(instance, param, index)
}

// SetParamValue calls f0r_set_param_value from the buffer at param.
func (l *Library) SetParamValue(instance, param uintptr, index int32) {
	l.setParamValue(instance, param, index)
}

// HasUpdate reports whether the plugin exports f0r_update.
func (l *Library) HasUpdate() bool { return l.update != nil }

// HasUpdate2 reports whether the plugin exports f0r_update2.
func (l *Library) HasUpdate2() bool { return l.update2 != nil }

// Update calls f0r_update. Callers must check HasUpdate first.
func (l *Library) Update(instance uintptr, time float64, in, out uintptr) {
	l.update(instance, time, in, out)
}

// Update2 calls f0r_update2. Callers must check HasUpdate2 first.
func (l *Library) Update2(instance uintptr, time float64, in1, in2, in3, out uintptr) {
	l.update2(instance, time, in1, in2, in3, out)
}

// Close unloads the shared object. The Frei0r contract requires f0r_deinit
// to have been called before this; no call through the library is valid
// afterwards.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	if err := purego.Dlclose(l.handle); err != nil {
		return fmt.Errorf("dylib: close %s: %w", l.path, err)
	}
	l.handle = 0
	logrus.WithField("path", l.path).Debug("frei0r library unloaded")
	return nil
}
