package host

// Binder is the narrow surface the host needs from a loaded Frei0r library.
// dylib.Library is the production implementation; tests substitute in-process
// stubs. The uintptr arguments are raw native addresses: opaque instance
// pointers, f0r_param_t buffers and frame bases.
type Binder interface {
	Init()
	Deinit()
	PluginInfo(info uintptr)
	ParamInfo(info uintptr, index int32)
	Construct(width, height uint32) uintptr
	Destruct(instance uintptr)
	GetParamValue(instance, param uintptr, index int32)
	SetParamValue(instance, param uintptr, index int32)

	// Capability record: probed once at load time, never re-probed per call.
	HasUpdate() bool
	HasUpdate2() bool
	Update(instance uintptr, time float64, in, out uintptr)
	Update2(instance uintptr, time float64, in1, in2, in3, out uintptr)

	Close() error
}
