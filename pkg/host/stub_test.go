package host

import (
	"unsafe"

	"github.com/justyntemme/frei0rgo/pkg/f0r"
)

// stubParam is one declared parameter of the stub library, holding its
// metadata C buffers and its stored native value.
type stubParam struct {
	name        []byte
	explanation []byte
	typ         f0r.ParamType

	f   float64
	col f0r.ColorValue
	pos f0r.PositionValue
	str []byte
}

// stubLib is an in-process Binder that behaves like a well-formed native
// plugin and counts every call, so tests can assert which native entry
// points ran. Its update copies the input frame to the output unchanged.
type stubLib struct {
	name        []byte
	author      []byte
	explanation []byte
	kind        f0r.Kind
	model       f0r.ColorModel
	params      []stubParam

	hasUpdate       bool
	hasUpdate2      bool
	refuseConstruct bool
	nextInstance    uintptr
	width, height   uint32
	initCalls       int
	deinitCalls     int
	infoCalls       int
	paramInfoCalls  int
	constructCalls  int
	destructCalls   int
	getCalls        int
	setCalls        int
	updateCalls     int
	update2Calls    int
	closeCalls      int
	lastTime        float64
	sawNullIn       bool
	sawNullIn2      bool
	sawNullIn3      bool
	firstPixelSeen  uint32
	firstPixelWrote uint32
}

func newStub() *stubLib {
	return &stubLib{
		name:      f0r.CString("test effect"),
		author:    f0r.CString("stub"),
		kind:      f0r.Filter,
		model:     f0r.BGRA8888,
		hasUpdate: true,
	}
}

func bufAddr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

func (s *stubLib) addParam(name string, typ f0r.ParamType) *stubParam {
	s.params = append(s.params, stubParam{name: f0r.CString(name), typ: typ})
	return &s.params[len(s.params)-1]
}

func (s *stubLib) Init() { s.initCalls++ }

func (s *stubLib) Deinit() { s.deinitCalls++ }

func (s *stubLib) PluginInfo(out uintptr) {
	s.infoCalls++
	info := (*f0r.PluginInfo)(unsafe.Pointer(out))
	info.Name = bufAddr(s.name)
	info.Author = bufAddr(s.author)
	info.PluginType = int32(s.kind)
	info.ColorModel = int32(s.model)
	info.Frei0rVersion = f0r.MajorVersion
	info.MajorVersion = 2
	info.MinorVersion = 3
	info.NumParams = int32(len(s.params))
	info.Explanation = bufAddr(s.explanation)
}

func (s *stubLib) ParamInfo(out uintptr, index int32) {
	s.paramInfoCalls++
	p := &s.params[index]
	info := (*f0r.ParamInfo)(unsafe.Pointer(out))
	info.Name = bufAddr(p.name)
	info.Type = int32(p.typ)
	info.Explanation = bufAddr(p.explanation)
}

func (s *stubLib) Construct(width, height uint32) uintptr {
	s.constructCalls++
	if s.refuseConstruct {
		return 0
	}
	s.width, s.height = width, height
	s.nextInstance++
	return s.nextInstance
}

func (s *stubLib) Destruct(uintptr) { s.destructCalls++ }

func (s *stubLib) GetParamValue(_, out uintptr, index int32) {
	s.getCalls++
	p := &s.params[index]
	switch p.typ {
	case f0r.ParamBool, f0r.ParamDouble:
		*(*float64)(unsafe.Pointer(out)) = p.f
	case f0r.ParamColor:
		*(*f0r.ColorValue)(unsafe.Pointer(out)) = p.col
	case f0r.ParamPosition:
		*(*f0r.PositionValue)(unsafe.Pointer(out)) = p.pos
	case f0r.ParamString:
		*(*uintptr)(unsafe.Pointer(out)) = bufAddr(p.str)
	}
}

func (s *stubLib) SetParamValue(_, in uintptr, index int32) {
	s.setCalls++
	p := &s.params[index]
	switch p.typ {
	case f0r.ParamBool, f0r.ParamDouble:
		p.f = *(*float64)(unsafe.Pointer(in))
	case f0r.ParamColor:
		p.col = *(*f0r.ColorValue)(unsafe.Pointer(in))
	case f0r.ParamPosition:
		p.pos = *(*f0r.PositionValue)(unsafe.Pointer(in))
	case f0r.ParamString:
		p.str = f0r.CString(f0r.GoString(*(*uintptr)(unsafe.Pointer(in))))
	}
}

func (s *stubLib) HasUpdate() bool { return s.hasUpdate }

func (s *stubLib) HasUpdate2() bool { return s.hasUpdate2 }

func (s *stubLib) copyFrame(in, out uintptr) {
	n := int(s.width * s.height)
	if in != 0 {
		s.firstPixelSeen = *(*uint32)(unsafe.Pointer(in))
	}
	if in == 0 || out == 0 {
		return
	}
	src := unsafe.Slice((*uint32)(unsafe.Pointer(in)), n)
	dst := unsafe.Slice((*uint32)(unsafe.Pointer(out)), n)
	copy(dst, src)
	s.firstPixelWrote = dst[0]
}

func (s *stubLib) Update(_ uintptr, time float64, in, out uintptr) {
	s.updateCalls++
	s.lastTime = time
	s.sawNullIn = in == 0
	s.copyFrame(in, out)
}

func (s *stubLib) Update2(_ uintptr, time float64, in1, in2, in3, out uintptr) {
	s.update2Calls++
	s.lastTime = time
	s.sawNullIn = in1 == 0
	s.sawNullIn2 = in2 == 0
	s.sawNullIn3 = in3 == 0
	s.copyFrame(in1, out)
}

func (s *stubLib) Close() error {
	s.closeCalls++
	return nil
}
