package f0r

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// The ABI fixes the byte offset of every field; a plugin compiled against
// frei0r.h writes at these offsets through a raw pointer.
func TestPluginInfoLayout(t *testing.T) {
	var info PluginInfo
	assert.Equal(t, uintptr(0), unsafe.Offsetof(info.Name))
	assert.Equal(t, unsafe.Sizeof(uintptr(0)), unsafe.Offsetof(info.Author))

	base := 2 * unsafe.Sizeof(uintptr(0))
	assert.Equal(t, base, unsafe.Offsetof(info.PluginType))
	assert.Equal(t, base+4, unsafe.Offsetof(info.ColorModel))
	assert.Equal(t, base+8, unsafe.Offsetof(info.Frei0rVersion))
	assert.Equal(t, base+12, unsafe.Offsetof(info.MajorVersion))
	assert.Equal(t, base+16, unsafe.Offsetof(info.MinorVersion))
	assert.Equal(t, base+20, unsafe.Offsetof(info.NumParams))
	assert.Equal(t, base+24, unsafe.Offsetof(info.Explanation))
}

func TestParamInfoLayout(t *testing.T) {
	var info ParamInfo
	ptr := unsafe.Sizeof(uintptr(0))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(info.Name))
	assert.Equal(t, ptr, unsafe.Offsetof(info.Type))
	// Type is padded out to pointer alignment before Explanation.
	assert.Equal(t, 2*ptr, unsafe.Offsetof(info.Explanation))
}

func TestValueLayouts(t *testing.T) {
	assert.Equal(t, uintptr(12), unsafe.Sizeof(ColorValue{}))
	assert.Equal(t, uintptr(16), unsafe.Sizeof(PositionValue{}))
}

func TestGoString(t *testing.T) {
	assert.Equal(t, "", GoString(0))

	buf := CString("blur")
	addr := uintptr(unsafe.Pointer(&buf[0]))
	assert.Equal(t, "blur", GoString(addr))
	runtime.KeepAlive(buf)

	empty := []byte{0}
	assert.Equal(t, "", GoString(uintptr(unsafe.Pointer(&empty[0]))))
	runtime.KeepAlive(empty)
}

func TestKindInputs(t *testing.T) {
	assert.Equal(t, 1, Filter.Inputs())
	assert.Equal(t, 0, Source.Inputs())
	assert.Equal(t, 2, Mixer2.Inputs())
	assert.Equal(t, 3, Mixer3.Inputs())

	assert.False(t, Filter.ExpectsUpdate2())
	assert.False(t, Source.ExpectsUpdate2())
	assert.True(t, Mixer2.ExpectsUpdate2())
	assert.True(t, Mixer3.ExpectsUpdate2())
}
