// Package pixel holds packed 32-bit pixel helpers used to reconcile a
// plugin's declared channel order with the host's internal one.
package pixel

// SwapRB returns the pixel with its red and blue channel bytes exchanged,
// converting between BGRA8888 and RGBA8888. Applying it twice is the
// identity.
func SwapRB(v uint32) uint32 {
	return v&0xff00ff00 | v>>16&0xff | v&0xff<<16
}

// SwapRBCopy writes src into dst with red and blue exchanged in every pixel.
// dst and src must have the same length and must not overlap.
func SwapRBCopy(dst, src []uint32) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for i, v := range src {
		dst[i] = v&0xff00ff00 | v>>16&0xff | v&0xff<<16
	}
}
