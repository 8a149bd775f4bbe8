package render

import (
	"sync/atomic"

	"github.com/aharden/lumen/pkg/core"
)

// PixelBuffer is a lock-free RGBA8 frame: one atomic uint32 per pixel
// holding its four packed channel bytes. Writers store whole pixels
// with a single atomic store and never block; readers take a snapshot
// at any time and may observe a mix of old and new pixels, by design
// (progressive display).
type PixelBuffer struct {
	width, height int
	pixels        []atomic.Uint32 // one uint32 per pixel, packed 0xAABBGGRR
}

// NewPixelBuffer allocates a cleared width x height buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	pb := &PixelBuffer{width: width, height: height, pixels: make([]atomic.Uint32, width*height)}
	pb.Clear()
	return pb
}

// Width returns the buffer's width in pixels.
func (pb *PixelBuffer) Width() int { return pb.width }

// Height returns the buffer's height in pixels.
func (pb *PixelBuffer) Height() int { return pb.height }

// SetPixel gamma-encodes s and stores it at (x, y) with alpha=255.
// Out-of-range coordinates are a programmer error and panic, matching
// Go's own slice-index-out-of-range behavior rather than silently
// clamping.
func (pb *PixelBuffer) SetPixel(x, y int, s core.Spectrum) {
	if x < 0 || x >= pb.width || y < 0 || y >= pb.height {
		panic("render: SetPixel coordinates out of range")
	}
	r, g, b := s.Bytes()
	packed := uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(255)<<24
	pb.pixels[y*pb.width+x].Store(packed)
}

// Snapshot copies the current buffer contents into dst as tightly
// packed RGBA8 bytes (len(dst) must be width*height*4).
func (pb *PixelBuffer) Snapshot(dst []byte) {
	for i := range pb.pixels {
		packed := pb.pixels[i].Load()
		o := i * 4
		dst[o] = byte(packed)
		dst[o+1] = byte(packed >> 8)
		dst[o+2] = byte(packed >> 16)
		dst[o+3] = byte(packed >> 24)
	}
}

// Clear resets every pixel to opaque black.
func (pb *PixelBuffer) Clear() {
	const opaqueBlack = uint32(255) << 24
	for i := range pb.pixels {
		pb.pixels[i].Store(opaqueBlack)
	}
}
