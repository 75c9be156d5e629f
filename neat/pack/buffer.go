package pack

import (
	"encoding/binary"
	"math"
)

// Channels is the number of float32 channels per texel (RGBA32F).
const Channels = 4

// BytesPerTexel is the encoded size of one texel.
const BytesPerTexel = Channels * 4

// Texel is one RGBA32F value.
type Texel [Channels]float32

// TexelBuffer is a zero-initialised stack of 2D RGBA32F layers, stored
// directly in its encoded little-endian form.
type TexelBuffer struct {
	Width  int
	Height int
	Layers int
	data   []byte
}

// NewTexelBuffer allocates a zeroed buffer. Callers check sizes with bufferBytes first.
func NewTexelBuffer(width, height, layers int) *TexelBuffer {
	return &TexelBuffer{
		Width:  width,
		Height: height,
		Layers: layers,
		data:   make([]byte, width*height*layers*BytesPerTexel),
	}
}

func (b *TexelBuffer) offset(layer int, c Coord) int {
	return ((layer*b.Height+c.Y)*b.Width + c.X) * BytesPerTexel
}

// Set writes a texel. Out-of-range positions panic, like slice indexing.
func (b *TexelBuffer) Set(layer int, c Coord, t Texel) {
	off := b.offset(layer, c)
	for i, v := range t {
		binary.LittleEndian.PutUint32(b.data[off+i*4:], math.Float32bits(v))
	}
}

// At reads a texel.
func (b *TexelBuffer) At(layer int, c Coord) Texel {
	return DecodeTexel(b.data, b.Width, b.Height, layer, c)
}

// Len returns the encoded size in bytes.
func (b *TexelBuffer) Len() int { return len(b.data) }

// Bytes returns the encoded buffer: little-endian IEEE-754 float32 values,
// layer by layer, rows top to bottom. The slice is shared with the buffer.
func (b *TexelBuffer) Bytes() []byte {
	return b.data
}

// DecodeTexel reads the texel at (layer, c) from encoded bytes of a buffer
// with the given width and height.
func DecodeTexel(data []byte, width, height, layer int, c Coord) Texel {
	var t Texel
	off := ((layer*height+c.Y)*width + c.X) * BytesPerTexel
	for i := range t {
		t[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[off+i*4:]))
	}
	return t
}

// bufferBytes returns width*height*layers*BytesPerTexel, or false if the
// product does not fit in an int.
func bufferBytes(width, height, layers int) (int, bool) {
	n := BytesPerTexel
	for _, f := range [...]int{width, height, layers} {
		if f < 0 {
			return 0, false
		}
		if f != 0 && n > math.MaxInt/f {
			return 0, false
		}
		n *= f
	}
	return n, true
}
