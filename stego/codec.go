package stego

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"image"
	"io"
)

// headerBytes is the size of the little-endian length prefix
const headerBytes = 4

// CapacityBits returns how many bits a raster of the given bounds can
// carry: one per R, G, and B channel of each pixel.
func CapacityBits(bounds image.Rectangle) int {
	return 3 * bounds.Dx() * bounds.Dy()
}

// Encode embeds payload into a copy of cover and returns the copy. The
// cover raster is never modified. Fails with ErrImageTooSmall when the
// length prefix plus compressed payload exceeds the raster capacity.
func Encode(cover *image.RGBA, payload []byte) (*image.RGBA, error) {
	if cover == nil || cover.Rect.Empty() {
		return nil, ErrInvalidImage
	}

	compressed, err := deflate(payload)
	if err != nil {
		return nil, newCodecError("encode", err)
	}

	embedded := make([]byte, headerBytes+len(compressed))
	binary.LittleEndian.PutUint32(embedded, uint32(len(compressed)))
	copy(embedded[headerBytes:], compressed)

	if len(embedded)*8 > CapacityBits(cover.Rect) {
		return nil, ErrImageTooSmall
	}

	out := cloneRGBA(cover)
	writeBits(out, embedded)
	return out, nil
}

// Decode extracts the payload embedded by Encode. Fails with
// ErrDataExtractionFailed when the raster carries no valid stream.
func Decode(carrier *image.RGBA) ([]byte, error) {
	if carrier == nil || carrier.Rect.Empty() {
		return nil, ErrInvalidImage
	}

	capacity := CapacityBits(carrier.Rect)
	if headerBytes*8 > capacity {
		return nil, newCodecError("decode", fmt.Errorf("%w: no room for length prefix", ErrDataExtractionFailed))
	}

	header := readBits(carrier, 0, headerBytes)
	length := binary.LittleEndian.Uint32(header)

	if int64(headerBytes+int64(length))*8 > int64(capacity) {
		return nil, newCodecError("decode", fmt.Errorf("%w: declared length %d exceeds capacity", ErrDataExtractionFailed, length))
	}

	compressed := readBits(carrier, headerBytes*8, int(length))
	payload, err := inflate(compressed)
	if err != nil {
		return nil, newCodecError("decode", fmt.Errorf("%w: %v", ErrDataExtractionFailed, err))
	}
	return payload, nil
}

// writeBits sets the LSBs of the R, G, B channels in raster-scan order to
// the bits of data, MSB-first within each byte.
func writeBits(img *image.RGBA, data []byte) {
	width := img.Rect.Dx()
	k := 0
	for _, b := range data {
		for j := 7; j >= 0; j-- {
			bit := (b >> uint(j)) & 1

			pixel := k / 3
			channel := k % 3
			x := pixel % width
			y := pixel / width
			offset := y*img.Stride + x*4 + channel

			img.Pix[offset] = img.Pix[offset]&0xFE | bit
			k++
		}
	}
}

// readBits collects n bytes starting at the given bit offset, reversing
// the traversal of writeBits.
func readBits(img *image.RGBA, bitOffset, n int) []byte {
	width := img.Rect.Dx()
	out := make([]byte, n)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			k := bitOffset + i*8 + j

			pixel := k / 3
			channel := k % 3
			x := pixel % width
			y := pixel / width
			offset := y*img.Stride + x*4 + channel

			b = b<<1 | img.Pix[offset]&1
		}
		out[i] = b
	}
	return out
}

// cloneRGBA copies a raster, preserving bounds and stride layout
func cloneRGBA(src *image.RGBA) *image.RGBA {
	out := &image.RGBA{
		Pix:    make([]byte, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(out.Pix, src.Pix)
	return out
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, fmt.Errorf("%w: %v", ErrCompressionFailed, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompressionFailed, err)
	}
	return buf.Bytes(), nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
