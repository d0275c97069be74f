// Package stego embeds byte strings into the least significant bits of
// RGBA rasters.
//
// The embedded stream is a little-endian uint32 length prefix followed by
// the zlib-compressed payload. Bits are written MSB-first per byte, into
// the R, G, and B channels of each pixel in raster-scan order; the alpha
// channel is never touched. Capacity is therefore 3 bits per pixel.
//
// The codec reads and writes raw raster bytes only. Any lossy encoding of
// the result (JPEG and friends) destroys the embedded bits; carriers must
// stay in lossless formats such as PNG, BMP, or raw RGBA.
package stego
