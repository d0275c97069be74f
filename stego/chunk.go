package stego

import (
	"fmt"
	"image"
)

// DefaultChunkSize is the number of payload bytes routed to each cover
// when no explicit chunk size is given.
const DefaultChunkSize = 200000

// EncodeChunked splits payload into contiguous chunks of chunkSize bytes
// (the last chunk may be shorter) and embeds the k-th chunk into the k-th
// cover. It returns exactly one raster per chunk; covers beyond the last
// chunk are unused. A chunkSize <= 0 selects DefaultChunkSize.
//
// Chunks carry no headers: reassembly depends entirely on the caller
// preserving the raster order.
func EncodeChunked(payload []byte, covers []*image.RGBA, chunkSize int) ([]*image.RGBA, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	chunks := splitChunks(payload, chunkSize)
	if len(chunks) > len(covers) {
		return nil, newCodecError("chunk", fmt.Errorf("%w: need %d covers, have %d", ErrDataTooLarge, len(chunks), len(covers)))
	}

	out := make([]*image.RGBA, len(chunks))
	for k, chunk := range chunks {
		carrier, err := Encode(covers[k], chunk)
		if err != nil {
			return nil, err
		}
		out[k] = carrier
	}
	return out, nil
}

// DecodeChunked decodes each raster in order and concatenates the results
func DecodeChunked(carriers []*image.RGBA) ([]byte, error) {
	var payload []byte
	for _, carrier := range carriers {
		chunk, err := Decode(carrier)
		if err != nil {
			return nil, err
		}
		payload = append(payload, chunk...)
	}
	return payload, nil
}

// splitChunks slices data into runs of at most size bytes
func splitChunks(data []byte, size int) [][]byte {
	if len(data) == 0 {
		return nil
	}
	chunks := make([][]byte, 0, (len(data)+size-1)/size)
	for start := 0; start < len(data); start += size {
		end := start + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[start:end])
	}
	return chunks
}
