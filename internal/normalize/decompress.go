package normalize

import (
	"bytes"
	"compress/zlib"
	"io"
)

// Decompress inflates zlib-compressed data. If the input is not
// compressed, or inflation fails for any reason, the original bytes are
// returned unchanged. Intended for webhook bodies before JSON parsing.
func Decompress(data []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}
