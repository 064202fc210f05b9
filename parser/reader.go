package parser

import "io"

// ByteReader is the abstract random-access byte source the decoders in
// this package read from. It is intentionally the minimal contract
// needed by the pipeline: a caller may back it with a local file, a
// memory buffer, or a remote blob. Opening, closing, and any
// wide-character path handling required to construct one are the
// caller's concern, not the decoder's.
type ByteReader interface {
	io.ReaderAt

	// Size returns the total number of bytes available from this
	// reader.
	Size() (int64, error)

	// Close releases any resources held by the reader.
	Close() error
}

// section reads length bytes at offset from r into a fresh buffer,
// classifying short reads as ShortInput ParseErrors tagged with op.
func section(r ByteReader, op string, offset int64, length int) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	buf := make([]byte, length)
	n, err := r.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, wrapError(op, ReadFailed, err)
	}
	if n < length {
		return nil, newError(op, ShortInput)
	}
	return buf, nil
}
