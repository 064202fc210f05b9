package parser

import "unicode/utf16"

const headerSize = 84

var sccaSignature = [4]byte{'S', 'C', 'C', 'A'}

// HeaderDecoder validates the signature and decodes the fixed 84-byte
// file header at offset 0 (spec §4.2). The returned bool reports
// whether the header's file_size differs from r.Size() (the
// size_mismatch warning); it does not affect whether the header itself
// is accepted.
func HeaderDecoder(r ByteReader, ctx *ParserContext) (Header, bool, error) {
	const op = "HeaderDecoder"

	if err := ctx.CheckAbort(op); err != nil {
		return Header{}, false, err
	}

	buf, err := section(r, op, 0, headerSize)
	if err != nil {
		return Header{}, false, err
	}
	c := NewNumericCodec(buf)

	formatVersion, err := c.U32(0)
	if err != nil {
		return Header{}, false, wrapError(op, ShortInput, err)
	}

	sigBytes, err := c.Bytes(4, 4)
	if err != nil {
		return Header{}, false, wrapError(op, ShortInput, err)
	}
	var signature [4]byte
	copy(signature[:], sigBytes)
	if signature != sccaSignature {
		return Header{}, false, newError(op, InvalidSignature)
	}

	if !SupportedVersions[formatVersion] {
		return Header{}, false, newError(op, UnsupportedVersion)
	}

	fileSize, err := c.U32(12)
	if err != nil {
		return Header{}, false, wrapError(op, ShortInput, err)
	}

	nameBytes, err := c.Bytes(16, 60)
	if err != nil {
		return Header{}, false, wrapError(op, ShortInput, err)
	}
	execName := decodeFixedUTF16(nameBytes)

	prefetchHash, err := c.U32(76)
	if err != nil {
		return Header{}, false, wrapError(op, ShortInput, err)
	}

	header := Header{
		FormatVersion:      formatVersion,
		Signature:          signature,
		FileSize:           fileSize,
		ExecutableFilename: execName,
		PrefetchHash:       prefetchHash,
	}

	actualSize, sizeErr := r.Size()
	sizeMismatch := sizeErr == nil && uint64(actualSize) != uint64(fileSize)

	return header, sizeMismatch, nil
}

// decodeFixedUTF16 decodes a NUL-padded, NUL-terminated UTF-16LE field
// of up to 29 code units (60 bytes / 2, minus the terminator), as used
// for the header's executable_filename.
func decodeFixedUTF16(buf []byte) string {
	u16s := make([]uint16, 0, len(buf)/2)
	for i := 0; i+1 < len(buf); i += 2 {
		v := uint16(buf[i]) | uint16(buf[i+1])<<8
		if v == 0 {
			break
		}
		u16s = append(u16s, v)
	}
	return string(utf16.Decode(u16s))
}
