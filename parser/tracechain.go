package parser

const traceChainEntrySize = 12

// TraceChainDecoder walks the trace chain array at offset for count
// entries (spec §4.5). Each block represents 512 KiB of pre-read I/O.
// The decoder does not validate chain integrity: cycles and dangling
// indices are surfaced as-is, per the open question in spec §9 — do
// not guess whether the source ever produced real cycles.
func TraceChainDecoder(r ByteReader, ctx *ParserContext, offset uint32, count uint32) ([]TraceChainEntry, error) {
	const op = "TraceChainDecoder"

	if err := ctx.CheckAbort(op); err != nil {
		return nil, err
	}
	if count == 0 || offset == 0 {
		return nil, nil
	}

	buf, err := section(r, op, int64(offset), int(count)*traceChainEntrySize)
	if err != nil {
		return nil, err
	}

	entries := make([]TraceChainEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		if err := ctx.CheckAbort(op); err != nil {
			return nil, err
		}

		base := int(i) * traceChainEntrySize
		c := NewNumericCodec(buf[base : base+traceChainEntrySize])

		nextTableIndex, err := c.U32(0)
		if err != nil {
			return nil, wrapError(op, ShortInput, err)
		}
		blockLoadCount, err := c.U32(4)
		if err != nil {
			return nil, wrapError(op, ShortInput, err)
		}
		unknown0Bytes, err := c.Bytes(8, 1)
		if err != nil {
			return nil, wrapError(op, ShortInput, err)
		}
		unknown1Bytes, err := c.Bytes(9, 1)
		if err != nil {
			return nil, wrapError(op, ShortInput, err)
		}
		unknown2, err := c.U16(10)
		if err != nil {
			return nil, wrapError(op, ShortInput, err)
		}

		entries = append(entries, TraceChainEntry{
			NextTableIndex: nextTableIndex,
			BlockLoadCount: blockLoadCount,
			Unknown0:       unknown0Bytes[0],
			Unknown1:       unknown1Bytes[0],
			Unknown2:       unknown2,
		})
	}

	return entries, nil
}
