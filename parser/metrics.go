package parser

const (
	metricsEntrySizeV17    = 20
	metricsEntrySizeV23V26 = 32
)

// MetricsDecoder walks the metrics array at offset for count entries,
// choosing the per-version entry layout (spec §4.4). It tolerates
// count == 0 by returning an empty, non-nil-error slice.
func MetricsDecoder(r ByteReader, ctx *ParserContext, offset uint32, count uint32, version uint32) ([]MetricsEntry, error) {
	const op = "MetricsDecoder"

	if err := ctx.CheckAbort(op); err != nil {
		return nil, err
	}
	if count == 0 || offset == 0 {
		return nil, nil
	}

	entrySize := metricsEntrySizeV17
	if version == 23 || version == 26 {
		entrySize = metricsEntrySizeV23V26
	}

	buf, err := section(r, op, int64(offset), int(count)*entrySize)
	if err != nil {
		return nil, err
	}

	entries := make([]MetricsEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		if err := ctx.CheckAbort(op); err != nil {
			return nil, err
		}

		base := int(i) * entrySize
		c := NewNumericCodec(buf[base : base+entrySize])

		var entry MetricsEntry
		entry.StartTimeMS, err = c.U32(0)
		if err != nil {
			return nil, wrapError(op, ShortInput, err)
		}
		entry.DurationMS, err = c.U32(4)
		if err != nil {
			return nil, wrapError(op, ShortInput, err)
		}

		if entrySize == metricsEntrySizeV17 {
			entry.FilenameStringOffset, err = c.U32(8)
			if err != nil {
				return nil, wrapError(op, ShortInput, err)
			}
			entry.FilenameStringNumberOfCharacters, err = c.U32(12)
			if err != nil {
				return nil, wrapError(op, ShortInput, err)
			}
			entry.Flags, err = c.U32(16)
			if err != nil {
				return nil, wrapError(op, ShortInput, err)
			}
		} else {
			entry.AverageDurationMS, err = c.U32(8)
			if err != nil {
				return nil, wrapError(op, ShortInput, err)
			}
			entry.FilenameStringOffset, err = c.U32(12)
			if err != nil {
				return nil, wrapError(op, ShortInput, err)
			}
			entry.FilenameStringNumberOfCharacters, err = c.U32(16)
			if err != nil {
				return nil, wrapError(op, ShortInput, err)
			}
			entry.Flags, err = c.U32(20)
			if err != nil {
				return nil, wrapError(op, ShortInput, err)
			}
			entry.FileReference, err = c.U64(24)
			if err != nil {
				return nil, wrapError(op, ShortInput, err)
			}
			entry.HasFileReference = true
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
