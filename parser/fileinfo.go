package parser

const (
	fileInfoOffset       = headerSize
	fileInfoSizeV17      = 156
	fileInfoSizeV23V26   = 224
	fileInfoCommonFields = 36 // nine little-endian uint32 fields shared by all versions
)

// FileInfoDecoder decodes the version-dispatched file-information block
// that immediately follows the header (spec §4.3). fileSizeDeclared is
// the header's file_size field, used to bounds-check every offset this
// block declares.
func FileInfoDecoder(r ByteReader, ctx *ParserContext, version uint32, fileSizeDeclared uint32) (FileInformation, error) {
	const op = "FileInfoDecoder"

	if err := ctx.CheckAbort(op); err != nil {
		return FileInformation{}, err
	}

	blockSize := fileInfoSizeV17
	if version == 23 || version == 26 {
		blockSize = fileInfoSizeV23V26
	}

	buf, err := section(r, op, fileInfoOffset, blockSize)
	if err != nil {
		return FileInformation{}, err
	}
	c := NewNumericCodec(buf)

	fi := FileInformation{}

	fi.MetricsArrayOffset, err = c.U32(0)
	if err != nil {
		return FileInformation{}, wrapError(op, ShortInput, err)
	}
	fi.NumberOfMetricsEntries, err = c.U32(4)
	if err != nil {
		return FileInformation{}, wrapError(op, ShortInput, err)
	}
	fi.TraceChainArrayOffset, err = c.U32(8)
	if err != nil {
		return FileInformation{}, wrapError(op, ShortInput, err)
	}
	fi.NumberOfTraceChainEntries, err = c.U32(12)
	if err != nil {
		return FileInformation{}, wrapError(op, ShortInput, err)
	}
	fi.FilenameStringsOffset, err = c.U32(16)
	if err != nil {
		return FileInformation{}, wrapError(op, ShortInput, err)
	}
	fi.FilenameStringsSize, err = c.U32(20)
	if err != nil {
		return FileInformation{}, wrapError(op, ShortInput, err)
	}
	fi.VolumesInformationOffset, err = c.U32(24)
	if err != nil {
		return FileInformation{}, wrapError(op, ShortInput, err)
	}
	fi.NumberOfVolumes, err = c.U32(28)
	if err != nil {
		return FileInformation{}, wrapError(op, ShortInput, err)
	}
	fi.VolumesInformationSize, err = c.U32(32)
	if err != nil {
		return FileInformation{}, wrapError(op, ShortInput, err)
	}

	if version == 17 {
		lastRun, err := c.U64(fileInfoCommonFields)
		if err != nil {
			return FileInformation{}, wrapError(op, ShortInput, err)
		}
		fi.LastRunTimes = []uint64{lastRun}

		runCount, err := c.U32(fileInfoCommonFields + 8 + 8) // + FILETIME + 8 pad bytes
		if err != nil {
			return FileInformation{}, wrapError(op, ShortInput, err)
		}
		fi.RunCount = runCount

		explicit := fileInfoCommonFields + 8 + 8 + 4
		if explicit < blockSize {
			unknown, err := c.Bytes(explicit, blockSize-explicit)
			if err != nil {
				return FileInformation{}, wrapError(op, ShortInput, err)
			}
			fi.Unknown = append([]byte(nil), unknown...)
		}
	} else {
		times := make([]uint64, 0, 8)
		for i := 0; i < 8; i++ {
			t, err := c.U64(fileInfoCommonFields + i*8)
			if err != nil {
				return FileInformation{}, wrapError(op, ShortInput, err)
			}
			times = append(times, t)
		}
		fi.LastRunTimes = times

		runCount, err := c.U32(fileInfoCommonFields + 64)
		if err != nil {
			return FileInformation{}, wrapError(op, ShortInput, err)
		}
		fi.RunCount = runCount

		explicit := fileInfoCommonFields + 64 + 4
		if explicit < blockSize {
			unknown, err := c.Bytes(explicit, blockSize-explicit)
			if err != nil {
				return FileInformation{}, wrapError(op, ShortInput, err)
			}
			fi.Unknown = append([]byte(nil), unknown...)
		}
	}

	metricsEntrySize := uint32(20)
	if version == 23 || version == 26 {
		metricsEntrySize = 32
	}
	if err := checkSectionBounds(op, "metrics_array", fi.MetricsArrayOffset,
		uint64(fi.NumberOfMetricsEntries)*uint64(metricsEntrySize), fileSizeDeclared); err != nil {
		return FileInformation{}, err
	}
	if err := checkSectionBounds(op, "trace_chain_array", fi.TraceChainArrayOffset,
		uint64(fi.NumberOfTraceChainEntries)*uint64(traceChainEntrySize), fileSizeDeclared); err != nil {
		return FileInformation{}, err
	}
	if err := checkSectionBounds(op, "filename_strings", fi.FilenameStringsOffset, uint64(fi.FilenameStringsSize), fileSizeDeclared); err != nil {
		return FileInformation{}, err
	}
	if err := checkSectionBounds(op, "volumes_information", fi.VolumesInformationOffset, uint64(fi.VolumesInformationSize), fileSizeDeclared); err != nil {
		return FileInformation{}, err
	}

	return fi, nil
}

// checkSectionBounds enforces spec §4.3: a zero offset means "absent
// section" and is always valid; any other offset must fall within
// [headerSize, fileSizeDeclared] once its declared size is added. size
// is taken as uint64 so a declared count times an entry size can never
// wrap back into range before this check sees it.
func checkSectionBounds(op, name string, offset uint32, size uint64, fileSizeDeclared uint32) error {
	if offset == 0 {
		return nil
	}
	if offset < headerSize {
		return newError(op+"."+name, OffsetOutOfBounds)
	}
	end := uint64(offset) + size
	if end > uint64(fileSizeDeclared) {
		return newError(op+"."+name, OffsetOutOfBounds)
	}
	return nil
}
