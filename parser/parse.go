package parser

// Parse runs the full decode pipeline described in spec §2: header,
// then file-information, then in turn metrics, trace chain, filename
// strings, and the volume block. Each stage is a pure function from
// (reader, offset, length, version) to a typed value; Parse assembles
// them into the immutable Model returned to the caller.
func Parse(r ByteReader, ctx *ParserContext) (*Model, error) {
	const op = "Parse"

	if r == nil {
		return nil, newError(op, InvalidArgument)
	}
	if err := ctx.CheckAbort(op); err != nil {
		return nil, err
	}

	header, sizeMismatch, err := HeaderDecoder(r, ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.CheckAbort(op); err != nil {
		return nil, err
	}

	fileInfo, err := FileInfoDecoder(r, ctx, header.FormatVersion, header.FileSize)
	if err != nil {
		return nil, err
	}

	if err := ctx.CheckAbort(op); err != nil {
		return nil, err
	}

	// Metrics entries carry filename_string_offset values into the
	// filename strings section but do not require it to be decoded
	// first; order here follows spec §2's data-flow description.
	metrics, err := MetricsDecoder(r, ctx, fileInfo.MetricsArrayOffset,
		fileInfo.NumberOfMetricsEntries, header.FormatVersion)
	if err != nil {
		return nil, err
	}

	if err := ctx.CheckAbort(op); err != nil {
		return nil, err
	}

	traceChain, err := TraceChainDecoder(r, ctx, fileInfo.TraceChainArrayOffset,
		fileInfo.NumberOfTraceChainEntries)
	if err != nil {
		return nil, err
	}

	if err := ctx.CheckAbort(op); err != nil {
		return nil, err
	}

	var filenames []string
	var warnings []Warning

	if fileInfo.FilenameStringsOffset != 0 && fileInfo.FilenameStringsSize != 0 {
		buf, err := section(r, op+".filenames", int64(fileInfo.FilenameStringsOffset),
			int(fileInfo.FilenameStringsSize))
		if err != nil {
			return nil, err
		}
		entries, err := StringTable(buf)
		if err != nil {
			return nil, wrapError(op+".filenames", MalformedStringTable, err)
		}
		filenames = make([]string, 0, len(entries))
		for _, e := range entries {
			filenames = append(filenames, e.Text)
		}
	}

	if err := ctx.CheckAbort(op); err != nil {
		return nil, err
	}

	volumes, volWarnings, err := VolumeBlockDecoder(r, ctx, fileInfo.VolumesInformationOffset,
		fileInfo.VolumesInformationSize, fileInfo.NumberOfVolumes, header.FormatVersion)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, volWarnings...)

	if ctx.options.StrictCounts {
		for _, w := range warnings {
			if w.Kind == InconsistentCounts {
				return nil, newError(w.Op, InconsistentCounts)
			}
		}
	}

	if sizeMismatch {
		warnings = append(warnings, Warning{
			Kind:    InconsistentCounts,
			Op:      "HeaderDecoder",
			Message: "header file_size disagreed with the reader's actual size",
		})
	}

	model := &Model{
		FormatVersion:      header.FormatVersion,
		FileSizeDeclared:   header.FileSize,
		PrefetchHash:       header.PrefetchHash,
		ExecutableFilename: header.ExecutableFilename,
		FileInformation:    fileInfo,
		Metrics:            metrics,
		TraceChain:         traceChain,
		Filenames:          filenames,
		Volumes:            volumes,
		SizeMismatch:       sizeMismatch,
		Warnings:           warnings,
	}

	return model, nil
}
