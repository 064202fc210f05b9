// A prefetch file is small enough to read whole, but the same
// ByteReader interface is also handed volume shadow copies and
// forensic images accessed over slower transports. PagedReader adds
// page-aligned, LRU-cached reads on top of any io.ReaderAt so callers
// backed by such sources are not paying for a syscall per field.

package goscca

import (
	"io"
	"os"

	lru "github.com/hashicorp/golang-lru"

	"github.com/dfir-go/goscca/parser"
)

// PagedReader wraps an io.ReaderAt, rounding every read up to whole
// pages and caching the most recently used ones.
type PagedReader struct {
	reader   io.ReaderAt
	pagesize int64
	lru      *lru.Cache
}

func NewPagedReader(reader io.ReaderAt, pagesize int64, cacheSize int) (*PagedReader, error) {
	if pagesize <= 0 {
		pagesize = 4096
	}
	if cacheSize <= 0 {
		cacheSize = 50
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &PagedReader{reader: reader, pagesize: pagesize, lru: cache}, nil
}

func (self *PagedReader) ReadAt(buf []byte, offset int64) (int, error) {
	bufIdx := 0
	for {
		toRead := int(self.pagesize - offset%self.pagesize)
		if toRead > len(buf)-bufIdx {
			toRead = len(buf) - bufIdx
		}
		if toRead == 0 {
			return bufIdx, nil
		}

		var pageBuf []byte
		page := offset - offset%self.pagesize
		cached, pres := self.lru.Get(page)
		if !pres {
			pageBuf = make([]byte, self.pagesize)
			n, err := self.reader.ReadAt(pageBuf, page)
			if err != nil && err != io.EOF {
				return bufIdx, err
			}
			pageBuf = pageBuf[:n]
			self.lru.Add(page, pageBuf)
		} else {
			pageBuf = cached.([]byte)
		}

		available := len(pageBuf) - int(offset%self.pagesize)
		if available <= 0 {
			if bufIdx == 0 {
				return 0, io.EOF
			}
			return bufIdx, nil
		}
		if toRead > available {
			toRead = available
		}

		copy(buf[bufIdx:bufIdx+toRead], pageBuf[offset%self.pagesize:])

		offset += int64(toRead)
		bufIdx += toRead
	}
}

// OffsetReader presents a sub-region of an underlying io.ReaderAt,
// starting at base, as if it began at offset zero. Prefetch's own
// self-relative volume block addressing needs exactly this: every
// pointer inside a volume record is relative to the block, not the
// file.
type OffsetReader struct {
	reader io.ReaderAt
	base   int64
	size   int64
}

func NewOffsetReader(reader io.ReaderAt, base, size int64) *OffsetReader {
	return &OffsetReader{reader: reader, base: base, size: size}
}

func (self *OffsetReader) ReadAt(buf []byte, offset int64) (int, error) {
	if offset < 0 || offset >= self.size {
		return 0, io.EOF
	}
	if offset+int64(len(buf)) > self.size {
		buf = buf[:self.size-offset]
	}
	return self.reader.ReadAt(buf, self.base+offset)
}

// fileByteReader adapts an *os.File to parser.ByteReader.
type fileByteReader struct {
	f *os.File
}

func (r *fileByteReader) ReadAt(buf []byte, offset int64) (int, error) {
	return r.f.ReadAt(buf, offset)
}

func (r *fileByteReader) Size() (int64, error) {
	fi, err := r.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (r *fileByteReader) Close() error {
	return r.f.Close()
}

// OpenFile opens path and returns a parser.ByteReader backed directly
// by the OS file handle. Callers reading many small fields out of a
// remote or otherwise slow-to-seek copy should wrap the result in
// NewPagedReader themselves; local files rarely need it.
func OpenFile(path string) (parser.ByteReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &fileByteReader{f: f}, nil
}

// readerAtByteReader adapts an arbitrary io.ReaderAt of known size
// (such as a PagedReader) to parser.ByteReader, for callers who
// already have bytes in memory or a custom transport and just need
// the Size/Close methods Parse requires.
type readerAtByteReader struct {
	io.ReaderAt
	size int64
}

func (r *readerAtByteReader) Size() (int64, error) { return r.size, nil }
func (r *readerAtByteReader) Close() error         { return nil }

// NewByteReader wraps any io.ReaderAt of the given size as a
// parser.ByteReader. Close is a no-op; callers that opened an
// underlying resource are responsible for closing it themselves.
func NewByteReader(r io.ReaderAt, size int64) parser.ByteReader {
	return &readerAtByteReader{ReaderAt: r, size: size}
}
