// Copyright (c) 2020 lumen3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pak

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pierrec/lz4"
)

// Open opens the pak archive from r. It will also check if the file
// is actually a pak archive, and returns an error when it is not.
func Open(r io.ReaderAt) (*Archive, error) {
	prefix := make([]byte, len(magic)+headerSizeLength)
	if _, err := r.ReadAt(prefix, 0); err != nil {
		return nil, ErrFileFormat
	}
	if string(prefix[:len(magic)]) != magic {
		return nil, ErrFileFormat
	}

	headerSize := int64(binary.LittleEndian.Uint64(prefix[len(magic):]))
	if headerSize <= 0 {
		return nil, ErrFileFormat
	}
	headerBytes := make([]byte, headerSize)
	if _, err := r.ReadAt(headerBytes, int64(len(magic)+headerSizeLength)); err != nil {
		return nil, ErrFileFormat
	}

	var header Header
	if err := decodeHeader(&header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}

	return &Archive{
		reader: r,
		header: header,
	}, nil
}

// Archive provides concurrent io for a pak file, and can provide an
// io.Reader for each file separately to perform actions on.
type Archive struct {
	reader io.ReaderAt
	header Header
}

// Index returns the archive index in file order.
func (a *Archive) Index() []IndexEntry {
	return a.header.Index
}

func (a *Archive) entry(name string) (IndexEntry, bool) {
	for _, e := range a.header.Index {
		if e.Name == name {
			return e, true
		}
	}
	return IndexEntry{}, false
}

// ReadAll returns the entire decompressed contents of a file with a
// given name.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	entry, ok := a.entry(name)
	if !ok {
		return nil, ErrNotFound
	}
	compressed := make([]byte, entry.CompressedSize)
	if _, err := a.reader.ReadAt(compressed, entry.Offset); err != nil {
		return nil, err
	}
	decompressed := make([]byte, entry.Size)
	if _, err := io.ReadFull(lz4.NewReader(bytes.NewReader(compressed)), decompressed); err != nil {
		return nil, err
	}
	return decompressed, nil
}

// Open returns a Reader for a file in the Archive.
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.entry(name)
	if !ok {
		return nil, ErrNotFound
	}
	section := io.NewSectionReader(a.reader, entry.Offset, entry.CompressedSize)
	return &Reader{
		inner:     lz4.NewReader(section),
		remaining: entry.Size,
	}, nil
}

// Reader is a reader for a single file in an Archive. Abstracts away
// the location that needs to be known.
type Reader struct {
	inner     io.Reader
	remaining int64
}

// Read reads already decompressed data.
func (r *Reader) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.remaining {
		p = p[:r.remaining]
	}
	n, err := r.inner.Read(p)
	r.remaining -= int64(n)
	return n, err
}
