// Copyright (c) 2020 lumen3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pak

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in the
// header, it will be overwritten anyway.
func NewBuilder(header Header) *Builder {
	return &Builder{header: header}
}

type pendingFile struct {
	name       string
	size       int64
	compressed []byte
}

// Builder assembles an archive in memory. Archives are versioned and
// cannot be appended to; whenever Add is called the data is
// compressed immediately, and WriteTo finally lays the header and all
// entries out into a ready to use pak archive.
type Builder struct {
	header Header

	mutex sync.Mutex
	files []pendingFile
}

// Add compresses and stores data under the given name. Will block
// until lz4 finishes compression. Is safe to use concurrently in
// different goroutines.
func (b *Builder) Add(name string, data io.Reader) error {
	var buf bytes.Buffer
	writer := lz4.NewWriter(&buf)
	written, err := io.Copy(writer, data)
	if err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.files = append(b.files, pendingFile{
		name:       name,
		size:       written,
		compressed: buf.Bytes(),
	})
	return nil
}

// WriteTo bundles and writes all of the files added to the Builder
// into a pak archive that is ready to use.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	header.Index = nil
	for _, f := range b.files {
		header.Index = append(header.Index, IndexEntry{
			Name:           f.name,
			Size:           f.size,
			CompressedSize: int64(len(f.compressed)),
		})
	}

	// Reserve the header region before the offsets are known, then
	// encode with the final offsets and pad up to the reservation.
	reserved := header.maxExpectedSize()
	offset := int64(len(magic)) + headerSizeLength + reserved
	for i := range header.Index {
		header.Index[i].Offset = offset
		offset += header.Index[i].CompressedSize
	}

	encoded, err := encodeHeader(&header)
	if err != nil {
		return 0, err
	}
	if int64(len(encoded)) > reserved {
		return 0, errors.New("pak: header exceeded its reserved size")
	}
	padded := make([]byte, reserved)
	copy(padded, encoded)

	sizeBytes := make([]byte, headerSizeLength)
	binary.LittleEndian.PutUint64(sizeBytes, uint64(reserved))

	var written int64
	for _, chunk := range [][]byte{[]byte(magic), sizeBytes, padded} {
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	for _, f := range b.files {
		n, err := w.Write(f.compressed)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
