// Copyright (c) 2020 lumen3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package pak is an lz4 backed archive format for engine resources,
// primarily compiled shader binaries. The archive itself is not
// compressed; every file is compressed individually and the header
// records where each one lives, so any entry can be read and
// decompressed on its own without touching the rest of the file.
// Reading is safe from multiple goroutines.
package pak

import (
	"bytes"
	"encoding/gob"
	"errors"
)

// package errors
var (
	ErrFileFormat = errors.New("pak: corrupted or not a pak archive")
	ErrNotFound   = errors.New("pak: no entry with that name")
)

const (
	magic = "PAK\x00"

	// The header size field is a fixed-width little-endian int64
	// directly after the magic.
	headerSizeLength = 8
)

// IndexEntry is info for one file in the archive index.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the archive header. The index offsets are relative to the
// start of the file.
type Header struct {
	Author      string
	DateCreated int64
	Version     int64
	Index       []IndexEntry
}

// maxExpectedSize estimates the space the encoded header could take.
// Offsets depend on the header size, so the header region is reserved
// up front using this estimate and padded after encoding. It only
// needs to be an upper bound.
func (h *Header) maxExpectedSize() int64 {
	var size int64
	size += int64(len(h.Author))
	size += 16 // DateCreated + Version
	size += 60 // field names etc
	for _, e := range h.Index {
		size += int64(len(e.Name))
		size += 24 // numbers
		size += 60
	}
	return size
}

func encodeHeader(h *Header) ([]byte, error) {
	var encoded bytes.Buffer
	if err := gob.NewEncoder(&encoded).Encode(h); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func decodeHeader(h *Header, bts []byte) error {
	return gob.NewDecoder(bytes.NewReader(bts)).Decode(h)
}
