// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// GLB header.
type glbHeader [3]uint32

// Indices in glbHeader.
const (
	headerMagic   = 0
	headerVersion = 1
	headerLength  = 2
)

// GLB chunk.
type glbChunk [2]uint32

// Indices in glbChunk.
const (
	chunkLength = 0
	chunkType   = 1
	// Then payload.
)

const (
	// glbHeader[headerMagic].
	magic = 0x46546c67

	// glbChunk[chunkType].
	typeJSON = 0x4e4f534a
	typeBIN  = 0x004e4942

	headerSize = 12
	chunkSize  = 8
)

// IsGLB returns whether r refers to a binary glTF (version 2).
// It assumes that r was positioned accordingly.
func IsGLB(r io.Reader) bool {
	var h glbHeader
	err := binary.Read(r, binary.LittleEndian, h[:])
	switch {
	case err != nil, h[headerMagic] != magic, h[headerVersion] != 2:
		return false
	default:
		return true
	}
}

// SeekJSON seeks into r until it finds the beginning
// of the JSON string.
// If successful, it returns the length of the chunk.
// r must refer to an unread GLB blob.
func SeekJSON(r io.Reader) (n int, err error) {
	if !IsGLB(r) {
		err = errors.New("gltf: not a GLB blob")
		return
	}
	var c glbChunk
	err = binary.Read(r, binary.LittleEndian, c[:])
	switch {
	case err != nil:
	case c[chunkLength] == 0 || c[chunkType] != typeJSON:
		err = errors.New("gltf: invalid GLB chunk")
	default:
		n = int(c[chunkLength])
	}
	return
}

// ReadGLB splits a GLB blob into its JSON and BIN chunks.
// bin is nil if the blob has no BIN chunk. Chunks of
// unknown type are skipped.
func ReadGLB(b []byte) (json, bin []byte, err error) {
	r := bytes.NewReader(b)
	n, err := SeekJSON(r)
	if err != nil {
		return
	}
	var h glbHeader
	binary.Read(bytes.NewReader(b), binary.LittleEndian, h[:])
	if int(h[headerLength]) > len(b) {
		return nil, nil, errors.New("gltf: truncated GLB blob")
	}
	b = b[:h[headerLength]]
	off := headerSize + chunkSize
	if off+n > len(b) {
		return nil, nil, errors.New("gltf: truncated GLB JSON chunk")
	}
	json = bytes.TrimRight(b[off:off+n], " \x00")
	off += n
	for off+chunkSize <= len(b) {
		var c glbChunk
		binary.Read(bytes.NewReader(b[off:off+chunkSize]), binary.LittleEndian, c[:])
		off += chunkSize
		end := off + int(c[chunkLength])
		if end > len(b) {
			return nil, nil, errors.New("gltf: truncated GLB chunk")
		}
		if c[chunkType] == typeBIN && bin == nil {
			bin = b[off:end]
		}
		off = end
	}
	return
}

// pad4 returns the number of bytes needed to align n to 4.
func pad4(n int) int { return (4 - n&3) & 3 }

// WriteGLB writes a GLB blob made of json and, unless it
// is nil, bin.
// The JSON chunk is padded with spaces and the BIN chunk
// with zeros.
func WriteGLB(w io.Writer, json, bin []byte) error {
	jpad := pad4(len(json))
	length := headerSize + chunkSize + len(json) + jpad
	bpad := 0
	if bin != nil {
		bpad = pad4(len(bin))
		length += chunkSize + len(bin) + bpad
	}
	var buf bytes.Buffer
	buf.Grow(length)
	binary.Write(&buf, binary.LittleEndian, glbHeader{magic, 2, uint32(length)})
	binary.Write(&buf, binary.LittleEndian, glbChunk{uint32(len(json) + jpad), typeJSON})
	buf.Write(json)
	buf.Write(bytes.Repeat([]byte{' '}, jpad))
	if bin != nil {
		binary.Write(&buf, binary.LittleEndian, glbChunk{uint32(len(bin) + bpad), typeBIN})
		buf.Write(bin)
		buf.Write(make([]byte, bpad))
	}
	_, err := w.Write(buf.Bytes())
	return err
}
