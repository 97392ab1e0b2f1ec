// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uf2 writes and reads images in the USB Flashing Format understood by
// the RP2040 boot ROM.
//
// See https://github.com/microsoft/uf2
package uf2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	NotMainFlash         = 0x00000001
	FileContainer        = 0x00001000
	FamilyIDPresent      = 0x00002000
	MD5ChecksumPresent   = 0x00004000
	ExtensionTagsPresent = 0x00008000
)

// Families
const (
	RP2040      = 0xe48bff56
	Absolute    = 0xe48bff57
	Data        = 0xe48bff58
	RP2350ARMS  = 0xe48bff59
	RP2350RISCV = 0xe48bff5a
	RP2350ARMNS = 0xe48bff5b
)

const (
	magic0 = 0x0a324655
	magic1 = 0x9e5d5157
	magic2 = 0x0ab16f30
)

// BlockSize is the size of a single UF2 block in bytes.
const BlockSize = 512

const blockPayload = 256

var ErrFormat = errors.New("uf2: invalid block")

type block struct {
	Magic0 uint32
	Magic1 uint32
	Flags  uint32
	Addr   uint32
	Len    uint32
	Seq    uint32
	Total  uint32
	Family uint32
	Data   [blockPayload]byte
	_      [476 - blockPayload]byte
	Magic2 uint32
}

// Writer splits everything written into blocks for consecutive addresses
// starting at addr. Flush must be called after the last write.
type Writer struct {
	w io.Writer
	b block
}

// NewWriter returns a Writer for an image of size bytes.
func NewWriter(w io.Writer, addr, flags, family uint32, size int) *Writer {
	u := new(Writer)
	u.w = w
	u.b.Magic0 = magic0
	u.b.Magic1 = magic1
	u.b.Flags = flags
	u.b.Addr = addr
	u.b.Total = uint32((size + len(u.b.Data) - 1) / len(u.b.Data))
	u.b.Family = family
	u.b.Magic2 = magic2
	return u
}

func (u *Writer) Write(p []byte) (n int, err error) {
	b := &u.b
	for len(p) != 0 {
		m := copy(b.Data[b.Len:], p)
		n += m
		p = p[m:]
		b.Len += uint32(m)
		if int(b.Len) == len(b.Data) {
			if err = u.emit(); err != nil {
				return
			}
		}
	}
	return
}

func (u *Writer) emit() error {
	b := &u.b
	if b.Seq >= b.Total {
		return fmt.Errorf("uf2: image exceeds %d blocks", b.Total)
	}
	err := binary.Write(u.w, binary.LittleEndian, b)
	b.Addr += b.Len
	b.Seq++
	b.Len = 0
	return err
}

// Flush writes the last, partially filled block padded with zeros.
func (u *Writer) Flush() (err error) {
	b := &u.b
	if b.Len == 0 {
		return
	}
	clear(b.Data[b.Len:])
	b.Len = uint32(len(b.Data))
	return u.emit()
}

// Block is the payload of a single decoded block.
type Block struct {
	Addr   uint32
	Family uint32
	Data   []byte
}

// ReadAll decodes all blocks from r.
func ReadAll(r io.Reader) (blocks []Block, err error) {
	for {
		var b block
		err = binary.Read(r, binary.LittleEndian, &b)
		if err == io.EOF {
			return blocks, nil
		} else if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		if b.Magic0 != magic0 || b.Magic1 != magic1 || b.Magic2 != magic2 {
			return nil, fmt.Errorf("%w: bad magic in block %d", ErrFormat, len(blocks))
		}
		if b.Len > blockPayload {
			return nil, fmt.Errorf("%w: payload of %d bytes", ErrFormat, b.Len)
		}
		blocks = append(blocks, Block{
			Addr:   b.Addr,
			Family: b.Family,
			Data:   b.Data[:b.Len:b.Len],
		})
	}
}
