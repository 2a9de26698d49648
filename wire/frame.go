// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/bitmark-inc/overlayd/fault"
)

// frame constants
const (
	// HeaderSize - bytes in a frame header
	HeaderSize = 4

	// MaximumMessageSize - largest acceptable body (16 MiB)
	MaximumMessageSize = 0x1000000

	// largest value the 31 length bits can carry
	maximumHeaderLength = 0x7fffffff

	continuationBit = 0x80
)

// Header - raw frame header
type Header [HeaderSize]byte

// EncodeHeader - build the header for a body of length bytes, the
// reserved bit is left clear
func EncodeHeader(length uint32) (Header, error) {
	header := Header{}
	if length > maximumHeaderLength {
		return header, fault.ErrMessageTooLarge
	}
	header[0] = byte(length >> 24)
	header[1] = byte(length >> 16)
	header[2] = byte(length >> 8)
	header[3] = byte(length)
	return header, nil
}

// Length - the 31 bit body length carried by a header
func (header Header) Length() uint32 {
	length := uint32(header[0] &^ continuationBit)
	length <<= 8
	length |= uint32(header[1])
	length <<= 8
	length |= uint32(header[2])
	length <<= 8
	length |= uint32(header[3])
	return length
}

// DecodeLength - the body length of a received header
//
// any length above MaximumMessageSize is a protocol error
func DecodeLength(header Header) (int, error) {
	length := header.Length()
	if length > MaximumMessageSize {
		return 0, fault.ErrMessageTooLarge
	}
	return int(length), nil
}
