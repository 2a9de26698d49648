// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire - the overlay frame format
//
// each frame is a 4 byte big endian header followed by the body
//
//   offset 0..3:  bit 31 reserved (continuation flag, ignored)
//                 bits 0..30 body length in bytes
//   offset 4..:   CBOR array [type, payload]
//
// a body may not exceed MaximumMessageSize
package wire
