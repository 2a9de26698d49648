// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reputation

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/overlayd/fault"
	"github.com/bitmark-inc/overlayd/util"
)

// backoff limits
const (
	backoffBase     = 10 * time.Second
	backoffMaxShift = 10
)

// Record - reputation of one peer
type Record struct {
	Address          string
	Port             uint16
	NumberOfFailures uint32
	NextAttempt      time.Time
}

// Store - load/store contract used by the connection layer
//
// Load returns fault.ErrRecordNotFound when no record exists
type Store interface {
	Load(address string, port uint16) (*Record, error)
	Store(record *Record) error
}

// NewRecord - a record for a peer never seen before: no failures and
// may be tried immediately
func NewRecord(address string, port uint16, now time.Time) *Record {
	return &Record{
		Address:          address,
		Port:             port,
		NumberOfFailures: 0,
		NextAttempt:      now,
	}
}

// Succeeded - clear the backoff state
func (r *Record) Succeeded(now time.Time) {
	r.NumberOfFailures = 0
	r.NextAttempt = now
}

// Failed - count a failure and push the next attempt back
// exponentially
func (r *Record) Failed(now time.Time) {
	r.NumberOfFailures += 1
	shift := r.NumberOfFailures
	if shift > backoffMaxShift {
		shift = backoffMaxShift
	}
	r.NextAttempt = now.Add(backoffBase << shift)
}

// Due - true if an outbound attempt may be made at now
func (r *Record) Due(now time.Time) bool {
	return !now.Before(r.NextAttempt)
}

// key layout: port(2 bytes big endian) ‖ address
func recordKey(address string, port uint16) []byte {
	key := make([]byte, 2, 2+len(address))
	binary.BigEndian.PutUint16(key, port)
	return append(key, address...)
}

// value layout: varint(failures) ‖ varint(next attempt, unix nanoseconds)
func (r *Record) pack() []byte {
	buffer := make([]byte, 0, 2*util.Varint64MaximumBytes)
	buffer = util.AppendVarint64(buffer, uint64(r.NumberOfFailures))
	return util.AppendVarint64(buffer, uint64(r.NextAttempt.UnixNano()))
}

func unpackRecord(address string, port uint16, buffer []byte) (*Record, error) {
	failures, n := util.FromVarint64(buffer)
	if 0 == n || failures > 0xffffffff {
		return nil, fault.ErrRecordCorrupt
	}
	buffer = buffer[n:]

	nextAttempt, n := util.FromVarint64(buffer)
	if 0 == n || n != len(buffer) {
		return nil, fault.ErrRecordCorrupt
	}

	return &Record{
		Address:          address,
		Port:             port,
		NumberOfFailures: uint32(failures),
		NextAttempt:      time.Unix(0, int64(nextAttempt)),
	}, nil
}
