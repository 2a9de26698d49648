// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package overlay

import (
	"github.com/bitmark-inc/overlayd/fault"
	"github.com/bitmark-inc/overlayd/wire"
)

// ProtocolVersion - version carried in our hello
const ProtocolVersion = 1

// Validator - base hello checks
type Validator struct {
	version   uint32
	networkID string
}

// NewValidator - accept hellos for this version and network
func NewValidator(version uint32, networkID string) *Validator {
	return &Validator{
		version:   version,
		networkID: networkID,
	}
}

// ValidateHello - reject a remote that cannot take part
func (v *Validator) ValidateHello(hello *wire.Hello) error {
	if v.version != hello.Version {
		return fault.ErrIncompatibleVersion
	}
	if v.networkID != hello.NetworkID {
		return fault.ErrWrongNetwork
	}
	if 0 == hello.ListeningPort {
		return fault.ErrInvalidListeningPort
	}
	return nil
}
