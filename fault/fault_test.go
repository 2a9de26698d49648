// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/overlayd/fault"
)

var (
	ErrExistsOne    = fault.ExistsError("exists one ")
	ErrInvalidOne   = fault.InvalidError("invalid one")
	ErrNotFoundOne  = fault.NotFoundError("not found one")
	ErrProcessOne   = fault.ProcessError("process one")
	ErrProtocolOne  = fault.ProtocolError("protocol one")
	ErrTimeoutOne   = fault.TimeoutError("timeout one")
	ErrTransportOne = fault.TransportError("transport one")
)

// test that the error classes are distinct
func TestClasses(t *testing.T) {
	errorList := []struct {
		err       error
		exists    bool
		invalid   bool
		notFound  bool
		process   bool
		protocol  bool
		timeout   bool
		transport bool
	}{
		{ErrExistsOne, true, false, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false, false},
		{ErrNotFoundOne, false, false, true, false, false, false, false},
		{ErrProcessOne, false, false, false, true, false, false, false},
		{ErrProtocolOne, false, false, false, false, true, false, false},
		{ErrTimeoutOne, false, false, false, false, false, true, false},
		{ErrTransportOne, false, false, false, false, false, false, true},
		{fault.ErrMessageBeforeHello, false, false, false, false, true, false, false},
		{fault.ErrMessageTooLarge, false, false, false, false, true, false, false},
		{fault.ErrMalformedMessage, false, false, false, false, true, false, false},
		{fault.ErrHelloTimeout, false, false, false, false, false, true, false},
		{fault.ErrRecordNotFound, false, false, true, false, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrProtocol(err) != e.protocol {
			t.Errorf("%d: expected 'protocol' == %v for err = %v", i, e.protocol, err)
		}
		if fault.IsErrTimeout(err) != e.timeout {
			t.Errorf("%d: expected 'timeout' == %v for err = %v", i, e.timeout, err)
		}
		if fault.IsErrTransport(err) != e.transport {
			t.Errorf("%d: expected 'transport' == %v for err = %v", i, e.transport, err)
		}
	}
}
