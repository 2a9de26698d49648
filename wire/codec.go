// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/bitmark-inc/overlayd/fault"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}
	encMode, err = encOptions.EncMode()
	if nil != err {
		panic(fmt.Sprintf("CBOR encoder mode error: %s", err))
	}

	// input is adversarial: no duplicate keys, no indefinite lengths,
	// shallow nesting
	decOptions := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		MaxNestedLevels:   8,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}
	decMode, err = decOptions.DecMode()
	if nil != err {
		panic(fmt.Sprintf("CBOR decoder mode error: %s", err))
	}
}

// encode a message envelope to a body
func marshalBody(message *Message) ([]byte, error) {
	if !message.Type.Valid() {
		return nil, fault.ErrUnknownMessageType
	}
	return encMode.Marshal(message)
}

// Pack - serialise a message into a complete frame, header included
func Pack(message *Message) ([]byte, error) {
	body, err := marshalBody(message)
	if nil != err {
		return nil, err
	}
	if len(body) > MaximumMessageSize {
		return nil, fault.ErrMessageTooLarge
	}

	header, err := EncodeHeader(uint32(len(body)))
	if nil != err {
		return nil, err
	}

	packed := make([]byte, 0, HeaderSize+len(body))
	packed = append(packed, header[:]...)
	return append(packed, body...), nil
}

// UnpackMessage - decode a frame body
//
// trailing bytes, an unknown type or any CBOR structure error make
// the body malformed
func UnpackMessage(body []byte) (*Message, error) {
	message := &Message{}
	if err := decMode.Unmarshal(body, message); nil != err {
		return nil, fault.ErrMalformedMessage
	}
	if !message.Type.Valid() {
		return nil, fault.ErrUnknownMessageType
	}
	return message, nil
}
