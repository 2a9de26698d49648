// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/overlayd/fault"
	"github.com/bitmark-inc/overlayd/wire"
)

func TestPackHello(t *testing.T) {
	hello := &wire.Hello{
		Version:       3,
		NetworkID:     "testing",
		ListeningPort: 2136,
		Agent:         "overlayd/0.1",
		Capabilities:  []string{"blocks", "transactions"},
	}

	message, err := wire.NewHello(hello)
	assert.NoError(t, err, "new hello")

	packed, err := wire.Pack(message)
	assert.NoError(t, err, "pack")

	header := wire.Header{}
	copy(header[:], packed)
	length, err := wire.DecodeLength(header)
	assert.NoError(t, err, "decode length")
	assert.Equal(t, len(packed)-wire.HeaderSize, length, "header does not cover the body")

	unpacked, err := wire.UnpackMessage(packed[wire.HeaderSize:])
	assert.NoError(t, err, "unpack")
	assert.Equal(t, wire.HelloMessage, unpacked.Type, "type")

	received, err := unpacked.Hello()
	assert.NoError(t, err, "hello payload")
	assert.Equal(t, hello, received, "hello changed in transit")

	_, err = unpacked.Peers()
	assert.Equal(t, fault.ErrUnknownMessageType, err, "hello decoded as peers")
}

func TestPackPeers(t *testing.T) {
	addresses := []wire.PeerAddress{
		{Host: "127.0.0.1", Port: 2136},
		{Host: "::1", Port: 2137},
	}
	message, err := wire.NewPeers(addresses)
	assert.NoError(t, err, "new peers")

	packed, err := wire.Pack(message)
	assert.NoError(t, err, "pack")

	unpacked, err := wire.UnpackMessage(packed[wire.HeaderSize:])
	assert.NoError(t, err, "unpack")

	peers, err := unpacked.Peers()
	assert.NoError(t, err, "peers payload")
	assert.Equal(t, addresses, peers.Addresses, "addresses")

	empty, err := wire.NewPeers(nil)
	assert.NoError(t, err, "empty peers")
	peers, err = empty.Peers()
	assert.NoError(t, err, "empty peers payload")
	assert.Equal(t, 0, len(peers.Addresses), "empty list")
}

func TestPackRejectsUnknownType(t *testing.T) {
	_, err := wire.Pack(wire.NewOpaque(0, nil))
	assert.Equal(t, fault.ErrUnknownMessageType, err, "zero type accepted")

	_, err = wire.Pack(wire.NewOpaque(200, nil))
	assert.Equal(t, fault.ErrUnknownMessageType, err, "large type accepted")
}

func TestUnpackMalformed(t *testing.T) {

	good, err := wire.Pack(wire.NewOpaque(wire.BlockMessage, []byte{1, 2, 3}))
	assert.NoError(t, err, "pack")
	body := good[wire.HeaderSize:]

	_, err = wire.UnpackMessage(body)
	assert.NoError(t, err, "well formed body rejected")

	tests := []struct {
		name string
		body []byte
		err  error
	}{
		{"empty", []byte{}, fault.ErrMalformedMessage},
		{"trailing", append(append([]byte{}, body...), 0x00), fault.ErrMalformedMessage},
		{"truncated", body[:len(body)-1], fault.ErrMalformedMessage},
		{"not an array", []byte{0x05}, fault.ErrMalformedMessage},
		{"short array", []byte{0x81, 0x02}, fault.ErrMalformedMessage},
		{"long array", []byte{0x83, 0x02, 0x40, 0x00}, fault.ErrMalformedMessage},
		{"indefinite", []byte{0x9f, 0x02, 0x40, 0xff}, fault.ErrMalformedMessage},
		{"unknown type", []byte{0x82, 0x18, 0x63, 0x40}, fault.ErrUnknownMessageType},
		{"zero type", []byte{0x82, 0x00, 0x40}, fault.ErrUnknownMessageType},
	}

	for _, item := range tests {
		_, err := wire.UnpackMessage(item.body)
		assert.Equal(t, item.err, err, item.name)
		assert.True(t, fault.IsErrProtocol(err), "%s: not a protocol error", item.name)
	}
}

func TestMalformedHelloPayload(t *testing.T) {
	message := wire.NewOpaque(wire.HelloMessage, []byte{0x82, 0x01, 0x02})
	_, err := message.Hello()
	assert.Equal(t, fault.ErrMalformedMessage, err, "short hello accepted")
}
