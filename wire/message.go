// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/bitmark-inc/overlayd/fault"
)

// MessageType - the first field of every envelope
type MessageType uint8

// message types
const (
	ErrorMessage MessageType = iota + 1
	HelloMessage
	GetPeersMessage
	PeersMessage
	TransactionMessage
	BlockMessage

	// one past the last valid type
	endOfMessageTypes
)

// Valid - true for a known message type
func (t MessageType) Valid() bool {
	return t >= ErrorMessage && t < endOfMessageTypes
}

func (t MessageType) String() string {
	switch t {
	case ErrorMessage:
		return "Error"
	case HelloMessage:
		return "Hello"
	case GetPeersMessage:
		return "GetPeers"
	case PeersMessage:
		return "Peers"
	case TransactionMessage:
		return "Transaction"
	case BlockMessage:
		return "Block"
	default:
		return "*Unknown*"
	}
}

// Message - the envelope carried by every frame
//
// only Hello and Peers payloads are interpreted by this layer
type Message struct {
	_       struct{} `cbor:",toarray"`
	Type    MessageType
	Payload []byte
}

// Hello - first message on a connection
type Hello struct {
	_             struct{} `cbor:",toarray"`
	Version       uint32
	NetworkID     string
	ListeningPort uint16
	Agent         string
	Capabilities  []string
}

// PeerAddress - a node that accepts connections
type PeerAddress struct {
	_    struct{} `cbor:",toarray"`
	Host string
	Port uint16
}

// Peers - a list of known nodes
type Peers struct {
	_         struct{} `cbor:",toarray"`
	Addresses []PeerAddress
}

// NewHello - wrap a hello in an envelope
func NewHello(hello *Hello) (*Message, error) {
	return newMessage(HelloMessage, hello)
}

// NewPeers - wrap a list of addresses in an envelope
func NewPeers(addresses []PeerAddress) (*Message, error) {
	if nil == addresses {
		addresses = []PeerAddress{}
	}
	return newMessage(PeersMessage, &Peers{Addresses: addresses})
}

// NewOpaque - an envelope whose payload this layer never reads
func NewOpaque(messageType MessageType, payload []byte) *Message {
	return &Message{
		Type:    messageType,
		Payload: payload,
	}
}

func newMessage(messageType MessageType, item interface{}) (*Message, error) {
	payload, err := encMode.Marshal(item)
	if nil != err {
		return nil, err
	}
	return &Message{
		Type:    messageType,
		Payload: payload,
	}, nil
}

// Hello - decode the payload of a hello message
func (m *Message) Hello() (*Hello, error) {
	if HelloMessage != m.Type {
		return nil, fault.ErrUnknownMessageType
	}
	hello := &Hello{}
	if err := decMode.Unmarshal(m.Payload, hello); nil != err {
		return nil, fault.ErrMalformedMessage
	}
	return hello, nil
}

// Peers - decode the payload of a peers message
func (m *Message) Peers() (*Peers, error) {
	if PeersMessage != m.Type {
		return nil, fault.ErrUnknownMessageType
	}
	peers := &Peers{}
	if err := decMode.Unmarshal(m.Payload, peers); nil != err {
		return nil, fault.ErrMalformedMessage
	}
	return peers, nil
}
