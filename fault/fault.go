// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type ProtocolError GenericError
type TimeoutError GenericError
type TransportError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrConnectFailed           = TransportError("connect failed")
	ErrDuplicateHello          = ProtocolError("duplicate hello")
	ErrHelloTimeout            = TimeoutError("no hello before deadline")
	ErrIncompatibleVersion     = ProtocolError("incompatible protocol version")
	ErrInvalidIPAddress        = InvalidError("invalid IP address")
	ErrInvalidListeningPort    = ProtocolError("invalid listening port")
	ErrInvalidLoggerChannel    = InvalidError("invalid logger channel")
	ErrInvalidPortNumber       = InvalidError("invalid port number")
	ErrMalformedMessage        = ProtocolError("malformed message")
	ErrMessageBeforeHello      = ProtocolError("message before hello")
	ErrMessageTooLarge         = ProtocolError("message too large")
	ErrMissingListen           = InvalidError("missing listen address")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrReadFailed              = TransportError("read failed")
	ErrRecordCorrupt           = ProcessError("reputation record is corrupt")
	ErrRecordNotFound          = NotFoundError("reputation record not found")
	ErrUnknownMessageType      = ProtocolError("unknown message type")
	ErrWriteFailed             = TransportError("write failed")
	ErrWrongNetwork            = ProtocolError("wrong network")
	ErrZeroMaximumConnections  = InvalidError("maximum connections must be greater than zero")
	ErrZeroHelloTimeout        = InvalidError("hello timeout must be greater than zero")
	ErrNotAcceptingConnections = ProcessError("not accepting connections")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e ProtocolError) Error() string  { return string(e) }
func (e TimeoutError) Error() string   { return string(e) }
func (e TransportError) Error() string { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool    { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool   { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool  { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool   { _, ok := e.(ProcessError); return ok }
func IsErrProtocol(e error) bool  { _, ok := e.(ProtocolError); return ok }
func IsErrTimeout(e error) bool   { _, ok := e.(TimeoutError); return ok }
func IsErrTransport(e error) bool { _, ok := e.(TransportError); return ok }
