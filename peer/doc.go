// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// this module handles one connection to a remote node
//
// * Initiate dials out, Accept adopts an inbound transport
// * the read chain turns the byte stream into length framed messages
// * the hello gate bounds the time to the first message and updates
//   the reputation of the remote
// * Drop tears the connection down exactly once, from any path
//
// all of a connection's completions run on its reactor.Loop
package peer
