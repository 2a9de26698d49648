// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package overlay - the node side of the peer connection layer
//
// Manager owns the live connections and answers the admission
// question for the peer package; Listener and Connector are the
// background processes that feed it inbound transports and outbound
// dials.
package overlay
