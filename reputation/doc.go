// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reputation - persisted per-peer bookkeeping
//
// a record is keyed by the peer's address and listening port and holds
// the number of consecutive failures and the earliest time another
// outbound attempt may be made
package reputation
