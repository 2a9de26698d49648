// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reactor - a single goroutine event loop
//
// blocking work (reads, writes, dials, timers) runs elsewhere and
// posts its completion to the loop, so the state that completions
// touch is only ever changed by the loop goroutine and needs no lock
package reactor
