// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/overlayd/fault"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.1), 1)

	assert.Nil(t, limit(limiter), "burst allows the first")
	assert.Equal(t, fault.ErrNotAcceptingConnections, limit(limiter), "second would wait too long")
}

func TestLimitShortDelay(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(100), 1)

	assert.Nil(t, limit(limiter), "first")
	assert.Nil(t, limit(limiter), "second waits briefly")
}

func TestLimitInfinite(t *testing.T) {
	limiter := rate.NewLimiter(rate.Inf, 0)
	for i := 0; i < 100; i += 1 {
		assert.Nil(t, limit(limiter), "%d", i)
	}
}
