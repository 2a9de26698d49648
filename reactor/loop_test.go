// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reactor_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/overlayd/background"
	"github.com/bitmark-inc/overlayd/reactor"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func startLoop() (*reactor.Loop, *background.T) {
	loop := reactor.New("test-loop")
	return loop, background.Start(background.Processes{loop}, nil)
}

func TestPostOrder(t *testing.T) {
	loop, bg := startLoop()
	defer bg.Stop()

	const items = 500

	results := make([]int, 0, items)
	for i := 0; i < items; i += 1 {
		n := i
		assert.True(t, loop.Post(func() {
			results = append(results, n)
		}), "post refused")
	}

	ok := loop.Do(func() {})
	assert.True(t, ok, "do refused")

	assert.Equal(t, items, len(results), "wrong number of actions run")
	for i, n := range results {
		if i != n {
			t.Fatalf("action %d ran at position %d", n, i)
		}
	}
}

func TestPostFromLoop(t *testing.T) {
	loop, bg := startLoop()
	defer bg.Stop()

	done := make(chan struct{})
	loop.Post(func() {
		// must not deadlock
		loop.Post(func() {
			close(done)
		})
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested post did not run")
	}
}

func TestActionsNeverOverlap(t *testing.T) {
	loop, bg := startLoop()
	defer bg.Stop()

	running := 0
	overlapped := false
	var wg sync.WaitGroup

	for g := 0; g < 8; g += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i += 1 {
				loop.Post(func() {
					running += 1
					if running > 1 {
						overlapped = true
					}
					running -= 1
				})
			}
		}()
	}
	wg.Wait()
	loop.Do(func() {})

	assert.False(t, overlapped, "two actions ran at once")
}

func TestTimer(t *testing.T) {
	loop, bg := startLoop()
	defer bg.Stop()

	fired := make(chan struct{})
	loop.AfterFunc(10*time.Millisecond, func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	stopped := loop.AfterFunc(50*time.Millisecond, func() {
		t.Error("stopped timer fired")
	})
	assert.True(t, stopped.Stop(), "timer was not pending")
	time.Sleep(100 * time.Millisecond)
	assert.False(t, stopped.Stop(), "timer stopped twice")
}

func TestStop(t *testing.T) {
	loop, bg := startLoop()

	ran := false
	loop.Post(func() {
		ran = true
	})
	bg.Stop()

	<-loop.Stopped()
	assert.True(t, ran, "queued action dropped at shutdown")
	assert.False(t, loop.Post(func() {}), "post accepted after stop")
	assert.False(t, loop.Do(func() {}), "do accepted after stop")
}
