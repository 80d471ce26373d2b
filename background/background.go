// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run processes in the background and
// shut them down cleanly later
package background

import (
	"sync"
)

// Process - a background process instance
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - the list of processes to start
type Processes []Process

// T - handle for later stopping the processes
type T struct {
	shutdown chan struct{}
	finished chan struct{}
}

// Start - run each process in its own goroutine
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make(chan struct{}),
		finished: make(chan struct{}),
	}

	wg := sync.WaitGroup{}

	// start all background processes
	for _, p := range processes {
		wg.Add(1)
		go func(p Process) {
			defer wg.Done()
			p.Run(args, register.shutdown)
		}(p)
	}

	go func() {
		wg.Wait()
		close(register.finished)
	}()

	return register
}

// Stop - shutdown all processes and wait for them to terminate
func (t *T) Stop() {

	if nil == t {
		return
	}

	close(t.shutdown)
	<-t.finished
}
