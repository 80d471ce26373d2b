// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"
)

const statsInterval = 60 * time.Second

// periodic summary of what the node holds
type statsLogger struct {
	log  *logger.L
	node *node
}

func newStatsLogger(n *node) *statsLogger {
	return &statsLogger{
		log:  logger.New("stats"),
		node: n,
	}
}

// Run - background process loop
func (s *statsLogger) Run(args interface{}, shutdown <-chan struct{}) {
	for {
		select {
		case <-shutdown:
			return
		case <-time.After(statsInterval):
			s.log.Infof("height: %d", s.node.currentHeight())
		}
	}
}
