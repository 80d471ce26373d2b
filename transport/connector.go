// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transport

import (
	"time"
)

// background process driving connection establishment
//
// woken by Connect or by a dropped connection, dials with capped
// linear backoff until the attempt budget is exhausted, then parks in
// the terminal disconnected state awaiting a manual Connect
type connector struct {
	client *Client
}

func (conn *connector) Run(args interface{}, shutdown <-chan struct{}) {

	c := conn.client
	log := c.log

	log.Info("connector: starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-c.trigger:
		}

		attempt := 0

	dialing:
		for {
			c.Lock()
			if c.closing || Connected == c.state {
				c.Unlock()
				continue loop
			}
			c.state = Connecting
			c.Unlock()

			netConn, err := c.dial(c.connect)
			if nil == err {
				// attempt count and backoff reset here
				c.setConnected(netConn)
				continue loop
			}

			attempt += 1
			log.Warnf("connect to: %s  attempt: %d  error: %s", c.connect, attempt, err)

			if attempt >= c.maximumAttempts {
				c.Lock()
				c.state = Disconnected
				c.terminal = true
				c.Unlock()
				log.Errorf("retry limit reached: %d  awaiting manual reconnect", c.maximumAttempts)
				continue loop
			}

			delay := time.Duration(attempt) * c.backoffBase
			if delay > c.backoffCeiling {
				delay = c.backoffCeiling
			}

			select {
			case <-shutdown:
				break dialing
			case <-c.clock.After(delay):
			}
		}
	}

	log.Info("connector: finished")
}
