// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transport

import (
	"encoding/json"
	"net"

	"github.com/bitmark-inc/blobvault/fault"
)

// the response envelope, the error member tolerates several shapes
// and is normalised by adaptServerError
type inboundMessage struct {
	Id     *uint64         `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// read loop for one connection, runs until the connection drops
func (c *Client) reader(conn net.Conn) {

	decoder := json.NewDecoder(conn)

	for {
		var message inboundMessage
		err := decoder.Decode(&message)
		if nil != err {
			c.log.Warnf("receive failed: %s", err)
			c.dropConnection(conn)
			return
		}
		c.dispatch(message)
	}
}

// resolve the pending entry matching an inbound message
//
// messages without a matching id are unsolicited or out-of-band and
// are ignored by this layer
func (c *Client) dispatch(message inboundMessage) {

	if nil == message.Id {
		c.log.Debugf("unsolicited message dropped")
		return
	}

	c.Lock()
	done, ok := c.pending[*message.Id]
	if ok {
		delete(c.pending, *message.Id)
	}
	c.Unlock()

	if !ok {
		c.log.Debugf("no pending request for id: %d", *message.Id)
		return
	}

	if isPresent(message.Error) {
		done <- callResult{err: adaptServerError(message.Error)}
		return
	}
	if !isPresent(message.Result) {
		done <- callResult{err: fault.UnrecognisedResponse}
		return
	}
	done <- callResult{result: message.Result}
}

// handle an abnormal close
//
// all requests in flight are failed with a retryable error and a
// reconnect attempt is scheduled, unless the client is closing
func (c *Client) dropConnection(conn net.Conn) {

	c.Lock()
	if conn != c.conn {
		// this drop was already handled
		c.Unlock()
		return
	}
	c.conn = nil
	c.state = Disconnected
	c.connected = make(chan struct{})

	pending := c.pending
	c.pending = make(map[uint64]chan callResult)
	closing := c.closing
	c.Unlock()

	conn.Close()

	for _, done := range pending {
		done <- callResult{err: fault.ConnectionLost}
	}

	if closing {
		return
	}

	c.log.Warn("connection dropped")

	// wake the connector for the backoff retry loop
	select {
	case c.trigger <- struct{}{}:
	default:
	}
}

// a JSON member counts as present unless missing or null
func isPresent(raw json.RawMessage) bool {
	return 0 != len(raw) && "null" != string(raw)
}
