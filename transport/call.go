// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transport

import (
	"encoding/json"

	"github.com/bitmark-inc/blobvault/fault"
)

// the request envelope, part of the wire contract with the storage
// node and must not be changed
type request struct {
	Id     uint64      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

// Call - issue a request and wait for the matching response
//
// many calls may be pending at the same time, each is tracked
// independently by its id and resolved in the order responses arrive;
// if not currently connected a connect is triggered first and raced
// against a short timeout
func (c *Client) Call(method string, params interface{}) (json.RawMessage, error) {

	c.Lock()
	if c.closing {
		c.Unlock()
		return nil, fault.NotConnected
	}
	if c.terminal {
		c.Unlock()
		return nil, fault.Disconnected
	}

	c.sequence += 1
	id := c.sequence
	done := make(chan callResult, 1)
	c.pending[id] = done

	state := c.state
	connected := c.connected
	c.Unlock()

	if Connected != state {
		err := c.Connect()
		if nil != err {
			c.removePending(id)
			return nil, err
		}

		select {
		case <-connected:
		case <-c.clock.After(c.connectTimeout):
			c.removePending(id)
			return nil, fault.ConnectionTimeout
		}
	}

	data, err := json.Marshal(request{
		Id:     id,
		Method: method,
		Params: params,
	})
	if nil != err {
		c.removePending(id)
		return nil, err
	}
	data = append(data, '\n')

	c.Lock()
	conn := c.conn
	c.Unlock()
	if nil == conn {
		c.removePending(id)
		return nil, fault.NotConnected
	}

	c.writeMu.Lock()
	_, err = conn.Write(data)
	c.writeMu.Unlock()
	if nil != err {
		// the drop handler resolves every pending entry,
		// including this one, with a retryable error
		c.log.Warnf("write failed: %s", err)
		c.dropConnection(conn)
	}

	reply := <-done
	return reply.result, reply.err
}

// discard a pending entry that will never be resolved
func (c *Client) removePending(id uint64) {
	c.Lock()
	delete(c.pending, id)
	c.Unlock()
}
