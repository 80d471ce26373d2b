// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transport - the single RPC connection to the storage node
//
// carries many concurrently outstanding requests correlated purely by
// id, reconnects in the background with capped exponential backoff
// and surfaces a terminal disconnected state once the retry budget is
// exhausted
package transport

import (
	"crypto/tls"
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/blobvault/background"
	"github.com/bitmark-inc/blobvault/fault"
)

// State - connection state
type State int

// state machine: Disconnected → Connecting → Connected → (Disconnected on failure)
const (
	Disconnected State = iota
	Connecting
	Connected
)

// String - printable state for logging
func (state State) String() string {
	switch state {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	default:
		return "*Unknown*"
	}
}

// DialFunc - create the underlying connection, replaceable for testing
type DialFunc func(address string) (net.Conn, error)

// default limits
const (
	defaultConnectTimeout  = 1 * time.Second
	defaultBackoffBase     = 500 * time.Millisecond
	defaultBackoffCeiling  = 5 * time.Second
	defaultMaximumAttempts = 10
)

// Configuration - transport setup
type Configuration struct {
	Connect         string        // storage node address as host:port
	ConnectTimeout  time.Duration // bounded wait for connection establishment inside Call
	BackoffBase     time.Duration // reconnect delay is base × attempt count
	BackoffCeiling  time.Duration // upper limit for the reconnect delay
	MaximumAttempts int           // automatic reconnect budget
	Dial            DialFunc      // nil for the default TLS dialer
	Clock           Clock         // nil for the wall clock
}

// Client - a single connection to the storage node
type Client struct {
	sync.Mutex // guards all mutable fields below

	log     *logger.L
	writeMu sync.Mutex // serialises writes to the connection

	connect         string
	connectTimeout  time.Duration
	backoffBase     time.Duration
	backoffCeiling  time.Duration
	maximumAttempts int
	dial            DialFunc
	clock           Clock

	state    State
	terminal bool // retry budget exhausted, manual Connect required
	closing  bool

	conn      net.Conn
	sequence  uint64
	pending   map[uint64]chan callResult
	connected chan struct{} // closed on entering Connected, fresh after a drop
	trigger   chan struct{} // wake the connector process

	processes *background.T
}

// NewClient - create the client and start its background connector
//
// the connection itself is only established on the first Connect or
// Call
func NewClient(configuration Configuration) (*Client, error) {

	if "" == configuration.Connect {
		return nil, fault.ConnectAddressRequired
	}

	c := &Client{
		log:             logger.New("transport"),
		connect:         configuration.Connect,
		connectTimeout:  configuration.ConnectTimeout,
		backoffBase:     configuration.BackoffBase,
		backoffCeiling:  configuration.BackoffCeiling,
		maximumAttempts: configuration.MaximumAttempts,
		dial:            configuration.Dial,
		clock:           configuration.Clock,
		state:           Disconnected,
		pending:         make(map[uint64]chan callResult),
		connected:       make(chan struct{}),
		trigger:         make(chan struct{}, 1),
	}

	if 0 == c.connectTimeout {
		c.connectTimeout = defaultConnectTimeout
	}
	if 0 == c.backoffBase {
		c.backoffBase = defaultBackoffBase
	}
	if 0 == c.backoffCeiling {
		c.backoffCeiling = defaultBackoffCeiling
	}
	if 0 == c.maximumAttempts {
		c.maximumAttempts = defaultMaximumAttempts
	}
	if nil == c.dial {
		c.dial = tlsDial
	}
	if nil == c.clock {
		c.clock = realClock{}
	}

	c.processes = background.Start(background.Processes{
		&connector{client: c},
	}, nil)

	return c, nil
}

// the storage node uses a self signed certificate
func tlsDial(address string) (net.Conn, error) {
	return tls.Dial("tcp", address, &tls.Config{
		InsecureSkipVerify: true,
	})
}

// Connect - request connection establishment
//
// idempotent: a call while already connecting or connected is a
// no-op; also clears a terminal disconnected state and restores the
// automatic retry budget
func (c *Client) Connect() error {
	c.Lock()
	defer c.Unlock()

	if c.closing {
		return fault.NotConnected
	}
	if Disconnected != c.state {
		return nil
	}

	c.state = Connecting
	c.terminal = false

	// wake the connector, no-op if already awake
	select {
	case c.trigger <- struct{}{}:
	default:
	}
	return nil
}

// State - current connection state
func (c *Client) State() State {
	c.Lock()
	defer c.Unlock()
	return c.state
}

// IsTerminal - true after the automatic retry budget was exhausted
func (c *Client) IsTerminal() bool {
	c.Lock()
	defer c.Unlock()
	return c.terminal
}

// Close - drop the connection and stop the background processes
func (c *Client) Close() {
	c.Lock()
	if c.closing {
		c.Unlock()
		return
	}
	c.closing = true
	conn := c.conn
	c.Unlock()

	if nil != conn {
		conn.Close()
	}
	c.processes.Stop()
	c.log.Info("closed")
}

// record a new live connection and release waiting callers
func (c *Client) setConnected(conn net.Conn) {
	c.Lock()
	if c.closing {
		c.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.state = Connected
	c.terminal = false
	close(c.connected)
	c.Unlock()

	go c.reader(conn)
	c.log.Infof("connected to: %s", c.connect)
}

// a snapshot of the fields Call needs, taken under lock
func (c *Client) snapshot() (State, net.Conn, chan struct{}) {
	c.Lock()
	defer c.Unlock()
	return c.state, c.conn, c.connected
}

// result passed back to a pending call
type callResult struct {
	result json.RawMessage
	err    error
}
