// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sync"
)

// node - the whole in-memory substrate
//
// one global append-only sequence of blobs, each tagged with the
// namespace it was submitted to; positions start at one and are
// never reused
type node struct {
	sync.RWMutex
	blobs     map[uint64]storedBlob
	height    uint64
	bandwidth float64
}

type storedBlob struct {
	namespace string
	payload   string
}

func newNode(bandwidth float64) *node {
	return &node{
		blobs:     map[uint64]storedBlob{},
		bandwidth: bandwidth,
	}
}

// append a blob returning its assigned position
func (n *node) submit(namespace string, payload string) uint64 {
	n.Lock()
	defer n.Unlock()

	n.height += 1
	n.blobs[n.height] = storedBlob{
		namespace: namespace,
		payload:   payload,
	}
	return n.height
}

// the blob at a position, only if the namespace matches
func (n *node) get(namespace string, height uint64) (string, bool) {
	n.RLock()
	defer n.RUnlock()

	blob, ok := n.blobs[height]
	if !ok || namespace != blob.namespace {
		return "", false
	}
	return blob.payload, true
}

func (n *node) currentHeight() uint64 {
	n.RLock()
	defer n.RUnlock()
	return n.height
}
