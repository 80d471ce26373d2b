// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store - the encrypted append-only record store
//
// builds a small database abstraction on a storage node that only
// offers "submit a blob" and "fetch the blob at position P": all
// structure lives on the client, every payload is encrypted before it
// leaves the process and positions of written records are remembered
// in the local index because the node can never be asked for them
package store

import (
	"encoding/json"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/blobvault/encrypt"
	"github.com/bitmark-inc/blobvault/schema"
	"github.com/bitmark-inc/blobvault/storage"
)

// Caller - the transport surface the store needs
type Caller interface {
	Call(method string, params interface{}) (json.RawMessage, error)
}

// Store - one session with one local database
//
// constructed once and passed around, owns the schema and blob caches
type Store struct {
	log    *logger.L
	caller Caller
	access *storage.Access
	key    *[encrypt.KeyLength]byte
	blobs  storage.BlobCache

	sync.Mutex   // guards cachedSchema
	cachedSchema schema.Definition
}

// New - create a store session
func New(caller Caller, access *storage.Access, key *[encrypt.KeyLength]byte) *Store {
	return &Store{
		log:    logger.New("store"),
		caller: caller,
		access: access,
		key:    key,
		blobs:  storage.NewBlobCache(),
	}
}
