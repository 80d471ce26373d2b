// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/blobvault/encrypt"
	"github.com/bitmark-inc/blobvault/storage"
	"github.com/bitmark-inc/blobvault/store"
	"github.com/bitmark-inc/blobvault/transport"
)

// session - everything a command needs to talk to the store
type session struct {
	access *storage.Access
	client *transport.Client
	store  *store.Store
}

// open the local database and connect the transport
//
// the token must already exist, commands other than setup cannot run
// without it
func openSession(m *metadata) (*session, error) {

	access, err := storage.Initialise(m.config.DatabaseDirectory(), storage.ReadWrite)
	if nil != err {
		return nil, err
	}

	token, err := store.LoadToken(access)
	if nil != err {
		access.Finalise()
		return nil, err
	}

	key, err := encrypt.DeriveKey(token)
	if nil != err {
		access.Finalise()
		return nil, err
	}

	client, err := transport.NewClient(transport.Configuration{
		Connect: m.config.Connect,
	})
	if nil != err {
		access.Finalise()
		return nil, err
	}

	return &session{
		access: access,
		client: client,
		store:  store.New(client, access, key),
	}, nil
}

func (s *session) close() {
	s.client.Close()
	s.access.Finalise()
}
