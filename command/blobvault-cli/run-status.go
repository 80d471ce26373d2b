// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/blobvault/encrypt"
	"github.com/bitmark-inc/blobvault/storage"
	"github.com/bitmark-inc/blobvault/store"
	"github.com/bitmark-inc/blobvault/transport"
)

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	access, err := storage.Initialise(m.config.DatabaseDirectory(), storage.ReadWrite)
	if nil != err {
		return err
	}
	defer access.Finalise()

	client, err := transport.NewClient(transport.Configuration{
		Connect: m.config.Connect,
	})
	if nil != err {
		return err
	}
	defer client.Close()

	// status never decrypts anything so a missing token is not an
	// error here, a zero key is sufficient
	key := &[encrypt.KeyLength]byte{}
	if token, err := store.LoadToken(access); nil == err {
		key, err = encrypt.DeriveKey(token)
		if nil != err {
			return err
		}
	}

	return printJson(m.w, store.New(client, access, key).CurrentStatus())
}
