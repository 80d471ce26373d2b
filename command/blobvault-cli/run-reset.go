// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/blobvault/encrypt"
	"github.com/bitmark-inc/blobvault/fault"
	"github.com/bitmark-inc/blobvault/storage"
	"github.com/bitmark-inc/blobvault/store"
	"github.com/bitmark-inc/blobvault/transport"
)

func runReset(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if !c.Bool("yes") {
		return fault.InvalidError("reset requires --yes, the records become unrecoverable")
	}

	access, err := storage.Initialise(m.config.DatabaseDirectory(), storage.ReadWrite)
	if nil != err {
		return err
	}
	defer access.Finalise()

	// no network traffic is needed to reset, the client is only
	// created because a store session requires one
	client, err := transport.NewClient(transport.Configuration{
		Connect: m.config.Connect,
	})
	if nil != err {
		return err
	}
	defer client.Close()

	key := &[encrypt.KeyLength]byte{}
	store.New(client, access, key).ResetLocalState()

	fmt.Fprintf(m.w, "all local state removed\n")

	return nil
}
