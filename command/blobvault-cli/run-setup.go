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
	"github.com/bitmark-inc/blobvault/namespace"
	"github.com/bitmark-inc/blobvault/storage"
	"github.com/bitmark-inc/blobvault/store"
	"github.com/bitmark-inc/blobvault/transport"
)

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	label, err := checkNamespaceLabel(c.String("namespace"))
	if nil != err {
		return err
	}

	ns, err := namespace.FromString(label)
	if nil != err {
		return err
	}

	definition, err := checkSchemaSource(c.String("schema"), c.String("file"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "namespace: %s\n", ns)
	}

	access, err := storage.Initialise(m.config.DatabaseDirectory(), storage.ReadWrite)
	if nil != err {
		return err
	}
	defer access.Finalise()

	if _, err := store.LoadToken(access); nil == err {
		return fault.AlreadyInitialised
	}

	token, err := encrypt.GenerateToken()
	if nil != err {
		return err
	}

	key, err := encrypt.DeriveKey(token)
	if nil != err {
		return err
	}

	err = store.SaveToken(access, token)
	if nil != err {
		return err
	}

	client, err := transport.NewClient(transport.Configuration{
		Connect: m.config.Connect,
	})
	if nil != err {
		store.ClearToken(access)
		return err
	}
	defer client.Close()

	height, err := store.New(client, access, key).InitialiseSchema(ns, definition)
	if nil != err {
		// nothing was written remotely under this token, forget it
		// so that setup can simply be run again
		store.ClearToken(access)
		return err
	}

	fmt.Fprintf(m.w, "namespace: %s\n", ns)
	fmt.Fprintf(m.w, "schema stored at position: %d\n", height)
	fmt.Fprintf(m.w, "\nsecret token backup phrase, store it safely,\n")
	fmt.Fprintf(m.w, "without it the records cannot be recovered:\n\n")
	fmt.Fprintf(m.w, "  %s\n", token.Base58())

	return nil
}
