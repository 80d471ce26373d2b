// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/blobvault/storage"
	"github.com/bitmark-inc/blobvault/store"
)

func runToken(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	access, err := storage.Initialise(m.config.DatabaseDirectory(), storage.ReadOnly)
	if nil != err {
		return err
	}
	defer access.Finalise()

	token, err := store.LoadToken(access)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "%s\n", token.Base58())

	return nil
}
