// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runSchema(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s, err := openSession(m)
	if nil != err {
		return err
	}
	defer s.close()

	definition, err := s.store.Schema()
	if nil != err {
		return err
	}

	return printJson(m.w, definition)
}
