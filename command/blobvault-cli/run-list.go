// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s, err := openSession(m)
	if nil != err {
		return err
	}
	defer s.close()

	listing, err := s.store.List()
	if nil != err {
		return err
	}

	err = printJson(m.w, listing)
	if nil != err {
		return err
	}

	if 0 != len(listing.Failures) {
		fmt.Fprintf(m.e, "warning: %d entries could not be read, check the secret token\n",
			len(listing.Failures))
	}

	return nil
}
