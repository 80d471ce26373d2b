// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/blobvault/fault"
)

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text, err := checkRecordData(c.String("data"))
	if nil != err {
		return err
	}

	var data map[string]interface{}
	err = json.Unmarshal([]byte(text), &data)
	if nil != err {
		return fault.RecordNotAnObject
	}

	s, err := openSession(m)
	if nil != err {
		return err
	}
	defer s.close()

	receipt, err := s.store.Append(data)
	if nil != err {
		return err
	}

	return printJson(m.w, receipt)
}
