// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/blobvault/fault"
	"github.com/bitmark-inc/blobvault/schema"
)

// config is required
func checkConfigFile(file string) (string, error) {
	if "" == file {
		return "", fault.InvalidError("config file is required")
	}

	file = os.ExpandEnv(file)
	return file, nil
}

// namespace label is required
func checkNamespaceLabel(label string) (string, error) {
	if "" == label {
		return "", fault.InvalidError("namespace is required")
	}
	return label, nil
}

// exactly one of inline JSON or a file name
func checkSchemaSource(inline string, fileName string) (schema.Definition, error) {

	var data []byte

	switch {
	case "" != inline && "" != fileName:
		return nil, fault.InvalidError("only one of schema and file is allowed")

	case "" != inline:
		data = []byte(inline)

	case "" != fileName:
		var err error
		data, err = ioutil.ReadFile(fileName)
		if nil != err {
			return nil, err
		}

	default:
		return nil, fault.InvalidError("one of schema and file is required")
	}

	return schema.DefinitionFromJSON(data)
}

// record data is required
func checkRecordData(data string) (string, error) {
	if "" == data {
		return "", fault.InvalidError("data is required")
	}
	return data, nil
}
