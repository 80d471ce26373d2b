// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/blobvault/fault"
)

// basic defaults (directories and files are relative to the
// "DataDirectory" from the configuration file)
const (
	defaultLogDirectory = "log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultClientLogFile = "blobvault-cli.log"
)

var defaultLogLevels = map[string]string{
	logger.DefaultTag: "critical",
}

// ClientConfiguration - everything the command line client needs
type ClientConfiguration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Connect       string               `gluamapper:"connect" json:"connect"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetClientConfiguration - read the client configuration file
//
// the local database and log directory are created under the data
// directory, which must already exist
func GetClientConfiguration(fileName string) (*ClientConfiguration, error) {

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(fileName)

	options := &ClientConfiguration{
		DataDirectory: ".",
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultClientLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	err = ParseConfigurationFile(fileName, options)
	if nil != err {
		return nil, err
	}

	if "" == options.Connect {
		return nil, fault.ConnectAddressRequired
	}

	err = resolveDataDirectory(&options.DataDirectory, dataDirectory)
	if nil != err {
		return nil, err
	}

	options.Logging.Directory = ensureAbsolute(options.DataDirectory, options.Logging.Directory)
	err = os.MkdirAll(options.Logging.Directory, 0700)
	if nil != err {
		return nil, err
	}

	return options, nil
}

// DatabaseDirectory - where the local state lives
func (c *ClientConfiguration) DatabaseDirectory() string {
	return ensureAbsolute(c.DataDirectory, "data")
}

// make the data directory absolute and check it exists
func resolveDataDirectory(directory *string, configDirectory string) error {
	switch *directory {
	case "", "~":
		return fault.DataDirectoryRequired
	case ".":
		*directory = configDirectory // same directory as the configuration file
	}
	*directory = filepath.Clean(*directory)

	fileInfo, err := os.Stat(*directory)
	if nil != err {
		return err
	}
	if !fileInfo.IsDir() {
		return fault.DataDirectoryRequired
	}
	return nil
}
