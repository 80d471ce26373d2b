// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
)

const (
	defaultStubLogFile = "blobvault-stubd.log"

	defaultListen             = "127.0.0.1:2150"
	defaultMaximumConnections = 10
	defaultBandwidth          = 25 // requests per second per connection
)

// StubConfiguration - settings for the in-memory storage node
type StubConfiguration struct {
	DataDirectory      string               `gluamapper:"data_directory" json:"data_directory"`
	Listen             []string             `gluamapper:"listen" json:"listen"`
	Certificate        string               `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string               `gluamapper:"private_key" json:"private_key"`
	MaximumConnections int                  `gluamapper:"maximum_connections" json:"maximum_connections"`
	Bandwidth          float64              `gluamapper:"bandwidth" json:"bandwidth"`
	Logging            logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetStubConfiguration - read the stub daemon configuration file
//
// missing certificate and key files are not an error here, the
// daemon generates a self-signed pair at the resolved paths on
// startup
func GetStubConfiguration(fileName string) (*StubConfiguration, error) {

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	dataDirectory, _ := filepath.Split(fileName)

	options := &StubConfiguration{
		DataDirectory:      ".",
		Certificate:        "stubd.crt",
		PrivateKey:         "stubd.key",
		MaximumConnections: defaultMaximumConnections,
		Bandwidth:          defaultBandwidth,
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultStubLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	err = ParseConfigurationFile(fileName, options)
	if nil != err {
		return nil, err
	}

	if 0 == len(options.Listen) {
		options.Listen = []string{defaultListen}
	}
	if options.MaximumConnections <= 0 {
		options.MaximumConnections = defaultMaximumConnections
	}
	if options.Bandwidth <= 0 {
		options.Bandwidth = defaultBandwidth
	}

	err = resolveDataDirectory(&options.DataDirectory, dataDirectory)
	if nil != err {
		return nil, err
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Certificate,
		&options.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	err = os.MkdirAll(options.Logging.Directory, 0700)
	if nil != err {
		return nil, err
	}

	return options, nil
}
