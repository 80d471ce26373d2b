// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/blobvault/configuration"
)

type metadata struct {
	file    string
	config  *configuration.ClientConfiguration
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "blobvault-cli"
	app.Usage = "encrypted append-only record store client"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "*configuration `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "initialise a new database: secret token, namespace and schema",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "namespace, n",
					Value: "",
					Usage: "*namespace label `STRING` (up to 10 bytes)",
				},
				cli.StringFlag{
					Name:  "schema, s",
					Value: "",
					Usage: "+schema definition `JSON`",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "+`FILE` containing the schema definition",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "append one record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "data, d",
					Value: "",
					Usage: "*record `JSON` object",
				},
			},
			Action: runAdd,
		},
		{
			Name:   "list",
			Usage:  "all records, newest first",
			Action: runList,
		},
		{
			Name:   "schema",
			Usage:  "display the schema definition",
			Action: runSchema,
		},
		{
			Name:   "status",
			Usage:  "local state and storage node status",
			Action: runStatus,
		},
		{
			Name:   "token",
			Usage:  "display the secret token backup phrase",
			Action: runToken,
		},
		{
			Name:      "reset",
			Usage:     "destroy all local state",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "yes, y",
					Usage: "*confirm the records become unrecoverable",
				},
			},
			Action: runReset,
		},
		{
			Name:  "version",
			Usage: "display blobvault-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file for certain commands
		command := c.Args().Get(0)
		if "version" == command || "help" == command || "h" == command {
			return nil
		}

		file, err := checkConfigFile(c.GlobalString("config"))
		if nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.GetClientConfiguration(file)
		if nil != err {
			return err
		}

		err = logger.Initialise(config.Logging)
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  config,
			verbose: verbose,
			e:       e,
			w:       w,
		}

		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); ok {
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
