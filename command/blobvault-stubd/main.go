// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// in-memory storage node for development and testing
//
// speaks the same wire protocol as a real node but keeps every blob
// in process memory, nothing survives a restart
package main

import (
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/blobvault/background"
	"github.com/bitmark-inc/blobvault/configuration"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "blobvault-stubd"
	app.Usage = "in-memory storage node"
	app.Version = version
	app.HideVersion = true

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "*configuration `FILE`",
		},
		cli.BoolFlag{
			Name:  "version, V",
			Usage: " display version and exit",
		},
	}
	app.Action = run

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

func run(c *cli.Context) error {

	if c.Bool("version") {
		fmt.Printf("%s\n", version)
		return nil
	}

	fileName := c.String("config")
	if "" == fileName {
		return fmt.Errorf("config file is required")
	}

	options, err := configuration.GetStubConfiguration(fileName)
	if nil != err {
		return err
	}

	err = logger.Initialise(options.Logging)
	if nil != err {
		return err
	}
	defer logger.Finalise()

	log := logger.New("main")
	log.Infof("starting: version: %s", version)

	// create a self-signed pair on first run
	if !configuration.EnsureFileExists(options.Certificate) ||
		!configuration.EnsureFileExists(options.PrivateKey) {
		log.Infof("generating certificate: %s", options.Certificate)
		err = makeSelfSignedCertificate("blobvault-stubd",
			options.Certificate, options.PrivateKey)
		if nil != err {
			log.Criticalf("certificate generation error: %s", err)
			return err
		}
	}

	keyPair, err := tls.LoadX509KeyPair(options.Certificate, options.PrivateKey)
	if nil != err {
		log.Criticalf("failed to load keypair: %s", err)
		return err
	}
	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}
	log.Infof("certificate SHA3-256 fingerprint: %x",
		certificateFingerprint(keyPair.Certificate[0]))

	node := newNode(options.Bandwidth)

	limiter := listener.NewLimiter(options.MaximumConnections)
	ml, err := listener.NewMultiListener("stub", options.Listen,
		tlsConfiguration, limiter, serveConnection)
	if nil != err {
		log.Criticalf("invalid listen addresses: %v", options.Listen)
		return err
	}

	ml.Start(node)
	defer ml.Stop()
	for _, address := range options.Listen {
		log.Infof("listening on: %s", address)
	}

	processes := background.Processes{
		newStatsLogger(node),
	}
	bg := background.Start(processes, nil)
	defer bg.Stop()

	// abort on signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	log.Info("shutting down")

	return nil
}
