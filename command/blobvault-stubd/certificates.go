// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/blobvault/configuration"
	"github.com/bitmark-inc/blobvault/fault"
)

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string) error {

	if configuration.EnsureFileExists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}

	if configuration.EnsureFileExists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "blobvault self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, false, nil)
	if nil != err {
		return err
	}

	err = ioutil.WriteFile(certificateFileName, cert, 0666)
	if nil != err {
		return err
	}

	err = ioutil.WriteFile(privateKeyFileName, key, 0600)
	if nil != err {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

// compute the fingerprint of a certificate
//
// openssl x509 -outform DER -in stubd.crt | sha3sum -a 256
func certificateFingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
