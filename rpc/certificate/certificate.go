// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"io/ioutil"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
)

// Get - load a certificate/key pair from PEM files and return the TLS
// configuration together with the certificate fingerprint
func Get(log *logger.L, name, certificateFileName, keyFileName string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	certificatePEM, err := ioutil.ReadFile(certificateFileName)
	if nil != err {
		log.Errorf("%s failed to read certificate: %q  error: %s", name, certificateFileName, err)
		return nil, fin, err
	}
	keyPEM, err := ioutil.ReadFile(keyFileName)
	if nil != err {
		log.Errorf("%s failed to read key: %q  error: %s", name, keyFileName, err)
		return nil, fin, err
	}

	keyPair, err := tls.X509KeyPair(certificatePEM, keyPEM)
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	fin = fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// fingerprint - compute the fingerprint of a certificate
//
// FreeBSD: openssl x509 -outform DER -in vaultd.crt | sha3sum -a 256
func fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
