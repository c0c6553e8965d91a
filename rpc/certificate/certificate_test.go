// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/rpc/certificate"
)

func TestMain(m *testing.M) {
	curPath, err := os.Getwd()
	if nil != err {
		panic("cannot determine current directory")
	}
	testDir, err := ioutil.TempDir("", "certificate-test")
	if nil != err {
		panic("cannot create test directory")
	}
	defer os.RemoveAll(testDir)
	os.Chdir(testDir)
	defer os.Chdir(curPath)

	logging := logger.Configuration{
		Directory: testDir,
		File:      "test.log",
		Size:      50000,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err = logger.Initialise(logging); nil != err {
		panic("logger setup failed: " + err.Error())
	}
	defer logger.Finalise()

	os.Exit(m.Run())
}

func TestGet(t *testing.T) {
	log := logger.New("test-certificate")

	dir, err := ioutil.TempDir("", "certificate")
	assert.Nil(t, err, "unexpected tempdir error")
	defer os.RemoveAll(dir)

	certificateFileName := filepath.Join(dir, "test.crt")
	keyFileName := filepath.Join(dir, "test.key")

	cert, key, err := certgen.NewTLSCertPair("test", time.Now().Add(time.Hour), false, nil)
	assert.Nil(t, err, "unexpected certgen error")

	err = ioutil.WriteFile(certificateFileName, cert, 0600)
	assert.Nil(t, err, "unexpected write error")
	err = ioutil.WriteFile(keyFileName, key, 0600)
	assert.Nil(t, err, "unexpected write error")

	tlsConfig, fingerprint, err := certificate.Get(log, "test", certificateFileName, keyFileName)
	assert.Nil(t, err, "unexpected certificate error")
	assert.NotNil(t, tlsConfig, "missing tls configuration")
	assert.Equal(t, 1, len(tlsConfig.Certificates), "wrong certificate count")
	assert.NotEqual(t, [32]byte{}, fingerprint, "zero fingerprint")

	// same pair always hashes to the same fingerprint
	_, again, err := certificate.Get(log, "test", certificateFileName, keyFileName)
	assert.Nil(t, err, "unexpected certificate error")
	assert.Equal(t, fingerprint, again, "fingerprint not stable")
}

func TestGetMissingFiles(t *testing.T) {
	log := logger.New("test-certificate")

	_, _, err := certificate.Get(log, "test", "/nonexistent/test.crt", "/nonexistent/test.key")
	assert.NotNil(t, err, "missing certificate accepted")
}
