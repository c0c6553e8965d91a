// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/custodia-inc/vaultd/messagebus"
)

type broadcaster struct {
	log    *logger.L
	socket *zmq.Socket
}

// bind the PUB socket to all broadcast addresses
func (brdc *broadcaster) initialise(broadcast []string) error {
	brdc.log = logger.New("broadcaster")

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return err
	}
	_ = socket.SetLinger(0)

	for _, address := range broadcast {
		brdc.log.Infof("bind: %q", address)
		err = socket.Bind(address)
		if nil != err {
			socket.Close()
			return err
		}
	}

	brdc.socket = socket
	return nil
}

// Run - drain the message bus onto the socket
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := brdc.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case message := <-messagebus.Chan():
			brdc.process(message)
		}
	}

	brdc.socket.Close()
	brdc.socket = nil
	log.Info("stopped")
}

func (brdc *broadcaster) process(message messagebus.Message) {
	var payload []byte
	switch item := message.Item.(type) {
	case []byte:
		payload = item
	default:
		marshalled, err := json.Marshal(item)
		if nil != err {
			brdc.log.Errorf("marshal: %q  error: %s", message.From, err)
			return
		}
		payload = marshalled
	}

	_, err := brdc.socket.SendMessage(message.From, payload)
	if nil != err {
		brdc.log.Errorf("send: %q  error: %s", message.From, err)
		return
	}
	brdc.log.Tracef("sent: %q  %d bytes", message.From, len(payload))
}
