// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/overlayd/configuration"
	"github.com/bitmark-inc/overlayd/fault"
	"github.com/bitmark-inc/overlayd/reputation"
	"github.com/bitmark-inc/overlayd/util"
)

// setup command handler
//
// commands that cannot access any database, state or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	case "reputation", "r":
		// needs the configuration
		return false

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] [--stats] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")
		fmt.Printf("  reputation IP:PORT...      (r)      - display stored reputation records\n\n")
		fmt.Printf("\n")
		return true
	}
}

// configuration command handler
//
// commands that read the configuration and the reputation database
// but do not start the daemon
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {
	case "reputation", "r":
		if 0 == len(arguments) {
			exitwithstatus.Message("error: missing IP:PORT")
		}

		db, err := reputation.Open(options.Reputation.Database)
		if nil != err {
			exitwithstatus.Message("error: open reputation database: %q  error: %s", options.Reputation.Database, err)
		}
		defer db.Close()

		for _, hostPort := range arguments {
			address, port, err := util.SplitIPandPort(hostPort)
			if nil != err {
				fmt.Printf("%s: error: %s\n", hostPort, err)
				continue
			}
			record, err := db.Load(address, port)
			if fault.ErrRecordNotFound == err {
				fmt.Printf("%s: no record\n", hostPort)
				continue
			} else if nil != err {
				fmt.Printf("%s: error: %s\n", hostPort, err)
				continue
			}
			fmt.Printf("%s: failures: %d  next attempt: %s\n", util.CanonicalIPandPort(address, port), record.NumberOfFailures, record.NextAttempt.Format(time.RFC3339))
		}
		return true

	default:
		return false
	}
}
