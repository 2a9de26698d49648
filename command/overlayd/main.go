// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/overlayd/background"
	"github.com/bitmark-inc/overlayd/configuration"
	"github.com/bitmark-inc/overlayd/fault"
	"github.com/bitmark-inc/overlayd/messagebus"
	"github.com/bitmark-inc/overlayd/overlay"
	"github.com/bitmark-inc/overlayd/reactor"
	"github.com/bitmark-inc/overlayd/reputation"
	"github.com/bitmark-inc/overlayd/wire"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "stats", HasArg: getoptions.NO_ARGUMENT, Short: 's'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	log.Infof("network: %q", theConfiguration.NetworkID)
	log.Debugf("%s = %#v", "Peering", theConfiguration.Peering)

	// peer reputation records
	log.Infof("reputation database: %q", theConfiguration.Reputation.Database)
	db, err := reputation.Open(theConfiguration.Reputation.Database)
	if nil != err {
		log.Criticalf("reputation open error: %s", err)
		exitwithstatus.Message("reputation open error: %s", err)
	}
	defer db.Close()

	// all connection events run here
	loop := reactor.New("reactor")
	loopProcess := background.Start(background.Processes{loop}, nil)
	defer loopProcess.Stop()

	events := messagebus.New(0)

	peering := theConfiguration.Peering
	manager, err := overlay.NewManager(&overlay.Options{
		Loop:       loop,
		Reputation: db,
		Local: wire.Hello{
			Version:       overlay.ProtocolVersion,
			NetworkID:     theConfiguration.NetworkID,
			ListeningPort: peering.Port,
			Agent:         peering.Agent + "/" + version,
		},
		MaximumConnections: peering.MaximumConnections,
		HelloTimeout:       peering.HelloDeadline(),
		Events:             events,
	})
	if nil != err {
		log.Criticalf("overlay initialise error: %s", err)
		exitwithstatus.Message("overlay initialise error: %s", err)
	}

	listener, err := overlay.NewListener(peering.Listen, manager, peering.AcceptRate, peering.AcceptBurst)
	if nil != err {
		log.Criticalf("listener initialise error: %s", err)
		exitwithstatus.Message("listener initialise error: %s", err)
	}

	connector, err := overlay.NewConnector(peering.Connect, manager, events, 0)
	if nil != err {
		log.Criticalf("connector initialise error: %s", err)
		exitwithstatus.Message("connector initialise error: %s", err)
	}

	processes := background.Processes{
		listener,
		connector,
	}
	if len(options["stats"]) > 0 {
		processes = append(processes, &stats{manager: manager})
	}
	peerProcesses := background.Start(processes, nil)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	// no new connections, then close the existing ones while the loop
	// still runs so their teardown completes
	peerProcesses.Stop()
	manager.DropAll()

	log.Info("shutting down…")
}
