// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/overlayd/fault"
	"github.com/bitmark-inc/overlayd/util"
)

// basic defaults (directories and files are relative to the
// "DataDirectory" from the configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file
	defaultNetworkID     = "testing"

	defaultPort               = 2136
	defaultMaximumConnections = 125
	defaultHelloTimeout       = 2000 // milliseconds
	defaultAcceptRate         = 10   // per second
	defaultAcceptBurst        = 20
	defaultAgent              = "overlayd"

	defaultReputationDatabase = "reputation.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "overlayd.log"
	defaultLogCount     = 10          // number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// a fresh map each time, the mapper merges into it
func defaultLogLevels() map[string]string {
	return map[string]string{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
}

// PeeringConfiguration - the overlay network section
type PeeringConfiguration struct {
	Listen             []string `gluamapper:"listen" json:"listen"`
	Port               uint16   `gluamapper:"port" json:"port"`
	Connect            []string `gluamapper:"connect" json:"connect"`
	MaximumConnections int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	HelloTimeout       int      `gluamapper:"hello_timeout_ms" json:"hello_timeout_ms"`
	AcceptRate         float64  `gluamapper:"accept_rate" json:"accept_rate"`
	AcceptBurst        int      `gluamapper:"accept_burst" json:"accept_burst"`
	Agent              string   `gluamapper:"agent" json:"agent"`
}

// HelloDeadline - the hello timeout as a duration
func (p *PeeringConfiguration) HelloDeadline() time.Duration {
	return time.Duration(p.HelloTimeout) * time.Millisecond
}

// ReputationConfiguration - where peer records are kept
type ReputationConfiguration struct {
	Database string `gluamapper:"database" json:"database"`
}

// Configuration - the whole file
type Configuration struct {
	DataDirectory string                  `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                  `gluamapper:"pidfile" json:"pidfile"`
	NetworkID     string                  `gluamapper:"network_id" json:"network_id"`
	Peering       PeeringConfiguration    `gluamapper:"peering" json:"peering"`
	Reputation    ReputationConfiguration `gluamapper:"reputation" json:"reputation"`
	Logging       logger.Configuration    `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, apply defaults and verify the
// configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		NetworkID:     defaultNetworkID,

		Peering: PeeringConfiguration{
			Port:               defaultPort,
			MaximumConnections: defaultMaximumConnections,
			HelloTimeout:       defaultHelloTimeout,
			AcceptRate:         defaultAcceptRate,
			AcceptBurst:        defaultAcceptBurst,
			Agent:              defaultAgent,
		},

		Reputation: ReputationConfiguration{
			Database: defaultReputationDatabase,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels(),
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	if err := options.Peering.verify(); nil != err {
		return nil, err
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Reputation.Database,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// the log file must be a plain name
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("file: %q is not plain name", options.Logging.File)
	}

	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	return options, nil
}

func (p *PeeringConfiguration) verify() error {
	if 0 == len(p.Listen) {
		return fault.ErrMissingListen
	}
	for _, listen := range p.Listen {
		if _, _, err := util.SplitIPandPort(listen); nil != err && !isWildcard(listen) {
			return err
		}
	}
	for _, connect := range p.Connect {
		if _, _, err := util.SplitIPandPort(connect); nil != err {
			return err
		}
	}
	if 0 == p.Port {
		return fault.ErrInvalidPortNumber
	}
	if p.MaximumConnections <= 0 {
		return fault.ErrZeroMaximumConnections
	}
	if p.HelloTimeout <= 0 {
		return fault.ErrZeroHelloTimeout
	}
	return nil
}

// "*:PORT" means every interface
func isWildcard(listen string) bool {
	return len(listen) > 2 && "*:" == listen[:2]
}
