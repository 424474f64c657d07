// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/configuration"
	"github.com/bitmark-inc/tokenflow/rpc/listeners"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultNotaryName       = "notary"

	defaultLogDirectory = "log"
	defaultLogFile      = "tokenflowd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10

	defaultFlowTimeout    = 60 // seconds
	defaultRequestTimeout = 30 // seconds
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// NodeType - a named node and the hex seed of its signing key
type NodeType struct {
	Name string `gluamapper:"name" json:"name"`
	Seed string `gluamapper:"seed" json:"-"`
}

// LoggerType - log file settings
type LoggerType struct {
	Directory string      `gluamapper:"directory" json:"directory"`
	File      string      `gluamapper:"file" json:"file"`
	Size      int         `gluamapper:"size" json:"size"`
	Count     int         `gluamapper:"count" json:"count"`
	Console   bool        `gluamapper:"console" json:"console"`
	Levels    LoglevelMap `gluamapper:"levels" json:"levels"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory  string `gluamapper:"data_directory" json:"data_directory"`
	PidFile        string `gluamapper:"pidfile" json:"pidfile"`
	Database       string `gluamapper:"database" json:"database"`
	Testing        bool   `gluamapper:"testing" json:"testing"`
	FlowTimeout    int    `gluamapper:"flow_timeout" json:"flow_timeout"`
	RequestTimeout int    `gluamapper:"request_timeout" json:"request_timeout"`

	Notary  NodeType   `gluamapper:"notary" json:"notary"`
	Parties []NodeType `gluamapper:"parties" json:"parties"`

	ClientRPC listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Logging   LoggerType                 `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:  defaultDataDirectory,
		PidFile:        "", // no PidFile by default
		Database:       defaultLevelDBDirectory,
		Testing:        true,
		FlowTimeout:    defaultFlowTimeout,
		RequestTimeout: defaultRequestTimeout,

		Notary: NodeType{
			Name: defaultNotaryName,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: LoggerType{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, errors.New(fmt.Sprintf("Path: %q is not a valid directory", options.DataDirectory))
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, errors.New(fmt.Sprintf("Path: %q is not a directory", options.DataDirectory))
	}

	if options.FlowTimeout < 0 || options.RequestTimeout <= 0 {
		return nil, errors.New(fmt.Sprintf("Timeouts: flow: %d  request: %d are not valid", options.FlowTimeout, options.RequestTimeout))
	}

	// every node needs a distinct name
	names := map[string]struct{}{
		options.Notary.Name: {},
	}
	if "" == options.Notary.Name {
		return nil, errors.New("Notary: missing name")
	}
	for i, party := range options.Parties {
		if "" == party.Name {
			return nil, errors.New(fmt.Sprintf("Party: %d missing name", i))
		}
		if _, ok := names[party.Name]; ok {
			return nil, errors.New(fmt.Sprintf("Party: %q duplicate name", party.Name))
		}
		names[party.Name] = struct{}{}
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = ensureAbsolute(options.DataDirectory, *f)
		}
	}

	// the log file must be a plain name within the log directory
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, errors.New(fmt.Sprintf("Files: %q is not plain name", options.Logging.File))
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// the settings the logger package expects
func (options *Configuration) loggerConfiguration() logger.Configuration {
	return logger.Configuration{
		Directory: options.Logging.Directory,
		File:      options.Logging.File,
		Size:      options.Logging.Size,
		Count:     options.Logging.Count,
		Console:   options.Logging.Console,
		Levels:    options.Logging.Levels,
	}
}

func (options *Configuration) flowTimeout() time.Duration {
	return time.Duration(options.FlowTimeout) * time.Second
}

func (options *Configuration) requestTimeout() time.Duration {
	return time.Duration(options.RequestTimeout) * time.Second
}

// signing key from a hex seed, a blank seed generates a fresh key
func (options *Configuration) privateKey(n NodeType) (*account.PrivateKey, error) {
	if "" == n.Seed {
		return account.NewPrivateKey(options.Testing)
	}
	return account.PrivateKeyFromHexSeed(options.Testing, n.Seed)
}

// ensure the path is absolute
// if not, prepend the directory to make absolute path
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
