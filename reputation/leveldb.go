// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reputation

import (
	"encoding/binary"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/overlayd/fault"
)

// key prefixes
const (
	recordPrefix = 'R'
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// DB - leveldb backed Store
type DB struct {
	log      *logger.L
	database *leveldb.DB
}

// Open - open or create the reputation database at path
func Open(path string) (*DB, error) {
	database, err := leveldb.OpenFile(path, &ldb_opt.Options{
		ErrorIfMissing: false,
	})
	if nil != err {
		return nil, err
	}
	return newDB(database)
}

// OpenMemory - a database that lives only as long as the process
func OpenMemory() (*DB, error) {
	database, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return newDB(database)
}

func newDB(database *leveldb.DB) (*DB, error) {
	db := &DB{
		log:      logger.New("reputation"),
		database: database,
	}

	version, err := db.version()
	if nil != err {
		database.Close()
		return nil, err
	}

	switch version {
	case 0:
		if err := db.setVersion(currentDBVersion); nil != err {
			database.Close()
			return nil, err
		}
	case currentDBVersion:
	default:
		database.Close()
		return nil, fmt.Errorf("reputation database version: %d  expected: %d", version, currentDBVersion)
	}

	db.log.Infof("database version: 0x%x", currentDBVersion)
	return db, nil
}

// Close - flush and release the database
func (db *DB) Close() error {
	return db.database.Close()
}

// Load - fetch the record for address:port
func (db *DB) Load(address string, port uint16) (*Record, error) {
	value, err := db.database.Get(prefixKey(recordKey(address, port)), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrRecordNotFound
	}
	if nil != err {
		return nil, err
	}

	record, err := unpackRecord(address, port, value)
	if nil != err {
		db.log.Warnf("%s:%d: %s", address, port, err)
		return nil, err
	}
	return record, nil
}

// Store - write a record, replacing any previous one
func (db *DB) Store(record *Record) error {
	err := db.database.Put(prefixKey(recordKey(record.Address, record.Port)), record.pack(), nil)
	if nil != err {
		db.log.Errorf("store: %s:%d  error: %s", record.Address, record.Port, err)
	}
	return err
}

// prepend the prefix onto the key
func prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = recordPrefix
	return append(prefixedKey, key...)
}

func (db *DB) version() (int, error) {
	value, err := db.database.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	}
	if nil != err {
		return 0, err
	}
	if len(value) < 4 {
		return 0, fmt.Errorf("reputation database version record length: %d", len(value))
	}
	return int(binary.BigEndian.Uint32(value)), nil
}

func (db *DB) setVersion(version int) error {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, uint32(version))
	return db.database.Put(versionKey, value, nil)
}
