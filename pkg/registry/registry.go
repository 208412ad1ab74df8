// Copyright 2018 The Kura Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package registry keeps track of the volumes mounted on this machine, so
// that the client commands can find their control planes. Only bookkeeping
// lives here; volume contents are never written to disk.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/fxamacker/cbor/v2"
	"github.com/kurafs/memfs/pkg/memfs"
	"golang.org/x/sys/unix"
)

var mountsBucket = []byte("mounts")

// ErrNotFound is returned when no record exists for a volume.
var ErrNotFound = errors.New("registry: no such mount")

// Record describes a mounted volume.
type Record struct {
	ID         string         `cbor:"id"` // Volume name, e.g. lusab-babad.
	Mountpoint string         `cbor:"mountpoint"`
	RPCAddr    string         `cbor:"rpc_addr,omitempty"`
	PID        int            `cbor:"pid"`
	Started    time.Time      `cbor:"started"`
	Geometry   memfs.Geometry `cbor:"geometry"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("registry: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("registry: CBOR decoder initialization failed: " + err.Error())
	}
}

// Registry is a bolt database of Records keyed by volume name.
type Registry struct {
	db *bolt.DB
}

// Open opens the registry at path, creating it and its parent directory as
// needed.
func Open(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening registry %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(mountsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Registry{db: db}, nil
}

// Close releases the database.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Put stores rec, replacing any record for the same volume.
func (r *Registry) Put(rec Record) error {
	b, err := encMode.Marshal(rec)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(mountsBucket).Put([]byte(rec.ID), b)
	})
}

// Get returns the record of the named volume.
func (r *Registry) Get(id string) (Record, error) {
	var rec Record
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(mountsBucket).Get([]byte(id))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return decMode.Unmarshal(b, &rec)
	})
	return rec, err
}

// Delete drops the record of the named volume. Deleting an unknown volume
// is not an error.
func (r *Registry) Delete(id string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(mountsBucket).Delete([]byte(id))
	})
}

// List returns every record, ordered by volume name.
func (r *Registry) List() ([]Record, error) {
	var recs []Record
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(mountsBucket).ForEach(func(k, v []byte) error {
			var rec Record
			if err := decMode.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decoding record %s: %w", k, err)
			}
			recs = append(recs, rec)
			return nil
		})
	})
	return recs, err
}

// Lookup returns the record of the volume mounted at mountpoint.
func (r *Registry) Lookup(mountpoint string) (Record, error) {
	recs, err := r.List()
	if err != nil {
		return Record{}, err
	}
	for _, rec := range recs {
		if rec.Mountpoint == mountpoint {
			return rec, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %s", ErrNotFound, mountpoint)
}

// Prune drops the records of mounts whose process is gone, such as those
// left behind by a crash, and returns them.
func (r *Registry) Prune() ([]Record, error) {
	var pruned []Record
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(mountsBucket)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var rec Record
			if err := decMode.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decoding record %s: %w", k, err)
			}
			if !alive(rec.PID) {
				stale = append(stale, append([]byte(nil), k...))
				pruned = append(pruned, rec)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pruned, nil
}

// alive probes pid with the null signal. EPERM means the process exists
// but belongs to someone else.
func alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}
