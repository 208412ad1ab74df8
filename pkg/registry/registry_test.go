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

package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kurafs/memfs/pkg/memfs"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "state", "mounts.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestPutGetDelete(t *testing.T) {
	r := openTestRegistry(t)

	rec := Record{
		ID:         "lusab-babad",
		Mountpoint: "/mnt/memfs",
		RPCAddr:    "127.0.0.1:10669",
		PID:        os.Getpid(),
		Started:    time.Date(2018, time.April, 19, 6, 33, 4, 606396000, time.UTC),
		Geometry:   memfs.DefaultGeometry(),
	}
	if err := r.Put(rec); err != nil {
		t.Fatal(err)
	}

	got, err := r.Get(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Mountpoint != rec.Mountpoint || got.RPCAddr != rec.RPCAddr || got.PID != rec.PID ||
		got.Geometry != rec.Geometry || !got.Started.Equal(rec.Started) {
		t.Errorf("expected %+v, got %+v", rec, got)
	}

	if byMount, err := r.Lookup("/mnt/memfs"); err != nil || byMount.ID != rec.ID {
		t.Errorf("expected lookup by mountpoint to find %s, got %+v (%v)", rec.ID, byMount, err)
	}

	if err := r.Delete(rec.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := r.Lookup("/mnt/memfs"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := r.Delete(rec.ID); err != nil {
		t.Errorf("expected deleting a missing record to succeed, got %v", err)
	}
}

func TestListOrdered(t *testing.T) {
	r := openTestRegistry(t)
	for _, id := range []string{"zipot-lusab", "babad-gutih", "lusab-babad"} {
		if err := r.Put(Record{ID: id, PID: os.Getpid()}); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	expected := []string{"babad-gutih", "lusab-babad", "zipot-lusab"}
	if len(ids) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, ids)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, ids)
			break
		}
	}
}

func TestPrune(t *testing.T) {
	r := openTestRegistry(t)
	live := Record{ID: "lusab-babad", PID: os.Getpid()}
	dead := Record{ID: "babad-gutih", PID: 1 << 30}
	for _, rec := range []Record{live, dead} {
		if err := r.Put(rec); err != nil {
			t.Fatal(err)
		}
	}

	pruned, err := r.Prune()
	if err != nil {
		t.Fatal(err)
	}
	if len(pruned) != 1 || pruned[0].ID != dead.ID {
		t.Errorf("expected only %s to be pruned, got %+v", dead.ID, pruned)
	}
	if _, err := r.Get(live.ID); err != nil {
		t.Errorf("expected %s to survive, got %v", live.ID, err)
	}
	if _, err := r.Get(dead.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected %s to be gone, got %v", dead.ID, err)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mounts.db")
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Put(Record{ID: "lusab-babad", PID: 42}); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	r, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if rec, err := r.Get("lusab-babad"); err != nil || rec.PID != 42 {
		t.Errorf("expected the record to persist across opens, got %+v (%v)", rec, err)
	}
}
