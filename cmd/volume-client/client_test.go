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

package volumeclient

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	volumeserver "github.com/kurafs/memfs/cmd/volume-server"
	"github.com/kurafs/memfs/pkg/cli"
	"github.com/kurafs/memfs/pkg/log"
	"github.com/kurafs/memfs/pkg/memfs"
	"github.com/kurafs/memfs/pkg/registry"
)

func freePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer lis.Close()
	return lis.Addr().(*net.TCPAddr).Port
}

// startVolume serves a fresh volume on a free loopback port and returns
// its address.
func startVolume(t *testing.T) string {
	t.Helper()
	g := memfs.Geometry{BlockSize: 512, BlockCount: 1024, Fanout: 8}
	vol, err := memfs.Mount(0, 0, memfs.WithGeometry(g), memfs.WithID(0x7F000001))
	if err != nil {
		t.Fatal(err)
	}
	port := freePort(t)
	wait, shutdown, err := volumeserver.Start(log.Discarder(), port, vol)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		shutdown()
		wait()
	})
	return fmt.Sprintf("127.0.0.1:%d", port)
}

// run executes a fresh copy of cmd, returning what it printed.
func run(t *testing.T, cmd *cli.Command, args ...string) (string, error) {
	t.Helper()
	c := &cli.Command{Run: cmd.Run, UsageLine: cmd.UsageLine}
	c.FlagSet.SetOutput(ioutil.Discard)

	var buf bytes.Buffer
	stdout = &buf
	defer func() { stdout = os.Stdout }()

	err := c.Run(c, args)
	return buf.String(), err
}

func mustRun(t *testing.T, cmd *cli.Command, args ...string) string {
	t.Helper()
	out, err := run(t, cmd, args...)
	if err != nil {
		t.Fatalf("%s %v: %v", cmd.Name(), args, err)
	}
	return out
}

func TestPutCatRoundTrip(t *testing.T) {
	addr := startVolume(t)
	dir := t.TempDir()

	payload := bytes.Repeat([]byte("memfs!"), 40000) // Spans several RPCs.
	local := filepath.Join(dir, "payload")
	if err := ioutil.WriteFile(local, payload, 0644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, PutCmd, "-addr", addr, "-mode", "0600", local, "payload")
	if want := fmt.Sprintf("wrote %d bytes to payload\n", len(payload)); out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	if out := mustRun(t, CatCmd, "-addr", addr, "payload"); out != string(payload) {
		t.Errorf("expected %d bytes back, got %d", len(payload), len(out))
	}

	// A second put replaces the content rather than appending to it.
	if err := ioutil.WriteFile(local, []byte("short"), 0644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, PutCmd, "-addr", addr, local, "payload")
	if out := mustRun(t, CatCmd, "-addr", addr, "payload"); out != "short" {
		t.Errorf("expected %q, got %q", "short", out)
	}

	out = mustRun(t, StatCmd, "-addr", addr, "payload")
	if !strings.Contains(out, "Size: 5 ") || !strings.Contains(out, "-rw-------") {
		t.Errorf("unexpected stat output:\n%s", out)
	}
}

func TestLsTruncateRm(t *testing.T) {
	addr := startVolume(t)
	local := filepath.Join(t.TempDir(), "f")
	if err := ioutil.WriteFile(local, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, PutCmd, "-addr", addr, local, "a")
	mustRun(t, PutCmd, "-addr", addr, local, "b")

	out := mustRun(t, LsCmd, "-addr", addr)
	if strings.Contains(out, " ..") || !strings.Contains(out, " a") || !strings.Contains(out, " b") {
		t.Errorf("unexpected listing:\n%s", out)
	}
	if out := mustRun(t, LsCmd, "-addr", addr, "-a"); !strings.Contains(out, " ..") {
		t.Errorf("expected -a to list ..:\n%s", out)
	}

	mustRun(t, TruncateCmd, "-addr", addr, "a", "2")
	if out := mustRun(t, CatCmd, "-addr", addr, "a"); out != "he" {
		t.Errorf("expected %q, got %q", "he", out)
	}

	mustRun(t, RmCmd, "-addr", addr, "a", "b")
	if _, err := run(t, CatCmd, "-addr", addr, "a"); err == nil || !strings.Contains(err.Error(), "no such file") {
		t.Errorf("expected no such file error, got %v", err)
	}
	if _, err := run(t, RmCmd, "-addr", addr, "a"); err == nil {
		t.Error("expected removing a missing file to fail")
	}
}

func TestDfAndCheck(t *testing.T) {
	addr := startVolume(t)

	out := mustRun(t, DfCmd, "-addr", addr)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got:\n%s", out)
	}
	fields := strings.Fields(lines[1])
	// Volume, block size, blocks, used, free, use%, files, fanout.
	if len(fields) != 8 || fields[1] != "512" || fields[2] != "1024" || fields[3] != "2" || fields[6] != "0" {
		t.Errorf("unexpected df row %q", lines[1])
	}

	if out := mustRun(t, CheckCmd, "-addr", addr); out != "ok\n" {
		t.Errorf("expected ok, got %q", out)
	}
}

func TestExport(t *testing.T) {
	addr := startVolume(t)
	dir := t.TempDir()

	contents := map[string]string{
		"alpha": strings.Repeat("a", 3000),
		"beta":  "b",
	}
	for name, data := range contents {
		local := filepath.Join(dir, name)
		if err := ioutil.WriteFile(local, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		mustRun(t, PutCmd, "-addr", addr, local, name)
	}

	archive := filepath.Join(dir, "volume.tar.zst")
	out := mustRun(t, ExportCmd, "-addr", addr, "-o", archive)
	if !strings.Contains(out, "exported 2 files (3001 bytes, zstd)") {
		t.Errorf("unexpected summary %q", out)
	}

	f, err := os.Open(archive)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	tr := tar.NewReader(zr)
	got := make(map[string]string)
	for {
		hdr, err := tr.Next()
		if err != nil {
			break
		}
		data, err := ioutil.ReadAll(tr)
		if err != nil {
			t.Fatal(err)
		}
		got[hdr.Name] = string(data)
	}
	if len(got) != len(contents) {
		t.Fatalf("expected %d archived files, got %d", len(contents), len(got))
	}
	for name, data := range contents {
		if got[name] != data {
			t.Errorf("%s: expected %d bytes, got %d", name, len(data), len(got[name]))
		}
	}
}

func TestMounts(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mounts.db")
	cfgPath := filepath.Join(dir, "memfs.yaml")
	if err := ioutil.WriteFile(cfgPath, []byte("registry:\n  path: "+dbPath+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := registry.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	live := registry.Record{
		ID: "lusab-babad", Mountpoint: "/mnt/live", PID: os.Getpid(),
		Started: time.Now(), Geometry: memfs.DefaultGeometry(),
	}
	stale := registry.Record{
		ID: "dozoz-fagub", Mountpoint: "/mnt/stale", PID: 1 << 30,
		Started: time.Now(), Geometry: memfs.DefaultGeometry(),
	}
	for _, rec := range []registry.Record{live, stale} {
		if err := r.Put(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, MountsCmd, "-config", cfgPath)
	if !strings.Contains(out, "/mnt/live") {
		t.Errorf("expected live mount listed:\n%s", out)
	}
	if strings.Contains(out, "/mnt/stale") {
		t.Errorf("expected stale mount pruned:\n%s", out)
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		cmd  *cli.Command
		args []string
	}{
		{CatCmd, nil},
		{CatCmd, []string{"a", "b"}},
		{TruncateCmd, []string{"a", "-1"}},
		{TruncateCmd, []string{"a", "lots"}},
		{RmCmd, nil},
		{ExportCmd, nil},
		{ExportCmd, []string{"-o", "out.tar", "-codec", "gzip"}},
		{LsCmd, []string{"-bogus"}},
	}
	for _, tc := range testCases {
		_, err := run(t, tc.cmd, tc.args...)
		var target interface{ Unwrap() error }
		if err == nil || !errors.As(err, &target) {
			t.Errorf("%s %v: expected parse error, got %v", tc.cmd.Name(), tc.args, err)
		}
	}
}
