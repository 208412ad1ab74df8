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

package memfs

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/kurafs/memfs/pkg/log"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sys/unix"
)

var testTime = time.Unix(1524119584, 0)

// tinyGeometry keeps chains short and the pool small enough to exhaust.
var tinyGeometry = Geometry{BlockSize: 16, BlockCount: 64, Fanout: 4}

func mount(t *testing.T, g Geometry) *Volume {
	t.Helper()
	v, err := Mount(1000, 1000,
		WithGeometry(g),
		WithLogger(log.Discarder()),
		WithClock(func() time.Time { return testTime }),
		WithID(0x7F000001),
	)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func mustCheck(t *testing.T, v *Volume) {
	t.Helper()
	if err := v.Check(); err != nil {
		t.Fatalf("consistency check failed: %v", err)
	}
}

func mustCreate(t *testing.T, v *Volume, path string) Attr {
	t.Helper()
	attr, err := v.Create(path, 0644)
	if err != nil {
		t.Fatalf("Create(%q): %v", path, err)
	}
	return attr
}

func mustWrite(t *testing.T, v *Volume, path string, p []byte, off int64) {
	t.Helper()
	n, err := v.Write(path, p, off)
	if err != nil {
		t.Fatalf("Write(%q, %d bytes, %d): %v", path, len(p), off, err)
	}
	if n != len(p) {
		t.Fatalf("Write(%q): expected %d bytes written, got %d", path, len(p), n)
	}
}

func mustRead(t *testing.T, v *Volume, path string, n int, off int64) []byte {
	t.Helper()
	buf := make([]byte, n)
	got, err := v.Read(path, buf, off)
	if err != nil {
		t.Fatalf("Read(%q, %d, %d): %v", path, n, off, err)
	}
	return buf[:got]
}

func used(v *Volume) int {
	return v.store.hdr.usedBlocks
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i%251 + 1)
	}
	return b
}

func TestGeometryValidate(t *testing.T) {
	testCases := []struct {
		g  Geometry
		ok bool
	}{
		{DefaultGeometry(), true},
		{tinyGeometry, true},
		{Geometry{BlockSize: 0, BlockCount: 64, Fanout: 4}, false},
		{Geometry{BlockSize: 2 << 20, BlockCount: 64, Fanout: 4}, false},
		{Geometry{BlockSize: 16, BlockCount: 3, Fanout: 4}, false},
		{Geometry{BlockSize: 16, BlockCount: 1 << 25, Fanout: 4}, false},
		{Geometry{BlockSize: 16, BlockCount: 64, Fanout: 0}, false},
	}
	for _, tc := range testCases {
		err := tc.g.Validate()
		if (err == nil) != tc.ok {
			t.Errorf("Validate(%+v): unexpected result %v", tc.g, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("Validate(%+v): expected ErrInvalidGeometry, got %v", tc.g, err)
		}
	}
	if _, err := Mount(0, 0, WithGeometry(Geometry{})); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected Mount to reject the zero geometry, got %v", err)
	}
}

func TestMountReservesBlocks(t *testing.T) {
	v := mount(t, tinyGeometry)
	if u := used(v); u != reservedBlocks {
		t.Errorf("expected %d used blocks on a fresh volume, got %d", reservedBlocks, u)
	}
	st := v.Statfs()
	if st.FreeBlocks != uint64(tinyGeometry.BlockCount-reservedBlocks) || st.Files != 0 {
		t.Errorf("unexpected statfs on a fresh volume: %+v", st)
	}
	if v.Name() != "lusab-babad" {
		t.Errorf("expected volume name lusab-babad, got %s", v.Name())
	}

	root, err := v.Stat("/")
	if err != nil {
		t.Fatal(err)
	}
	if root.Ino != RootIno || root.Mode != unix.S_IFDIR|0755 || !root.IsDir() {
		t.Errorf("unexpected root attributes: %+v", root)
	}
	mustCheck(t, v)
}

func TestCreate(t *testing.T) {
	v := mount(t, tinyGeometry)

	attr := mustCreate(t, v, "/hello")
	if attr.Mode != unix.S_IFREG|0644 || attr.Nlink != 1 || attr.Size != 0 {
		t.Errorf("unexpected attributes: %+v", attr)
	}
	if attr.Ino < reservedBlocks {
		t.Errorf("expected inode number >= %d, got %d", reservedBlocks, attr.Ino)
	}
	if attr.Uid != 1000 || attr.Gid != 1000 || !attr.Mtime.Equal(testTime) {
		t.Errorf("unexpected ownership or times: %+v", attr)
	}
	if u := used(v); u != reservedBlocks+2 {
		t.Errorf("expected create to take 2 blocks, %d used", u)
	}

	got, err := v.Stat("hello")
	if err != nil {
		t.Fatal(err)
	}
	if got != attr {
		t.Errorf("expected Stat to return %+v, got %+v", attr, got)
	}

	testCases := []struct {
		path string
		err  error
	}{
		{"/hello", ErrExist},
		{"hello", ErrExist},
		{"/", ErrExist},
		{"/a/b", ErrInvalidPath},
		{string(bytes.Repeat([]byte("x"), MaxNameLen+1)), ErrNameTooLong},
	}
	for _, tc := range testCases {
		if _, err := v.Create(tc.path, 0644); !errors.Is(err, tc.err) {
			t.Errorf("Create(%.16q): expected %v, got %v", tc.path, tc.err, err)
		}
	}

	longest := string(bytes.Repeat([]byte("y"), MaxNameLen))
	mustCreate(t, v, longest)
	if st := v.Statfs(); st.Files != 2 {
		t.Errorf("expected 2 files, got %d", st.Files)
	}
	mustCheck(t, v)
}

func TestCreateOutOfSpace(t *testing.T) {
	// Room for the reserved blocks, one file and a single spare block.
	v := mount(t, Geometry{BlockSize: 16, BlockCount: reservedBlocks + 3, Fanout: 4})
	mustCreate(t, v, "a")

	before := used(v)
	if _, err := v.Create("b", 0644); !errors.Is(err, ErrOutOfSpace) {
		t.Fatalf("expected ErrOutOfSpace, got %v", err)
	}
	if used(v) != before {
		t.Errorf("failed create leaked blocks: %d used, expected %d", used(v), before)
	}
	if _, err := v.Stat("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected failed create to leave no entry, got %v", err)
	}
	mustCheck(t, v)
}

func TestListDir(t *testing.T) {
	v := mount(t, tinyGeometry)
	for _, name := range []string{"a", "b", "c"} {
		mustCreate(t, v, name)
	}
	if err := v.Unlink("b"); err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, de := range v.ListDir() {
		names = append(names, de.Name)
	}
	if fmt.Sprint(names) != "[. .. c a]" {
		t.Errorf("expected [. .. c a], got %v", names)
	}
}

func TestRoundTrip(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "f")

	data := []byte("the quick brown fox jumps over the lazy dog")
	mustWrite(t, v, "f", data, 0)
	if got := mustRead(t, v, "f", len(data), 0); !bytes.Equal(got, data) {
		t.Errorf("expected %q, got %q", data, got)
	}

	attr, _ := v.Stat("f")
	if attr.Size != int64(len(data)) || attr.Blocks != int64(len(data)/tinyGeometry.BlockSize) {
		t.Errorf("unexpected size/blocks: %d/%d", attr.Size, attr.Blocks)
	}
	mustCheck(t, v)
}

func TestCrossNodeBoundary(t *testing.T) {
	v := mount(t, DefaultGeometry())
	mustCreate(t, v, "big")

	data := pattern(DefaultFanout*DefaultBlockSize*2 + 12345)
	mustWrite(t, v, "big", data, 0)
	if got := mustRead(t, v, "big", len(data), 0); !bytes.Equal(got, data) {
		t.Fatal("read back differs from what was written")
	}

	// Unaligned read straddling the first node boundary.
	off := int64(DefaultFanout*DefaultBlockSize - 7)
	if got := mustRead(t, v, "big", 100, off); !bytes.Equal(got, data[off:off+100]) {
		t.Error("unaligned read across the node boundary differs")
	}

	// Data blocks, the head node and two grown nodes.
	want := reservedBlocks + 1 + 3 + int(v.geo.blocksFor(int64(len(data))))
	if u := used(v); u != want {
		t.Errorf("expected %d used blocks, got %d", want, u)
	}
	mustCheck(t, v)
}

func TestPartialBlockWrite(t *testing.T) {
	v := mount(t, DefaultGeometry())
	mustCreate(t, v, "f")

	data := []byte("0123456789")
	mustWrite(t, v, "f", data, 4090)

	attr, _ := v.Stat("f")
	if attr.Size != 4100 {
		t.Fatalf("expected size 4100, got %d", attr.Size)
	}
	got := mustRead(t, v, "f", 4100, 0)
	if !bytes.Equal(got[:4090], make([]byte, 4090)) {
		t.Error("expected bytes [0, 4090) to be zero")
	}
	if !bytes.Equal(got[4090:], data) {
		t.Errorf("expected bytes [4090, 4100) = %q, got %q", data, got[4090:])
	}
	mustCheck(t, v)
}

func TestOverwriteReusesBlocks(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "f")
	mustWrite(t, v, "f", pattern(100), 0)
	before := used(v)

	update := bytes.Repeat([]byte{0xAA}, 40)
	mustWrite(t, v, "f", update, 10)
	if used(v) != before {
		t.Errorf("overwrite allocated blocks: %d used, expected %d", used(v), before)
	}

	want := pattern(100)
	copy(want[10:], update)
	if got := mustRead(t, v, "f", 100, 0); !bytes.Equal(got, want) {
		t.Errorf("unexpected content after overwrite: %v", got)
	}
	mustCheck(t, v)
}

func TestReadClamps(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "f")
	mustWrite(t, v, "f", []byte("abcdef"), 0)

	testCases := []struct {
		n        int
		off      int64
		expected string
	}{
		{6, 0, "abcdef"},
		{100, 0, "abcdef"},
		{100, 4, "ef"},
		{10, 6, ""},
		{10, 1000, ""},
		{0, 0, ""},
	}
	for _, tc := range testCases {
		if got := mustRead(t, v, "f", tc.n, tc.off); string(got) != tc.expected {
			t.Errorf("Read(%d, %d): expected %q, got %q", tc.n, tc.off, tc.expected, got)
		}
	}
}

func TestHolesReadAsZero(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "f")

	// Leave logical blocks 0..5 (including the whole first node) unwritten.
	off := int64(6 * tinyGeometry.BlockSize)
	mustWrite(t, v, "f", []byte("tail"), off)

	buf := bytes.Repeat([]byte{0xFF}, int(off)+4)
	n, err := v.Read("f", buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(buf) {
		t.Fatalf("expected %d bytes, got %d", len(buf), n)
	}
	if !bytes.Equal(buf[:off], make([]byte, off)) {
		t.Error("expected the hole to read as zeros")
	}
	if string(buf[off:]) != "tail" {
		t.Errorf("expected tail, got %q", buf[off:])
	}
	mustCheck(t, v)
}

func TestTruncateShrinkFreesBlocks(t *testing.T) {
	v := mount(t, DefaultGeometry())
	mustCreate(t, v, "f")

	const k = 50
	mustWrite(t, v, "f", pattern(k*DefaultBlockSize), 0)
	before := used(v)

	if err := v.Truncate("f", 1); err != nil {
		t.Fatal(err)
	}
	if freed := before - used(v); freed != k-1 {
		t.Errorf("expected %d blocks returned to the pool, got %d", k-1, freed)
	}

	var attached int
	v.chains.visit(v.dir.sentinel.next.head, func(_ handle, n *indexNode, _ int64) {
		for _, ref := range n.refs {
			if ref.valid() {
				attached++
			}
		}
	})
	if attached != 1 {
		t.Errorf("expected 1 data block attached, got %d", attached)
	}

	attr, _ := v.Stat("f")
	if attr.Size != 1 || attr.Blocks != 0 {
		t.Errorf("unexpected size/blocks after truncate: %d/%d", attr.Size, attr.Blocks)
	}
	if got := mustRead(t, v, "f", 10, 0); !bytes.Equal(got, pattern(1)) {
		t.Errorf("expected first byte to survive, got %v", got)
	}
	mustCheck(t, v)
}

func TestTruncateReleasesNodes(t *testing.T) {
	g := tinyGeometry
	testCases := []struct {
		size      int64
		dataKept  int
		nodesKept int
	}{
		{0, 0, 1},
		{1, 1, 1},
		{int64(g.BlockSize * g.Fanout), g.Fanout, 1},         // Exactly fills the head.
		{int64(g.BlockSize*g.Fanout + 1), g.Fanout + 1, 2},   // One byte into the second node.
		{int64(g.BlockSize*2*g.Fanout - 3), 2 * g.Fanout, 2}, // Last block of the second node.
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprint(tc.size), func(t *testing.T) {
			v := mount(t, g)
			mustCreate(t, v, "f")
			data := pattern(3*g.Fanout*g.BlockSize - 5)
			mustWrite(t, v, "f", data, 0)

			if err := v.Truncate("f", tc.size); err != nil {
				t.Fatal(err)
			}
			want := reservedBlocks + 1 + tc.nodesKept + tc.dataKept
			if u := used(v); u != want {
				t.Errorf("expected %d used blocks, got %d", want, u)
			}
			if got := mustRead(t, v, "f", len(data), 0); !bytes.Equal(got, data[:tc.size]) {
				t.Error("surviving content differs")
			}
			mustCheck(t, v)
		})
	}
}

func TestTruncateGrowZeroExtends(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "f")
	mustWrite(t, v, "f", []byte("abcdefghij"), 0)

	// Shrinking zeroes the tail of the boundary block, so it cannot
	// resurface when the file grows again.
	if err := v.Truncate("f", 4); err != nil {
		t.Fatal(err)
	}
	before := used(v)
	if err := v.Truncate("f", 100); err != nil {
		t.Fatal(err)
	}
	if used(v) != before {
		t.Errorf("growing truncate allocated blocks: %d used, expected %d", used(v), before)
	}

	got := mustRead(t, v, "f", 200, 0)
	want := append([]byte("abcd"), make([]byte, 96)...)
	if !bytes.Equal(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
	if _, err := v.SetAttr("f", AttrChange{Size: int64Ptr(v.geo.MaxFileSize() + 1)}); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
	mustCheck(t, v)
}

func TestSpaceExhaustion(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "f")

	// Fill the pool one block at a time until admission refuses.
	bs := tinyGeometry.BlockSize
	var size int64
	for {
		_, err := v.Write("f", pattern(bs), size)
		if errors.Is(err, ErrOutOfSpace) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		size += int64(bs)
	}
	mustCheck(t, v)

	before := used(v)
	for _, n := range []int{1, bs, 10 * bs} {
		_, err := v.Write("f", pattern(n), size+int64(bs))
		if !errors.Is(err, ErrOutOfSpace) {
			t.Errorf("write of %d bytes: expected ErrOutOfSpace, got %v", n, err)
		}
		if used(v) != before {
			t.Errorf("failed write changed used blocks: %d, expected %d", used(v), before)
		}
	}
	if _, err := v.Create("g", 0644); !errors.Is(err, ErrOutOfSpace) {
		t.Errorf("expected ErrOutOfSpace creating a file, got %v", err)
	}
	if used(v) != before {
		t.Errorf("failed create changed used blocks: %d, expected %d", used(v), before)
	}
	attr, _ := v.Stat("f")
	if attr.Size != size {
		t.Errorf("rejected writes changed the size: %d, expected %d", attr.Size, size)
	}
	if got := mustRead(t, v, "f", int(size), 0); !bytes.Equal(got[:bs], pattern(bs)) {
		t.Error("content changed after exhaustion")
	}
	mustCheck(t, v)
}

func TestInteriorFailureKeepsSize(t *testing.T) {
	// Fanout 2: a 6 block write from offset 0 needs 6 data blocks and two
	// new index nodes, one more than admission accounts for.
	g := Geometry{BlockSize: 16, BlockCount: reservedBlocks + 2 + 7, Fanout: 2}
	v := mount(t, g)
	mustCreate(t, v, "f")

	data := pattern(6 * g.BlockSize)
	n, err := v.Write("f", data, 0)
	if !errors.Is(err, ErrOutOfSpace) {
		t.Fatalf("expected ErrOutOfSpace, got %v", err)
	}
	if n != 5*g.BlockSize {
		t.Errorf("expected %d bytes copied before failing, got %d", 5*g.BlockSize, n)
	}
	attr, _ := v.Stat("f")
	if attr.Size != int64(len(data)) {
		t.Errorf("expected size %d to stand, got %d", len(data), attr.Size)
	}
	got := mustRead(t, v, "f", len(data), 0)
	if !bytes.Equal(got[:n], data[:n]) || !bytes.Equal(got[n:], make([]byte, len(data)-n)) {
		t.Error("expected copied prefix followed by zeros")
	}
	mustCheck(t, v)
}

func TestSparseWriteAdmission(t *testing.T) {
	// Room for the file plus six more blocks; reaching index node 15 alone
	// takes fifteen.
	g := Geometry{BlockSize: 16, BlockCount: reservedBlocks + 2 + 6, Fanout: 4}
	v := mount(t, g)
	mustCreate(t, v, "f")
	before := used(v)

	off := int64(g.BlockSize * g.Fanout * 15)
	if _, err := v.Write("f", []byte{1}, off); !errors.Is(err, ErrOutOfSpace) {
		t.Fatalf("expected ErrOutOfSpace, got %v", err)
	}
	if got := used(v); got != before {
		t.Errorf("rejected write changed used blocks from %d to %d", before, got)
	}
	mustCheck(t, v)

	// The same write fits once the hops fit.
	v2 := mount(t, Geometry{BlockSize: 16, BlockCount: reservedBlocks + 2 + 17, Fanout: 4})
	mustCreate(t, v2, "f")
	mustWrite(t, v2, "f", []byte{1}, off)
	if got := mustRead(t, v2, "f", 1, off); !bytes.Equal(got, []byte{1}) {
		t.Errorf("expected [1] at offset %d, got %v", off, got)
	}
	mustCheck(t, v2)
}

func TestTruncateReleasesStrayNodes(t *testing.T) {
	v := mount(t, Geometry{BlockSize: 16, BlockCount: reservedBlocks + 2 + 6, Fanout: 4})
	mustCreate(t, v, "f")
	before := used(v)

	// Grow the chain of an empty file until the pool runs dry, leaving
	// index nodes past its end.
	e, _ := v.dir.lookup("f")
	if _, _, err := v.chains.resolve(e.head, 15*4, true); !errors.Is(err, ErrOutOfSpace) {
		t.Fatalf("expected ErrOutOfSpace, got %v", err)
	}
	if err := v.Check(); err == nil {
		t.Error("expected index nodes past end of file to be reported")
	}

	for _, size := range []int64{0, 200} {
		if err := v.Truncate("f", size); err != nil {
			t.Fatal(err)
		}
		if got := used(v); got != before {
			t.Errorf("truncate(%d): expected %d used blocks, got %d", size, before, got)
		}
		mustCheck(t, v)
	}
}

func TestUnlinkReclaimsEverything(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "keep")
	mustWrite(t, v, "keep", pattern(40), 0)
	base := used(v)

	mustCreate(t, v, "f")
	mustWrite(t, v, "f", pattern(9*tinyGeometry.BlockSize+3), 0)
	if err := v.Unlink("/f"); err != nil {
		t.Fatal(err)
	}
	if u := used(v); u != base {
		t.Errorf("expected %d used blocks after unlink, got %d", base, u)
	}
	if _, err := v.Stat("f"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := v.Unlink("f"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second unlink, got %v", err)
	}
	if err := v.Unlink("/"); !errors.Is(err, ErrIsDir) {
		t.Errorf("expected ErrIsDir, got %v", err)
	}
	if st := v.Statfs(); st.Files != 1 {
		t.Errorf("expected 1 file, got %d", st.Files)
	}
	mustCheck(t, v)
}

func TestAllocationExclusivity(t *testing.T) {
	v := mount(t, Geometry{BlockSize: 8, BlockCount: 256, Fanout: 3})
	rng := rand.New(rand.NewSource(42))
	names := []string{"a", "b", "c", "d", "e"}
	shadow := make(map[string][]byte)

	for i := 0; i < 2000; i++ {
		name := names[rng.Intn(len(names))]
		switch op := rng.Intn(5); {
		case op == 0:
			if _, err := v.Create(name, 0600); err == nil {
				shadow[name] = []byte{}
			}
		case op == 1:
			if v.Unlink(name) == nil {
				delete(shadow, name)
			}
		case op == 2:
			off := int64(rng.Intn(120))
			p := pattern(rng.Intn(60))
			n, err := v.Write(name, p, off)
			if content, ok := shadow[name]; ok {
				if err != nil {
					t.Fatalf("op %d: write to %q: %v", i, name, err)
				}
				if n > 0 {
					if end := int(off) + n; end > len(content) {
						content = append(content, make([]byte, end-len(content))...)
					}
					copy(content[off:], p[:n])
					shadow[name] = content
				}
			}
		case op == 3:
			size := int64(rng.Intn(150))
			if content, ok := shadow[name]; ok && v.Truncate(name, size) == nil {
				if int(size) < len(content) {
					content = content[:size]
				} else {
					content = append(content, make([]byte, int(size)-len(content))...)
				}
				shadow[name] = content
			}
		default:
			if content, ok := shadow[name]; ok {
				if got := mustRead(t, v, name, 200, 0); !bytes.Equal(got, content) {
					t.Fatalf("op %d: %q content diverged", i, name)
				}
			}
		}
		if err := v.Check(); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}
}

func TestSetAttr(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "f")
	mustWrite(t, v, "f", pattern(50), 0)

	mode, uid, gid := uint32(0600), uint32(7), uint32(8)
	mtime := testTime.Add(time.Hour)
	attr, err := v.SetAttr("f", AttrChange{
		Size:  int64Ptr(20),
		Mode:  &mode,
		Uid:   &uid,
		Gid:   &gid,
		Mtime: &mtime,
	})
	if err != nil {
		t.Fatal(err)
	}
	if attr.Size != 20 || attr.Mode != unix.S_IFREG|0600 || attr.Uid != 7 || attr.Gid != 8 || !attr.Mtime.Equal(mtime) {
		t.Errorf("unexpected attributes: %+v", attr)
	}

	// Type bits cannot be changed through the mode.
	dirMode := uint32(unix.S_IFDIR | 0700)
	if attr, _ = v.SetAttr("f", AttrChange{Mode: &dirMode}); attr.Mode != unix.S_IFREG|0700 {
		t.Errorf("expected file type to be preserved, got %o", attr.Mode)
	}
	if _, err := v.SetAttr("/", AttrChange{Size: int64Ptr(0)}); !errors.Is(err, ErrIsDir) {
		t.Errorf("expected ErrIsDir, got %v", err)
	}
	if _, err := v.SetAttr("nope", AttrChange{Mode: &mode}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	mustCheck(t, v)
}

func TestInvalidArguments(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "f")

	if _, err := v.Write("f", []byte("x"), -1); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("expected ErrInvalidOffset, got %v", err)
	}
	if _, err := v.Read("f", make([]byte, 1), -1); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("expected ErrInvalidOffset, got %v", err)
	}
	if err := v.Truncate("f", -1); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("expected ErrInvalidOffset, got %v", err)
	}
	if _, err := v.Write("f", []byte("x"), v.geo.MaxFileSize()); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
	if n, err := v.Write("f", nil, 0); n != 0 || err != nil {
		t.Errorf("expected empty write to be a no-op, got %d, %v", n, err)
	}
	if _, err := v.Read("/", make([]byte, 1), 0); !errors.Is(err, ErrIsDir) {
		t.Errorf("expected ErrIsDir, got %v", err)
	}
	if err := v.Open("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := v.Open("/f"); err != nil {
		t.Errorf("unexpected error opening f: %v", err)
	}
}

func TestDigest(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "f")
	data := pattern(123)
	mustWrite(t, v, "f", data, 7)

	got, err := v.Digest("f")
	if err != nil {
		t.Fatal(err)
	}
	want := blake2b.Sum256(append(make([]byte, 7), data...))
	if !bytes.Equal(got, want[:]) {
		t.Errorf("expected digest %x, got %x", want, got)
	}
}

func TestCheckDetectsCorruption(t *testing.T) {
	v := mount(t, tinyGeometry)
	mustCreate(t, v, "f")
	mustWrite(t, v, "f", pattern(40), 0)
	mustCheck(t, v)

	e, _ := v.dir.lookup("f")
	ref := v.chains.node(e.head).refs[0]
	v.chains.node(e.head).refs[1] = ref
	if err := v.Check(); err == nil {
		t.Error("expected a doubly owned block to be reported")
	}
}

func int64Ptr(i int64) *int64 { return &i }
