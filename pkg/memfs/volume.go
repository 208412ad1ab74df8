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
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kurafs/memfs/pkg/log"
	"github.com/kurafs/memfs/pkg/proquint"
	"golang.org/x/sys/unix"
)

// Volume is a mounted in-memory file system: a flat directory of files over
// a fixed pool of blocks. All methods are safe for concurrent use; they are
// serialized by a single mutex.
type Volume struct {
	mu sync.Mutex

	id     uint32
	geo    Geometry
	logger *log.Logger
	now    func() time.Time

	store  *blockStore
	chains *arena
	dir    *directory
	hdr    handle // Block 0.

	root Attr
}

type option func(v *Volume)

// WithGeometry overrides DefaultGeometry.
func WithGeometry(g Geometry) option {
	return func(v *Volume) {
		v.geo = g
	}
}

// WithLogger sets the logger used by the volume. It defaults to
// log.Discarder().
func WithLogger(logger *log.Logger) option {
	return func(v *Volume) {
		v.logger = logger
	}
}

// WithClock sets the source of file timestamps.
func WithClock(now func() time.Time) option {
	return func(v *Volume) {
		v.now = now
	}
}

// WithID fixes the volume id instead of drawing a random one.
func WithID(id uint32) option {
	return func(v *Volume) {
		v.id = id
	}
}

// Mount initializes an empty volume owned by uid and gid. The volume header
// and the directory sentinel take the first two blocks.
func Mount(uid, gid uint32, options ...option) (*Volume, error) {
	v := &Volume{
		geo:    DefaultGeometry(),
		logger: log.Discarder(),
		now:    time.Now,
	}
	for _, option := range options {
		option(v)
	}
	if err := v.geo.Validate(); err != nil {
		return nil, err
	}
	if v.id == 0 {
		var b [4]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, err
		}
		v.id = binary.BigEndian.Uint32(b[:])
	}

	v.store = newBlockStore(v.geo)
	v.chains = newArena(v.logger, v.store, v.geo.Fanout)
	hdr, err := v.store.allocate()
	if err != nil {
		return nil, err
	}
	sentinel, err := v.store.allocate()
	if err != nil {
		return nil, err
	}
	v.hdr = hdr
	v.dir = newDirectory(sentinel)

	now := v.now()
	v.root = Attr{
		Ino:   RootIno,
		Mode:  unix.S_IFDIR | 0755,
		Nlink: 2,
		Uid:   uid,
		Gid:   gid,
		Atime: now,
		Mtime: now,
		Ctime: now,
	}

	v.logger.Infof("mounted volume %s: %d blocks of %d bytes, fanout %d",
		v.Name(), v.geo.BlockCount, v.geo.BlockSize, v.geo.Fanout)
	return v, nil
}

// ID returns the volume id.
func (v *Volume) ID() uint32 { return v.id }

// Name returns the volume id rendered as a proquint, e.g. "lusab-babad".
func (v *Volume) Name() string { return proquint.Encode32(v.id) }

// Geometry returns the shape of the volume.
func (v *Volume) Geometry() Geometry { return v.geo }

// split validates path, either "/name" or "name", and returns the name. The
// root is reported with an empty name.
func split(path string) (string, error) {
	name := strings.TrimPrefix(path, "/")
	switch {
	case name == "":
		return "", nil
	case strings.IndexByte(name, '/') >= 0:
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	case len(name) > MaxNameLen:
		return "", fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(name))
	}
	return name, nil
}

// file resolves path to a regular file.
func (v *Volume) file(path string) (*entry, error) {
	name, err := split(path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrIsDir
	}
	e, ok := v.dir.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e, nil
}

// Stat returns the attributes of the file at path, or of the root
// directory for "/".
func (v *Volume) Stat(path string) (Attr, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	name, err := split(path)
	if err != nil {
		return Attr{}, err
	}
	if name == "" {
		return v.root, nil
	}
	e, err := v.file(path)
	if err != nil {
		return Attr{}, err
	}
	return e.attr, nil
}

// ListDir returns "." and ".." followed by every file, most recently
// created first.
func (v *Volume) ListDir() []DirEntry {
	v.mu.Lock()
	defer v.mu.Unlock()

	entries := make([]DirEntry, 0, v.dir.len()+2)
	entries = append(entries, DirEntry{Name: ".", Attr: v.root}, DirEntry{Name: "..", Attr: v.root})
	v.dir.each(func(e *entry) {
		entries = append(entries, DirEntry{Name: e.name, Attr: e.attr})
	})
	return entries
}

// Create adds an empty regular file with the given permission bits, owned by
// the volume owner. It takes two blocks: one for the entry, one for the
// first index node.
func (v *Volume) Create(path string, mode uint32) (Attr, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	name, err := split(path)
	if err != nil {
		return Attr{}, err
	}
	if name == "" {
		return Attr{}, ErrExist
	}
	if _, ok := v.dir.lookup(name); ok {
		return Attr{}, fmt.Errorf("%w: %q", ErrExist, name)
	}

	self, err := v.store.allocate()
	if err != nil {
		return Attr{}, err
	}
	head, err := v.chains.newNode()
	if err != nil {
		v.store.release(self)
		return Attr{}, err
	}

	now := v.now()
	e := &entry{
		name: name,
		self: self,
		head: head,
		attr: Attr{
			Ino:   uint64(self.id),
			Gen:   self.gen,
			Mode:  unix.S_IFREG | mode&07777,
			Nlink: 1,
			Uid:   v.root.Uid,
			Gid:   v.root.Gid,
			Atime: now,
			Mtime: now,
			Ctime: now,
		},
	}
	v.dir.insert(e)
	v.store.hdr.fileCount++
	v.root.Mtime, v.root.Ctime = now, now

	v.logger.Debugf("created %q as inode %d", name, e.attr.Ino)
	return e.attr, nil
}

// Open checks that path names a file. No handle state is kept; every
// operation resolves the path anew.
func (v *Volume) Open(path string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, err := v.file(path)
	return err
}

// Read reads up to len(p) bytes at off. Reads are clamped to the end of the
// file; reading at or past it returns 0.
func (v *Volume) Read(path string, p []byte, off int64) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if off < 0 {
		return 0, ErrInvalidOffset
	}
	e, err := v.file(path)
	if err != nil {
		return 0, err
	}
	n := v.read(e, p, off)
	e.attr.Atime = v.now()
	return n, nil
}

// Write writes p at off, extending the file if needed. Writes that cannot
// possibly fit are rejected with ErrOutOfSpace before anything changes.
func (v *Volume) Write(path string, p []byte, off int64) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if off < 0 {
		return 0, ErrInvalidOffset
	}
	e, err := v.file(path)
	if err != nil {
		return 0, err
	}
	return v.write(e, p, off)
}

// Truncate shrinks or extends the file to size bytes.
func (v *Volume) Truncate(path string, size int64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if size < 0 {
		return ErrInvalidOffset
	}
	e, err := v.file(path)
	if err != nil {
		return err
	}
	return v.truncate(e, size)
}

// Unlink removes the file, returning its entry block, index nodes and data
// blocks to the pool.
func (v *Volume) Unlink(path string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, err := v.file(path)
	if err != nil {
		return err
	}
	v.dir.remove(e)
	v.chains.releaseChain(e.head)
	v.store.release(e.self)
	v.store.hdr.fileCount--

	now := v.now()
	v.root.Mtime, v.root.Ctime = now, now
	v.logger.Debugf("unlinked %q", e.name)
	return nil
}

// SetAttr applies the requested changes and returns the resulting
// attributes. A size change truncates the file.
func (v *Volume) SetAttr(path string, c AttrChange) (Attr, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	name, err := split(path)
	if err != nil {
		return Attr{}, err
	}
	attr := &v.root
	if name != "" {
		e, err := v.file(path)
		if err != nil {
			return Attr{}, err
		}
		if c.Size != nil {
			if *c.Size < 0 {
				return Attr{}, ErrInvalidOffset
			}
			if err := v.truncate(e, *c.Size); err != nil {
				return Attr{}, err
			}
		}
		attr = &e.attr
	} else if c.Size != nil {
		return Attr{}, ErrIsDir
	}

	if c.Mode != nil {
		attr.Mode = attr.Mode&unix.S_IFMT | *c.Mode&07777
	}
	if c.Uid != nil {
		attr.Uid = *c.Uid
	}
	if c.Gid != nil {
		attr.Gid = *c.Gid
	}
	if c.Atime != nil {
		attr.Atime = *c.Atime
	}
	if c.Mtime != nil {
		attr.Mtime = *c.Mtime
	}
	attr.Ctime = v.now()
	return *attr, nil
}

// Statfs reports block usage and the file count.
func (v *Volume) Statfs() StatFS {
	v.mu.Lock()
	defer v.mu.Unlock()

	return StatFS{
		BlockSize:  uint64(v.geo.BlockSize),
		Blocks:     uint64(v.geo.BlockCount),
		FreeBlocks: uint64(v.store.freeBlocks()),
		Files:      uint64(v.store.hdr.fileCount),
		NameLen:    MaxNameLen,
		Reserved:   reservedBlocks,
	}
}
