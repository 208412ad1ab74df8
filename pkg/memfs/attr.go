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
	"time"

	"golang.org/x/sys/unix"
)

// RootIno is the inode number of the root directory. Files are numbered
// after the block holding their entry, which is never below reservedBlocks.
const RootIno = 1

// Attr mirrors the stat record of a file.
type Attr struct {
	Ino    uint64
	Gen    uint32 // Distinguishes reuses of the same Ino.
	Mode   uint32 // File type and permission bits, as in stat(2).
	Nlink  uint32
	Uid    uint32
	Gid    uint32
	Size   int64
	Blocks int64 // Whole blocks covered by Size.
	Atime  time.Time
	Mtime  time.Time
	Ctime  time.Time
}

// IsDir reports whether the attributes describe a directory.
func (a Attr) IsDir() bool {
	return a.Mode&unix.S_IFMT == unix.S_IFDIR
}

// DirEntry is one row of a directory listing.
type DirEntry struct {
	Name string
	Attr Attr
}

// AttrChange lists the attributes to update in SetAttr. Nil fields are left
// alone.
type AttrChange struct {
	Size  *int64
	Mode  *uint32 // Permission bits only; the file type is fixed.
	Uid   *uint32
	Gid   *uint32
	Atime *time.Time
	Mtime *time.Time
}

// StatFS summarizes volume usage.
type StatFS struct {
	BlockSize  uint64
	Blocks     uint64
	FreeBlocks uint64
	Files      uint64
	NameLen    uint64
	Reserved   uint64 // Blocks taken by the header and directory sentinel.
}
