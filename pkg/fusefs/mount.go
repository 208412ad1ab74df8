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

package fusefs

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/kurafs/memfs/pkg/log"
	"github.com/kurafs/memfs/pkg/memfs"
	"golang.org/x/sys/unix"
)

// Options configures the kernel mount.
type Options struct {
	Mountpoint     string
	FsName         string
	AllowOther     bool
	SingleThreaded bool
	Debug          bool

	// AttrTimeout bounds how long the kernel caches attributes and name
	// lookups. Writes may also arrive through the control plane, so it
	// should stay short.
	AttrTimeout time.Duration
}

// Mount serves vol at opts.Mountpoint. The returned server is already
// serving; call Unmount on it to detach, or Wait to block until the kernel
// detaches it.
func Mount(logger *log.Logger, vol *memfs.Volume, opts Options) (*fuse.Server, error) {
	if opts.Mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	if opts.FsName == "" {
		opts.FsName = "memfs"
	}
	if err := os.MkdirAll(opts.Mountpoint, 0755); err != nil {
		return nil, fmt.Errorf("creating mountpoint %s: %w", opts.Mountpoint, err)
	}

	root := &Dir{fs: &fileSystem{logger: logger, vol: vol}}
	negativeTimeout := opts.AttrTimeout / 10
	server, err := gofuse.Mount(opts.Mountpoint, root, &gofuse.Options{
		EntryTimeout:    &opts.AttrTimeout,
		AttrTimeout:     &opts.AttrTimeout,
		NegativeTimeout: &negativeTimeout,
		MountOptions: fuse.MountOptions{
			FsName:         opts.FsName,
			Name:           "memfs",
			AllowOther:     opts.AllowOther,
			SingleThreaded: opts.SingleThreaded,
			Debug:          opts.Debug,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mounting %s at %s: %w", vol.Name(), opts.Mountpoint, err)
	}

	logger.Infof("mounted volume %s at %s", vol.Name(), opts.Mountpoint)
	return server, nil
}

type fileSystem struct {
	logger *log.Logger
	vol    *memfs.Volume
}

// errno translates engine errors for the kernel. Anything unexpected is
// logged and reported as EIO.
func (f *fileSystem) errno(op, name string, err error) syscall.Errno {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, memfs.ErrNotFound):
		return unix.ENOENT
	case errors.Is(err, memfs.ErrExist):
		return unix.EEXIST
	case errors.Is(err, memfs.ErrOutOfSpace):
		return unix.ENOSPC
	case errors.Is(err, memfs.ErrNameTooLong):
		return unix.ENAMETOOLONG
	case errors.Is(err, memfs.ErrInvalidPath), errors.Is(err, memfs.ErrInvalidOffset):
		return unix.EINVAL
	case errors.Is(err, memfs.ErrIsDir):
		return unix.EISDIR
	case errors.Is(err, memfs.ErrFileTooLarge):
		return unix.EFBIG
	}
	f.logger.Errorf("%s %q: %v", op, name, err)
	return unix.EIO
}

// fillAttr copies a into out. Block counts are in 512 byte units, as
// stat(2) reports them.
func (f *fileSystem) fillAttr(a memfs.Attr, out *fuse.Attr) {
	out.Ino = a.Ino
	out.Mode = a.Mode
	out.Nlink = a.Nlink
	out.Owner = fuse.Owner{Uid: a.Uid, Gid: a.Gid}
	out.Size = uint64(a.Size)
	out.Blocks = (uint64(a.Size) + 511) / 512
	out.Blksize = uint32(f.vol.Geometry().BlockSize)
	out.SetTimes(&a.Atime, &a.Mtime, &a.Ctime)
}

// change extracts the attribute updates carried by a setattr request.
func change(in *fuse.SetAttrIn) memfs.AttrChange {
	var c memfs.AttrChange
	if size, ok := in.GetSize(); ok {
		s := int64(size)
		c.Size = &s
	}
	if mode, ok := in.GetMode(); ok {
		c.Mode = &mode
	}
	if uid, ok := in.GetUID(); ok {
		c.Uid = &uid
	}
	if gid, ok := in.GetGID(); ok {
		c.Gid = &gid
	}
	if atime, ok := in.GetATime(); ok {
		c.Atime = &atime
	}
	if mtime, ok := in.GetMTime(); ok {
		c.Mtime = &mtime
	}
	return c
}
