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
	"context"
	"syscall"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/kurafs/memfs/pkg/memfs"
	"golang.org/x/sys/unix"
)

// Dir is the root directory node, the only directory of the volume.
type Dir struct {
	gofuse.Inode
	fs *fileSystem
}

var _ gofuse.InodeEmbedder = (*Dir)(nil)
var _ gofuse.NodeLookuper = (*Dir)(nil)
var _ gofuse.NodeReaddirer = (*Dir)(nil)
var _ gofuse.NodeCreater = (*Dir)(nil)
var _ gofuse.NodeMknoder = (*Dir)(nil)
var _ gofuse.NodeUnlinker = (*Dir)(nil)
var _ gofuse.NodeGetattrer = (*Dir)(nil)
var _ gofuse.NodeSetattrer = (*Dir)(nil)
var _ gofuse.NodeStatfser = (*Dir)(nil)

func (d *Dir) child(ctx context.Context, name string, a memfs.Attr, out *fuse.EntryOut) *gofuse.Inode {
	d.fs.fillAttr(a, &out.Attr)
	node := &File{fs: d.fs, name: name}
	return d.NewInode(ctx, node, gofuse.StableAttr{
		Mode: syscall.S_IFREG,
		Ino:  a.Ino,
		Gen:  uint64(a.Gen),
	})
}

func (d *Dir) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	a, err := d.fs.vol.Stat(name)
	if err != nil {
		return nil, d.fs.errno("lookup", name, err)
	}
	return d.child(ctx, name, a, out), 0
}

// Readdir lists files most recently created first. The kernel bridge adds
// the "." and ".." entries itself.
func (d *Dir) Readdir(ctx context.Context) (gofuse.DirStream, syscall.Errno) {
	var entries []fuse.DirEntry
	for _, de := range d.fs.vol.ListDir() {
		if de.Attr.IsDir() {
			continue
		}
		entries = append(entries, fuse.DirEntry{
			Name: de.Name,
			Ino:  de.Attr.Ino,
			Mode: syscall.S_IFREG,
		})
	}
	return gofuse.NewListDirStream(entries), 0
}

func (d *Dir) create(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	a, err := d.fs.vol.Create(name, mode)
	if err != nil {
		return nil, d.fs.errno("create", name, err)
	}
	if caller, ok := fuse.FromContext(ctx); ok {
		a, err = d.fs.vol.SetAttr(name, memfs.AttrChange{Uid: &caller.Uid, Gid: &caller.Gid})
		if err != nil {
			return nil, d.fs.errno("create", name, err)
		}
	}
	return d.child(ctx, name, a, out), 0
}

func (d *Dir) Create(ctx context.Context, name string, flags uint32, mode uint32, out *fuse.EntryOut) (*gofuse.Inode, gofuse.FileHandle, uint32, syscall.Errno) {
	inode, errno := d.create(ctx, name, mode, out)
	if errno != 0 {
		return nil, nil, 0, errno
	}
	return inode, nil, fuse.FOPEN_DIRECT_IO, 0
}

// Mknod creates regular files only.
func (d *Dir) Mknod(ctx context.Context, name string, mode uint32, dev uint32, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	if typ := mode & unix.S_IFMT; typ != 0 && typ != unix.S_IFREG {
		return nil, unix.EPERM
	}
	return d.create(ctx, name, mode, out)
}

func (d *Dir) Unlink(ctx context.Context, name string) syscall.Errno {
	return d.fs.errno("unlink", name, d.fs.vol.Unlink(name))
}

func (d *Dir) Getattr(ctx context.Context, f gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	a, err := d.fs.vol.Stat("/")
	if err != nil {
		return d.fs.errno("getattr", "/", err)
	}
	d.fs.fillAttr(a, &out.Attr)
	return 0
}

func (d *Dir) Setattr(ctx context.Context, f gofuse.FileHandle, in *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	a, err := d.fs.vol.SetAttr("/", change(in))
	if err != nil {
		return d.fs.errno("setattr", "/", err)
	}
	d.fs.fillAttr(a, &out.Attr)
	return 0
}

func (d *Dir) Statfs(ctx context.Context, out *fuse.StatfsOut) syscall.Errno {
	st := d.fs.vol.Statfs()
	out.Bsize = uint32(st.BlockSize)
	out.Frsize = uint32(st.BlockSize)
	out.Blocks = st.Blocks
	out.Bfree = st.FreeBlocks
	out.Bavail = st.FreeBlocks
	out.Files = st.Files
	out.Ffree = st.FreeBlocks / 2
	out.NameLen = uint32(st.NameLen)
	return 0
}

// File is a regular file node. It carries only the name; the volume is the
// source of truth for everything else.
type File struct {
	gofuse.Inode
	fs   *fileSystem
	name string
}

var _ gofuse.InodeEmbedder = (*File)(nil)
var _ gofuse.NodeGetattrer = (*File)(nil)
var _ gofuse.NodeSetattrer = (*File)(nil)
var _ gofuse.NodeOpener = (*File)(nil)
var _ gofuse.NodeReader = (*File)(nil)
var _ gofuse.NodeWriter = (*File)(nil)

func (f *File) Getattr(ctx context.Context, fh gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	a, err := f.fs.vol.Stat(f.name)
	if err != nil {
		return f.fs.errno("getattr", f.name, err)
	}
	f.fs.fillAttr(a, &out.Attr)
	return 0
}

func (f *File) Setattr(ctx context.Context, fh gofuse.FileHandle, in *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	a, err := f.fs.vol.SetAttr(f.name, change(in))
	if err != nil {
		return f.fs.errno("setattr", f.name, err)
	}
	f.fs.fillAttr(a, &out.Attr)
	return 0
}

// Open keeps no per-handle state. Page caching is bypassed since the
// control plane may change the file under the kernel.
func (f *File) Open(ctx context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	if err := f.fs.vol.Open(f.name); err != nil {
		return nil, 0, f.fs.errno("open", f.name, err)
	}
	if flags&syscall.O_TRUNC != 0 {
		if err := f.fs.vol.Truncate(f.name, 0); err != nil {
			return nil, 0, f.fs.errno("open", f.name, err)
		}
	}
	return nil, fuse.FOPEN_DIRECT_IO, 0
}

func (f *File) Read(ctx context.Context, fh gofuse.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	n, err := f.fs.vol.Read(f.name, dest, off)
	if err != nil {
		return nil, f.fs.errno("read", f.name, err)
	}
	return fuse.ReadResultData(dest[:n]), 0
}

// Write reports a short write when the volume fills up midway; the kernel
// retries the remainder and gets ENOSPC then.
func (f *File) Write(ctx context.Context, fh gofuse.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	n, err := f.fs.vol.Write(f.name, data, off)
	if err != nil && n == 0 {
		return 0, f.fs.errno("write", f.name, err)
	}
	return uint32(n), 0
}
