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

// Package export copies the files of a volume out as a tar stream,
// optionally compressed. It is a one-way snapshot: volumes are never
// restored from one.
package export

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/kurafs/memfs/pkg/streaming"
	"github.com/pierrec/lz4/v4"
)

// Codec selects the compression applied to the tar stream.
type Codec uint8

const (
	None Codec = iota
	LZ4
	Zstd
)

func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCodec is the inverse of Codec.String.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("unknown codec %q, expected none, lz4 or zstd", name)
	}
}

// CodecFor guesses the codec from an output file name: .zst and .lz4
// suffixes select their codecs, anything else is left uncompressed.
func CodecFor(path string) Codec {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return Zstd
	case strings.HasSuffix(path, ".lz4"):
		return LZ4
	default:
		return None
	}
}

// File describes a file to export.
type File struct {
	Name     string
	Mode     uint32 // Permission bits.
	Uid, Gid int
	Size     int64
	ModTime  time.Time
}

// Source is a volume to export, reached either in process or over the
// control plane.
type Source interface {
	List(ctx context.Context) ([]File, error)
	ReadAt(ctx context.Context, name string, p []byte, off int64) (int, error)
}

// Summary reports what an export wrote.
type Summary struct {
	Files int
	Bytes int64 // Uncompressed file content.
}

// Write writes every file of src to w as a tar stream compressed with
// codec.
func Write(ctx context.Context, w io.Writer, codec Codec, src Source) (Summary, error) {
	var summary Summary

	cw, err := compressor(w, codec)
	if err != nil {
		return summary, err
	}
	files, err := src.List(ctx)
	if err != nil {
		return summary, err
	}

	tw := tar.NewWriter(cw)
	buf := make([]byte, streaming.ChunkSize)
	for _, f := range files {
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     f.Name,
			Mode:     int64(f.Mode & 07777),
			Uid:      f.Uid,
			Gid:      f.Gid,
			Size:     f.Size,
			ModTime:  f.ModTime,
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return summary, err
		}
		if err := copyFile(ctx, tw, src, f, buf); err != nil {
			return summary, err
		}
		summary.Files++
		summary.Bytes += f.Size
	}
	if err := tw.Close(); err != nil {
		return summary, err
	}
	return summary, cw.Close()
}

// copyFile streams exactly f.Size bytes of f into w, ChunkSize at a time.
func copyFile(ctx context.Context, w io.Writer, src Source, f File, buf []byte) error {
	for off := int64(0); off < f.Size; {
		p := buf
		if rem := f.Size - off; rem < int64(len(p)) {
			p = p[:rem]
		}
		n, err := src.ReadAt(ctx, f.Name, p, off)
		if err != nil {
			return fmt.Errorf("reading %q at %d: %w", f.Name, off, err)
		}
		if n == 0 {
			return fmt.Errorf("%q shrank to %d bytes during export", f.Name, off)
		}
		if _, err := w.Write(p[:n]); err != nil {
			return err
		}
		off += int64(n)
	}
	return nil
}

func compressor(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case None:
		return nopCloser{w}, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	default:
		return nil, fmt.Errorf("unsupported codec %s", codec)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
