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

package volumeserver

import (
	"errors"

	"github.com/kurafs/memfs/pkg/log"
	"github.com/kurafs/memfs/pkg/memfs"
	vpb "github.com/kurafs/memfs/pkg/pb/volume"
	"github.com/kurafs/memfs/pkg/streaming"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// maxReadLength caps a single Read RPC, leaving headroom below the message
// size limit.
const maxReadLength = streaming.Threshold / 2

// Server implements vpb.VolumeServiceServer over a single volume. The volume
// serializes concurrent requests itself.
type Server struct {
	logger *log.Logger
	vol    *memfs.Volume
}

var _ vpb.VolumeServiceServer = (*Server)(nil)

func newVolumeServer(logger *log.Logger, vol *memfs.Volume) *Server {
	return &Server{logger: logger, vol: vol}
}

// errStatus translates engine errors into gRPC status errors.
func (s *Server) errStatus(op, path string, err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, memfs.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, memfs.ErrExist):
		code = codes.AlreadyExists
	case errors.Is(err, memfs.ErrOutOfSpace):
		code = codes.ResourceExhausted
	case errors.Is(err, memfs.ErrNameTooLong),
		errors.Is(err, memfs.ErrInvalidPath),
		errors.Is(err, memfs.ErrInvalidOffset):
		code = codes.InvalidArgument
	case errors.Is(err, memfs.ErrIsDir):
		code = codes.FailedPrecondition
	case errors.Is(err, memfs.ErrFileTooLarge):
		code = codes.OutOfRange
	default:
		s.logger.Errorf("%s %q: %v", op, path, err)
		code = codes.Internal
	}
	return status.New(code, err.Error()).Err()
}

func (s *Server) Stat(ctx context.Context, req *vpb.StatRequest) (*vpb.StatResponse, error) {
	attr, err := s.vol.Stat(req.Path)
	if err != nil {
		return nil, s.errStatus("stat", req.Path, err)
	}
	return &vpb.StatResponse{Attr: toAttr(attr)}, nil
}

func (s *Server) ListDir(ctx context.Context, req *vpb.ListDirRequest) (*vpb.ListDirResponse, error) {
	var entries []*vpb.DirEntry
	for _, de := range s.vol.ListDir() {
		entries = append(entries, &vpb.DirEntry{Name: de.Name, Attr: toAttr(de.Attr)})
	}
	return &vpb.ListDirResponse{Entries: entries}, nil
}

func (s *Server) Create(ctx context.Context, req *vpb.CreateRequest) (*vpb.CreateResponse, error) {
	attr, err := s.vol.Create(req.Path, req.Mode)
	if err != nil {
		return nil, s.errStatus("create", req.Path, err)
	}
	return &vpb.CreateResponse{Attr: toAttr(attr)}, nil
}

func (s *Server) Read(ctx context.Context, req *vpb.ReadRequest) (*vpb.ReadResponse, error) {
	if req.Length < 0 {
		return nil, status.New(codes.InvalidArgument, "negative read length").Err()
	}
	length := int(req.Length)
	if length > maxReadLength {
		length = maxReadLength
	}

	buf := make([]byte, length)
	n, err := s.vol.Read(req.Path, buf, req.Offset)
	if err != nil {
		return nil, s.errStatus("read", req.Path, err)
	}
	return &vpb.ReadResponse{Data: buf[:n]}, nil
}

// Write reports a short count when the volume fills up partway through;
// the error surfaces on the next call.
func (s *Server) Write(ctx context.Context, req *vpb.WriteRequest) (*vpb.WriteResponse, error) {
	n, err := s.vol.Write(req.Path, req.Data, req.Offset)
	if err != nil {
		if n == 0 {
			return nil, s.errStatus("write", req.Path, err)
		}
		s.logger.Warnf("short write to %q at %d: %d of %d bytes: %v", req.Path, req.Offset, n, len(req.Data), err)
	}
	return &vpb.WriteResponse{Written: int64(n)}, nil
}

func (s *Server) Truncate(ctx context.Context, req *vpb.TruncateRequest) (*vpb.TruncateResponse, error) {
	if err := s.vol.Truncate(req.Path, req.Size); err != nil {
		return nil, s.errStatus("truncate", req.Path, err)
	}
	return &vpb.TruncateResponse{}, nil
}

func (s *Server) Unlink(ctx context.Context, req *vpb.UnlinkRequest) (*vpb.UnlinkResponse, error) {
	if err := s.vol.Unlink(req.Path); err != nil {
		return nil, s.errStatus("unlink", req.Path, err)
	}
	return &vpb.UnlinkResponse{}, nil
}

func (s *Server) Statfs(ctx context.Context, req *vpb.StatfsRequest) (*vpb.StatfsResponse, error) {
	st := s.vol.Statfs()
	return &vpb.StatfsResponse{
		Name:       s.vol.Name(),
		BlockSize:  st.BlockSize,
		Blocks:     st.Blocks,
		FreeBlocks: st.FreeBlocks,
		Files:      st.Files,
		NameLen:    st.NameLen,
		Fanout:     uint64(s.vol.Geometry().Fanout),
	}, nil
}

func (s *Server) Digest(ctx context.Context, req *vpb.DigestRequest) (*vpb.DigestResponse, error) {
	sum, err := s.vol.Digest(req.Path)
	if err != nil {
		return nil, s.errStatus("digest", req.Path, err)
	}
	return &vpb.DigestResponse{Digest: sum}, nil
}

func (s *Server) Check(ctx context.Context, req *vpb.CheckRequest) (*vpb.CheckResponse, error) {
	if err := s.vol.Check(); err != nil {
		s.logger.Errorf("volume %s failed its consistency check: %v", s.vol.Name(), err)
		return &vpb.CheckResponse{Problem: err.Error()}, nil
	}
	return &vpb.CheckResponse{Consistent: true}, nil
}

func toAttr(a memfs.Attr) *vpb.Attr {
	return &vpb.Attr{
		Ino:    a.Ino,
		Gen:    a.Gen,
		Mode:   a.Mode,
		Nlink:  a.Nlink,
		Uid:    a.Uid,
		Gid:    a.Gid,
		Size:   a.Size,
		Blocks: a.Blocks,
		Atime:  a.Atime.UnixNano(),
		Mtime:  a.Mtime.UnixNano(),
		Ctime:  a.Ctime.UnixNano(),
	}
}
