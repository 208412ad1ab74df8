// Copyright 2013 Google Inc. All Rights Reserved.
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

// Portions of this code originated in the github.com/golang/glog package.

package log

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"
)

// Identifying details embedded in rotated log file names.
var ident = struct {
	program, host, user string
	pid                 int
}{"?", "?", "?", -1}

func init() {
	ident.program = filepath.Base(os.Args[0])
	if host, err := os.Hostname(); err == nil {
		ident.host = host
	}
	if u, err := user.Current(); err == nil {
		ident.user = u.Username
	}
	ident.pid = os.Getpid()
}

// DefaultWriter returns os.Stderr wrapped for concurrent use.
func DefaultWriter() io.Writer {
	return SynchronizedWriter(os.Stderr)
}

// SynchronizedWriter serializes writes to w.
func SynchronizedWriter(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

// MultiWriter duplicates every write across all of the given writers.
func MultiWriter(w io.Writer, ws ...io.Writer) io.Writer {
	return &multiWriter{ws: append([]io.Writer{w}, ws...)}
}

// LogRotationWriter writes to files within dirname, starting a new file
// whenever the current one would grow beyond maxSize bytes. A symlink named
// <program>.log tracks the latest file. A single write larger than maxSize
// gets a file of its own.
func LogRotationWriter(dirname string, maxSize int) io.Writer {
	os.MkdirAll(dirname, os.ModePerm)
	return &rotationWriter{
		dir:     dirname,
		link:    ident.program + ".log",
		maxSize: maxSize,
	}
}

// logFilename is of the form
// <program>.<host>.<user>.<yyyy-mm-dd>.<hh:mm:ss.ms>.<pid>.log, for example
// memfs.devbox.alice.2018-04-10.22:43:54.717.7989.log.
func logFilename(t time.Time) string {
	return fmt.Sprintf("%s.%s.%s.%s.%d.log",
		ident.program, ident.host, ident.user,
		t.Format("2006-01-02.15:04:05.999"), ident.pid)
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(b)
}

type multiWriter struct {
	ws []io.Writer
}

// Write is best effort: every writer is attempted. The smallest byte count
// and the last error observed are returned.
func (m *multiWriter) Write(b []byte) (n int, err error) {
	n = len(b)
	for _, w := range m.ws {
		written, werr := w.Write(b)
		if written < n {
			n = written
		}
		if werr != nil {
			err = werr
		}
	}
	return n, err
}

type rotationWriter struct {
	dir, link string
	maxSize   int

	cur     *os.File
	curSize int
}

func (r *rotationWriter) rotate() error {
	name := logFilename(time.Now())
	f, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return err
	}
	if r.cur != nil {
		r.cur.Close()
	}
	r.cur, r.curSize = f, 0

	link := filepath.Join(r.dir, r.link)
	os.Remove(link)
	os.Symlink(name, link) // Best effort.
	return nil
}

func (r *rotationWriter) Write(b []byte) (int, error) {
	if r.cur == nil || r.curSize+len(b) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.cur.Write(b)
	r.curSize += n
	return n, err
}
