// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in licenses/BSD-golang.txt.

// Portions of this file are additionally subject to the following
// license and copyright.
//
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

// Portions of this code originated in the standard library 'log' package.

package log

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Logger writes leveled logs to an io.Writer, prefixing every line with a
// header determined by its flags. A Logger is as safe for concurrent use as
// the writer it is configured with.
type Logger struct {
	w        io.Writer
	flag     Flag
	basePath string
}

// New returns a Logger writing to a synchronized os.Stderr with LstdFlags,
// which produces headers of the form:
//
//   I180419 06:33:04.606396 volume.go:42] message
//
// The provided options, if any, override these defaults.
func New(options ...option) *Logger {
	l := &Logger{
		w:    DefaultWriter(),
		flag: LstdFlags,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Discarder returns a Logger configured to discard all writes.
func Discarder() *Logger {
	return New(Writer(ioutil.Discard))
}

// Info logs to the INFO log. Arguments are handled in the manner of
// fmt.Println.
func (l *Logger) Info(v ...interface{}) {
	l.output(InfoMode, fmt.Sprintln(v...))
}

// Infof logs to the INFO log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.output(InfoMode, fmt.Sprintf(format, v...)+"\n")
}

// Warn logs to the WARN log.
func (l *Logger) Warn(v ...interface{}) {
	l.output(WarnMode, fmt.Sprintln(v...))
}

// Warnf logs to the WARN log.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.output(WarnMode, fmt.Sprintf(format, v...)+"\n")
}

// Error logs to the ERROR log.
func (l *Logger) Error(v ...interface{}) {
	l.output(ErrorMode, fmt.Sprintln(v...))
}

// Errorf logs to the ERROR log.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.output(ErrorMode, fmt.Sprintf(format, v...)+"\n")
}

// Debug logs to the DEBUG log.
func (l *Logger) Debug(v ...interface{}) {
	l.output(DebugMode, fmt.Sprintln(v...))
}

// Debugf logs to the DEBUG log.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.output(DebugMode, fmt.Sprintf(format, v...)+"\n")
}

// Fatal logs to the FATAL log, followed by a stack trace of the calling
// goroutine, and then calls os.Exit(255). Fatal statements are never
// filtered out.
func (l *Logger) Fatal(v ...interface{}) {
	l.output(FatalMode, fmt.Sprintln(v...))
	l.w.Write(stacktrace(1))
	os.Exit(255)
}

// Fatalf is the formatted variant of Fatal.
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.output(FatalMode, fmt.Sprintf(format, v...)+"\n")
	l.w.Write(stacktrace(1))
	os.Exit(255)
}

// output is only to be called from the exported logging methods; the call
// depth of two below resolves to their caller.
func (l *Logger) output(lmode Mode, msg string) {
	file, line := caller(2)
	base := filepath.Base(file)

	if GetTracePoint(fmt.Sprintf("%s:%d", base, line)) {
		// Skip output and the exported wrapper.
		l.w.Write(stacktrace(2))
	}
	if !enabled(base, lmode) {
		return
	}

	var buf bytes.Buffer
	buf.Write(l.header(lmode, time.Now(), file, line))
	buf.WriteString(msg)
	l.w.Write(buf.Bytes())
}

// enabled reports whether a statement of the given mode in the given file
// makes it through. A per-file mode, if present, takes precedence over the
// global one. Fatal statements always do.
func enabled(file string, lmode Mode) bool {
	if lmode == FatalMode {
		return true
	}
	if fmode, ok := GetFileLogMode(file); ok {
		return fmode&lmode != DisabledMode
	}
	return GetGlobalLogMode()&lmode != DisabledMode
}

// header formats the log line prefix as per l.flag.
func (l *Logger) header(lmode Mode, t time.Time, file string, line int) []byte {
	var b []byte
	if l.flag&Lmode != 0 {
		b = append(b, lmode.byte())
	}
	if l.flag&LUTC != 0 {
		t = t.UTC()
	}
	if l.flag&Ldate != 0 {
		year, month, day := t.Date()
		if year < 2000 {
			year = 2000
		}
		b = itoa(b, year-2000, 2)
		b = itoa(b, int(month), 2)
		b = itoa(b, day, 2)
		if l.flag&(Ltime|Lmicroseconds) != 0 {
			b = append(b, ' ')
		}
	}
	if l.flag&(Ltime|Lmicroseconds) != 0 {
		hour, min, sec := t.Clock()
		b = itoa(b, hour, 2)
		b = append(b, ':')
		b = itoa(b, min, 2)
		b = append(b, ':')
		b = itoa(b, sec, 2)
		if l.flag&Lmicroseconds != 0 {
			b = append(b, '.')
			b = itoa(b, t.Nanosecond()/1e3, 6)
		}
	}
	b = append(b, ' ')

	if l.flag&(Lshortfile|Llongfile) != 0 {
		switch {
		case l.flag&Lshortfile != 0:
			file = filepath.Base(file)
		case l.basePath != "" && strings.HasPrefix(file, l.basePath+"/"):
			file = file[len(l.basePath)+1:]
		}
		b = append(b, file...)
		b = append(b, ':')
		b = itoa(b, line, -1)
		b = append(b, "] "...)
	}
	return b
}

// itoa appends the fixed-width decimal representation of i. A negative width
// avoids zero-padding.
func itoa(b []byte, i int, wid int) []byte {
	var digits [20]byte
	pos := len(digits) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		digits[pos] = byte('0' + i - q*10)
		pos--
		i = q
	}
	digits[pos] = byte('0' + i)
	return append(b, digits[pos:]...)
}

// stacktrace returns the stack trace of the calling goroutine with skip
// frames above the caller of stacktrace removed. The goroutine header line
// is retained.
func stacktrace(skip int) []byte {
	// Every frame renders as two lines (function, file:line). We drop the
	// frames for debug.Stack, stacktrace itself and the requested ones.
	drop := 2 * (skip + 2)

	lines := bytes.Split(debug.Stack(), []byte("\n"))
	if len(lines) <= 1+drop {
		return debug.Stack()
	}
	kept := append([][]byte{lines[0]}, lines[1+drop:]...)
	return bytes.Join(kept, []byte("\n"))
}

// caller returns the file and line number depth frames above its own caller.
func caller(depth int) (file string, line int) {
	_, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return "[???]", -1
	}
	return file, line
}
