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

package log

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"regexp"
	"strings"
)

var (
	fileNameRegex   = regexp.MustCompile(`^[\w\-]+\.go$`)
	lineNumberRegex = regexp.MustCompile(`^\d+$`)
)

// ModeValue is a flag.Value for the global log mode.
type ModeValue struct {
	Mode     Mode
	Explicit bool // Whether -log-mode was given.
}

func (v *ModeValue) String() string {
	if v == nil {
		return DefaultMode.String()
	}
	return v.Mode.String()
}

func (v *ModeValue) Set(value string) error {
	m, err := ParseMode(value)
	if err != nil {
		return err
	}
	v.Mode, v.Explicit = m, true
	return nil
}

// FileMode pairs a source file name with the log mode in effect for it.
type FileMode struct {
	File string
	Mode Mode
}

// FilterValue is a flag.Value for a comma-separated list of fname.go:mode
// pairs, e.g. "volume.go:debug,chain.go:warn|error".
type FilterValue []FileMode

func (v *FilterValue) String() string {
	var parts []string
	for _, fm := range *v {
		parts = append(parts, fmt.Sprintf("%s:%s", fm.File, fm.Mode))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (v *FilterValue) Set(value string) error {
	for _, pair := range strings.Split(value, ",") {
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			return fmt.Errorf("improperly formatted filter %q, expected fname.go:mode", pair)
		}
		fname, mode := parts[0], parts[1]
		if !fileNameRegex.MatchString(fname) {
			return fmt.Errorf("expected file name %q to match %s", fname, fileNameRegex)
		}
		m, err := ParseMode(mode)
		if err != nil {
			return err
		}
		*v = append(*v, FileMode{File: fname, Mode: m})
	}
	return nil
}

// TracePointValue is a flag.Value for a comma-separated list of fname.go:N
// tracepoints.
type TracePointValue []string

func (v *TracePointValue) String() string {
	return fmt.Sprint([]string(*v))
}

func (v *TracePointValue) Set(value string) error {
	for _, tp := range strings.Split(value, ",") {
		parts := strings.Split(tp, ":")
		if len(parts) != 2 {
			return fmt.Errorf("improperly formatted tracepoint %q, expected fname.go:line", tp)
		}
		if !fileNameRegex.MatchString(parts[0]) {
			return fmt.Errorf("expected file name %q to match %s", parts[0], fileNameRegex)
		}
		if !lineNumberRegex.MatchString(parts[1]) {
			return fmt.Errorf("expected line number %q to match %s", parts[1], lineNumberRegex)
		}
		*v = append(*v, tp)
	}
	return nil
}

// CmdFlags is the set of logging flags shared by every memfs command.
type CmdFlags struct {
	Dir            string
	SuppressStderr bool
	Mode           ModeValue
	Filter         FilterValue
	TracePoints    TracePointValue
}

// Register installs the logging flags onto fs.
func (c *CmdFlags) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.Dir, "log-dir", "",
		"Write log files to the specified directory")
	fs.BoolVar(&c.SuppressStderr, "suppress-stderr", false,
		"Suppress standard error logging")
	fs.Var(&c.Mode, "log-mode",
		"Log mode for logs emitted globally (can be overridden using -log-filter)")
	fs.Var(&c.Filter, "log-filter",
		"Comma-separated list of pattern:level settings for file-filtered logging")
	fs.Var(&c.TracePoints, "log-backtrace-at",
		"Comma-separated list of filename:N settings to emit backtraces")
}

// Logger applies the parsed flags to the process wide logging state and
// returns a logger writing to the configured destinations.
func (c *CmdFlags) Logger() *Logger {
	if c.Mode.Explicit {
		SetGlobalLogMode(c.Mode.Mode)
	}
	for _, fm := range c.Filter {
		SetFileLogMode(fm.File, fm.Mode)
	}
	for _, tp := range c.TracePoints {
		SetTracePoint(tp)
	}

	var w io.Writer = ioutil.Discard
	if c.Dir != "" {
		w = LogRotationWriter(c.Dir, 50<<20 /* 50 MiB */)
	}
	if !c.SuppressStderr {
		w = MultiWriter(w, os.Stderr)
	}
	w = SynchronizedWriter(w)

	logf := Ldate | Ltime | Lmicroseconds | Llongfile | LUTC | Lmode
	return New(Writer(w), Flags(logf), SkipBasePath())
}
