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
	"sync"
	"sync/atomic"
)

// The process wide logging state. Reads are lock free: writers copy the
// current map, apply their change and atomically publish the copy.
var gstate struct {
	gmode atomic.Value // Mode

	mu          sync.Mutex   // Serializes writers of the maps below.
	tracePoints atomic.Value // map[string]struct{}, keyed by fname.go:line
	fileModes   atomic.Value // map[string]Mode, keyed by fname.go
}

func init() {
	gstate.gmode.Store(DefaultMode)
	gstate.tracePoints.Store(map[string]struct{}{})
	gstate.fileModes.Store(map[string]Mode{})
}

// SetGlobalLogMode sets the global log mode. Statements outside of it are
// suppressed, unless overridden for their file.
func SetGlobalLogMode(m Mode) {
	gstate.gmode.Store(m)
}

// GetGlobalLogMode returns the global log mode.
func GetGlobalLogMode() Mode {
	return gstate.gmode.Load().(Mode)
}

func updateTracePoints(fn func(m map[string]struct{})) {
	gstate.mu.Lock()
	defer gstate.mu.Unlock()

	cur := gstate.tracePoints.Load().(map[string]struct{})
	next := make(map[string]struct{}, len(cur)+1)
	for tp := range cur {
		next[tp] = struct{}{}
	}
	fn(next)
	gstate.tracePoints.Store(next)
}

func updateFileModes(fn func(m map[string]Mode)) {
	gstate.mu.Lock()
	defer gstate.mu.Unlock()

	cur := gstate.fileModes.Load().(map[string]Mode)
	next := make(map[string]Mode, len(cur)+1)
	for fname, m := range cur {
		next[fname] = m
	}
	fn(next)
	gstate.fileModes.Store(next)
}

// SetTracePoint enables a tracepoint of the form fname.go:line. Logging
// statements at that position emit a backtrace, regardless of their mode.
func SetTracePoint(tp string) {
	updateTracePoints(func(m map[string]struct{}) { m[tp] = struct{}{} })
}

// ResetTracePoint disables the given tracepoint.
func ResetTracePoint(tp string) {
	updateTracePoints(func(m map[string]struct{}) { delete(m, tp) })
}

// GetTracePoint reports whether the given tracepoint is enabled.
func GetTracePoint(tp string) bool {
	_, ok := gstate.tracePoints.Load().(map[string]struct{})[tp]
	return ok
}

// SetFileLogMode overrides the log mode for statements within fname.
func SetFileLogMode(fname string, m Mode) {
	updateFileModes(func(fm map[string]Mode) { fm[fname] = m })
}

// GetFileLogMode returns the log mode override for fname, if any.
func GetFileLogMode(fname string) (Mode, bool) {
	m, ok := gstate.fileModes.Load().(map[string]Mode)[fname]
	return m, ok
}

// ResetFileLogMode drops the override for fname; its statements get
// filtered by the global log mode again.
func ResetFileLogMode(fname string) {
	updateFileModes(func(fm map[string]Mode) { delete(fm, fname) })
}
