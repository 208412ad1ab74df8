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
	"io"
	"path/filepath"
	"runtime"
)

// Flag determines which fields make up the header of every log line.
type Flag int

const (
	Ldate         Flag = 1 << iota // Date in the local time zone: 180419.
	Ltime                          // Time in the local time zone: 06:33:04.
	Lmicroseconds                  // Microsecond resolution: 06:33:04.606396, implies Ltime.
	Llongfile                      // Full file name and line number: /a/b/c/d.go:23.
	Lshortfile                     // Final file name element and line number: d.go:23.
	LUTC                           // If Ldate or Ltime is set, use UTC rather than the local time zone.
	Lmode                          // Single character log mode prefix: I, W, E, F or D.

	LstdFlags = Lmode | Ldate | Ltime | Lmicroseconds | Lshortfile
)

type option func(l *Logger)

// Writer sets the destination of the logger's output.
func Writer(w io.Writer) option {
	return func(l *Logger) {
		l.w = w
	}
}

// Flags sets the header format of the logger.
func Flags(f Flag) option {
	return func(l *Logger) {
		l.flag = f
	}
}

// BasePath sets the path prefix stripped off file names when Llongfile is
// set.
func BasePath(path string) option {
	return func(l *Logger) {
		l.basePath = filepath.Clean(path)
	}
}

// SkipBasePath strips the module root off file names when Llongfile is set,
// so that headers read pkg/memfs/volume.go:42 instead of a fully qualified
// path on the build machine.
func SkipBasePath() option {
	return BasePath(moduleRoot())
}

// moduleRoot derives the module root from the location of this source file,
// two directories below it (pkg/log).
func moduleRoot() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(filepath.Dir(filepath.Dir(file)))
}
