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
	"errors"
	"fmt"
)

var (
	// ErrOutOfSpace is returned when the block store cannot satisfy an
	// allocation.
	ErrOutOfSpace = errors.New("memfs: out of space")
	// ErrNotFound is returned when no file goes by the given name.
	ErrNotFound = errors.New("memfs: no such file")
	// ErrExist is returned when creating a name that is already taken.
	ErrExist = errors.New("memfs: file exists")
	// ErrNameTooLong is returned for names longer than MaxNameLen bytes.
	ErrNameTooLong = errors.New("memfs: name too long")
	// ErrInvalidPath is returned for empty names or names with a separator
	// past the leading one.
	ErrInvalidPath = errors.New("memfs: invalid path")
	// ErrIsDir is returned when a file operation targets the root.
	ErrIsDir = errors.New("memfs: is a directory")
	// ErrInvalidOffset is returned for negative offsets and sizes.
	ErrInvalidOffset = errors.New("memfs: invalid offset")
	// ErrFileTooLarge is returned when a file would outgrow the volume.
	ErrFileTooLarge = errors.New("memfs: file too large")
	// ErrInvalidGeometry is returned by Mount for unusable geometries.
	ErrInvalidGeometry = errors.New("memfs: invalid geometry")
)

// InvariantViolation is the panic value raised when the engine detects
// corrupted accounting: allocating an occupied slot, freeing a free one or
// presenting a stale handle. It is never recovered internally.
type InvariantViolation struct {
	Msg string
}

func (v InvariantViolation) Error() string {
	return "memfs: invariant violation: " + v.Msg
}

func invariantf(format string, args ...interface{}) {
	panic(InvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
