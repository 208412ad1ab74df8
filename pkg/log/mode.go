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
	"fmt"
	"strings"
)

// Mode is a bit set of log levels. A statement logged at level m is emitted
// iff m intersects the mode in effect for its file (see SetGlobalLogMode and
// SetFileLogMode).
type Mode int

const (
	InfoMode Mode = 1 << iota
	WarnMode
	ErrorMode
	FatalMode
	DebugMode

	// DisabledMode doubles as the empty intersection: (a&b) != DisabledMode
	// checks whether two modes overlap.
	DisabledMode Mode = 0
	DefaultMode       = InfoMode | WarnMode | ErrorMode
)

func (m Mode) byte() byte {
	switch m {
	case InfoMode:
		return 'I'
	case WarnMode:
		return 'W'
	case ErrorMode:
		return 'E'
	case FatalMode:
		return 'F'
	case DebugMode:
		return 'D'
	default:
		return '?'
	}
}

var modeNames = []struct {
	mode Mode
	name string
}{
	{InfoMode, "info"},
	{WarnMode, "warn"},
	{ErrorMode, "error"},
	{DebugMode, "debug"},
}

// String renders the mode as a '|' separated list, e.g. "info|warn".
func (m Mode) String() string {
	if m == DisabledMode {
		return "disabled"
	}
	var parts []string
	for _, mn := range modeNames {
		if m&mn.mode != DisabledMode {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseMode parses a '|' separated list of levels (info, warn, error,
// debug) or the single word "disabled".
func ParseMode(value string) (Mode, error) {
	if value == "disabled" {
		return DisabledMode, nil
	}

	var m Mode
	for _, part := range strings.Split(value, "|") {
		found := false
		for _, mn := range modeNames {
			if part == mn.name {
				m |= mn.mode
				found = true
				break
			}
		}
		if !found {
			return DisabledMode, fmt.Errorf("unrecognized mode: %q", part)
		}
	}
	return m, nil
}
