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

// Portions of this code originated in the Go source code, under cmd/go/internal/base.

package cli

import (
	"flag"
	"strings"
)

// A Command is a sub-command such as 'memfs mount' or 'memfs volume-server'.
// A Command with a nil Run is a documentation topic, reachable only through
// 'memfs help <topic>'.
type Command struct {
	// Run executes the command with the arguments following its name. Flag
	// parsing failures should be wrapped with CmdParseError so that usage gets
	// printed alongside.
	Run func(cmd *Command, args []string) error

	// UsageLine is the one-line usage message. Its first word is the command
	// name.
	UsageLine string

	// Short is shown in the 'memfs help' listing.
	Short string

	// Long is shown by 'memfs help <command>'.
	Long string

	// FlagSet holds the command's flags, typically declared within Run. Its
	// output is discarded; errors surface through Process instead.
	FlagSet flag.FlagSet
}

// Commands is an ordered set of commands and help topics.
type Commands []*Command

// Name returns the first word of the usage line.
func (c *Command) Name() string {
	if i := strings.IndexByte(c.UsageLine, ' '); i >= 0 {
		return c.UsageLine[:i]
	}
	return c.UsageLine
}

// Runnable reports whether the command can be executed, as opposed to being
// a help topic.
func (c *Command) Runnable() bool {
	return c.Run != nil
}

// Lookup returns the command or topic with the given name, if any.
func (cs Commands) Lookup(name string) (*Command, bool) {
	for _, c := range cs {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

type parseError struct {
	err error
}

func (p *parseError) Error() string { return p.err.Error() }
func (p *parseError) Unwrap() error { return p.err }

// CmdParseError marks err as a command line parsing error. Process reacts to
// such errors by printing the command usage and exiting with status 2.
func CmdParseError(err error) error {
	return &parseError{err: err}
}
