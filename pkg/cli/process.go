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

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
)

// Process dispatches os.Args to the matching command. Invoking the program
// bare, with -h or with 'help' prints the full usage; 'help <command>' prints
// the command's long description.
//
// Usage errors are printed to os.Stderr followed by os.Exit(2). Errors
// returned by a command's Run are propagated to the caller.
func Process(abstract string, commands Commands) error {
	p := &processor{
		program:  os.Args[0],
		abstract: abstract,
		commands: commands,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	code, err := p.process(os.Args[1:])
	if code != 0 {
		os.Exit(code)
	}
	return err
}

type processor struct {
	program, abstract string
	commands          Commands
	stdout, stderr    io.Writer
}

// process returns a non-zero exit code for usage errors; err is whatever
// the executed command returned.
func (p *processor) process(args []string) (code int, err error) {
	for _, cmd := range p.commands {
		cmd.FlagSet.SetOutput(ioutil.Discard)
	}

	if len(args) == 0 || (len(args) == 1 && (args[0] == "help" || args[0] == "-h")) {
		p.tmpl(p.stdout, usageTemplate, p.commands)
		return 0, nil
	}

	name := args[0]
	if name == "help" {
		if len(args) > 2 {
			fmt.Fprintf(p.stderr, "Usage: %s help [command]\n\nToo many arguments given.\n", p.program)
			return 2, nil
		}
		cmd, ok := p.commands.Lookup(args[1])
		if !ok {
			fmt.Fprintf(p.stderr, "Unknown help topic '%s'\n\nRun '%s help' for available topics.\n",
				args[1], p.program)
			return 2, nil
		}
		p.tmpl(p.stdout, helpTemplate, cmd)
		return 0, nil
	}

	cmd, ok := p.commands.Lookup(name)
	if !ok || !cmd.Runnable() {
		fmt.Fprintf(p.stderr, "Unknown command '%s'\n\nRun '%s help' for available commands.\n",
			name, p.program)
		return 2, nil
	}

	err = cmd.Run(cmd, args[1:])
	var perr *parseError
	if !errors.As(err, &perr) {
		return 0, err
	}

	// Flags are declared within Run, so usage can only be printed after it.
	if errors.Is(perr.err, flag.ErrHelp) {
		p.tmpl(p.stdout, cmdUsageTemplate, cmd)
		cmd.FlagSet.SetOutput(p.stdout)
		cmd.FlagSet.PrintDefaults()
		return 0, nil
	}

	fmt.Fprintln(p.stderr, upcaseInitial(perr.Error()))
	p.tmpl(p.stderr, cmdUsageTemplate, cmd)
	cmd.FlagSet.SetOutput(p.stderr)
	cmd.FlagSet.PrintDefaults()
	return 2, nil
}
