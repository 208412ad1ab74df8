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

// Portions of this code originated in the Go source code, under cmd/go/internal/help.

package cli

import (
	"io"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

const usageTemplate = `{{abstract}}

Usage:

    {{program}} command [arguments]

The commands are:
{{range .}}{{if .Runnable}}
	{{.Name | printf "%-20s"}}   {{.Short}}{{end}}{{end}}

Use '{{program}} help [command]' for more information about a command.

Additional help topics:
{{range .}}{{if not .Runnable}}
	{{.Name | printf "%-20s"}}   {{.Short}}{{end}}{{end}}

Use "{{program}} help [topic]" for more information about that topic.
`

const helpTemplate = `{{if .Runnable}}Usage: {{program}} {{.UsageLine}}

{{else}}Topic: {{.Short}}

{{end}}{{.Long | trim}}
`

const cmdUsageTemplate = `Usage:

  {{program}} {{.UsageLine}}

`

// tmpl renders text against data onto w.
func (p *processor) tmpl(w io.Writer, text string, data interface{}) {
	t := template.New("").Funcs(template.FuncMap{
		"trim":     strings.TrimSpace,
		"abstract": func() string { return p.abstract },
		"program":  func() string { return p.program },
	})
	template.Must(t.Parse(text))
	if err := t.Execute(w, data); err != nil {
		panic(err)
	}
}

func upcaseInitial(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
