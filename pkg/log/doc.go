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

// Package log implements leveled execution logs for memfs. Every command
// exposes the same set of logging flags through CmdFlags:
//
//     $ memfs mount -help
//       -log-dir string
//             Write log files to the specified directory
//       -suppress-stderr
//             Suppress standard error logging
//       -log-mode (info|debug|warn|error|disabled)
//             Log mode for logs emitted globally (can be overridden using -log-filter)
//       -log-filter value
//             Comma-separated list of pattern:level settings for file-filtered logging
//       -log-backtrace-at value
//             Comma-separated list of filename:N settings to emit backtraces
//
// The global mode, per-file overrides and tracepoints are process wide and can
// be changed at runtime; loggers consult them on every statement.
//
// Basic example:
//
//      logger := log.New()
//      logger.Info("hello, world")
//
// Loggers are configured through variadic options at construction time:
//
//      writer := log.SynchronizedWriter(os.Stderr)
//      writer = log.MultiWriter(writer,
//                      log.LogRotationWriter("/logs", 50 << 20 /* 50 MiB */))
//
//      logf := log.Lmode | log.Ldate | log.Ltime | log.Llongfile
//      logger := log.New(log.Writer(writer), log.Flags(logf), log.SkipBasePath())
package log
