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

// Package cli builds git-style command line interfaces, where the program
// name is followed by a sub-command (memfs {mount,volume-server,volume}).
// There are no init time hooks; commands are plain values aggregated by the
// caller:
//
//      var commands cli.Commands
//      commands = append(commands, fuseserver.MountCmd)
//      commands = append(commands, volumeserver.VolumeServerCmd)
//      commands = append(commands, doc.ArchitectureCmd) // Help topic.
//
//      abstract := "memfs is an in-memory block file system served over FUSE."
//      if err := cli.Process(abstract, commands); err != nil {
//              os.Exit(1)
//      }
//
// which renders as:
//
//      $ memfs help
//      memfs is an in-memory block file system served over FUSE.
//
//      Usage:
//
//          memfs command [arguments]
//
//      The commands are:
//
//              mount                  mount an in-memory volume at the given directory
//              volume-server          serve an in-memory volume over gRPC
//
//      Use 'memfs help [command]' for more information about a command.
//
//      Additional help topics:
//
//              architecture           memfs system architecture overview
//
//      Use "memfs help [topic]" for more information about that topic.
//
// Every command also responds to -h with its usage line and flag defaults.
package cli
