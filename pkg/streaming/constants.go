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

// Package streaming splits file payloads into RPC sized pieces.
package streaming

// ChunkSize is the payload carried by a single Read or Write RPC. See
// https://github.com/grpc/grpc.github.io/issues/371.
const ChunkSize = 64 * 1024

// Threshold caps gRPC messages in either direction; reads spanning more
// than this are served in several round trips.
const Threshold = 4 * 1024 * 1024
