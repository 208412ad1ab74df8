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

package export

import (
	"context"

	"github.com/kurafs/memfs/pkg/memfs"
)

// VolumeSource exports a volume held in process.
type VolumeSource struct {
	Vol *memfs.Volume
}

var _ Source = VolumeSource{}

func (s VolumeSource) List(ctx context.Context) ([]File, error) {
	var files []File
	for _, de := range s.Vol.ListDir() {
		if de.Attr.IsDir() {
			continue
		}
		files = append(files, File{
			Name:    de.Name,
			Mode:    de.Attr.Mode,
			Uid:     int(de.Attr.Uid),
			Gid:     int(de.Attr.Gid),
			Size:    de.Attr.Size,
			ModTime: de.Attr.Mtime,
		})
	}
	return files, nil
}

func (s VolumeSource) ReadAt(ctx context.Context, name string, p []byte, off int64) (int, error) {
	return s.Vol.Read(name, p, off)
}
