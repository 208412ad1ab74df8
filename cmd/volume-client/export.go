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

package volumeclient

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kurafs/memfs/pkg/cli"
	"github.com/kurafs/memfs/pkg/config"
	"github.com/kurafs/memfs/pkg/export"
	vpb "github.com/kurafs/memfs/pkg/pb/volume"
	"github.com/kurafs/memfs/pkg/registry"
)

var ExportCmd = &cli.Command{
	Run:       exportCmdRun,
	UsageLine: "export [-addr host:port] [-codec none|lz4|zstd] -o <file>",
	Short:     "archive the files of a volume",
	Long: `
Export writes every file of the volume into a tar archive, optionally
compressed. Without -codec the codec follows the output file suffix: .zst
selects zstd, .lz4 selects lz4. An output of "-" writes to standard output.
    `,
}

func exportCmdRun(cmd *cli.Command, args []string) error {
	var (
		cf        clientFlags
		outFlag   string
		codecFlag string
	)
	cf.register(&cmd.FlagSet)
	cmd.FlagSet.StringVar(&outFlag, "o", "", "Output file, or - for standard output")
	cmd.FlagSet.StringVar(&codecFlag, "codec", "", "Compression codec [none, lz4, zstd]")
	if err := parse(cmd, args, 0, 0); err != nil {
		return err
	}
	if outFlag == "" {
		return cli.CmdParseError(fmt.Errorf("missing output file (-o)"))
	}
	codec := export.CodecFor(outFlag)
	if cli.IsSet(&cmd.FlagSet, "codec") {
		var err error
		if codec, err = export.ParseCodec(codecFlag); err != nil {
			return cli.CmdParseError(err)
		}
	}

	client, done, err := cf.dial()
	if err != nil {
		return err
	}
	defer done()

	var w io.Writer = stdout
	if outFlag != "-" {
		f, err := os.Create(outFlag)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	summary, err := export.Write(context.Background(), w, codec, &rpcSource{client: client, cf: &cf})
	if err != nil {
		return describe("/", err)
	}
	if outFlag != "-" {
		fmt.Fprintf(stdout, "exported %d files (%d bytes, %s) to %s\n", summary.Files, summary.Bytes, codec, outFlag)
	}
	return nil
}

// rpcSource reads a volume over its control plane.
type rpcSource struct {
	client vpb.VolumeServiceClient
	cf     *clientFlags
}

var _ export.Source = (*rpcSource)(nil)

func (s *rpcSource) List(ctx context.Context) ([]export.File, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cf.timeout)
	defer cancel()
	res, err := s.client.ListDir(ctx, &vpb.ListDirRequest{})
	if err != nil {
		return nil, err
	}

	var files []export.File
	for _, e := range res.Entries {
		if fileMode(e.Attr.GetMode()).IsDir() {
			continue
		}
		files = append(files, export.File{
			Name:    e.Name,
			Mode:    e.Attr.GetMode() & 07777,
			Uid:     int(e.Attr.GetUid()),
			Gid:     int(e.Attr.GetGid()),
			Size:    e.Attr.GetSize(),
			ModTime: time.Unix(0, e.Attr.GetMtime()),
		})
	}
	return files, nil
}

func (s *rpcSource) ReadAt(ctx context.Context, name string, p []byte, off int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cf.timeout)
	defer cancel()
	res, err := s.client.Read(ctx, &vpb.ReadRequest{Path: name, Offset: off, Length: int32(len(p))})
	if err != nil {
		return 0, err
	}
	return copy(p, res.Data), nil
}

var MountsCmd = &cli.Command{
	Run:       mountsCmdRun,
	UsageLine: "mounts [-config path]",
	Short:     "list the volumes mounted on this host",
	Long: `
Mounts lists the volumes recorded in the local mount registry, along with
their mount points, serving processes and control plane addresses. Records
left behind by processes that no longer exist are pruned first.
    `,
}

func mountsCmdRun(cmd *cli.Command, args []string) error {
	var configFlag string
	cmd.FlagSet.StringVar(&configFlag, "config", "", "Path to the YAML configuration file")
	if err := parse(cmd, args, 0, 0); err != nil {
		return err
	}
	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	r, err := registry.Open(cfg.Registry.Path)
	if err != nil {
		return err
	}
	defer r.Close()

	if _, err := r.Prune(); err != nil {
		return err
	}
	recs, err := r.List()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "VOLUME\tMOUNTPOINT\tPID\tRPC\tBLOCKS\tSTARTED")
	for _, rec := range recs {
		rpc := rec.RPCAddr
		if rpc == "" {
			rpc = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%dx%d\t%s\n",
			rec.ID, rec.Mountpoint, rec.PID, rpc,
			rec.Geometry.BlockCount, rec.Geometry.BlockSize, rec.Started.Format(time.RFC3339))
	}
	return tw.Flush()
}
