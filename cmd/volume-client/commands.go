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
	"io/ioutil"
	"text/tabwriter"
	"time"

	"github.com/kurafs/memfs/pkg/cli"
	vpb "github.com/kurafs/memfs/pkg/pb/volume"
	"github.com/kurafs/memfs/pkg/streaming"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var LsCmd = &cli.Command{
	Run:       lsCmdRun,
	UsageLine: "ls [-addr host:port] [-a]",
	Short:     "list the files of a volume",
	Long: `
Ls lists the files of the volume, most recently created first, along with
their permissions, size and modification time. With -a the "." and ".."
entries are listed too.
    `,
}

func lsCmdRun(cmd *cli.Command, args []string) error {
	var (
		cf      clientFlags
		allFlag bool
	)
	cf.register(&cmd.FlagSet)
	cmd.FlagSet.BoolVar(&allFlag, "a", false, "Include . and ..")
	if err := parse(cmd, args, 0, 0); err != nil {
		return err
	}
	client, done, err := cf.dial()
	if err != nil {
		return err
	}
	defer done()

	var res *vpb.ListDirResponse
	if err := cf.call(func(ctx context.Context) error {
		res, err = client.ListDir(ctx, &vpb.ListDirRequest{})
		return err
	}); err != nil {
		return describe("/", err)
	}

	tw := tabwriter.NewWriter(stdout, 0, 8, 1, ' ', tabwriter.AlignRight)
	for _, e := range res.Entries {
		if !allFlag && (e.Name == "." || e.Name == "..") {
			continue
		}
		mtime := time.Unix(0, e.Attr.GetMtime())
		fmt.Fprintf(tw, "%v\t%d\t%s\t %s\t\n",
			fileMode(e.Attr.GetMode()), e.Attr.GetSize(), mtime.Format("Jan _2 15:04"), e.Name)
	}
	return tw.Flush()
}

var StatCmd = &cli.Command{
	Run:       statCmdRun,
	UsageLine: "stat [-addr host:port] <path>",
	Short:     "show the attributes of a file",
	Long: `
Stat prints the attributes of a file, or of the root directory for "/".
    `,
}

func statCmdRun(cmd *cli.Command, args []string) error {
	var cf clientFlags
	cf.register(&cmd.FlagSet)
	if err := parse(cmd, args, 1, 1); err != nil {
		return err
	}
	path := cmd.FlagSet.Arg(0)
	client, done, err := cf.dial()
	if err != nil {
		return err
	}
	defer done()

	var res *vpb.StatResponse
	if err := cf.call(func(ctx context.Context) error {
		res, err = client.Stat(ctx, &vpb.StatRequest{Path: path})
		return err
	}); err != nil {
		return describe(path, err)
	}

	a := res.Attr
	fmt.Fprintf(stdout, "  File: %s\n", path)
	fmt.Fprintf(stdout, "  Size: %-12d Blocks: %-10d Inode: %d/%d\n", a.GetSize(), a.GetBlocks(), a.GetIno(), a.GetGen())
	fmt.Fprintf(stdout, "Access: %v  Uid: %d  Gid: %d  Links: %d\n", fileMode(a.GetMode()), a.GetUid(), a.GetGid(), a.GetNlink())
	for _, ts := range []struct {
		label string
		nanos int64
	}{{"Access", a.GetAtime()}, {"Modify", a.GetMtime()}, {"Change", a.GetCtime()}} {
		fmt.Fprintf(stdout, "%s: %s\n", ts.label, time.Unix(0, ts.nanos).Format(time.RFC3339Nano))
	}
	return nil
}

var CatCmd = &cli.Command{
	Run:       catCmdRun,
	UsageLine: "cat [-addr host:port] <path>",
	Short:     "print the content of a file",
	Long: `
Cat streams a file to standard output in 64 KiB reads.
    `,
}

func catCmdRun(cmd *cli.Command, args []string) error {
	var cf clientFlags
	cf.register(&cmd.FlagSet)
	if err := parse(cmd, args, 1, 1); err != nil {
		return err
	}
	path := cmd.FlagSet.Arg(0)
	client, done, err := cf.dial()
	if err != nil {
		return err
	}
	defer done()

	for off := int64(0); ; {
		var res *vpb.ReadResponse
		if err := cf.call(func(ctx context.Context) error {
			res, err = client.Read(ctx, &vpb.ReadRequest{Path: path, Offset: off, Length: streaming.ChunkSize})
			return err
		}); err != nil {
			return describe(path, err)
		}
		if len(res.Data) == 0 {
			return nil
		}
		if _, err := stdout.Write(res.Data); err != nil {
			return err
		}
		off += int64(len(res.Data))
	}
}

var PutCmd = &cli.Command{
	Run:       putCmdRun,
	UsageLine: "put [-addr host:port] [-mode perm] <local-file> <path>",
	Short:     "copy a local file into a volume",
	Long: `
Put copies a local file into the volume, creating the file or replacing its
content. The payload travels in 64 KiB Write RPCs.
    `,
}

func putCmdRun(cmd *cli.Command, args []string) error {
	var (
		cf       clientFlags
		modeFlag uint
	)
	cf.register(&cmd.FlagSet)
	cmd.FlagSet.UintVar(&modeFlag, "mode", 0644, "Permission bits for a newly created file")
	if err := parse(cmd, args, 2, 2); err != nil {
		return err
	}
	local, path := cmd.FlagSet.Arg(0), cmd.FlagSet.Arg(1)

	payload, err := ioutil.ReadFile(local)
	if err != nil {
		return err
	}
	client, done, err := cf.dial()
	if err != nil {
		return err
	}
	defer done()

	written, err := put(client, &cf, path, uint32(modeFlag), payload)
	if err != nil {
		return describe(path, err)
	}
	fmt.Fprintf(stdout, "wrote %d bytes to %s\n", written, path)
	return nil
}

// put creates or truncates path and writes payload into it.
func put(client vpb.VolumeServiceClient, cf *clientFlags, path string, mode uint32, payload []byte) (int64, error) {
	err := cf.call(func(ctx context.Context) error {
		_, err := client.Create(ctx, &vpb.CreateRequest{Path: path, Mode: mode})
		if status.Code(err) == codes.AlreadyExists {
			_, err = client.Truncate(ctx, &vpb.TruncateRequest{Path: path, Size: 0})
		}
		return err
	})
	if err != nil {
		return 0, err
	}

	var written int64
	c := streaming.NewChunker(payload, streaming.ChunkSize)
	for c.Next() {
		data, off := c.Value(), c.Offset()
		for len(data) > 0 {
			var res *vpb.WriteResponse
			if err := cf.call(func(ctx context.Context) error {
				res, err = client.Write(ctx, &vpb.WriteRequest{Path: path, Offset: off, Data: data})
				return err
			}); err != nil {
				return written, err
			}
			if res.Written <= 0 {
				return written, fmt.Errorf("no progress writing at offset %d", off)
			}
			data, off = data[res.Written:], off+res.Written
			written += res.Written
		}
	}
	return written, nil
}

var TruncateCmd = &cli.Command{
	Run:       truncateCmdRun,
	UsageLine: "truncate [-addr host:port] <path> <size>",
	Short:     "shrink or extend a file",
	Long: `
Truncate sets the size of a file. Shrinking frees the blocks past the new
end; extending reads back as zeros.
    `,
}

func truncateCmdRun(cmd *cli.Command, args []string) error {
	var cf clientFlags
	cf.register(&cmd.FlagSet)
	if err := parse(cmd, args, 2, 2); err != nil {
		return err
	}
	path := cmd.FlagSet.Arg(0)
	size, err := parseSize(cmd.FlagSet.Arg(1))
	if err != nil {
		return err
	}
	client, done, err := cf.dial()
	if err != nil {
		return err
	}
	defer done()

	return describe(path, cf.call(func(ctx context.Context) error {
		_, err := client.Truncate(ctx, &vpb.TruncateRequest{Path: path, Size: size})
		return err
	}))
}

var RmCmd = &cli.Command{
	Run:       rmCmdRun,
	UsageLine: "rm [-addr host:port] <path>...",
	Short:     "remove files from a volume",
	Long: `
Rm unlinks the given files, returning their blocks to the volume.
    `,
}

func rmCmdRun(cmd *cli.Command, args []string) error {
	var cf clientFlags
	cf.register(&cmd.FlagSet)
	if err := parse(cmd, args, 1, -1); err != nil {
		return err
	}
	client, done, err := cf.dial()
	if err != nil {
		return err
	}
	defer done()

	for _, path := range cmd.FlagSet.Args() {
		if err := cf.call(func(ctx context.Context) error {
			_, err := client.Unlink(ctx, &vpb.UnlinkRequest{Path: path})
			return err
		}); err != nil {
			return describe(path, err)
		}
	}
	return nil
}

var DfCmd = &cli.Command{
	Run:       dfCmdRun,
	UsageLine: "df [-addr host:port]",
	Short:     "report block usage of a volume",
	Long: `
Df reports the volume geometry, the blocks in use and the number of files.
Two blocks are always in use: the volume header and the directory.
    `,
}

func dfCmdRun(cmd *cli.Command, args []string) error {
	var cf clientFlags
	cf.register(&cmd.FlagSet)
	if err := parse(cmd, args, 0, 0); err != nil {
		return err
	}
	client, done, err := cf.dial()
	if err != nil {
		return err
	}
	defer done()

	var res *vpb.StatfsResponse
	if err := cf.call(func(ctx context.Context) error {
		res, err = client.Statfs(ctx, &vpb.StatfsRequest{})
		return err
	}); err != nil {
		return describe("/", err)
	}

	used := res.Blocks - res.FreeBlocks
	tw := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Volume\tBlock size\tBlocks\tUsed\tFree\tUse%\tFiles\tFanout")
	fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d%%\t%d\t%d\n",
		res.Name, res.BlockSize, res.Blocks, used, res.FreeBlocks, used*100/res.Blocks, res.Files, res.Fanout)
	return tw.Flush()
}

var CheckCmd = &cli.Command{
	Run:       checkCmdRun,
	UsageLine: "check [-addr host:port]",
	Short:     "verify the block accounting of a volume",
	Long: `
Check walks every file of the volume and verifies that each block has a
single owner and that the usage counters agree with the block map.
    `,
}

func checkCmdRun(cmd *cli.Command, args []string) error {
	var cf clientFlags
	cf.register(&cmd.FlagSet)
	if err := parse(cmd, args, 0, 0); err != nil {
		return err
	}
	client, done, err := cf.dial()
	if err != nil {
		return err
	}
	defer done()

	var res *vpb.CheckResponse
	if err := cf.call(func(ctx context.Context) error {
		res, err = client.Check(ctx, &vpb.CheckRequest{})
		return err
	}); err != nil {
		return describe("/", err)
	}
	if !res.Consistent {
		return fmt.Errorf("volume is inconsistent: %s", res.Problem)
	}
	fmt.Fprintln(stdout, "ok")
	return nil
}
