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

// Package volumeclient holds the commands that drive a volume through its
// control plane: listing, reading and writing files, usage reports,
// consistency checks and exports.
package volumeclient

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/kurafs/memfs/pkg/cli"
	"github.com/kurafs/memfs/pkg/config"
	vpb "github.com/kurafs/memfs/pkg/pb/volume"
	"github.com/kurafs/memfs/pkg/streaming"
	"golang.org/x/sys/unix"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Output of every command; tests point it elsewhere.
var stdout io.Writer = os.Stdout

// Commands are the client commands, in help order.
var Commands = cli.Commands{
	LsCmd, StatCmd, CatCmd, PutCmd, TruncateCmd, RmCmd, DfCmd, CheckCmd, ExportCmd, MountsCmd,
}

// clientFlags are the connection flags shared by the client commands.
type clientFlags struct {
	addr    string
	timeout time.Duration
}

func (c *clientFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", fmt.Sprintf("127.0.0.1:%d", config.DefaultRPCPort),
		"Address of the volume control plane [host:port]")
	fs.DurationVar(&c.timeout, "timeout", 30*time.Second,
		"Deadline for each RPC")
}

// dial connects to the control plane. The returned function closes the
// connection.
func (c *clientFlags) dial() (vpb.VolumeServiceClient, func(), error) {
	conn, err := grpc.Dial(c.addr,
		grpc.WithInsecure(),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(streaming.Threshold),
			grpc.MaxCallSendMsgSize(streaming.Threshold),
		),
	)
	if err != nil {
		return nil, nil, err
	}
	return vpb.NewVolumeServiceClient(conn), func() { conn.Close() }, nil
}

// call runs fn with a per-RPC deadline.
func (c *clientFlags) call(fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return fn(ctx)
}

// parse parses args into cmd's flags and checks the positional argument
// count lies within [min, max]; a negative max means no upper bound.
func parse(cmd *cli.Command, args []string, min, max int) error {
	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	n := cmd.FlagSet.NArg()
	if n < min {
		return cli.CmdParseError(errors.New("missing arguments"))
	}
	if max >= 0 && n > max {
		return cli.CmdParseError(fmt.Errorf("unrecognized arguments: %v", cmd.FlagSet.Args()[max:]))
	}
	return nil
}

// describe turns an RPC error into a message fit for the terminal.
func describe(path string, err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%s: no such file", path)
	case codes.AlreadyExists:
		return fmt.Errorf("%s: file exists", path)
	case codes.ResourceExhausted:
		return fmt.Errorf("%s: no space left on volume", path)
	case codes.Unavailable:
		return fmt.Errorf("volume unreachable: %s", st.Message())
	default:
		return fmt.Errorf("%s: %s", path, st.Message())
	}
}

func fileMode(mode uint32) os.FileMode {
	m := os.FileMode(mode & 0777)
	if mode&unix.S_IFMT == unix.S_IFDIR {
		m |= os.ModeDir
	}
	return m
}

func parseSize(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, cli.CmdParseError(fmt.Errorf("invalid size %q", s))
	}
	return n, nil
}
