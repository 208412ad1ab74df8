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

package volumeserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"github.com/kurafs/memfs/pkg/cli"
	"github.com/kurafs/memfs/pkg/config"
	"github.com/kurafs/memfs/pkg/log"
	"github.com/kurafs/memfs/pkg/memfs"
	vpb "github.com/kurafs/memfs/pkg/pb/volume"
	"github.com/kurafs/memfs/pkg/streaming"
	"github.com/soheilhy/cmux"
	"google.golang.org/grpc"
)

var VolumeServerCmd = &cli.Command{
	Run:       volumeServerCmdRun,
	UsageLine: "volume-server [-config path] [-port port] [logger flags]",
	Short:     "serve a fresh volume over gRPC, without mounting it",
	Long: `
Volume-server creates an empty in-memory volume and serves its control plane
on 127.0.0.1:<port>. gRPC and gRPC-Web clients share the port. The volume
lives as long as the process does; nothing is persisted.

Geometry comes from the config file (see 'memfs help architecture'), the
port from -port if given, else from the config file.
    `,
}

func volumeServerCmdRun(cmd *cli.Command, args []string) error {
	var (
		configFlag string
		portFlag   int
		logFlags   log.CmdFlags
	)
	cmd.FlagSet.StringVar(&configFlag, "config", "",
		"YAML config file for volume geometry and ports")
	cmd.FlagSet.IntVar(&portFlag, "port", config.DefaultRPCPort,
		"Port on which the server will run on")
	logFlags.Register(&cmd.FlagSet)
	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	if cmd.FlagSet.NArg() != 0 {
		return cli.CmdParseError(fmt.Errorf("unrecognized arguments: %v", cmd.FlagSet.Args()))
	}

	logger := logFlags.Logger()
	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	port := cfg.RPC.Port
	if cli.IsSet(&cmd.FlagSet, "port") || port == 0 {
		port = portFlag
	}

	vol, err := memfs.Mount(uint32(os.Getuid()), uint32(os.Getgid()),
		memfs.WithGeometry(cfg.Volume), memfs.WithLogger(logger))
	if err != nil {
		return err
	}

	wait, shutdown, err := Start(logger, port, vol)
	if err != nil {
		return err
	}
	go func() {
		sig := cli.WaitForSignal()
		logger.Infof("received %s, shutting down", sig)
		shutdown()
	}()
	wait()
	return nil
}

// Start serves vol on 127.0.0.1:port, multiplexing gRPC and gRPC-Web over
// the same listener. wait blocks until the servers exit; shutdown stops
// them.
func Start(logger *log.Logger, port int, vol *memfs.Volume) (wait func(), shutdown func(), err error) {
	var wg sync.WaitGroup

	lis, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		logger.Errorf("failed to open TCP port: %v", err)
		return nil, nil, err
	}

	// Create a cmux; multiplex grpc and http over the same listener.
	mux := cmux.New(lis)

	// Match connections in order: First grpc, then everything else for web.
	grpcL := mux.Match(cmux.HTTP2HeaderField("content-type", "application/grpc"))
	httpL := mux.Match(cmux.Any())

	grpcServer := grpc.NewServer(
		grpc.MaxRecvMsgSize(streaming.Threshold),
		grpc.MaxSendMsgSize(streaming.Threshold),
	)
	vpb.RegisterVolumeServiceServer(grpcServer, newVolumeServer(logger, vol))

	httpServer := http.Server{Handler: grpcweb.WrapServer(grpcServer)}

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Infof("serving volume %s over RPC on port: %d", vol.Name(), port)
		if err := grpcServer.Serve(grpcL); err != nil && !isClosed(err) {
			logger.Errorf("grpc server error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Infof("serving HTTP server on port: %d", port)
		if err := httpServer.Serve(httpL); err != nil && err != http.ErrServerClosed && !isClosed(err) {
			logger.Errorf("http server error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := mux.Serve(); err != nil && !isClosed(err) {
			logger.Errorf("cmux server error: %v", err)
		}
	}()

	var once sync.Once
	shutdown = func() {
		once.Do(func() {
			lis.Close()
			grpcServer.Stop()
			httpServer.Shutdown(context.Background())
		})
	}

	return wg.Wait, shutdown, nil
}

// isClosed reports whether err stems from shutdown closing the listener.
func isClosed(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, cmux.ErrListenerClosed) ||
		errors.Is(err, grpc.ErrServerStopped)
}
