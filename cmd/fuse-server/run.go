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

package fuseserver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	volumeserver "github.com/kurafs/memfs/cmd/volume-server"
	"github.com/kurafs/memfs/pkg/cli"
	"github.com/kurafs/memfs/pkg/config"
	"github.com/kurafs/memfs/pkg/fusefs"
	"github.com/kurafs/memfs/pkg/log"
	"github.com/kurafs/memfs/pkg/memfs"
	"github.com/kurafs/memfs/pkg/registry"
	"golang.org/x/sys/unix"
)

var MountCmd = &cli.Command{
	Run:       mountCmdRun,
	UsageLine: "mount [-config path] [-rpc-port port] [-allow-other] [-unmount] [logger flags] <mount-point>",
	Short:     "mount a fresh in-memory volume at the specified mount point",
	Long: `
Mount creates an empty volume and serves it through FUSE at <mount-point>
until interrupted. Unless -rpc-port is 0, the volume's control plane is
served on 127.0.0.1:<rpc-port> for the client commands.

The mount is recorded in the registry (see -config) so that 'mounts' and
'mount -unmount' can find it. Everything stored in the volume is lost on
unmount.
    `,
}

func mountCmdRun(cmd *cli.Command, args []string) error {
	var (
		configFlag     string
		rpcPortFlag    int
		allowOtherFlag bool
		unmountFlag    bool
		logFlags       log.CmdFlags
	)

	cmd.FlagSet.StringVar(&configFlag, "config", "",
		"YAML config file for volume geometry, mount options and ports")
	cmd.FlagSet.IntVar(&rpcPortFlag, "rpc-port", config.DefaultRPCPort,
		"Port for the volume control plane, 0 to disable")
	cmd.FlagSet.BoolVar(&allowOtherFlag, "allow-other", false,
		"Allow other users to access the mount")
	cmd.FlagSet.BoolVar(&unmountFlag, "unmount", false,
		"Unmount filesystem at specified directory")
	logFlags.Register(&cmd.FlagSet)

	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	if cmd.FlagSet.NArg() > 1 {
		return cli.CmdParseError(fmt.Errorf("unrecognized arguments: %v", cmd.FlagSet.Args()[1:]))
	}
	if cmd.FlagSet.NArg() == 0 {
		return cli.CmdParseError(errors.New("unspecified mount-point"))
	}
	mountPoint, err := filepath.Abs(cmd.FlagSet.Arg(0))
	if err != nil {
		return err
	}

	logger := logFlags.Logger()
	cfg, err := config.Load(configFlag)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	if cli.IsSet(&cmd.FlagSet, "rpc-port") {
		cfg.RPC.Port = rpcPortFlag
	}
	if cli.IsSet(&cmd.FlagSet, "allow-other") {
		cfg.Fuse.AllowOther = allowOtherFlag
	}

	if unmountFlag {
		if err := unmount(logger, cfg, mountPoint); err != nil {
			logger.Error(err.Error())
			return err
		}
		return nil
	}

	if err := mount(logger, cfg, mountPoint); err != nil {
		logger.Error(err.Error())
		return err
	}
	return nil
}

// mount serves a new volume at mountPoint until a signal arrives or the
// kernel detaches it.
func mount(logger *log.Logger, cfg *config.Config, mountPoint string) error {
	vol, err := memfs.Mount(uint32(os.Getuid()), uint32(os.Getgid()),
		memfs.WithGeometry(cfg.Volume), memfs.WithLogger(logger))
	if err != nil {
		return err
	}

	server, err := fusefs.Mount(logger, vol, fusefs.Options{
		Mountpoint:     mountPoint,
		FsName:         cfg.Fuse.FsName,
		AllowOther:     cfg.Fuse.AllowOther,
		SingleThreaded: cfg.Fuse.SingleThreaded,
		Debug:          cfg.Fuse.Debug,
		AttrTimeout:    cfg.Fuse.AttrTimeout,
	})
	if err != nil {
		return err
	}

	rec := registry.Record{
		ID:         vol.Name(),
		Mountpoint: mountPoint,
		PID:        os.Getpid(),
		Started:    time.Now(),
		Geometry:   vol.Geometry(),
	}

	shutdownRPC := func() {}
	if cfg.RPC.Port != 0 {
		wait, shutdown, err := volumeserver.Start(logger, cfg.RPC.Port, vol)
		if err != nil {
			server.Unmount()
			return err
		}
		defer wait()
		shutdownRPC = shutdown
		rec.RPCAddr = fmt.Sprintf("127.0.0.1:%d", cfg.RPC.Port)
	}
	defer shutdownRPC()

	if err := record(cfg, func(r *registry.Registry) error {
		if pruned, err := r.Prune(); err == nil && len(pruned) > 0 {
			logger.Infof("pruned %d stale mount records", len(pruned))
		}
		return r.Put(rec)
	}); err != nil {
		logger.Warnf("recording mount in registry: %v", err)
	}
	defer func() {
		if err := record(cfg, func(r *registry.Registry) error { return r.Delete(rec.ID) }); err != nil {
			logger.Warnf("removing mount from registry: %v", err)
		}
	}()

	go func() {
		sig := cli.WaitForSignal()
		logger.Infof("received %s, unmounting %s", sig, mountPoint)
		if err := server.Unmount(); err != nil {
			logger.Errorf("unmounting %s: %v", mountPoint, err)
		}
	}()

	server.Wait()
	logger.Infof("unmounted volume %s from %s", vol.Name(), mountPoint)
	return nil
}

// unmount asks the process serving mountPoint to unmount it.
func unmount(logger *log.Logger, cfg *config.Config, mountPoint string) error {
	var rec registry.Record
	err := record(cfg, func(r *registry.Registry) error {
		var err error
		rec, err = r.Lookup(mountPoint)
		return err
	})
	if err != nil {
		return err
	}
	if err := unix.Kill(rec.PID, unix.SIGTERM); err != nil {
		return fmt.Errorf("signalling pid %d serving %s: %w", rec.PID, mountPoint, err)
	}
	logger.Infof("requested unmount of volume %s at %s", rec.ID, mountPoint)
	return nil
}

// record runs fn against the registry, holding it open only for the
// duration of the call.
func record(cfg *config.Config, fn func(r *registry.Registry) error) error {
	r, err := registry.Open(cfg.Registry.Path)
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}
