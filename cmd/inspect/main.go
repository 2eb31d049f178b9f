// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command inspect renders a drawer tree for a demo scene in the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"cogentcore.org/inspector/base/errors"
	"cogentcore.org/inspector/base/logx"
	"cogentcore.org/inspector/clipboard"
	"cogentcore.org/inspector/config"
	"cogentcore.org/inspector/drawers"
	"cogentcore.org/inspector/textrender"
	"cogentcore.org/inspector/types"
)

// options are the command line options.
type options struct {
	config  []string
	targets int
	cycles  int
	filter  string
	set     []string
	watch   bool
	vv      bool
	v       bool
	q       bool
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Render the drawer tree of a demo scene",
		Long: `Render the drawer tree of a demo scene as terminal text.

Values are edited with --set path=value, where the path is the member
path of a drawer, such as Title or Shape.Radius.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&o.config, "config", nil, "TOML settings files, applied in order")
	f.IntVarP(&o.targets, "targets", "n", 1, "number of scenes to inspect at once")
	f.IntVar(&o.cycles, "cycles", 2, "number of cycles to run before rendering")
	f.StringVar(&o.filter, "filter", "", "only show members matching the filter text")
	f.StringArrayVar(&o.set, "set", nil, "set a member value as path=value")
	f.BoolVarP(&o.watch, "watch", "w", false, "render again whenever the last settings file changes")
	f.BoolVar(&o.vv, "vv", false, "log debug messages")
	f.BoolVarP(&o.v, "verbose", "v", false, "log info messages")
	f.BoolVarP(&o.q, "quiet", "q", false, "only log errors")
	return cmd
}

func run(ctx context.Context, w io.Writer, o *options) error {
	logx.UserLevel = logx.LevelFromFlags(o.vv, o.v, o.q)
	settings, err := config.Open(o.config...)
	if err != nil {
		return err
	}
	if !o.vv && !o.v && !o.q {
		lvl, err := logx.LevelFromString(settings.LogLevel)
		errors.Log(err)
		logx.UserLevel = lvl
	}
	logx.SetDefaultLogger()
	if o.targets < 1 {
		return fmt.Errorf("inspect: need at least one target, not %d", o.targets)
	}

	reg := types.NewRegistry()
	registerTypes(reg)
	world := NewWorld("Camera", "Light", "Player")
	in := drawers.New(settings, reg)
	in.Hosts = world
	in.Clipboard = clipboard.Default()
	defer in.Close()
	in.SetTargets(newScenes(world, o.targets)...)
	in.SetFilter(o.filter)

	for _, s := range o.set {
		path, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("inspect: invalid --set %q: want path=value", s)
		}
		in.Cycle(nil)
		if !in.HandleInput(path, drawers.InputEvent{Kind: drawers.Submit, Text: value}) {
			return fmt.Errorf("inspect: could not set %s to %q", path, value)
		}
	}

	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		profile = termenv.NewOutput(f).ColorProfile()
	}
	r := textrender.New(profile, settings.RowHeight)
	render := func() error {
		for range max(o.cycles-1, 0) {
			in.Cycle(nil)
		}
		r.Reset()
		in.Cycle(r)
		_, err := r.WriteTo(w)
		return err
	}
	if err := render(); err != nil {
		return err
	}
	if !o.watch || len(o.config) == 0 {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	file := o.config[len(o.config)-1]
	reloaded := make(chan *config.Settings)
	if err := config.Watch(ctx, file, func(s *config.Settings) {
		select {
		case reloaded <- s:
		case <-ctx.Done():
		}
	}); err != nil {
		return err
	}
	slog.Info("inspect: watching settings", "file", file)
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-reloaded:
			*in.Settings = *s
			r.RowHeight = s.RowHeight
			in.SetFilter(o.filter)
			fmt.Fprintln(w)
			if err := render(); err != nil {
				return err
			}
		}
	}
}
