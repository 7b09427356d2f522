// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command figure renders figure documents to PNG files, validates
// them, and follows live document sessions.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cogentcore.org/figure/base/logx"
	"cogentcore.org/figure/config"
	"cogentcore.org/figure/document"
	"cogentcore.org/figure/model"
	"cogentcore.org/figure/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the state shared by the commands.
type app struct {
	out io.Writer

	configFile string
	vv, v, q   bool

	cfg *config.Config
	reg *model.Registry
}

func run(ctx context.Context, out io.Writer, args []string) error {
	cmd := newRootCmd(out)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, reg: models.NewRegistry()}
	root := &cobra.Command{
		Use:           "figure",
		Short:         "Render and inspect figure documents",
		Long:          "Render and inspect figure documents.\n\n" + configHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logx.UserLevel = logx.LevelFromFlags(a.vv, a.v, a.q)
			logx.SetDefaultLogger()
			cfg, err := config.Load(config.UserFile(), a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetOut(out)
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "TOML configuration file")
	pf.BoolVar(&a.vv, "vv", false, "show debug messages")
	pf.BoolVarP(&a.v, "verbose", "v", false, "show informational messages")
	pf.BoolVarP(&a.q, "quiet", "q", false, "show only errors")

	root.AddCommand(a.renderCmd(), a.validateCmd(), a.sessionCmd())
	return root
}

// documentOptions returns the options for loading documents,
// applying the configured theme.
func (a *app) documentOptions() ([]document.Option, error) {
	if a.cfg.Theme == "" {
		return nil, nil
	}
	th, err := config.OpenTheme(a.cfg.Theme)
	if err != nil {
		return nil, err
	}
	return []document.Option{document.WithTheme(th)}, nil
}
