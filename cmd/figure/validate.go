// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cogentcore.org/figure/document"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Load documents and report errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.documentOptions()
			if err != nil {
				return err
			}
			failed := 0
			for _, fn := range args {
				doc, err := document.Open(a.reg, fn, opts...)
				if err != nil {
					failed++
					fmt.Fprintf(a.out, "%s: %v\n", fn, err)
					continue
				}
				fmt.Fprintf(a.out, "%s: ok, %d roots, %d models\n", fn, len(doc.Roots()), doc.Len())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents are invalid", failed, len(args))
			}
			return nil
		},
	}
}
