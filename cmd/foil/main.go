// Copyright (c) 2014, Kevin Walsh. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command foil loads a background program and an example manifest, runs
// the FOIL learner, and prints the resulting hypothesis.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/kevinawalsh/foil/dataset"
	"github.com/kevinawalsh/foil/foil"
	"github.com/kr/pretty"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type options struct {
	backgroundPath string
	manifestPath   string
	cache          bool
	verbose        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := options{}

	cmd := &cobra.Command{
		Use:          "foil",
		Short:        "Learn a hypothesis from a background program and labelled examples",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := hclog.Info
			if o.verbose {
				level = hclog.Debug
			}
			logger := hclog.New(&hclog.LoggerOptions{
				Name:  "foil",
				Level: level,
			})
			return o.run(cmd.Context(), logger)
		},
	}

	cmd.Flags().StringVar(&o.backgroundPath, "background", "", "path to a dlsyntax background program")
	cmd.Flags().StringVar(&o.manifestPath, "manifest", "", "path to a YAML example/mask manifest")
	cmd.Flags().BoolVar(&o.cache, "cache", false, "memoize Learn across repeated runs of this process")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	cmd.MarkFlagRequired("background")
	cmd.MarkFlagRequired("manifest")

	return cmd
}

func (o *options) run(ctx context.Context, logger hclog.Logger) error {
	backgroundText, err := os.ReadFile(o.backgroundPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "reading background program %q", o.backgroundPath)
	}
	manifestYAML, err := os.ReadFile(o.manifestPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "reading manifest %q", o.manifestPath)
	}

	logger.Debug("loading problem", "background", o.backgroundPath, "manifest", o.manifestPath)
	problem, err := dataset.Load(string(backgroundText), manifestYAML)
	if err != nil {
		return pkgerrors.Wrap(err, "loading problem")
	}
	logger.Info("loaded problem",
		"background-clauses", len(problem.Background),
		"masks", len(problem.Masks),
		"positives", len(problem.Positives),
		"negatives", len(problem.Negatives),
		"universe", len(problem.Universe),
	)
	if o.verbose {
		pretty.Println(problem)
	}

	var opts *foil.Options
	if o.cache {
		opts = &foil.Options{Cache: foil.NewCache()}
	}

	hypothesis, err := foil.Learn(ctx, problem, opts)
	if err != nil {
		return pkgerrors.Wrap(err, "learning")
	}

	logger.Info("learned hypothesis", "clauses", len(hypothesis))
	if len(hypothesis) == 0 {
		fmt.Println("% no clause covers any positive example")
		return nil
	}
	fmt.Println(hypothesis.String())
	return nil
}
