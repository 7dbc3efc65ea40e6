/*
Copyright 2022 Lee R. Boynton

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/boynton/smithygen/binding"
	"github.com/boynton/smithygen/common"
	"github.com/boynton/smithygen/golang"
	"github.com/boynton/smithygen/smithy"
	"github.com/boynton/smithygen/strategy"
)

var Version string = "development version"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "*** %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "smithygen",
		Short:         "Generate Go servers from Smithy models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			common.SetVerbose(verbose)
		},
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug information")
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newInputsCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the tool version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "smithygen %s [%s]\n", Version, "https://github.com/boynton/smithygen")
		},
	})
	return root
}

func newGenerateCmd() *cobra.Command {
	var outdir, configPath, generator string
	var force, sort bool
	var params []string
	cmd := &cobra.Command{
		Use:   "generate [flags] model ...",
		Short: "Generate Go types and a server for the model",
		Long: `Generate writes <namespace>_types.go and <namespace>_server.go, or prints them if no
output directory is given. Options are read from the config file and -a key=value arguments:

  golang.package           the package name of the generated files
  golang.inlinePrimitives  declare user defined simple shapes as their Go builtin type
  golang.runtimePackage    the import path of the runtime package
  namespace                the namespace used to name the files`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := smithy.Import(args)
			if err != nil {
				return err
			}
			conf, err := common.LoadConfig(configPath)
			if err != nil {
				return err
			}
			common.ApplyParams(conf, params)
			conf.Put("outdir", outdir)
			if force {
				conf.Put("force", true)
			}
			if sort {
				conf.Put("sort", true)
			}
			gen, err := Generator(generator)
			if err != nil {
				return err
			}
			return gen.Generate(catalog, conf)
		},
	}
	cmd.Flags().StringVarP(&generator, "generator", "g", "go", "The generator for output: go or summary")
	cmd.Flags().StringVarP(&outdir, "outdir", "o", "", "The directory to generate output into (defaults to stdout)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing output files")
	cmd.Flags().BoolVar(&sort, "sort", false, "Emit types sorted by name instead of in model order")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML or JSON generator config file")
	cmd.Flags().StringArrayVarP(&params, "arg", "a", nil, "Additional key=value generator option")
	return cmd
}

func Generator(genName string) (common.Generator, error) {
	switch genName {
	case "summary":
		return new(common.SummaryGenerator), nil
	case "go", "golang":
		return new(golang.Generator), nil
	default:
		return nil, fmt.Errorf("Unknown generator: %q", genName)
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list model ...",
		Short: "List the shapes in the model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := smithy.Import(args)
			if err != nil {
				return err
			}
			for _, s := range catalog.Shapes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", s.Id, s.Kind)
			}
			return nil
		},
	}
}

func newInputsCmd() *cobra.Command {
	var dump, inline bool
	cmd := &cobra.Command{
		Use:   "inputs model ...",
		Short: "Show how each operation input is bound from a request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := smithy.Import(args)
			if err != nil {
				return err
			}
			assembler := binding.NewAssembler(strategy.NewRegistry(catalog, strategy.Options{InlinePrimitives: inline}))
			var result *multierror.Error
			for _, service := range catalog.Services() {
				inputs, err := assembler.AssembleService(service)
				if err != nil {
					result = multierror.Append(result, err)
				}
				for _, in := range inputs {
					if dump {
						spew.Fdump(cmd.OutOrStdout(), in)
					} else {
						printInput(cmd.OutOrStdout(), in)
					}
				}
			}
			return result.ErrorOrNil()
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the assembled inputs in full")
	cmd.Flags().BoolVar(&inline, "inline-primitives", false, "Use Go builtin types for user defined simple shapes")
	return cmd
}

func printInput(w io.Writer, in *binding.Input) {
	name := in.TypeName
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(w, "%s %s (%s)\n", in.Operation.Id.Name(), name, in.Kind)
	for _, d := range in.Declarations {
		key := d.Key
		if d.Origin == binding.UriPath {
			key = fmt.Sprintf("%d", d.PathIndex)
		}
		fmt.Fprintf(w, "    %-16s %-8s %-12s %-8s %s\n", d.Name, d.Origin, d.Mode, key, d.Type)
	}
	if in.Kind == binding.WholeBody {
		fmt.Fprintf(w, "    the request body is decoded with %sFromJSON\n", in.TypeName)
	}
}
