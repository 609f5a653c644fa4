package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kailas-cloud/acdex/internal/config"
	"github.com/kailas-cloud/acdex/internal/version"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func runMain(args []string, stdout, stderr io.Writer, exit func(int)) {
	if err := Execute(args[1:], stdout, stderr); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		exit(1)
	}
}

// Execute builds the command tree and runs it with args.
func Execute(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	env        string
	configPath string
	catalog    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "acdex",
		Short: "Aircraft catalog query engine",
		Long: `acdex resolves aircraft queries such as "b744[1sf]", "id:12" or
"name:A380-800" against an in-memory catalog and suggests near matches.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	opts.bindFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newSuggestCmd(opts),
		newExportCmd(opts),
		newSeedCmd(opts),
	)
	return root
}

func (o *rootOptions) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.env, "env", config.GetEnv(), "environment name, selects config/<env>.yaml")
	fs.StringVar(&o.configPath, "config", "", "explicit config file (overrides --env lookup)")
	fs.StringVar(&o.catalog, "catalog", "", "catalog file (.yaml, .json, .msgpack, .msgpack.zst); overrides catalog.source")
}
