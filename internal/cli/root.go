// Package cli implements the stmt command line tool.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/golobby/stmt"
	"github.com/golobby/stmt/internal/config"
)

type globalFlags struct {
	configPath string
	envFile    string
	dryRun     bool
}

// runner carries what every subcommand needs to build and run a statement.
type runner struct {
	flags *globalFlags
	cfg   *config.Config
	// connect is replaced in tests.
	connect func(stmt.ConnectionConfig) (*stmt.DB, error)
}

func (r *runner) load() error {
	cfg, err := config.Load(r.flags.configPath, r.flags.envFile)
	if err != nil {
		return err
	}
	r.cfg = cfg
	return nil
}

// builder returns a builder and a cleanup func. In dry-run mode no connection
// is opened.
func (r *runner) builder() (*stmt.Builder, func(), error) {
	if err := r.load(); err != nil {
		return nil, nil, err
	}
	conf, err := r.cfg.ConnectionConfig()
	if err != nil {
		return nil, nil, err
	}
	if r.flags.dryRun {
		b := stmt.New(nil, stmt.WithDialect(conf.Dialect), stmt.WithPolicy(conf.Policy), stmt.WithInterpolation(conf.Interpolate))
		return b, func() {}, nil
	}
	db, err := r.connect(conf)
	if err != nil {
		return nil, nil, err
	}
	return db.Builder(), func() { _ = db.Close() }, nil
}

// finish either prints the statement (dry-run) or executes it and renders the
// returned records.
func (r *runner) finish(ctx context.Context, out io.Writer, b *stmt.Builder) error {
	if err := b.Err(); err != nil {
		return err
	}
	if r.flags.dryRun {
		if err := b.Finalize(); err != nil {
			return err
		}
		tmpl, args := b.Template()
		fmt.Fprintln(out, b.SQL())
		fmt.Fprintln(out, tmpl)
		fmt.Fprintf(out, "args: %v\n", args)
		return nil
	}
	records, err := b.Execute(ctx)
	if err != nil {
		return err
	}
	renderRecords(out, records)
	return nil
}

func newRootCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stmt",
		Short:         "Build, check and run single-table SQL statements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&r.flags.configPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&r.flags.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().BoolVar(&r.flags.dryRun, "dry-run", false, "print the statement instead of executing it")

	cmd.AddCommand(
		newSelectCmd(r),
		newInsertCmd(r),
		newUpdateCmd(r),
		newDeleteCmd(r),
		newRawCmd(r),
	)
	return cmd
}

func newRunner() *runner {
	return &runner{flags: &globalFlags{}, connect: stmt.Connect}
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd(newRunner()).Execute()
}
