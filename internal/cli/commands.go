package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golobby/stmt"
)

type whereFlags struct {
	conditions []string
	or         bool
}

func (w *whereFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&w.conditions, "where", "w", nil, `condition such as "age>=30" or "deleted_at IS NULL" (repeatable)`)
	cmd.Flags().BoolVar(&w.or, "or", false, "join conditions with OR instead of AND")
}

func (w *whereFlags) apply(b *stmt.Builder) error {
	for i, raw := range w.conditions {
		c, err := parseCondition(raw)
		if err != nil {
			return err
		}
		if i > 0 {
			if w.or {
				b.Or()
			} else {
				b.And()
			}
		}
		b.WhereOp(c.column, c.op, c.value)
	}
	return nil
}

func newSelectCmd(r *runner) *cobra.Command {
	var (
		columns []string
		table   string
		limit   int
		offset  int
		where   whereFlags
	)
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Run a paginated SELECT",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, done, err := r.builder()
			if err != nil {
				return err
			}
			defer done()
			b.Select(columns...).From(table)
			if err := where.apply(b); err != nil {
				return err
			}
			b.Paginate(limit, offset)
			return r.finish(cmd.Context(), cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to select")
	cmd.Flags().StringVar(&table, "from", "", "table name")
	cmd.Flags().IntVar(&limit, "limit", stmt.DefaultLimit, "maximum number of rows")
	cmd.Flags().IntVar(&offset, "offset", stmt.DefaultOffset, "rows to skip")
	where.register(cmd)
	_ = cmd.MarkFlagRequired("columns")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newInsertCmd(r *runner) *cobra.Command {
	var (
		table     string
		columns   []string
		values    []string
		returning []string
	)
	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert one row",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, done, err := r.builder()
			if err != nil {
				return err
			}
			defer done()
			b.Insert(table, columns...).Values(values...)
			if len(returning) > 0 {
				b.Returns(returning...)
			}
			return r.finish(cmd.Context(), cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().StringVar(&table, "into", "", "table name")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to insert")
	cmd.Flags().StringSliceVar(&values, "values", nil, "one value per column")
	cmd.Flags().StringSliceVar(&returning, "returning", nil, "columns to return, * for all")
	_ = cmd.MarkFlagRequired("into")
	_ = cmd.MarkFlagRequired("columns")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func newUpdateCmd(r *runner) *cobra.Command {
	var (
		table       string
		assignments []string
		returning   []string
		where       whereFlags
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update rows matching the conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, done, err := r.builder()
			if err != nil {
				return err
			}
			defer done()
			b.Update(table)
			for _, raw := range assignments {
				column, value, err := parseAssignment(raw)
				if err != nil {
					return err
				}
				b.Set(column, value)
			}
			if err := where.apply(b); err != nil {
				return err
			}
			if len(returning) > 0 {
				b.Returns(returning...)
			}
			return r.finish(cmd.Context(), cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "table name")
	cmd.Flags().StringArrayVarP(&assignments, "set", "s", nil, `assignment such as "email=a@b.c" (repeatable)`)
	cmd.Flags().StringSliceVar(&returning, "returning", nil, "columns to return, * for all")
	where.register(cmd)
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

func newDeleteCmd(r *runner) *cobra.Command {
	var (
		table     string
		returning []string
		where     whereFlags
	)
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete rows matching the conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, done, err := r.builder()
			if err != nil {
				return err
			}
			defer done()
			b.Delete(table)
			if err := where.apply(b); err != nil {
				return err
			}
			if len(returning) > 0 {
				b.Returns(returning...)
			}
			return r.finish(cmd.Context(), cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().StringVar(&table, "from", "", "table name")
	cmd.Flags().StringSliceVar(&returning, "returning", nil, "columns to return, * for all")
	where.register(cmd)
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newRawCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "raw STATEMENT",
		Short: "Check and run a hand written statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.load(); err != nil {
				return err
			}
			if r.flags.dryRun {
				if err := r.cfg.Policy().CheckText(args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), args[0])
				return nil
			}
			conf, err := r.cfg.ConnectionConfig()
			if err != nil {
				return err
			}
			db, err := r.connect(conf)
			if err != nil {
				return err
			}
			defer db.Close()
			records, err := db.Raw(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}
}
