package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"numkit/adapters/excel"
	"numkit/domain/arithmetic"
	"numkit/domain/complexnum"
	"numkit/domain/core"
	"numkit/domain/geometry"
	"numkit/domain/stats"
	"numkit/internal/config"
	"numkit/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli carries the container shared by every subcommand
type cli struct {
	out       io.Writer
	container *container.Container
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	rootCmd := &cobra.Command{
		Use:           "numkit",
		Short:         "Descriptive statistics, integer arithmetic, complex numbers and geometry from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.container != nil {
				return c.container.Shutdown(context.Background())
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		c.newStatsCmd(),
		c.newArithCmd(),
		c.newGeomCmd(),
		c.newComplexCmd(),
		c.newHistoryCmd(),
	)
	return rootCmd
}

func (c *cli) init(ctx context.Context) error {
	if c.container != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctr, err := container.New(cfg)
	if err != nil {
		return err
	}
	if err := ctr.Init(ctx); err != nil {
		return err
	}
	c.container = ctr
	return nil
}

func (c *cli) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <operation|summary> <values...>",
		Short: "Compute a statistic of integer values",
		Long: `Compute a statistic of integer values.

Operations: mean, median, variance, stddev, range, iqr, summary.

Example: numkit stats stddev 2 4 4 4 5 5 7 9`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := parseSample(args[1:])
			if err != nil {
				return err
			}
			calc := c.container.Calculator
			if args[0] == "summary" {
				result, err := calc.Summarize(cmd.Context(), "", sample)
				if err != nil {
					return err
				}
				return c.printJSON(result)
			}
			op, err := stats.ParseOperation(args[0])
			if err != nil {
				return err
			}
			result, err := calc.Statistic(cmd.Context(), op, sample)
			if err != nil {
				return err
			}
			return c.printJSON(result)
		},
	}
	// values such as -3 are operands, not shorthand flags
	cmd.Flags().SetInterspersed(false)
	cmd.AddCommand(c.newColumnsCmd())
	return cmd
}

func (c *cli) newColumnsCmd() *cobra.Command {
	var sheet string
	var columns []string

	cmd := &cobra.Command{
		Use:   "columns [file.xlsx|file.csv]",
		Short: "Summarize spreadsheet columns",
		Long: `Summarize integer columns of a spreadsheet. The first row holds the
column names. Without --column every column is summarized. Without a file
argument EXCEL_FILE is used.

Example: numkit stats columns visits.xlsx --sheet Data --column visits --column orders`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := excel.DefaultExcelConfig()
			cfg.FilePath = c.container.Config.Data.ExcelFile
			cfg.Sheet = c.container.Config.Data.ExcelSheet
			if len(args) == 1 {
				cfg.FilePath = args[0]
			}
			if sheet != "" {
				cfg.Sheet = sheet
			}
			if cfg.FilePath == "" {
				return core.NewInvalidArgumentError("no file given and EXCEL_FILE is not set")
			}
			cfg.Columns = columns

			data, err := excel.NewDataReaderFromConfig(cfg).ReadColumns(cfg.Columns...)
			if err != nil {
				return err
			}
			summaries, err := c.container.Calculator.SummarizeColumns(cmd.Context(), data)
			if err != nil {
				return err
			}
			return c.printJSON(map[string]interface{}{"file": cfg.FilePath, "columns": summaries})
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default EXCEL_SHEET or Sheet1)")
	cmd.Flags().StringArrayVar(&columns, "column", nil, "Column to summarize (repeatable)")
	return cmd
}

func (c *cli) newArithCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arith <operation> <a> [b]",
		Short: "Integer arithmetic",
		Long: `Integer arithmetic.

Operations: add, subtract, multiply, divide, power, gcd, lcm take two integers.
factorial and prime take one.

Example: numkit arith divide 6 4`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseInt64(args[1])
			if err != nil {
				return err
			}

			if args[0] == "prime" {
				return c.printJSON(map[string]interface{}{"n": a, "prime": arithmetic.IsPrime(a)})
			}

			op, err := arithmetic.ParseOperation(args[0])
			if err != nil {
				return err
			}
			var b int64
			switch {
			case op == arithmetic.OperationFactorial:
				if len(args) != 2 {
					return core.NewInvalidArgumentError("factorial takes one integer")
				}
			case len(args) != 3:
				return core.NewInvalidArgumentError("%s takes two integers", op)
			default:
				if b, err = parseInt64(args[2]); err != nil {
					return err
				}
			}

			result, err := c.container.Calculator.Arithmetic(cmd.Context(), op, a, b)
			if err != nil {
				return err
			}
			return c.printJSON(result)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (c *cli) newGeomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geom <measure> <args...>",
		Short: "Geometry measures",
		Long: `Geometry measures.

Measures: circle_area, circle_perimeter, rectangle_area, rectangle_perimeter,
triangle_area, triangle_area_sides, distance, sphere_volume, cylinder_volume,
polygon_area (x1 y1 x2 y2 ...).

Example: numkit geom distance 0 0 3 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := geometry.ParseMeasure(args[0])
			if err != nil {
				return err
			}
			values, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			result, err := c.container.Calculator.Geometry(cmd.Context(), m, values)
			if err != nil {
				return err
			}
			return c.printJSON(map[string]interface{}{
				"computation_id": result.ComputationID,
				"measure":        result.Operation,
				"value":          result.Value,
			})
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (c *cli) newComplexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complex <operation> <args...>",
		Short: "Complex number operations",
		Long: `Complex number operations. Numbers are given as real and imaginary parts.

Operations: add, subtract, multiply, divide (re1 im1 re2 im2);
magnitude, phase, conjugate, to_polar (re im); from_polar (magnitude phase).

Example: numkit complex multiply 2 3 4 -1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := complexnum.ParseOperation(args[0])
			if err != nil {
				return err
			}
			values, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			result, err := c.container.Calculator.Complex(cmd.Context(), op, values)
			if err != nil {
				return err
			}
			return c.printJSON(result)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (c *cli) newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent computations",
		Long: `List recent computations, newest first. History persists between runs
only when DATABASE_URL is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			computations, err := c.container.Calculator.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return c.printJSON(map[string]interface{}{
				"computations": computations,
				"count":        len(computations),
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum computations to list (default HISTORY_LIMIT, max 100)")
	return cmd
}

func parseSample(args []string) (stats.Sample, error) {
	sample := make(stats.Sample, 0, len(args))
	for _, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, core.NewInvalidArgumentError("%q is not an integer", raw)
		}
		sample = append(sample, v)
	}
	return sample, nil
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, raw := range args {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, core.NewInvalidArgumentError("%q is not a number", raw)
		}
		values = append(values, v)
	}
	return values, nil
}

func parseInt64(raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, core.NewInvalidArgumentError("%q is not an integer", raw)
	}
	return v, nil
}
