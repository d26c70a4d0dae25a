package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/r-ashe/pgasync/internal/db"
	"github.com/r-ashe/pgasync/internal/logging"
	"github.com/r-ashe/pgasync/pkg/pgasync"
)

var (
	execConnFlags     connectionFlags
	execDispatchFlags dispatchFlags
	execFile          string
	execCommand       string
	execTimeout       time.Duration
)

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "Run SQL through the blocking dispatcher",
	Long: `Reads SQL from a file (-f) or the command line (-c) and executes it as a
single dispatched batch on one checked-out connection. Multi-statement
scripts run sequentially; the reported tag is that of the last statement.`,
	RunE: runExec,
}

func init() {
	registerConnectionFlags(execCmd, &execConnFlags)
	registerDispatchFlags(execCmd, &execDispatchFlags)
	execCmd.Flags().StringVarP(&execFile, "file", "f", "", "SQL file to execute")
	execCmd.Flags().StringVarP(&execCommand, "command", "c", "", "SQL string to execute")
	execCmd.Flags().DurationVar(&execTimeout, "timeout", 5*time.Minute, "Overall timeout")
	rootCmd.AddCommand(execCmd)
}

// loadSQL returns the SQL text from -f or -c, rejecting ambiguous usage.
func loadSQL() (string, error) {
	switch {
	case execFile != "" && execCommand != "":
		return "", fmt.Errorf("-f and -c are mutually exclusive: %w", pgasync.ErrInvalidConfig)
	case execFile != "":
		data, err := os.ReadFile(execFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", execFile, err)
		}
		return string(data), nil
	case execCommand != "":
		return execCommand, nil
	default:
		return "", fmt.Errorf("provide SQL via -f or -c: %w", pgasync.ErrInvalidConfig)
	}
}

func runExec(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	sql, err := loadSQL()
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(cmd, execTimeout)
	if err != nil {
		return err
	}

	mode, maxWorkers, err := resolveDispatch(&execDispatchFlags)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, closeConnector, err := connectPool(ctx, &execConnFlags, verbose)
	if err != nil {
		return err
	}
	defer closeConnector()
	defer pool.Close()

	asyncPool, err := pgasync.New(db.NewPoolAdapter(pool),
		pgasync.WithMode(mode),
		pgasync.WithMaxWorkers(maxWorkers),
		pgasync.WithLogger(logging.NewConsoleLogger(verbose)),
	)
	if err != nil {
		return err
	}
	defer asyncPool.Close()

	start := time.Now()
	tag, err := asyncPool.BatchExec(ctx, sql).Await(ctx)
	elapsed := time.Since(start)

	if err != nil {
		label := "query failed"
		if errors.Is(err, pgasync.ErrCheckout) {
			label = "checkout failed"
		}
		fmt.Println(failStyle.Render(label) + " " + dimStyle.Render(elapsed.Round(time.Millisecond).String()))
		return err
	}

	fmt.Println(okStyle.Render(tag.String()) + dimStyle.Render(fmt.Sprintf(" %s (mode=%s)", elapsed.Round(time.Millisecond), mode)))
	return nil
}
