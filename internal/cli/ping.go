package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/r-ashe/pgasync/internal/db"
	"github.com/r-ashe/pgasync/internal/logging"
	"github.com/r-ashe/pgasync/pkg/pgasync"
)

var (
	pingConnFlags     connectionFlags
	pingDispatchFlags dispatchFlags
	pingTimeout       time.Duration
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check database connectivity through the dispatcher",
	Long: `Connects to the database and runs SELECT 1 as a dispatched blocking
closure, reporting round-trip latency. Failures are classified the same way
the library classifies them: checkout errors versus query errors.`,
	RunE: runPing,
}

func init() {
	registerConnectionFlags(pingCmd, &pingConnFlags)
	registerDispatchFlags(pingCmd, &pingDispatchFlags)
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 30*time.Second, "Overall timeout")
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	timeout, err := resolveTimeout(cmd, pingTimeout)
	if err != nil {
		return err
	}

	mode, maxWorkers, err := resolveDispatch(&pingDispatchFlags)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, closeConnector, err := connectPool(ctx, &pingConnFlags, verbose)
	if err != nil {
		fmt.Println(failStyle.Render("FAIL") + " " + err.Error())
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
	_, err = pgasync.Get(ctx, asyncPool, pgx.RowTo[int], "SELECT 1").Await(ctx)
	latency := time.Since(start)

	if err != nil {
		fmt.Println(failStyle.Render("FAIL") + " " + err.Error())
		return err
	}

	fmt.Println(okStyle.Render("OK") + dimStyle.Render(fmt.Sprintf(" %s (mode=%s)", latency.Round(time.Millisecond), mode)))
	return nil
}
