package cli

import (
	"fmt"
	"os"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/r-ashe/pgasync/pkg/pgasync"
)

// connectionFlags holds the common connection-related flag values.
type connectionFlags struct {
	host           string
	port           int
	username       string
	database       string
	sslMode        string
	maxConns       int32
	aws            bool
	awsRegion      string
	google         bool
	googleInstance string
	azure          bool
	azureTenantID  string
	azureClientID  string
}

// dispatchFlags holds the dispatcher-related flag values.
type dispatchFlags struct {
	maxWorkers int
	mode       string
}

// registerConnectionFlags wires the shared connection flags onto a command.
func registerConnectionFlags(cmd *cobra.Command, flags *connectionFlags) {
	cmd.Flags().StringVar(&flags.host, "host", "", "Database host (default $PGHOST or localhost)")
	cmd.Flags().IntVar(&flags.port, "port", 0, "Database port (default $PGPORT or 5432)")
	cmd.Flags().StringVarP(&flags.username, "username", "U", "", "Database user (default $PGUSER)")
	cmd.Flags().StringVarP(&flags.database, "database", "d", "", "Database name (default $PGDATABASE)")
	cmd.Flags().StringVar(&flags.sslMode, "sslmode", "", "SSL mode (disable, require, verify-ca, verify-full)")
	cmd.Flags().Int32Var(&flags.maxConns, "max-conns", 0, "Connection pool size (default matches --max-workers)")
	cmd.Flags().BoolVar(&flags.aws, "aws", false, "Use AWS RDS IAM authentication")
	cmd.Flags().StringVar(&flags.awsRegion, "aws-region", "", "AWS region for IAM authentication")
	cmd.Flags().BoolVar(&flags.google, "google", false, "Use Google Cloud SQL IAM authentication")
	cmd.Flags().StringVar(&flags.googleInstance, "google-instance", "", "Cloud SQL instance (project:region:instance)")
	cmd.Flags().BoolVar(&flags.azure, "azure", false, "Use Azure Entra ID authentication")
	cmd.Flags().StringVar(&flags.azureTenantID, "azure-tenant-id", "", "Azure tenant ID for Service Principal auth")
	cmd.Flags().StringVar(&flags.azureClientID, "azure-client-id", "", "Azure client ID for Service Principal auth")
}

// registerDispatchFlags wires the dispatcher flags onto a command.
func registerDispatchFlags(cmd *cobra.Command, flags *dispatchFlags) {
	cmd.Flags().IntVar(&flags.maxWorkers, "max-workers", 0, "Concurrent blocking slots (default from pgasync.yaml, then 8)")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "Dispatch mode: worker or inline (default from pgasync.yaml, then worker)")
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveConnection builds a ConnectionConfig with precedence:
// flags > environment > pgasync.yaml > defaults.
// A .env file in the working directory is loaded first, matching the
// behavior of other PostgreSQL tooling.
func resolveConnection(flags *connectionFlags, verbose bool) (*pgasync.ConnectionConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := loadProjectConfig()
	if err != nil {
		return nil, err
	}

	host := firstNonEmpty(flags.host, os.Getenv("PGHOST"), projectCfg.Connection.Host, "localhost")

	port := flags.port
	if port == 0 {
		if envPort := os.Getenv("PGPORT"); envPort != "" {
			p, err := strconv.Atoi(envPort)
			if err != nil {
				return nil, fmt.Errorf("invalid $PGPORT %q: %w", envPort, pgasync.ErrInvalidConfig)
			}
			port = p
		} else if projectCfg.Connection.Port != 0 {
			port = projectCfg.Connection.Port
		} else {
			port = 5432
		}
	}

	cfg := &pgasync.ConnectionConfig{
		Host:           host,
		Port:           port,
		Username:       firstNonEmpty(flags.username, os.Getenv("PGUSER"), projectCfg.Connection.Username),
		Database:       firstNonEmpty(flags.database, os.Getenv("PGDATABASE"), projectCfg.Connection.Database),
		Password:       os.Getenv("PGPASSWORD"),
		SSLMode:        firstNonEmpty(flags.sslMode, os.Getenv("PGSSLMODE"), projectCfg.Connection.SSLMode),
		AppName:        firstNonEmpty(projectCfg.Connection.AppName, "pgasync"),
		ConnectTimeout: pgasync.DefaultConnectTimeout,
		MaxConns:       flags.maxConns,
		AWSRegion:      firstNonEmpty(flags.awsRegion, os.Getenv("AWS_REGION"), projectCfg.Connection.AWSRegion),
		GoogleInstance: firstNonEmpty(flags.googleInstance, projectCfg.Connection.GoogleInstance),
		AzureTenantID:  firstNonEmpty(flags.azureTenantID, projectCfg.Connection.AzureTenantID),
		AzureClientID:  firstNonEmpty(flags.azureClientID, projectCfg.Connection.AzureClientID),
	}
	if cfg.MaxConns == 0 {
		cfg.MaxConns = projectCfg.Connection.MaxConns
	}
	cfg.AzureClientSecret = os.Getenv("AZURE_CLIENT_SECRET")

	switch {
	case flags.aws || projectCfg.Connection.AuthMethod == "aws-iam":
		cfg.AuthMethod = pgasync.AuthMethodAWSIAM
	case flags.google || projectCfg.Connection.AuthMethod == "google-iam":
		cfg.AuthMethod = pgasync.AuthMethodGoogleIAM
	case flags.azure || projectCfg.Connection.AuthMethod == "azure-entra-id":
		cfg.AuthMethod = pgasync.AuthMethodAzureEntraID
	default:
		cfg.AuthMethod = pgasync.AuthMethodStandard
	}

	if cfg.AuthMethod == pgasync.AuthMethodStandard && cfg.Password == "" {
		password, err := promptPassword(cfg)
		if err != nil {
			return nil, err
		}
		cfg.Password = password
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Connecting to %s:%d/%s as %q (%s)\n",
			cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.AuthMethod)
	}

	return cfg, nil
}

// promptPassword reads a password from the terminal when stdin is
// interactive. Non-interactive invocations proceed without a password and
// rely on .pgpass or trust authentication.
func promptPassword(cfg *pgasync.ConnectionConfig) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", nil
	}

	fmt.Fprintf(os.Stderr, "Password for %s@%s: ", cfg.Username, cfg.Host)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
