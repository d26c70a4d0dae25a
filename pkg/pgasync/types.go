package pgasync

import (
	"errors"
	"fmt"
	"time"
)

// Mode selects the blocking strategy for dispatched closures.
type Mode int

const (
	// ModeWorker runs each closure on its own goroutine, gated by the
	// dispatcher's bounded blocking slots. The future resolves when the
	// worker finishes. This is the default.
	ModeWorker Mode = iota

	// ModeInline runs the closure on the calling goroutine; dispatch
	// returns an already-resolved future. Trades caller-side blocking for
	// the guarantee that the closure never outlives the call, so it may
	// safely capture caller-scoped resources that must not be shared with
	// another goroutine.
	ModeInline
)

// String returns a human-readable string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeWorker:
		return "worker"
	case ModeInline:
		return "inline"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// IsValid returns true if the Mode is a valid, defined value.
func (m Mode) IsValid() bool {
	return m == ModeWorker || m == ModeInline
}

// ParseMode converts a configuration string ("worker", "inline") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "worker":
		return ModeWorker, nil
	case "inline":
		return ModeInline, nil
	default:
		return ModeWorker, fmt.Errorf("unknown dispatch mode %q: %w", s, ErrInvalidConfig)
	}
}

// DispatchConfig controls Dispatcher behavior.
type DispatchConfig struct {
	// MaxWorkers is the number of concurrent blocking slots in ModeWorker.
	// Zero selects DefaultMaxWorkers. Ignored in ModeInline.
	MaxWorkers int

	// Mode selects the blocking strategy.
	Mode Mode

	// Logger receives per-job diagnostics. Nil selects a no-op logger.
	Logger Logger
}

// Validate checks if the DispatchConfig has valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *DispatchConfig) Validate() error {
	var errs []error

	if c.MaxWorkers < 0 {
		errs = append(errs, fmt.Errorf("MaxWorkers cannot be negative: %w", ErrInvalidConfig))
	}

	if !c.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("invalid dispatch mode %v: %w", c.Mode, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// AuthMethod represents the type of authentication to use when a connector
// builds the pool.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ConnectionConfig represents connection parameters consumed by connectors.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// MaxConns caps the pool size. Zero lets the connector choose a
	// default sized to the dispatcher's blocking slots.
	MaxConns int32

	// AWS IAM authentication parameters (AuthMethodAWSIAM)
	AWSRegion string

	// Google Cloud SQL instance connection name, project:region:instance
	// (AuthMethodGoogleIAM)
	GoogleInstance string

	// Azure Entra ID authentication parameters (AuthMethodAzureEntraID).
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, the DefaultAzureCredential chain is used.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// Validate checks if the ConnectionConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.Host == "" {
		errs = append(errs, fmt.Errorf("Host is required: %w", ErrInvalidConfig))
	}

	if c.Database == "" {
		errs = append(errs, fmt.Errorf("Database is required: %w", ErrInvalidConfig))
	}

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("Port %d is out of range: %w", c.Port, ErrInvalidConfig))
	}

	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("invalid auth method %v: %w", c.AuthMethod, ErrInvalidConfig))
	}

	if c.ConnectTimeout < 0 {
		errs = append(errs, fmt.Errorf("ConnectTimeout cannot be negative: %w", ErrInvalidConfig))
	}

	switch c.AuthMethod {
	case AuthMethodAWSIAM:
		if c.AWSRegion == "" {
			errs = append(errs, fmt.Errorf("AWS IAM auth requires AWSRegion: %w", ErrInvalidConfig))
		}
	case AuthMethodGoogleIAM:
		if c.GoogleInstance == "" {
			errs = append(errs, fmt.Errorf("Google IAM auth requires GoogleInstance: %w", ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}
