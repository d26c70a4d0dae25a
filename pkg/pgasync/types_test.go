package pgasync

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_String(t *testing.T) {
	assert.Equal(t, "worker", ModeWorker.String())
	assert.Equal(t, "inline", ModeInline.String())
	assert.Equal(t, "Unknown(7)", Mode(7).String())
}

func TestMode_IsValid(t *testing.T) {
	assert.True(t, ModeWorker.IsValid())
	assert.True(t, ModeInline.IsValid())
	assert.False(t, Mode(7).IsValid())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeWorker, false},
		{"worker", ModeWorker, false},
		{"inline", ModeInline, false},
		{"threaded", ModeWorker, true},
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestDispatchConfig_Validate(t *testing.T) {
	valid := DispatchConfig{MaxWorkers: 4, Mode: ModeWorker}
	assert.NoError(t, valid.Validate())

	zero := DispatchConfig{}
	assert.NoError(t, zero.Validate(), "zero value selects defaults and is valid")

	bad := DispatchConfig{MaxWorkers: -1, Mode: Mode(9)}
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	// Both failures are reported in one pass.
	assert.Contains(t, err.Error(), "MaxWorkers")
	assert.Contains(t, err.Error(), "dispatch mode")
}

func TestAuthMethod_String(t *testing.T) {
	assert.Equal(t, "Standard", AuthMethodStandard.String())
	assert.Equal(t, "AWS IAM", AuthMethodAWSIAM.String())
	assert.Equal(t, "Google IAM", AuthMethodGoogleIAM.String())
	assert.Equal(t, "Azure Entra ID", AuthMethodAzureEntraID.String())
	assert.Equal(t, "Unknown(42)", AuthMethod(42).String())
}

func TestConnectionConfig_Validate(t *testing.T) {
	base := ConnectionConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "app",
		Username: "app",
	}
	assert.NoError(t, base.Validate())

	t.Run("missing required fields", func(t *testing.T) {
		cfg := ConnectionConfig{Port: 70000, ConnectTimeout: -time.Second}
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
		assert.Contains(t, err.Error(), "Host is required")
		assert.Contains(t, err.Error(), "Database is required")
		assert.Contains(t, err.Error(), "out of range")
		assert.Contains(t, err.Error(), "ConnectTimeout")
	})

	t.Run("aws iam requires region", func(t *testing.T) {
		cfg := base
		cfg.AuthMethod = AuthMethodAWSIAM
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AWSRegion")

		cfg.AWSRegion = "eu-west-1"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("google iam requires instance", func(t *testing.T) {
		cfg := base
		cfg.AuthMethod = AuthMethodGoogleIAM
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GoogleInstance")

		cfg.GoogleInstance = "proj:region:instance"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("azure credentials are optional", func(t *testing.T) {
		cfg := base
		cfg.AuthMethod = AuthMethodAzureEntraID
		assert.NoError(t, cfg.Validate())
	})
}
