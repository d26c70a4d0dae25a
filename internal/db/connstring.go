package db

import (
	"fmt"
	"sort"
	"strings"

	"github.com/r-ashe/pgasync/pkg/pgasync"
)

// BuildConnectionString renders a ConnectionConfig as a keyword/value
// PostgreSQL connection string understood by pgxpool.ParseConfig.
// Values are quoted so passwords containing spaces or quotes survive.
func BuildConnectionString(cfg *pgasync.ConnectionConfig) string {
	var parts []string

	add := func(key, value string) {
		if value == "" {
			return
		}
		parts = append(parts, fmt.Sprintf("%s=%s", key, quoteConnValue(value)))
	}

	add("host", cfg.Host)
	if cfg.Port > 0 {
		parts = append(parts, fmt.Sprintf("port=%d", cfg.Port))
	}
	add("dbname", cfg.Database)
	add("user", cfg.Username)
	add("password", cfg.Password)
	add("sslmode", cfg.SSLMode)
	add("application_name", cfg.AppName)
	if cfg.ConnectTimeout > 0 {
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", int(cfg.ConnectTimeout.Seconds())))
	}

	// Deterministic order for the free-form parameters
	keys := make([]string, 0, len(cfg.AdditionalParams))
	for k := range cfg.AdditionalParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		add(k, cfg.AdditionalParams[k])
	}

	return strings.Join(parts, " ")
}

// quoteConnValue quotes a connection string value per libpq rules:
// values containing spaces, quotes, or backslashes are wrapped in single
// quotes with internal quotes and backslashes escaped.
func quoteConnValue(value string) string {
	if !strings.ContainsAny(value, " '\\") {
		return value
	}
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "'" + escaped + "'"
}
