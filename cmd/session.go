/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacobarthurs/pgroomba/internal/db"
	"github.com/jacobarthurs/pgroomba/internal/logging"
	"github.com/jacobarthurs/pgroomba/internal/planner"
	"github.com/jacobarthurs/pgroomba/internal/profile"
	"github.com/jacobarthurs/pgroomba/internal/stats"
)

type missingCredentialsError struct {
	missing []string
}

func (e *missingCredentialsError) Error() string {
	return "missing connection settings: " + strings.Join(e.missing, ", ")
}

// session is the single database connection and stats cache shared by one
// command invocation.
type session struct {
	db     *sql.DB
	stats  *stats.Provider
	logger *zap.Logger
}

func (s *session) Close() {
	_ = s.db.Close()
	_ = s.logger.Sync()
}

func addConnectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("db", "d", "", "PostgreSQL connection string")
	cmd.Flags().StringP("profile", "P", "", "Use named profile from config")
	cmd.Flags().StringP("host", "H", "", "Database host (host or host:port)")
	cmd.Flags().StringP("database", "s", "", "Database name")
	cmd.Flags().StringP("user", "u", "", "Database user")
	cmd.Flags().StringP("password", "p", "", "Database password")
	cmd.MarkFlagsMutuallyExclusive("db", "profile")
}

func newLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.New(os.Stderr, verbose)
}

func openSession(cmd *cobra.Command) (*session, error) {
	connStr, err := resolveConnStr(cmd)
	if err != nil {
		var mce *missingCredentialsError
		if errors.As(err, &mce) {
			for _, m := range mce.missing {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is not defined.\n", m)
			}
			_ = cmd.Usage()
		}
		return nil, err
	}

	logger := newLogger(cmd)
	conn, err := db.Open(cmd.Context(), connStr)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &session{
		db:     conn,
		stats:  stats.NewProvider(conn, logger),
		logger: logger,
	}, nil
}

func resolveConnStr(cmd *cobra.Command) (string, error) {
	dbFlag, _ := cmd.Flags().GetString("db")
	profileName, _ := cmd.Flags().GetString("profile")

	var creds db.Credentials
	creds.Host, _ = cmd.Flags().GetString("host")
	creds.Database, _ = cmd.Flags().GetString("database")
	creds.User, _ = cmd.Flags().GetString("user")
	creds.Password, _ = cmd.Flags().GetString("password")

	if dbFlag == "" && profileName == "" && !creds.IsZero() {
		if missing := creds.Missing(); len(missing) > 0 {
			return "", &missingCredentialsError{missing: missing}
		}
		return creds.ConnString(), nil
	}

	connStr, err := profile.ResolveConnStr(dbFlag, profileName)
	if err != nil {
		return "", err
	}
	if connStr == "" {
		return "", &missingCredentialsError{missing: creds.Missing()}
	}
	return connStr, nil
}

// thresholdsOrDefault returns the sweep thresholds from the argument, the
// config file, or the built-in list.
func thresholdsOrDefault(arg string) ([]float64, error) {
	if arg != "" {
		return planner.ParseThresholds(arg)
	}
	configured, _, err := profile.Defaults()
	if err != nil {
		return nil, err
	}
	if len(configured) == 0 {
		return slices.Clone(planner.DefaultThresholds), nil
	}
	for _, th := range configured {
		if err := planner.CheckThreshold(th); err != nil {
			return nil, fmt.Errorf("config thresholds: %w", &planner.InvalidThresholdError{Input: fmt.Sprint(th), Reason: err.Error()})
		}
	}
	return configured, nil
}

func thresholdOrDefault(arg string) (float64, error) {
	if arg != "" {
		return planner.ParseThreshold(arg)
	}
	_, configured, err := profile.Defaults()
	if err != nil {
		return 0, err
	}
	if configured == nil {
		return planner.DefaultThreshold, nil
	}
	if err := planner.CheckThreshold(*configured); err != nil {
		return 0, fmt.Errorf("config threshold: %w", &planner.InvalidThresholdError{Input: fmt.Sprint(*configured), Reason: err.Error()})
	}
	return *configured, nil
}

func validateFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid output format %q: must be \"text\" or \"json\"", format)
	}
	return nil
}
