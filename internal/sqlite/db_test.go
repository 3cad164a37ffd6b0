package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seldt/wellspring/internal/sqlite"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.RunMigrations())
	require.NoError(t, db.RunMigrations())
}

func TestNew_OpensConnection(t *testing.T) {
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping())
}
