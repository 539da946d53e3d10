package paymentdetails_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/alovak/payment-details/paymentdetails"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

// TestPGRepository runs the store contract against postgres.
// Skips unless DB_DSN is provided and REPO_BACKEND=pg.
func TestPGRepository(t *testing.T) {
	if os.Getenv("REPO_BACKEND") != "pg" {
		t.Skip("REPO_BACKEND != pg; skipping DB integration test")
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set; skipping DB integration test")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping())

	ctx := context.Background()
	repo := paymentdetails.NewPGRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))
	// applying the schema twice is harmless
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err = db.ExecContext(ctx, `TRUNCATE payment_details`)
	require.NoError(t, err)

	exerciseRepository(t, repo)
}
