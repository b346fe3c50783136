package database

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNQuotesSpecialValues(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.example.supabase.co",
		Port:     5432,
		User:     "postgres",
		Password: "it's a secret",
		Database: "postgres",
	}

	dsn := cfg.DSN()
	assert.Equal(t, `host=db.example.supabase.co port=5432 user=postgres password='it\'s a secret' dbname=postgres sslmode=require`, dsn)

	_, err := pq.NewConnector(dsn)
	require.NoError(t, err)
}

func TestDSNKeepsExplicitSSLMode(t *testing.T) {
	cfg := PostgresConfig{Host: "localhost", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
}

func TestQuoteDSNValueEmpty(t *testing.T) {
	assert.Equal(t, "''", quoteDSNValue(""))
}
