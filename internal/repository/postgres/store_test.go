package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

func TestNewStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := NewStore(ctx, "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1")
	assert.ErrorContains(t, err, "pinging database")
}

// Runs against a real database when TEST_RESULTS_DSN is set.
func TestStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_RESULTS_DSN")
	if dsn == "" {
		t.Skip("TEST_RESULTS_DSN not set")
	}
	ctx := context.Background()
	s, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Migrate(ctx))

	at := time.Now().UTC().Truncate(time.Second)
	good := accuracy.NewAccuracyConfigPerformance(params.Week1To5, params.ScoringConfig{ConfigName: "good"},
		accuracy.AccuracyResult{MAE: 1.25, PlayerCount: 10, TotalError: 12.5}, nil, at)
	empty := accuracy.NewAccuracyConfigPerformance(params.Week1To5, params.ScoringConfig{ConfigName: "empty"},
		accuracy.AccuracyResult{}, nil, at)
	require.NoError(t, s.RecordResult(ctx, good))
	require.NoError(t, s.RecordResult(ctx, good))
	require.NoError(t, s.RecordResult(ctx, empty))

	rows, err := s.BestResults(ctx, params.Week1To5, 100)
	require.NoError(t, err)
	var found bool
	for _, r := range rows {
		assert.NotEqual(t, empty.ID, r.ID, "zero-player results are excluded")
		if r.ID == good.ID {
			found = true
			assert.Equal(t, 1.25, r.MAE)
		}
	}
	assert.True(t, found)
}
