package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/reciters/internal/cache"
	"github.com/deppfellow/reciters/internal/query"
	"github.com/deppfellow/reciters/internal/query/querytest"
	"github.com/deppfellow/reciters/internal/repository"
	"github.com/deppfellow/reciters/internal/service"
)

func newServices(client *querytest.Client) *service.Services {
	logger := zerolog.Nop()
	return service.NewServices(&logger, repository.NewRepositories(client), cache.New(), service.Propagate)
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123")
	t.Cleanup(func() { SetVersionInfo("dev", "none") })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "reciters 1.2.3 (commit: abc123)\n", out.String())
}

func TestWriteStats(t *testing.T) {
	now := time.Now()
	client := querytest.New().Serial("results", "no")
	client.Seed("reciters",
		query.Row{"id": int64(1), "name": "a", "category": "Hafs", "created_at": now},
		query.Row{"id": int64(2), "name": "b", "category": "Hafs", "created_at": now.Add(-30 * 24 * time.Hour)},
	)
	client.Seed("results",
		query.Row{"no": int64(1), "name": "x", "category": "junior", "grade": 90.0, "created_at": now},
		query.Row{"no": int64(2), "name": "y", "category": "senior", "grade": 71.0, "created_at": now},
	)

	var out bytes.Buffer
	require.NoError(t, writeStats(context.Background(), &out, newServices(client)))

	var report statsReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, int64(2), report.Registration.TotalReciters)
	assert.Equal(t, int64(1), report.Registration.RecentRegistrations)
	assert.Equal(t, map[string]int64{"Hafs": 2}, report.Registration.CategoriesCount)
	assert.Equal(t, 2, report.Results.TotalStudents)
	assert.Equal(t, 81, report.Results.AverageGrade)
	assert.Equal(t, 90.0, report.Results.TopGrade)
}

func TestWriteStats_Failure(t *testing.T) {
	client := querytest.New()
	client.FailOn("results", errors.New("relation \"results\" does not exist"))

	var out bytes.Buffer
	err := writeStats(context.Background(), &out, newServices(client))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading results stats")
	assert.Empty(t, out.String())
}
