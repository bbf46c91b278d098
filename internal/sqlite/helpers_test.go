package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mesh-intelligence/themes/pkg/types"
)

// TestMain fails the package if a test leaves a snapshot attached.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testConfig returns a valid config pointing at a snapshot in a temp dir.
func testConfig(t *testing.T) types.Config {
	t.Helper()
	cfg := types.DefaultConfig()
	cfg.Database = filepath.Join(t.TempDir(), "snapshots", "pretalx.db")
	return cfg
}

// newSeededSnapshot creates a snapshot with the default catalog seeded and
// registers Detach as cleanup.
func newSeededSnapshot(t *testing.T) (*Snapshot, types.Config) {
	t.Helper()
	ctx := context.Background()
	cfg := testConfig(t)

	s := NewSnapshot()
	require.NoError(t, s.Create(ctx, cfg))
	t.Cleanup(func() { _ = s.Detach() })

	require.NoError(t, s.SeedCatalog(ctx, cfg.Catalog, cfg.Query.ThemeQuestionID))
	return s, cfg
}

func addSubmissions(t *testing.T, s *Snapshot, subs ...Submission) {
	t.Helper()
	for _, sub := range subs {
		if sub.State == "" {
			sub.State = "confirmed"
		}
		if sub.QuestionID == 0 {
			sub.QuestionID = types.DefaultThemeQuestionID
		}
		require.NoError(t, s.AddSubmission(context.Background(), sub))
	}
}
