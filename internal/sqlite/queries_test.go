package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/themes/pkg/types"
)

func TestThemeRowsQuery(t *testing.T) {
	t.Run("default filters", func(t *testing.T) {
		query, args := themeRowsQuery(types.DefaultConfig().Query)
		assert.Contains(t, query, "submission_submission.state NOT IN (?, ?)")
		assert.Contains(t, query, "submission_submission.submission_type_id NOT IN (?)")
		assert.Equal(t, []any{3, "deleted", "withdrawn", 14}, args)
	})

	t.Run("no filters", func(t *testing.T) {
		query, args := themeRowsQuery(types.QueryConfig{ThemeQuestionID: 5})
		assert.NotContains(t, query, "NOT IN")
		assert.Equal(t, []any{5}, args)
	})
}

func TestThemeRows(t *testing.T) {
	ctx := context.Background()
	s, cfg := newSeededSnapshot(t)

	addSubmissions(t, s,
		Submission{ID: 20, Title: "Data lakes", TypeID: 3, Themes: []int{8, 7}},
		Submission{ID: 10, Title: "Neutrinos", TypeID: 13, Themes: []int{20}},
		Submission{ID: 30, Title: "Withdrawn", TypeID: 3, State: "withdrawn", Themes: []int{7}},
		Submission{ID: 40, Title: "Deleted", TypeID: 3, State: "deleted", Themes: []int{7}},
		Submission{ID: 50, Title: "Tutorial", TypeID: types.DefaultTutorialType, Themes: []int{9}},
		Submission{ID: 60, Title: "Other question", TypeID: 3, QuestionID: 12, Themes: []int{7}},
		Submission{ID: 70, Title: "No answer", TypeID: 3},
	)

	rows, err := s.ThemeRows(ctx, cfg.Query)
	require.NoError(t, err)
	assert.Equal(t, []types.Row{
		{AbstractID: 10, Title: "Neutrinos", TypeID: 13, ThemeID: 20},
		{AbstractID: 20, Title: "Data lakes", TypeID: 3, ThemeID: 7},
		{AbstractID: 20, Title: "Data lakes", TypeID: 3, ThemeID: 8},
	}, rows)
}

func TestThemeRowsEmptySnapshot(t *testing.T) {
	s, cfg := newSeededSnapshot(t)

	rows, err := s.ThemeRows(context.Background(), cfg.Query)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAssignPaperIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newSeededSnapshot(t)
	addSubmissions(t, s,
		Submission{ID: 1, Title: "First", TypeID: 3, Themes: []int{7}},
		Submission{ID: 2, Title: "Second", TypeID: 13, Themes: []int{8}},
	)

	n, err := s.AssignPaperIDs(ctx, []types.PaperID{
		{AbstractID: 1, Title: "First", PID: "O1-1"},
		{AbstractID: 2, PID: "P2-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.PaperIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "O1-1", 2: "P2-2"}, got)
}

func TestAssignPaperIDsIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name string
		pids []types.PaperID
	}{
		{
			name: "unknown submission",
			pids: []types.PaperID{
				{AbstractID: 1, PID: "O1-1"},
				{AbstractID: 99, PID: "O1-99"},
			},
		},
		{
			name: "title mismatch",
			pids: []types.PaperID{
				{AbstractID: 1, PID: "O1-1"},
				{AbstractID: 2, Title: "Renamed", PID: "P2-2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, _ := newSeededSnapshot(t)
			addSubmissions(t, s,
				Submission{ID: 1, Title: "First", TypeID: 3, Themes: []int{7}},
				Submission{ID: 2, Title: "Second", TypeID: 13, Themes: []int{8}},
			)

			_, err := s.AssignPaperIDs(ctx, tt.pids)
			require.ErrorIs(t, err, types.ErrDataConsistency)

			got, err := s.PaperIDs(ctx)
			require.NoError(t, err)
			assert.Empty(t, got, "nothing should be written")
		})
	}
}
