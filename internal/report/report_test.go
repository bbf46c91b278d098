package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/themes/pkg/types"
)

var testCatalog = types.Catalog{
	Themes: []types.ThemeEntry{
		{ID: 7, Label: "Science Platforms"},
		{ID: 27, Label: "Other"},
	},
	Types: []types.SubmissionType{
		{ID: 3, Name: "Talk", Prefix: "O"},
		{ID: 13, Name: "Poster", Prefix: "P"},
	},
}

var testAbstracts = []types.Abstract{
	{ID: 42, Title: "Serving petabytes", TypeID: 3, Candidates: []int{7}},
	{ID: 7, Title: "A poster", TypeID: 13, Candidates: []int{7, 27}},
	{ID: 108, Title: "Misc", TypeID: 13, Candidates: []int{27}},
}

var testAssignment = types.Assignment{Themes: []types.Theme{
	{ID: 7, Label: "Science Platforms", Members: []int{42, 7}},
	{ID: 27, Label: "Other", Members: []int{108}},
}}

func TestBuild(t *testing.T) {
	r, err := Build(testAssignment, testAbstracts, testCatalog)
	require.NoError(t, err)

	require.Len(t, r.Sections, 2)
	assert.Equal(t, 1, r.Sections[0].Index)
	assert.Equal(t, 2, r.Sections[1].Index)
	assert.Equal(t, 27, r.Sections[1].ThemeID)
	assert.Equal(t, 3, r.Len())

	assert.Equal(t, []Entry{
		{AbstractID: 42, Title: "Serving petabytes", PaperID: "O1-42"},
		{AbstractID: 7, Title: "A poster", PaperID: "P1-7"},
	}, r.Sections[0].Entries)
	assert.Equal(t, "P2-108", r.Sections[1].Entries[0].PaperID)
}

func TestBuildErrors(t *testing.T) {
	t.Run("unknown submission type", func(t *testing.T) {
		abstracts := []types.Abstract{{ID: 9, Title: "Tutorial", TypeID: 14, Candidates: []int{7}}}
		a := types.Assignment{Themes: []types.Theme{{ID: 7, Members: []int{9}}}}

		_, err := Build(a, abstracts, testCatalog)
		var inputErr *types.InvalidInputError
		require.ErrorAs(t, err, &inputErr)
		assert.Equal(t, 9, inputErr.AbstractID)
	})

	for _, title := range []string{"Two\nlines", "Carriage\r\nreturn", "Trailing\n"} {
		t.Run("line break in title", func(t *testing.T) {
			abstracts := []types.Abstract{{ID: 11, Title: title, TypeID: 3, Candidates: []int{7}}}
			a := types.Assignment{Themes: []types.Theme{{ID: 7, Members: []int{11}}}}

			_, err := Build(a, abstracts, testCatalog)
			var inputErr *types.InvalidInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, 11, inputErr.AbstractID)
		})
	}

	t.Run("member without abstract", func(t *testing.T) {
		a := types.Assignment{Themes: []types.Theme{{ID: 7, Members: []int{1000}}}}
		_, err := Build(a, testAbstracts, testCatalog)
		require.True(t, errors.Is(err, types.ErrDataConsistency))
	})
}

func TestWriteText(t *testing.T) {
	r, err := Build(testAssignment, testAbstracts, testCatalog)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	want := `# ID, Title; PID
# Theme 1: Science Platforms
 42, "Serving petabytes"; O1-42
  7, "A poster"         ; P1-7
# Theme 2: Other
108, "Misc"             ; P2-108
`
	assert.Equal(t, want, buf.String())
}

func TestWriteTextEmptyTheme(t *testing.T) {
	r := Report{Sections: []Section{{Index: 1, ThemeID: 7, Label: "Empty"}}}

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	assert.Equal(t, "# ID, Title; PID\n# Theme 1: Empty\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	r, err := Build(testAssignment, testAbstracts, testCatalog)
	require.NoError(t, err)
	r.RunID = "run-1"

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])

	sections, ok := decoded["sections"].([]any)
	require.True(t, ok)
	require.Len(t, sections, 2)
	first := sections[0].(map[string]any)
	assert.Equal(t, "Science Platforms", first["label"])
	entries := first["entries"].([]any)
	assert.Equal(t, "O1-42", entries[0].(map[string]any)["paper_id"])
}

func TestWrittenReportParsesBack(t *testing.T) {
	r, err := Build(testAssignment, testAbstracts, testCatalog)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	pids, err := Parse(&buf)
	require.NoError(t, err)
	want := []types.PaperID{
		{AbstractID: 42, Title: "Serving petabytes", PID: "O1-42"},
		{AbstractID: 7, Title: "A poster", PID: "P1-7"},
		{AbstractID: 108, Title: "Misc", PID: "P2-108"},
	}
	if diff := cmp.Diff(want, pids); diff != "" {
		t.Errorf("Parse(WriteText()) mismatch (-want +got):\n%s", diff)
	}
}
