package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRowsBuildsNestedSchedule(t *testing.T) {
	rows := [][]string{
		InstructorsHeader,
		{"A", "1", "Mon", "AM", "X", "Y"},
		{"A", "1", "Mon", "PM", "X", ""},
		{"B", "2", "Fri", "AM", "", "Z"},
	}

	nested, recordCount := DecodeRows(rows)

	require.Equal(t, 3, recordCount)
	require.Contains(t, nested, "A")
	assert.Equal(t, Slot{Instructor1: "X", Instructor2: "Y"}, nested["A"]["1"]["Mon"]["AM"])
	assert.Equal(t, Slot{Instructor1: "X", Instructor2: ""}, nested["A"]["1"]["Mon"]["PM"])
	assert.Equal(t, Slot{Instructor1: "", Instructor2: "Z"}, nested["B"]["2"]["Fri"]["AM"])
}

func TestDecodeRowsSkipsRowsWithEmptyKeys(t *testing.T) {
	rows := [][]string{
		InstructorsHeader,
		{"", "1", "Mon", "AM", "X", ""},
		{"A", "", "Mon", "AM", "X", ""},
		{"A", "1", "", "AM", "X", ""},
		{"A", "1", "Mon", "", "X", ""},
		{"A", "1", "Mon", "AM", "X", ""},
	}

	nested, recordCount := DecodeRows(rows)

	// recordCount は生の行数で、読み飛ばした行も含む。
	assert.Equal(t, 5, recordCount)
	require.Len(t, nested, 1)
	assert.Equal(t, Slot{Instructor1: "X"}, nested["A"]["1"]["Mon"]["AM"])
}

func TestDecodeRowsLastWriteWins(t *testing.T) {
	rows := [][]string{
		InstructorsHeader,
		{"A", "1", "Mon", "AM", "X", ""},
		{"A", "1", "Mon", "AM", "Y", "Z"},
	}

	nested, _ := DecodeRows(rows)

	assert.Equal(t, Slot{Instructor1: "Y", Instructor2: "Z"}, nested["A"]["1"]["Mon"]["AM"])
}

func TestDecodeRowsHandlesShortRows(t *testing.T) {
	rows := [][]string{
		InstructorsHeader,
		{"A", "1", "Mon", "AM"},
		{"A", "1", "Mon"},
	}

	nested, recordCount := DecodeRows(rows)

	assert.Equal(t, 2, recordCount)
	assert.Equal(t, Slot{}, nested["A"]["1"]["Mon"]["AM"])
}

func TestDecodeRowsEmptyInput(t *testing.T) {
	nested, recordCount := DecodeRows(nil)
	assert.Empty(t, nested)
	assert.Zero(t, recordCount)

	nested, recordCount = DecodeRows([][]string{InstructorsHeader})
	assert.Empty(t, nested)
	assert.Zero(t, recordCount)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := NestedSchedule{
		"A": {
			"1": {
				"Mon": {"AM": Slot{Instructor1: "X", Instructor2: "Y"}, "PM": Slot{Instructor1: "X"}},
				"Tue": {"AM": Slot{Instructor2: "Z"}},
			},
			"2": {"Fri": {"PM": Slot{Instructor1: "W"}}},
		},
		"B": {"1": {"Mon": {"AM": Slot{Instructor1: "V", Instructor2: "U"}}}},
	}

	encoded := EncodeRows(original)
	require.Len(t, encoded, 5)
	for _, row := range encoded {
		assert.Len(t, row, 6)
	}

	decoded, recordCount := DecodeRows(append([][]string{InstructorsHeader}, encoded...))
	assert.Equal(t, 5, recordCount)
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNestedSchedule(t *testing.T) {
	value := map[string]any{
		"A": map[string]any{
			"1": map[string]any{
				"Mon": map[string]any{
					"AM": map[string]any{"instructor1": "X", "instructor2": ""},
					"PM": map[string]any{"instructor1": "Y"},
				},
			},
		},
	}

	nested, err := ParseNestedSchedule(value)
	require.NoError(t, err)
	assert.Equal(t, Slot{Instructor1: "X"}, nested["A"]["1"]["Mon"]["AM"])
	assert.Equal(t, Slot{Instructor1: "Y"}, nested["A"]["1"]["Mon"]["PM"])
}

func TestParseNestedScheduleRejectsNonObjects(t *testing.T) {
	cases := map[string]any{
		"nil value":      nil,
		"string":         "nope",
		"array":          []any{"a"},
		"number":         float64(1),
		"non-object mid": map[string]any{"A": "nope"},
		"non-object slot": map[string]any{
			"A": map[string]any{"1": map[string]any{"Mon": map[string]any{"AM": "X"}}},
		},
	}

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseNestedSchedule(value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Invalid input")
		})
	}
}
