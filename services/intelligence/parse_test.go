package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray(t *testing.T) {
	cases := map[string]string{
		`[1,2]`:                                   `[1,2]`,
		"prefix [\"a\", [\"b\"]] suffix [\"c\"]": `["a", ["b"]]`,
		"```json\n[{\"name\": \"x\"}]\n```":       `[{"name": "x"}]`,
		`[{"name": "Bracket ] in name"}] tail`:    `[{"name": "Bracket ] in name"}]`,
		`[{"name": "Quote \" and ]"}]`:            `[{"name": "Quote \" and ]"}]`,
	}
	for in, want := range cases {
		got, err := extractJSONArray(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestExtractJSONArrayFailsWithoutArray(t *testing.T) {
	for _, in := range []string{"", "no json here", `{"a": 1}`, `[1, 2`} {
		_, err := extractJSONArray(in)
		assert.ErrorIs(t, err, errNoJSONArray, in)
	}
}

func TestDecodeCandidatesRejectsWrongTypes(t *testing.T) {
	_, err := decodeCandidates(`[{"name": 42}]`)
	assert.Error(t, err)

	out, err := decodeCandidates(`[{"name": "Ok", "coordinates": [1, 2], "endDate": null}]`)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].EndDate)
}

func TestCandidatePointRejectsNull(t *testing.T) {
	out, err := decodeCandidates(`[{"name": "Ghost", "coordinates": [null, 41.9]}, {"name": "Ok", "coordinates": [12.49, 41.89]}]`)
	require.NoError(t, err)
	require.Len(t, out, 2)

	_, _, ok := out[0].point()
	assert.False(t, ok)

	lng, lat, ok := out[1].point()
	require.True(t, ok)
	assert.Equal(t, 12.49, lng)
	assert.Equal(t, 41.89, lat)
}
