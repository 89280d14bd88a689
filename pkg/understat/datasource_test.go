package understat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHexEscaped(t *testing.T) {
	decoded, err := decodeHexEscaped(`\x7b\x22title\x22:\x22Arsenal\x22\x7d`)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Arsenal"}`, decoded)
}

func TestDecodeHexEscapedPassthrough(t *testing.T) {
	decoded, err := decodeHexEscaped(`{"title":"Arsenal"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Arsenal"}`, decoded)
}

func TestDecodeHexEscapedBadEscape(t *testing.T) {
	_, err := decodeHexEscaped(`\xZZ`)
	require.Error(t, err)
}

func TestDecodeOrderedTeamsPreservesOrder(t *testing.T) {
	// Keys are team ids in the source order; a map unmarshal would lose
	// that order and with it the partial-match tie-break behaviour.
	data := []byte(`{
		"89": {"title": "Zeta United", "history": [{"xG": 1.5, "xGA": 0.8}]},
		"82": {"title": "Alpha City", "history": [{"xG": 2.1, "xGA": 1.2}]},
		"77": {"title": "Midtable FC", "history": [{"xG": 1.0, "xGA": 1.0}]}
	}`)

	teams, err := decodeOrderedTeams(data)
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, "Zeta United", teams[0].Title)
	assert.Equal(t, "Alpha City", teams[1].Title)
	assert.Equal(t, "Midtable FC", teams[2].Title)
	assert.Equal(t, 1.5, teams[0].History[0].XG)
}

func TestDecodeOrderedTeamsRejectsNonObject(t *testing.T) {
	_, err := decodeOrderedTeams([]byte(`[1, 2, 3]`))
	require.Error(t, err)
}

func TestTeamsDataRegexp(t *testing.T) {
	script := `var teamsData = JSON.parse('\x7b\x22title\x22:1\x7d');`
	m := teamsDataRe.FindStringSubmatch(script)
	require.NotNil(t, m)
	assert.Equal(t, `\x7b\x22title\x22:1\x7d`, m[1])
}
