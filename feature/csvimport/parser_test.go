package csvimport

import (
	"strings"
	"testing"

	"econfeed/core/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_QuotedDelimiter(t *testing.T) {
	rows, err := Parse(strings.NewReader("h1,h2\n\"a,b\",c\n"))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a,b", rows[0].Fields["h1"])
	assert.Equal(t, "c", rows[0].Fields["h2"])
}

func TestParse_ShortRowPadded(t *testing.T) {
	rows, err := Parse(strings.NewReader("h1,h2,h3\n1\n"))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"h1": "1", "h2": "", "h3": ""}, rows[0].Fields)
}

func TestParse_LongRowTruncated(t *testing.T) {
	rows, err := Parse(strings.NewReader("h1,h2\na,b,c,d\n"))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"h1": "a", "h2": "b"}, rows[0].Fields)
}

func TestParse_BlankHeaderColumnOmitted(t *testing.T) {
	rows, err := Parse(strings.NewReader("h1,,h3\na,b,c\n"))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"h1": "a", "h3": "c"}, rows[0].Fields)
}

func TestParse_BlankLinesSkipped(t *testing.T) {
	rows, err := Parse(strings.NewReader("h1,h2\n\na,b\n   \nc,d\n"))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Fields["h1"])
	assert.Equal(t, "c", rows[1].Fields["h1"])
}

func TestParse_EmbeddedNewlineAndEscapedQuote(t *testing.T) {
	rows, err := Parse(strings.NewReader("h1,h2\n\"line1\nline2\",\"say \"\"hi\"\"\"\n"))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "line1\nline2", rows[0].Fields["h1"])
	assert.Equal(t, `say "hi"`, rows[0].Fields["h2"])
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := Parse(strings.NewReader(""))

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
}
