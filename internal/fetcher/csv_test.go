package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Basic(t *testing.T) {
	input := "CensusTract,State,POP2010\n53001950100,WA,1000\n53001950200,WA,250\n"
	tbl, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"CensusTract", "State", "POP2010"}, tbl.Header)
	assert.Equal(t, [][]string{
		{"53001950100", "WA", "1000"},
		{"53001950200", "WA", "250"},
	}, tbl.Rows)
}

func TestReadCSV_PipeDelimited(t *testing.T) {
	input := "CensusTract|lapophalf\n53001950100|412\n"
	tbl, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{Delimiter: '|'})
	require.NoError(t, err)
	assert.Equal(t, []string{"53001950100", "412"}, tbl.Rows[0])
}

func TestReadCSV_UTF8BOM(t *testing.T) {
	input := "\xEF\xBB\xBFCensusTract,State\n53001950100,WA\n"
	tbl, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, "CensusTract", tbl.Header[0])
}

func TestReadCSV_UTF16(t *testing.T) {
	// "ID,N\n1,2\n" as UTF-16LE with a byte-order mark.
	var b strings.Builder
	b.WriteString("\xFF\xFE")
	for _, c := range "ID,N\n1,2\n" {
		b.WriteByte(byte(c))
		b.WriteByte(0)
	}

	tbl, err := ReadCSV(context.Background(), strings.NewReader(b.String()), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "N"}, tbl.Header)
	assert.Equal(t, [][]string{{"1", "2"}}, tbl.Rows)
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(context.Background(), strings.NewReader(""), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestReadCSV_LazyQuotes(t *testing.T) {
	// Malformed CSV with quotes in unquoted field
	input := `a,b,c
1,"hello "world",3
`
	tbl, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{LazyQuotes: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Header)
	require.Len(t, tbl.Rows, 1)
}

func TestReadCSV_TrimSpace(t *testing.T) {
	input := " a , b , c \n 1 , 2 , 3 \n"
	tbl, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Header)
	assert.Equal(t, []string{"1", "2", "3"}, tbl.Rows[0])
}

func TestReadCSV_Comment(t *testing.T) {
	input := "# this is a comment\na,b\n1,2\n# another comment\n3,4\n"
	tbl, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{Comment: '#'})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Header)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, tbl.Rows)
}

func TestReadCSV_VariableFields(t *testing.T) {
	input := "a,b,c\n1,2\n"
	tbl, err := ReadCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, tbl.Rows[0])
}

func TestReadCSV_ContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, strings.NewReader("a,b,c\n1,2,3\n"), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}
