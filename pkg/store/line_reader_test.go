package store

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "persons.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readAllRaw(t *testing.T, reader *LineReader) []*RawRecord {
	t.Helper()
	var records []*RawRecord
	for {
		rec, err := reader.ReadNext()
		if err == io.EOF {
			return records
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
}

func TestNewLineReader_NonExistentFile(t *testing.T) {
	reader, err := NewLineReader(LineReaderConfig{FilePath: "/non/existent/persons.csv"})
	assert.Error(t, err)
	assert.Nil(t, reader)
}

func TestLineReader_SkipsHeaderAndBlankLines(t *testing.T) {
	path := writeDataFile(t, "id,name,email,phone\n\n1,Ana,a@x.com,1\n   \n2,Bia,b@x.com,2\n")

	reader, err := NewLineReader(LineReaderConfig{FilePath: path})
	require.NoError(t, err)
	defer reader.Close()

	records := readAllRaw(t, reader)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"1", "Ana", "a@x.com", "1"}, records[0].Fields)
	assert.Equal(t, 3, records[0].Line)
	assert.Equal(t, []string{"2", "Bia", "b@x.com", "2"}, records[1].Fields)
	assert.Equal(t, 5, records[1].Line)
}

func TestLineReader_HeaderIsAlwaysFirstLine(t *testing.T) {
	// whatever sits on line one is treated as the header
	path := writeDataFile(t, "1,Ana,a@x.com,1\n2,Bia,b@x.com,2\n")

	reader, err := NewLineReader(LineReaderConfig{FilePath: path})
	require.NoError(t, err)
	defer reader.Close()

	records := readAllRaw(t, reader)
	require.Len(t, records, 1)
	assert.Equal(t, "2", records[0].Fields[0])
}

func TestLineReader_JoinsQuotedNewlines(t *testing.T) {
	path := writeDataFile(t, "id,name,email,phone\n1,\"Ana\nMaria\",a@x.com,1\n2,Bia,b@x.com,2\n")

	reader, err := NewLineReader(LineReaderConfig{FilePath: path})
	require.NoError(t, err)
	defer reader.Close()

	records := readAllRaw(t, reader)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"1", "\"Ana\nMaria\"", "a@x.com", "1"}, records[0].Fields)
	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, 4, records[1].Line)
}

func TestLineReader_UnterminatedQuoteFallsBackToLines(t *testing.T) {
	path := writeDataFile(t, "id,name,email,phone\n1,\"open,a@x.com,1\n2,Bia,b@x.com,2\n3,Caio,c@x.com,3\n")

	reader, err := NewLineReader(LineReaderConfig{FilePath: path})
	require.NoError(t, err)
	defer reader.Close()

	records := readAllRaw(t, reader)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"1", "\"open,a@x.com,1"}, records[0].Fields)
	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, []string{"2", "Bia", "b@x.com", "2"}, records[1].Fields)
	assert.Equal(t, 3, records[1].Line)
	assert.Equal(t, []string{"3", "Caio", "c@x.com", "3"}, records[2].Fields)
	assert.Equal(t, 4, records[2].Line)
}

func TestLineReader_StrayQuoteIsLiteral(t *testing.T) {
	path := writeDataFile(t, "id,name,email,phone\n1,O\"Neil,o@x.com,1\n2,Bo,b@x.com,2\n")

	reader, err := NewLineReader(LineReaderConfig{FilePath: path})
	require.NoError(t, err)
	defer reader.Close()

	records := readAllRaw(t, reader)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "O\"Neil", "o@x.com", "1"}, records[0].Fields)
	assert.Equal(t, []string{"2", "Bo", "b@x.com", "2"}, records[1].Fields)
}

func TestLineReader_MaxRecordSize(t *testing.T) {
	t.Run("long lines are read whole", func(t *testing.T) {
		long := strings.Repeat("a", 200*1024)
		path := writeDataFile(t, "id,name,email,phone\n1,"+long+",a@x.com,1\n2,Bia,b@x.com,2")

		reader, err := NewLineReader(LineReaderConfig{FilePath: path, MaxRecordSize: 64})
		require.NoError(t, err)
		defer reader.Close()

		records := readAllRaw(t, reader)
		require.Len(t, records, 2)
		assert.Equal(t, long, records[0].Fields[1])
		// last line has no terminator
		assert.Equal(t, []string{"2", "Bia", "b@x.com", "2"}, records[1].Fields)
	})

	t.Run("join stops at the limit", func(t *testing.T) {
		path := writeDataFile(t, "id,name,email,phone\n1,\"open\n"+strings.Repeat("b", 100)+"\nend\",a@x.com,1\n")

		reader, err := NewLineReader(LineReaderConfig{FilePath: path, MaxRecordSize: 64})
		require.NoError(t, err)
		defer reader.Close()

		records := readAllRaw(t, reader)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"1", "\"open"}, records[0].Fields)
		assert.Equal(t, 3, records[1].Line)
		assert.Equal(t, 4, records[2].Line)
	})

	t.Run("join within the limit", func(t *testing.T) {
		path := writeDataFile(t, "id,name,email,phone\n1,\"open\nend\",a@x.com,1\n")

		reader, err := NewLineReader(LineReaderConfig{FilePath: path, MaxRecordSize: 64})
		require.NoError(t, err)
		defer reader.Close()

		records := readAllRaw(t, reader)
		require.Len(t, records, 1)
		assert.Equal(t, []string{"1", "\"open\nend\"", "a@x.com", "1"}, records[0].Fields)
	})
}

func TestLineReader_CRLF(t *testing.T) {
	path := writeDataFile(t, "id,name,email,phone\r\n1,Ana,a@x.com,1\r\n")

	reader, err := NewLineReader(LineReaderConfig{FilePath: path})
	require.NoError(t, err)
	defer reader.Close()

	records := readAllRaw(t, reader)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"1", "Ana", "a@x.com", "1"}, records[0].Fields)
}

func TestLineReader_Iterator(t *testing.T) {
	path := writeDataFile(t, "id,name,email,phone\n1,Ana,a@x.com,1\n2,Bia,b@x.com,2\n3,Caio,c@x.com,3\n")

	reader, err := NewLineReader(LineReaderConfig{FilePath: path})
	require.NoError(t, err)
	defer reader.Close()

	it := reader.Iterator()
	defer it.Close()

	var ids []string
	for it.Next() {
		ids = append(ids, it.Record().Fields[0])
	}

	assert.NoError(t, it.Err())
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}
