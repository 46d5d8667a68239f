package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "supplier_id,name,unit_cost\nSUP-1,Acme,12.50\nSUP-2,Andes,9.00\n"

	table, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"supplier_id", "name", "unit_cost"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"SUP-1", "Acme", "12.50"}, table.Rows[0])
}

func TestReadCSVTrimSpace(t *testing.T) {
	input := "id , name \n 1 , Acme \n"

	table, err := ReadCSV(strings.NewReader(input), CSVOptions{TrimSpace: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, table.Header)
	assert.Equal(t, []string{"1", "Acme"}, table.Rows[0])
}

func TestReadCSVDelimiter(t *testing.T) {
	input := "id;name\n1;Acme\n"

	table, err := ReadCSV(strings.NewReader(input), CSVOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, table.Header)
}

func TestReadCSVRaggedRows(t *testing.T) {
	input := "id,name,notes\n1,Acme\n2,Andes,preferred,extra\n"

	table, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[0], 2)
	assert.Len(t, table.Rows[1], 4)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty file")
}

func TestParseFTPURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantHost string
		wantPath string
		wantErr  bool
	}{
		{"default port", "ftp://data.example.com/drops/suppliers.csv", "data.example.com:21", "/drops/suppliers.csv", false},
		{"explicit port", "ftp://data.example.com:2121/suppliers.csv", "data.example.com:2121", "/suppliers.csv", false},
		{"wrong scheme", "https://example.com/file.csv", "", "", true},
		{"missing path", "ftp://example.com", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, path, err := parseFTPURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}
