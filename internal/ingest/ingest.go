package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/synergic-nexum/supplier-cli/internal/fetcher"
)

// DataType names one of the five ingestable record collections.
type DataType string

const (
	TypeSupplier  DataType = "supplier"
	TypeOrder     DataType = "order"
	TypePayment   DataType = "payment"
	TypeInventory DataType = "inventory"
	TypeEvent     DataType = "event"
)

// ParseDataType validates a --type flag value.
func ParseDataType(s string) (DataType, error) {
	switch DataType(s) {
	case TypeSupplier, TypeOrder, TypePayment, TypeInventory, TypeEvent:
		return DataType(s), nil
	}
	return "", eris.Errorf("ingest: unknown data type %q (want supplier, order, payment, inventory, or event)", s)
}

// ReadTable parses the file at path (or an ftp:// URL pointing at a CSV)
// into a raw table. The extension decides the parser; anything else is an
// unsupported format error.
func ReadTable(ctx context.Context, path string) (*fetcher.Table, error) {
	if strings.HasPrefix(path, "ftp://") {
		rc, err := fetcher.FetchFTP(ctx, path)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return fetcher.ReadCSV(rc, fetcher.CSVOptions{TrimSpace: true, LazyQuotes: true})
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "ingest: open file")
		}
		defer f.Close()
		return fetcher.ReadCSV(f, fetcher.CSVOptions{TrimSpace: true, LazyQuotes: true})
	case ".xlsx":
		return fetcher.ReadXLSX(path, fetcher.XLSXOptions{})
	default:
		return nil, eris.Errorf("ingest: unsupported file format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}
