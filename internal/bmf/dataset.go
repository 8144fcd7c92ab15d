package bmf

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jonathan/grant-scout/internal/types"
)

// filterCacheTTL bounds how long a memoized scan result stays valid. The
// dataset itself is immutable after load, so the TTL only caps memory held
// by abandoned criteria.
const filterCacheTTL = 10 * time.Minute

// Dataset holds the bulk exempt-organization records for one run, loaded
// once and shared read-only across scoring workers. Repeated scans with
// identical criteria are served from a memo cache.
type Dataset struct {
	candidates []types.Candidate
	skipped    int
	results    *gocache.Cache
}

// Len returns the number of ingested candidates.
func (d *Dataset) Len() int {
	return len(d.candidates)
}

// SkippedRows returns the count of malformed rows dropped at ingestion.
func (d *Dataset) SkippedRows() int {
	return d.skipped
}

// LoadDataset reads a bulk-file CSV extract into typed candidate records.
// Raw rows are validated at this boundary and never travel deeper into
// scoring as untyped maps. Malformed individual rows are skipped and
// counted; an unreadable file is fatal.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataUnavailableError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	return ReadDataset(f, path)
}

// ReadDataset parses bulk-file CSV content from a reader. The first row
// must be a header naming at least the EIN and NAME columns.
func ReadDataset(r io.Reader, source string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &DataUnavailableError{Path: source, Cause: err}
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	if _, ok := col["EIN"]; !ok {
		return nil, &DataUnavailableError{Path: source, Cause: errMissingColumn("EIN")}
	}
	if _, ok := col["NAME"]; !ok {
		return nil, &DataUnavailableError{Path: source, Cause: errMissingColumn("NAME")}
	}

	ds := &Dataset{results: gocache.New(filterCacheTTL, 2*filterCacheTTL)}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken row is skipped, not fatal.
			ds.skipped++
			continue
		}
		candidate, ok := parseRow(row, col)
		if !ok {
			ds.skipped++
			continue
		}
		ds.candidates = append(ds.candidates, candidate)
	}
	return ds, nil
}

type errMissingColumn string

func (e errMissingColumn) Error() string {
	return "missing required column " + string(e)
}

// parseRow validates one raw CSV row into a typed candidate. Rows without
// an EIN or name are malformed; financial fields that fail to parse are
// recorded as unknown rather than zero so range filters can distinguish
// "missing" from "0".
func parseRow(row []string, col map[string]int) (types.Candidate, bool) {
	field := func(name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	ein := field("EIN")
	name := field("NAME")
	if ein == "" || name == "" {
		return types.Candidate{}, false
	}

	candidate := types.Candidate{
		EIN:            ein,
		Name:           name,
		City:           field("CITY"),
		State:          strings.ToUpper(field("STATE")),
		NTEECode:       strings.ToUpper(field("NTEE_CD")),
		FoundationCode: field("FOUNDATION"),
	}
	candidate.Revenue = parseAmount(field("REVENUE_AMT"))
	candidate.Assets = parseAmount(field("ASSET_AMT"))
	return candidate, true
}

// parseAmount parses a financial field, returning nil for a missing or
// unparsable value.
func parseAmount(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}
