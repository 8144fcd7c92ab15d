package types

// FoundationKey identifies one foundation's grant history for a tax year.
// Pattern analysis results are memoized per key within a discovery run.
type FoundationKey struct {
	EIN     string `json:"ein"`
	TaxYear int    `json:"tax_year"`
}

// Enrichment carries the optional pre-resolved data bundles available when
// scoring a candidate. Nil members simply mean the bundle was not resolved;
// the scorer consumes availability through Flags.
type Enrichment struct {
	Grants    []GrantRecord   `json:"grants,omitempty"`
	Awards    []Award         `json:"awards,omitempty"`
	Rosters   *NetworkRosters `json:"rosters,omitempty"`
	RiskFlags []string        `json:"risk_flags,omitempty"`
	TaxYear   int             `json:"tax_year,omitempty"`
	// DataYear is the filing year of the candidate's most recent bulk-file
	// record, consumed by the timing dimension.
	DataYear int `json:"data_year,omitempty"`
}

// Flags derives enrichment-availability flags from the bundles present.
func (e *Enrichment) Flags() EnrichmentFlags {
	if e == nil {
		return EnrichmentFlags{}
	}
	return EnrichmentFlags{
		FinancialData:  len(e.Grants) > 0,
		NetworkData:    e.Rosters != nil && len(e.Rosters.Board) > 0,
		HistoricalData: len(e.Awards) > 0,
		RiskAssessment: len(e.RiskFlags) > 0,
	}
}
