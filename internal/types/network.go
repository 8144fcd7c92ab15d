package types

// BoardMember is one person on an organization's board roster. Affiliations
// is free text as supplied by the roster source; the network analyzer parses
// it into distinct affiliation entities.
type BoardMember struct {
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	Affiliations string `json:"affiliations,omitempty"`
}

// NetworkRosters bundles the relationship inputs for one network analysis
// invocation. All data arrives pre-resolved; the analyzer never scrapes.
type NetworkRosters struct {
	OrgEIN      string        `json:"org_ein"`
	OrgName     string        `json:"org_name"`
	Board       []BoardMember `json:"board"`
	FunderName  string        `json:"funder_name,omitempty"`
	FunderBoard []BoardMember `json:"funder_board,omitempty"`
	Donors      []string      `json:"donors,omitempty"`
	Partners    []string      `json:"partners,omitempty"`
	Advisors    []string      `json:"advisors,omitempty"`
}
