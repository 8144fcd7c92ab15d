package types

// GrantRecord is one grant paid by a foundation in a tax year, as reported
// on its Schedule I itemization. Category and SizeTier are derived during
// pattern analysis and empty until then.
type GrantRecord struct {
	RecipientName string  `json:"recipient_name"`
	RecipientEIN  string  `json:"recipient_ein,omitempty"`
	Amount        float64 `json:"amount"`
	Purpose       string  `json:"purpose,omitempty"`
	City          string  `json:"city,omitempty"`
	State         string  `json:"state,omitempty"`
	Category      string  `json:"category,omitempty"`
	SizeTier      string  `json:"size_tier,omitempty"`
}

// Award is one grant previously received by the client organization, used
// for historical funding trend analysis.
type Award struct {
	Funder      string  `json:"funder"`
	FunderEIN   string  `json:"funder_ein,omitempty"`
	FunderState string  `json:"funder_state,omitempty"`
	Amount      float64 `json:"amount"`
	Year        int     `json:"year"`
}
