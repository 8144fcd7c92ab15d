package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidate_NTEEMajorGroup(t *testing.T) {
	c := &Candidate{NTEECode: "P20"}
	assert.Equal(t, "P", c.NTEEMajorGroup())

	c = &Candidate{NTEECode: "b80"}
	assert.Equal(t, "B", c.NTEEMajorGroup())

	c = &Candidate{}
	assert.Equal(t, "", c.NTEEMajorGroup())
}

func TestCandidate_FoundationClassification(t *testing.T) {
	pf := &Candidate{FoundationCode: "03"}
	assert.True(t, pf.IsPrivateFoundation())
	assert.False(t, pf.IsPublicCharity())

	charity := &Candidate{FoundationCode: "15"}
	assert.True(t, charity.IsPublicCharity())
	assert.False(t, charity.IsPrivateFoundation())

	unknown := &Candidate{FoundationCode: ""}
	assert.False(t, unknown.IsPrivateFoundation())
	assert.False(t, unknown.IsPublicCharity())
}

func TestProfile_ServesState(t *testing.T) {
	p := &Profile{States: []string{"VA", "md"}}
	assert.True(t, p.ServesState("VA"))
	assert.True(t, p.ServesState("MD"))
	assert.False(t, p.ServesState("CA"))

	nationwide := &Profile{Nationwide: true}
	assert.True(t, nationwide.ServesState("CA"))
}

func TestProfile_FocusTerms(t *testing.T) {
	p := &Profile{
		Mission:    "Providing youth education programs in rural communities.",
		FocusAreas: []string{"Education", "Youth Development", "education"},
	}

	terms := p.FocusTerms()
	assert.Contains(t, terms, "education")
	assert.Contains(t, terms, "youth development")
	assert.Contains(t, terms, "communities")
	// Short filler words from the mission are not focus terms.
	assert.NotContains(t, terms, "in")

	// Duplicates collapse.
	count := 0
	for _, term := range terms {
		if term == "education" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
