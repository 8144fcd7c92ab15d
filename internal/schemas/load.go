package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/grant-scout/internal/types"
)

// Schema file locations relative to the repo root.
const (
	ProfileSchemaPath    = "schemas/profile.schema.json"
	EnrichmentSchemaPath = "schemas/enrichment.schema.json"
)

// LoadProfile reads, schema-validates, and unmarshals an organization
// profile document.
func LoadProfile(path string) (*types.Profile, error) {
	data, err := validateDocument(ProfileSchemaPath, path)
	if err != nil {
		return nil, err
	}

	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &profile, nil
}

// LoadEnrichment reads, schema-validates, and unmarshals an enrichment
// document: a map from candidate EIN to the pre-resolved data bundles
// available for that candidate.
func LoadEnrichment(path string) (map[string]*types.Enrichment, error) {
	data, err := validateDocument(EnrichmentSchemaPath, path)
	if err != nil {
		return nil, err
	}

	var enrichment map[string]*types.Enrichment
	if err := json.Unmarshal(data, &enrichment); err != nil {
		return nil, fmt.Errorf("failed to parse enrichment JSON: %w", err)
	}
	return enrichment, nil
}

// validateDocument validates a document against a repo schema when the
// schema can be located, and returns the document bytes. Validation is
// skipped with no error when the schema file cannot be resolved, so the
// CLI still works when run outside the repo tree.
func validateDocument(schemaRelPath, docPath string) ([]byte, error) {
	absPath, err := filepath.Abs(docPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document path: %w", err)
	}

	if schemaPath := ResolveSchemaPath(schemaRelPath); schemaPath != "" {
		if err := ValidateJSON(schemaPath, absPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", absPath, err)
	}
	return data, nil
}
