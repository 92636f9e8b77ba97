package search

import (
	"fmt"
	"strings"

	"github.com/voxology/assistant-backend/internal/domain/entities"
)

// missingSentinel marks absent fields in the rendered description so the
// embedding captures absence instead of silence.
const missingSentinel = "not provided"

// RenderDescription produces the deterministic natural-language rendering of
// a provider that is embedded at index time. It is never stored beyond
// indexing.
func RenderDescription(p *entities.Provider) string {
	street := orSentinel(p.Address.Street)
	city := orSentinel(p.Address.City)
	state := orSentinel(p.Address.State)
	zip := orSentinel(p.Address.Zip)
	address := fmt.Sprintf("%s, %s, %s %s", street, city, state, zip)

	insurance := missingSentinel
	if len(p.InsuranceAccepted) > 0 {
		insurance = strings.Join(p.InsuranceAccepted, ", ")
	}
	languages := missingSentinel
	if len(p.Languages) > 0 {
		languages = strings.Join(p.Languages, ", ")
	}

	accepting := "NOT accepting new patients"
	if p.AcceptingNewPatients {
		accepting = "accepting new patients"
	}
	boardCert := "not board certified"
	if p.BoardCertified {
		boardCert = "board certified"
	}

	years := missingSentinel
	if p.YearsExperience > 0 {
		years = fmt.Sprintf("%d", p.YearsExperience)
	}
	rating := missingSentinel
	if p.Rating > 0 {
		rating = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.1f", p.Rating), "0"), ".")
	}

	lines := []string{
		fmt.Sprintf("%s is a %s specialist.", orSentinel(p.FullName), orSentinel(p.Specialty)),
		fmt.Sprintf("Phone number: %s.", orSentinel(p.Phone)),
		fmt.Sprintf("Email: %s.", orSentinel(p.Email)),
		fmt.Sprintf("Address: %s.", address),
		fmt.Sprintf("Years of experience: %s.", years),
		fmt.Sprintf("Currently %s.", accepting),
		fmt.Sprintf("Insurance accepted: %s.", insurance),
		fmt.Sprintf("Patient rating: %s out of 5.", rating),
		fmt.Sprintf("License number: %s.", orSentinel(p.LicenseNumber)),
		fmt.Sprintf("%s.", boardCert),
		fmt.Sprintf("Languages spoken: %s.", languages),
		fmt.Sprintf("Specialty: %s.", orSentinel(p.Specialty)),
	}

	return strings.Join(lines, "\n")
}

// FlattenMetadata extracts the filterable metadata document stored alongside
// the embedding. Numeric fields default to 0 and booleans to false when
// absent upstream; id is always present.
func FlattenMetadata(p *entities.Provider) map[string]interface{} {
	languages := p.Languages
	if languages == nil {
		languages = []string{}
	}
	insurance := p.InsuranceAccepted
	if insurance == nil {
		insurance = []string{}
	}

	return map[string]interface{}{
		// Filter fields
		"id":                     p.ID,
		"specialty":              p.Specialty,
		"state":                  p.Address.State,
		"city":                   p.Address.City,
		"zip":                    p.Address.Zip,
		"accepting_new_patients": p.AcceptingNewPatients,
		"years_experience":       p.YearsExperience,
		"rating":                 p.Rating,
		"board_certified":        p.BoardCertified,
		"languages":              languages,
		"insurance_accepted":     insurance,
		// Complete data for the assistant response
		"full_name":      p.FullName,
		"first_name":     p.FirstName,
		"last_name":      p.LastName,
		"phone":          p.Phone,
		"email":          p.Email,
		"address_street": p.Address.Street,
		"license_number": p.LicenseNumber,
	}
}

// providerFromDocument maps an index document back to a provider. Every
// metadata key has a corresponding output field; missing keys fall back to
// zero values rather than being dropped.
func providerFromDocument(doc map[string]interface{}) *entities.Provider {
	return &entities.Provider{
		ID:        docString(doc, "id"),
		FullName:  docString(doc, "full_name"),
		FirstName: docString(doc, "first_name"),
		LastName:  docString(doc, "last_name"),
		Specialty: docString(doc, "specialty"),
		Phone:     docString(doc, "phone"),
		Email:     docString(doc, "email"),
		Address: entities.Address{
			Street: docString(doc, "address_street"),
			City:   docString(doc, "city"),
			State:  docString(doc, "state"),
			Zip:    docString(doc, "zip"),
		},
		YearsExperience:      docInt(doc, "years_experience"),
		Rating:               docFloat(doc, "rating"),
		AcceptingNewPatients: docBool(doc, "accepting_new_patients"),
		BoardCertified:       docBool(doc, "board_certified"),
		LicenseNumber:        docString(doc, "license_number"),
		Languages:            docStrings(doc, "languages"),
		InsuranceAccepted:    docStrings(doc, "insurance_accepted"),
	}
}

func orSentinel(value string) string {
	if strings.TrimSpace(value) == "" {
		return missingSentinel
	}
	return value
}

func docString(doc map[string]interface{}, key string) string {
	if val, ok := doc[key].(string); ok {
		return val
	}
	return ""
}

func docFloat(doc map[string]interface{}, key string) float64 {
	if val, ok := doc[key].(float64); ok {
		return val
	}
	return 0
}

func docInt(doc map[string]interface{}, key string) int {
	// JSON numbers decode as float64
	if val, ok := doc[key].(float64); ok {
		return int(val)
	}
	if val, ok := doc[key].(int); ok {
		return val
	}
	return 0
}

func docBool(doc map[string]interface{}, key string) bool {
	if val, ok := doc[key].(bool); ok {
		return val
	}
	return false
}

func docStrings(doc map[string]interface{}, key string) []string {
	values := []string{}
	raw, ok := doc[key].([]interface{})
	if !ok {
		if typed, ok := doc[key].([]string); ok {
			return typed
		}
		return values
	}
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
