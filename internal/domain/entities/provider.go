package entities

// Provider represents a healthcare provider in the catalog
type Provider struct {
	ID                   string   `json:"id"`
	FullName             string   `json:"full_name"`
	FirstName            string   `json:"first_name,omitempty"`
	LastName             string   `json:"last_name,omitempty"`
	Specialty            string   `json:"specialty"`
	Phone                string   `json:"phone"`
	Email                string   `json:"email"`
	Address              Address  `json:"address"`
	YearsExperience      int      `json:"years_experience"`
	Rating               float64  `json:"rating"`
	AcceptingNewPatients bool     `json:"accepting_new_patients"`
	BoardCertified       bool     `json:"board_certified"`
	LicenseNumber        string   `json:"license_number"`
	Languages            []string `json:"languages"`
	InsuranceAccepted    []string `json:"insurance_accepted"`
}

// Address represents a provider's practice address
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// SearchFilters holds the optional structured constraints of a provider
// search. A nil field means unconstrained; an all-nil filter set is
// "unfiltered", never "match nothing".
type SearchFilters struct {
	Specialty            *string  `json:"specialty,omitempty"`
	City                 *string  `json:"city,omitempty"`
	State                *string  `json:"state,omitempty"`
	Zip                  *string  `json:"zip,omitempty"`
	AcceptingNewPatients *bool    `json:"accepting_new_patients,omitempty"`
	BoardCertified       *bool    `json:"board_certified,omitempty"`
	MinYearsExperience   *int     `json:"min_years_experience,omitempty"`
	MinRating            *float64 `json:"min_rating,omitempty"`
	Languages            []string `json:"languages,omitempty"`
	InsuranceAccepted    []string `json:"insurance_accepted,omitempty"`
}

// Empty reports whether no structured constraint is set
func (f SearchFilters) Empty() bool {
	return f.Specialty == nil &&
		f.City == nil &&
		f.State == nil &&
		f.Zip == nil &&
		f.AcceptingNewPatients == nil &&
		f.BoardCertified == nil &&
		f.MinYearsExperience == nil &&
		f.MinRating == nil &&
		len(f.Languages) == 0 &&
		len(f.InsuranceAccepted) == 0
}

// SearchQuery is a free-text query plus optional structured filters
type SearchQuery struct {
	Query   string        `json:"query"`
	Filters SearchFilters `json:"filters"`
	Limit   int           `json:"limit"`
}

// DefaultSearchLimit is applied when the caller does not request a count
const DefaultSearchLimit = 5

// SearchResult is the ranked outcome of a provider search. An empty result
// set is a normal outcome, distinct from an upstream failure.
type SearchResult struct {
	Providers []*Provider `json:"providers"`
	Count     int         `json:"count"`
	Message   string      `json:"message"`
}
