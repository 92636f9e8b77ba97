package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voxology/assistant-backend/internal/domain/entities"
)

// BuildFilter translates structured search constraints into a Typesense
// filter_by expression. All present predicates are ANDed; an empty filter
// set yields the empty string, meaning unfiltered rather than match-nothing.
func BuildFilter(f entities.SearchFilters) string {
	var predicates []string

	// Exact-match fields
	if f.Specialty != nil {
		predicates = append(predicates, equals("specialty", *f.Specialty))
	}
	if f.City != nil {
		predicates = append(predicates, equals("city", *f.City))
	}
	if f.State != nil {
		predicates = append(predicates, equals("state", *f.State))
	}
	if f.Zip != nil {
		predicates = append(predicates, equals("zip", *f.Zip))
	}
	if f.AcceptingNewPatients != nil {
		predicates = append(predicates, fmt.Sprintf("accepting_new_patients:=%t", *f.AcceptingNewPatients))
	}
	if f.BoardCertified != nil {
		predicates = append(predicates, fmt.Sprintf("board_certified:=%t", *f.BoardCertified))
	}

	// Threshold fields, boundary equality qualifies
	if f.MinYearsExperience != nil {
		predicates = append(predicates, fmt.Sprintf("years_experience:>=%d", *f.MinYearsExperience))
	}
	if f.MinRating != nil {
		predicates = append(predicates, fmt.Sprintf("rating:>=%s", formatRating(*f.MinRating)))
	}

	// Set fields, match-any semantics
	if len(f.Languages) > 0 {
		predicates = append(predicates, anyOf("languages", f.Languages))
	}
	if len(f.InsuranceAccepted) > 0 {
		predicates = append(predicates, anyOf("insurance_accepted", f.InsuranceAccepted))
	}

	return strings.Join(predicates, " && ")
}

func equals(field, value string) string {
	return fmt.Sprintf("%s:=%s", field, quote(value))
}

func anyOf(field string, values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, quote(v))
	}
	return fmt.Sprintf("%s:=[%s]", field, strings.Join(quoted, ","))
}

// quote backtick-wraps a value so spaces, commas and operators inside it are
// taken literally. Backticks themselves cannot be escaped and are stripped.
func quote(value string) string {
	return "`" + strings.ReplaceAll(value, "`", "") + "`"
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
