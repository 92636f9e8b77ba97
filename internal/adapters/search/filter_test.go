package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voxology/assistant-backend/internal/domain/entities"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestBuildFilter_EmptyFiltersProduceNoExpression(t *testing.T) {
	assert.Equal(t, "", BuildFilter(entities.SearchFilters{}))
}

func TestBuildFilter_SingleEquality(t *testing.T) {
	filter := BuildFilter(entities.SearchFilters{Specialty: strPtr("cardiology")})
	assert.Equal(t, "specialty:=`cardiology`", filter)
}

func TestBuildFilter_CombinesPredicatesWithAnd(t *testing.T) {
	filter := BuildFilter(entities.SearchFilters{
		Specialty:            strPtr("dermatology"),
		City:                 strPtr("Austin"),
		AcceptingNewPatients: boolPtr(true),
	})

	parts := strings.Split(filter, " && ")
	assert.Len(t, parts, 3)
	assert.Contains(t, parts, "specialty:=`dermatology`")
	assert.Contains(t, parts, "city:=`Austin`")
	assert.Contains(t, parts, "accepting_new_patients:=true")
}

func TestBuildFilter_NumericThresholds(t *testing.T) {
	filter := BuildFilter(entities.SearchFilters{
		MinYearsExperience: intPtr(10),
		MinRating:          floatPtr(4.5),
	})

	assert.Contains(t, filter, "years_experience:>=10")
	assert.Contains(t, filter, "rating:>=4.5")
}

func TestBuildFilter_RatingBoundaryIncludesExactMatches(t *testing.T) {
	// A 4.0 threshold must render as >= so providers rated exactly 4.0 qualify.
	filter := BuildFilter(entities.SearchFilters{MinRating: floatPtr(4.0)})
	assert.Equal(t, "rating:>=4", filter)
}

func TestBuildFilter_SetMembershipMatchesAny(t *testing.T) {
	filter := BuildFilter(entities.SearchFilters{
		Languages:         []string{"Spanish", "Mandarin"},
		InsuranceAccepted: []string{"Aetna"},
	})

	assert.Contains(t, filter, "languages:=[`Spanish`,`Mandarin`]")
	assert.Contains(t, filter, "insurance_accepted:=[`Aetna`]")
}

func TestBuildFilter_StripsEmbeddedBackticks(t *testing.T) {
	filter := BuildFilter(entities.SearchFilters{City: strPtr("Aus`tin")})
	assert.Equal(t, "city:=`Austin`", filter)
}

func TestBuildFilter_BooleanFalse(t *testing.T) {
	filter := BuildFilter(entities.SearchFilters{BoardCertified: boolPtr(false)})
	assert.Equal(t, "board_certified:=false", filter)
}
