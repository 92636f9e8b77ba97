package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxology/assistant-backend/internal/domain/entities"
)

func sampleProvider() *entities.Provider {
	return &entities.Provider{
		ID:        "prov_001",
		FullName:  "Dr. Sarah Chen",
		FirstName: "Sarah",
		LastName:  "Chen",
		Specialty: "Cardiology",
		Phone:     "555-0142",
		Email:     "s.chen@example.com",
		Address: entities.Address{
			Street: "120 Main St",
			City:   "Austin",
			State:  "TX",
			Zip:    "78701",
		},
		YearsExperience:      12,
		Rating:               4.5,
		AcceptingNewPatients: true,
		BoardCertified:       true,
		LicenseNumber:        "TX-88421",
		Languages:            []string{"English", "Spanish"},
		InsuranceAccepted:    []string{"Aetna", "Cigna"},
	}
}

func TestRenderDescription_CompleteProvider(t *testing.T) {
	desc := RenderDescription(sampleProvider())

	lines := strings.Split(desc, "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "Dr. Sarah Chen is a Cardiology specialist.", lines[0])
	assert.Equal(t, "Address: 120 Main St, Austin, TX 78701.", lines[3])
	assert.Equal(t, "Years of experience: 12.", lines[4])
	assert.Equal(t, "Currently accepting new patients.", lines[5])
	assert.Equal(t, "Insurance accepted: Aetna, Cigna.", lines[6])
	assert.Equal(t, "Patient rating: 4.5 out of 5.", lines[7])
	assert.Equal(t, "board certified.", lines[9])
	assert.Equal(t, "Languages spoken: English, Spanish.", lines[10])
}

func TestRenderDescription_MissingFieldsUseSentinel(t *testing.T) {
	desc := RenderDescription(&entities.Provider{ID: "prov_002"})

	assert.Contains(t, desc, "not provided is a not provided specialist.")
	assert.Contains(t, desc, "Phone number: not provided.")
	assert.Contains(t, desc, "Address: not provided, not provided, not provided not provided.")
	assert.Contains(t, desc, "Years of experience: not provided.")
	assert.Contains(t, desc, "Currently NOT accepting new patients.")
	assert.Contains(t, desc, "Patient rating: not provided out of 5.")
	assert.Contains(t, desc, "not board certified.")
}

func TestRenderDescription_IsDeterministic(t *testing.T) {
	p := sampleProvider()
	assert.Equal(t, RenderDescription(p), RenderDescription(p))
}

func TestRenderDescription_WholeNumberRatingDropsDecimal(t *testing.T) {
	p := sampleProvider()
	p.Rating = 4.0
	assert.Contains(t, RenderDescription(p), "Patient rating: 4 out of 5.")
}

func TestFlattenMetadata_DefaultsForAbsentFields(t *testing.T) {
	meta := FlattenMetadata(&entities.Provider{ID: "prov_003"})

	assert.Equal(t, "prov_003", meta["id"])
	assert.Equal(t, 0, meta["years_experience"])
	assert.Equal(t, 0.0, meta["rating"])
	assert.Equal(t, false, meta["accepting_new_patients"])
	assert.Equal(t, false, meta["board_certified"])
	assert.Equal(t, []string{}, meta["languages"])
	assert.Equal(t, []string{}, meta["insurance_accepted"])
}

func TestProviderFromDocument_RoundTrip(t *testing.T) {
	original := sampleProvider()

	doc := FlattenMetadata(original)
	// Typesense returns numbers as float64
	doc["years_experience"] = float64(original.YearsExperience)

	restored := providerFromDocument(doc)
	assert.Equal(t, original, restored)
}

func TestProviderFromDocument_MissingKeysYieldZeroValues(t *testing.T) {
	restored := providerFromDocument(map[string]interface{}{"id": "prov_004"})

	assert.Equal(t, "prov_004", restored.ID)
	assert.Equal(t, "", restored.FullName)
	assert.Equal(t, 0, restored.YearsExperience)
	assert.False(t, restored.AcceptingNewPatients)
	assert.Empty(t, restored.Languages)
}
