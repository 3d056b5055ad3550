package catalogseed

import (
	"fmt"

	"github.com/planora/planora/internal/domain/model"
)

// Profile tables for generated suppliers. Values cycle by index so a
// given count always produces the same catalog.
var (
	generatedCategories = []string{
		"Catering", "Venue", "Photography", "Entertainment", "Decoration", "Transportation",
	}
	generatedLocations = []string{
		"New York, NY", "Boston, MA", "Chicago, IL", "Austin, TX", "Seattle, WA",
	}
	generatedPrices = []string{
		"$75/person", "$1,500-$4,000", "$120/hour", "$950", "$60/person", "$2,200",
	}
	generatedTags = [][]string{
		{"corporate", "buffet"},
		{"conference", "downtown"},
		{"wedding", "portrait"},
		{"live music", "party"},
		{"floral", "themed"},
		{"shuttle", "executive"},
	}
)

// Rating generation bounds. Ratings step through the band in tenths so
// the spread covers the high-rating annotation threshold.
const (
	ratingBase  = 3.8
	ratingSteps = 12
	ratingStep  = 0.1
	reviewsBase = 20
	reviewsStep = 17
)

// Generate returns n deterministic supplier profiles for bulk demo
// loads. n of zero or less yields an empty slice.
func Generate(n int) []*model.Supplier {
	if n <= 0 {
		return nil
	}

	suppliers := make([]*model.Supplier, 0, n)
	for i := 0; i < n; i++ {
		category := generatedCategories[i%len(generatedCategories)]
		suppliers = append(suppliers, &model.Supplier{
			Name:         fmt.Sprintf("%s Collective %03d", category, i+1),
			Category:     category,
			Description:  fmt.Sprintf("Demo %s supplier for staging catalogs.", category),
			Rating:       ratingBase + float64(i%ratingSteps)*ratingStep,
			Reviews:      reviewsBase + (i*reviewsStep)%400,
			Location:     generatedLocations[i%len(generatedLocations)],
			Price:        generatedPrices[i%len(generatedPrices)],
			Availability: "Available",
			Tags:         generatedTags[i%len(generatedTags)],
		})
	}
	return suppliers
}
