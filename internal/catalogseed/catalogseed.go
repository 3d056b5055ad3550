// Package catalogseed loads a small demo catalog so a fresh instance
// has suppliers and events to recommend against. It is wired behind
// the seed_catalog config flag and is safe to skip in production.
package catalogseed

import (
	"context"
	"fmt"

	"github.com/planora/planora/internal/domain/model"
	"github.com/planora/planora/pkg/logger"
)

// Catalog accepts suppliers and events. The application service
// satisfies it.
type Catalog interface {
	CreateSupplier(ctx context.Context, sup *model.Supplier) (*model.Supplier, error)
	CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error)
	AttachSupplier(ctx context.Context, eventID, supplierID string) (*model.Event, error)
}

// Seed inserts the demo suppliers and events and attaches one supplier
// to the first event. It stops on the first error.
func Seed(ctx context.Context, catalog Catalog) error {
	log := logger.Named("catalogseed")

	createdSuppliers := make([]*model.Supplier, 0, len(Suppliers()))
	for _, sup := range Suppliers() {
		created, err := catalog.CreateSupplier(ctx, sup)
		if err != nil {
			return fmt.Errorf("seed supplier %q: %w", sup.Name, err)
		}
		createdSuppliers = append(createdSuppliers, created)
	}

	createdEvents := make([]*model.Event, 0, len(Events()))
	for _, e := range Events() {
		created, err := catalog.CreateEvent(ctx, e)
		if err != nil {
			return fmt.Errorf("seed event %q: %w", e.Name, err)
		}
		createdEvents = append(createdEvents, created)
	}

	// The gala already booked its caterer.
	if len(createdEvents) > 0 && len(createdSuppliers) > 0 {
		if _, err := catalog.AttachSupplier(ctx, createdEvents[0].ID, createdSuppliers[0].ID); err != nil {
			return fmt.Errorf("seed attach: %w", err)
		}
	}

	log.Info(ctx, "demo catalog loaded",
		logger.Int("suppliers", len(createdSuppliers)),
		logger.Int("events", len(createdEvents)))

	return nil
}

// Suppliers returns fresh copies of the demo supplier profiles.
func Suppliers() []*model.Supplier {
	return []*model.Supplier{
		{
			Name:         "Gourmet Delights Catering",
			Category:     "Catering",
			Description:  "Full-service catering with customizable menus for corporate events and weddings.",
			Rating:       4.8,
			Reviews:      127,
			Location:     "New York, NY",
			Price:        "$85/person",
			Availability: "Available",
			Tags:         []string{"gourmet", "corporate", "wedding"},
			Services:     []string{"Buffet", "Plated dinner", "Cocktail reception"},
			Contact: model.Contact{
				Email:   "events@gourmetdelights.example",
				Phone:   "+1 212 555 0184",
				Website: "https://gourmetdelights.example",
			},
			Verified: true,
		},
		{
			Name:         "Grand Ballroom Venues",
			Category:     "Venue",
			Description:  "Elegant ballrooms and conference halls in the heart of the city.",
			Rating:       4.6,
			Reviews:      89,
			Location:     "New York, NY",
			Price:        "$2,000-$5,000",
			Availability: "Available",
			Tags:         []string{"ballroom", "conference", "elegant"},
			Services:     []string{"Main hall", "Breakout rooms", "AV equipment"},
			Contact: model.Contact{
				Email:   "bookings@grandballroom.example",
				Phone:   "+1 212 555 0112",
				Website: "https://grandballroom.example",
			},
			Verified: true,
		},
		{
			Name:         "Lens & Light Photography",
			Category:     "Photography",
			Description:  "Award-winning event photography and same-day highlight reels.",
			Rating:       4.9,
			Reviews:      203,
			Location:     "Brooklyn, NY",
			Price:        "$150/hour",
			Availability: "Limited",
			Tags:         []string{"photography", "video", "wedding"},
			Services:     []string{"Event coverage", "Portraits", "Drone footage"},
			Contact: model.Contact{
				Email: "hello@lensandlight.example",
				Phone: "+1 718 555 0147",
			},
			Verified: true,
		},
		{
			Name:         "Rhythm Section Entertainment",
			Category:     "Entertainment",
			Description:  "Live bands and DJs for parties, galas and corporate functions.",
			Rating:       4.4,
			Reviews:      64,
			Location:     "Jersey City, NJ",
			Price:        "$1,200",
			Availability: "Available",
			Tags:         []string{"live music", "dj", "party"},
			Services:     []string{"Live band", "DJ set", "MC"},
			Contact: model.Contact{
				Email: "gigs@rhythmsection.example",
			},
		},
		{
			Name:         "Bloom & Branch Decor",
			Category:     "Decoration",
			Description:  "Floral arrangements and themed decor for weddings and launches.",
			Rating:       4.7,
			Reviews:      51,
			Location:     "Boston, MA",
			Price:        "$900-$2,400",
			Availability: "Available",
			Tags:         []string{"floral", "wedding", "themed"},
			Services:     []string{"Florals", "Stage design", "Lighting"},
			Contact: model.Contact{
				Email: "studio@bloombranch.example",
			},
		},
		{
			Name:         "Swift Shuttle Transport",
			Category:     "Transportation",
			Description:  "Guest shuttles and executive cars with professional drivers.",
			Rating:       4.2,
			Reviews:      38,
			Location:     "New York, NY",
			Price:        "$95/hour",
			Availability: "Available",
			Tags:         []string{"shuttle", "executive", "airport"},
			Services:     []string{"Shuttle bus", "Sedan", "Airport transfer"},
			Contact: model.Contact{
				Phone: "+1 212 555 0199",
			},
		},
	}
}

// Events returns fresh copies of the demo events.
func Events() []*model.Event {
	return []*model.Event{
		{
			Name:        "Annual Charity Gala",
			Date:        "2026-11-14",
			Time:        "18:30",
			Location:    "New York, NY",
			Budget:      "$25,000",
			Attendees:   180,
			Status:      model.EventConfirmed,
			Description: "Black-tie fundraiser with a plated gourmet dinner and live auction.",
			Type:        "Gala",
			Progress:    65,
		},
		{
			Name:        "Product Launch Summit",
			Date:        "2026-10-02",
			Time:        "09:00",
			Location:    "New York, NY",
			Budget:      "$12,000",
			Attendees:   120,
			Status:      model.EventPlanning,
			Description: "Press and partner briefing with demo stations and catering.",
			Type:        "Corporate",
			Progress:    30,
		},
		{
			Name:        "Rivera Wedding Reception",
			Date:        "2027-05-22",
			Time:        "16:00",
			Location:    "Boston, MA",
			Budget:      "$18,500",
			Attendees:   95,
			Status:      model.EventPlanning,
			Description: "Garden wedding reception with floral decor and a live band.",
			Type:        "Wedding",
			Progress:    15,
		},
	}
}
