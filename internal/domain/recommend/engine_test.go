package recommend_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/planora/planora/internal/domain/model"
	recommend "github.com/planora/planora/internal/domain/recommend"
	. "github.com/smartystreets/goconvey/convey"
)

// isolated returns a supplier that triggers none of the scoring terms
// against mismatchedEvent, so single terms can be asserted in isolation.
func isolated() *model.Supplier {
	return &model.Supplier{
		ID:       "s-1",
		Name:     "Quiet Vendor",
		Category: "Photography",
		Location: "Narnia",
		Price:    "$3000",
	}
}

func mismatchedEvent() *model.Event {
	return &model.Event{
		ID:        "e-1",
		Name:      "zzz",
		Location:  "Elsewhere",
		Budget:    "$5000",
		Attendees: 10,
	}
}

func TestEngineScore(t *testing.T) {
	Convey("Given the default engine", t, func() {
		engine := recommend.NewEngine()

		Convey("When the supplier price fits the budget", func() {
			score, reasons := engine.Score(mismatchedEvent(), isolated())

			Convey("Then the budget term awards 20 points", func() {
				So(score, ShouldEqual, 20)
				So(reasons, ShouldResemble, []string{"Within budget"})
			})
		})

		Convey("When the price is within 20% above the budget", func() {
			event := mismatchedEvent()
			event.Budget = "$2600" // 3000 <= 2600*1.2 = 3120
			score, reasons := engine.Score(event, isolated())

			So(score, ShouldEqual, 10)
			So(reasons, ShouldResemble, []string{"Slightly above budget but offers good value"})
		})

		Convey("When the price exceeds the stretched budget", func() {
			event := mismatchedEvent()
			event.Budget = "$2000" // 3000 > 2000*1.2 = 2400
			score, reasons := engine.Score(event, isolated())

			Convey("Then no budget points are awarded", func() {
				So(score, ShouldEqual, 0)
				So(reasons, ShouldBeEmpty)
			})
		})

		Convey("When locations overlap", func() {
			Convey("And the supplier location contains the event location", func() {
				event := mismatchedEvent()
				event.Budget = "$1"
				supplier := isolated()
				supplier.Location = "Downtown Elsewhere"

				score, reasons := engine.Score(event, supplier)
				So(score, ShouldEqual, 15)
				So(reasons, ShouldResemble, []string{"Location match"})
			})

			Convey("And the event location contains the supplier's city", func() {
				event := mismatchedEvent()
				event.Budget = "$1"
				event.Location = "Grand Hotel, Chicago"
				supplier := isolated()
				supplier.Location = "Chicago, IL"

				_, reasons := engine.Score(event, supplier)
				So(reasons, ShouldContain, "Location match")
			})
		})

		Convey("When the supplier is rated", func() {
			supplier := isolated()
			supplier.Rating = 4.8
			supplier.Price = "no listed price" // NaN, skips budget terms
			score, reasons := engine.Score(mismatchedEvent(), supplier)

			Convey("Then rating contributes five points per star", func() {
				So(score, ShouldEqual, 24)
			})

			Convey("And ratings of 4.7 or higher add the annotation only", func() {
				So(reasons, ShouldResemble, []string{"Highly rated service"})
			})
		})

		Convey("When the supplier category matches the inferred categories", func() {
			event := mismatchedEvent()
			event.Budget = "$1"
			event.Name = "Team dinner" // fires the Catering rule
			supplier := isolated()
			supplier.Category = "Catering"
			supplier.Price = "no listed price"

			score, reasons := engine.Score(event, supplier)

			So(score, ShouldEqual, 25)
			So(reasons, ShouldResemble, []string{"Perfect for this type of event"})

			Convey("And a typed event names the type in the reason", func() {
				event.Type = "Corporate"
				_, reasons := engine.Score(event, supplier)
				So(reasons, ShouldResemble, []string{"Perfect for Corporate"})
			})
		})

		Convey("When event keywords appear in supplier tags or description", func() {
			event := mismatchedEvent()
			event.Budget = "$1"
			event.Name = "Wedding gala"
			supplier := isolated()
			supplier.Price = "no listed price"
			supplier.Tags = []string{"Weddings", "outdoor"}
			supplier.Description = "gala specialists since 2010"

			score, reasons := engine.Score(event, supplier)

			Convey("Then each matched keyword adds five points", func() {
				So(score, ShouldEqual, 10) // wedding + gala
				So(reasons, ShouldResemble, []string{"Matches your event needs"})
			})
		})

		Convey("When a venue is priced above ten dollars a head", func() {
			event := mismatchedEvent()
			event.Budget = "$1"
			event.Attendees = 200
			event.Name = "photo day" // fires only the Photography rule
			supplier := isolated()
			supplier.Category = "Venue"
			supplier.Price = "$2100" // > 200*10

			score, reasons := engine.Score(event, supplier)

			So(score, ShouldEqual, 15)
			So(reasons, ShouldResemble, []string{"Can accommodate your guest count"})

			Convey("But not without a currency symbol in the price", func() {
				supplier.Price = "2100"
				score, _ := engine.Score(event, supplier)
				So(score, ShouldEqual, 0)
			})

			Convey("And not for categories outside Venue and Catering", func() {
				supplier.Category = "Transportation"
				score, _ := engine.Score(event, supplier)
				So(score, ShouldEqual, 0)
			})
		})

		Convey("When the price has no digits at all", func() {
			supplier := isolated()
			supplier.Price = "Contact for pricing"
			score, _ := engine.Score(mismatchedEvent(), supplier)

			Convey("Then the score stays finite", func() {
				So(math.IsNaN(score), ShouldBeFalse)
				So(score, ShouldEqual, 0)
			})
		})
	})
}

func TestEngineRecommend(t *testing.T) {
	Convey("Given an engine and a candidate pool", t, func() {
		engine := recommend.NewEngine()
		event := &model.Event{
			Name:      "Annual Corporate Conference",
			Location:  "Grand Hotel, New York",
			Budget:    "$15,000",
			Attendees: 200,
			Type:      "Corporate",
		}

		suppliers := []*model.Supplier{
			{ID: "s-low", Name: "Budget Prints", Category: "Printing", Rating: 3.0, Reviews: 4, Location: "Austin, TX", Price: "$90000"},
			{ID: "s-high", Name: "Gotham Hall", Category: "Venue", Rating: 4.9, Reviews: 210, Location: "New York, NY", Price: "$9,000", Tags: []string{"corporate", "conference"}},
			{ID: "s-mid", Name: "City Catering", Category: "Catering", Rating: 4.2, Reviews: 87, Location: "New York, NY", Price: "$55/person"},
		}

		Convey("When recommendations are requested", func() {
			recs := engine.Recommend(event, suppliers, 2)

			Convey("Then at most limit results come back, best first", func() {
				So(recs, ShouldHaveLength, 2)
				So(recs[0].Supplier.ID, ShouldEqual, "s-high")
				So(recs[0].Score, ShouldBeGreaterThan, recs[1].Score)
			})

			Convey("And every result carries a non-empty reason", func() {
				for _, r := range recs {
					So(r.Reason, ShouldNotBeEmpty)
				}
			})
		})

		Convey("When the limit exceeds the pool", func() {
			recs := engine.Recommend(event, suppliers, 10)
			So(recs, ShouldHaveLength, len(suppliers))
		})

		Convey("When the limit is zero or negative", func() {
			So(engine.Recommend(event, suppliers, 0), ShouldBeEmpty)
			So(engine.Recommend(event, suppliers, -1), ShouldBeEmpty)
		})

		Convey("When there are no candidates", func() {
			So(engine.Recommend(event, nil, 3), ShouldBeEmpty)
		})

		Convey("When scores tie", func() {
			twins := []*model.Supplier{
				{ID: "first", Category: "Photography", Location: "Narnia", Price: "$1000"},
				{ID: "second", Category: "Photography", Location: "Narnia", Price: "$1000"},
			}
			tied := &model.Event{Name: "zzz", Location: "Elsewhere", Budget: "$5000"}
			recs := engine.Recommend(tied, twins, 2)

			Convey("Then the stable sort keeps input order", func() {
				So(recs[0].Supplier.ID, ShouldEqual, "first")
				So(recs[1].Supplier.ID, ShouldEqual, "second")
			})
		})

		Convey("When a supplier triggers no terms", func() {
			lone := &model.Supplier{Category: "Photography", Location: "Narnia", Price: "$99,000", Rating: 3.5, Reviews: 12}
			quiet := &model.Event{Name: "zzz", Location: "Elsewhere", Budget: "$10"}
			recs := engine.Recommend(quiet, []*model.Supplier{lone}, 1)

			Convey("Then the generic category reason is used", func() {
				So(recs[0].Reason, ShouldEqual, "Recommended Photography service. 3.5/5 stars from 12 reviews.")
			})
		})

		Convey("When two reasons are recorded", func() {
			supplier := &model.Supplier{Category: "Photography", Location: "New York, NY", Price: "$1,000", Rating: 4.0, Reviews: 30}
			recs := engine.Recommend(event, []*model.Supplier{supplier}, 1)

			Convey("Then the second is appended lower-cased", func() {
				So(recs[0].Reason, ShouldEqual,
					fmt.Sprintf("Within budget and location match. %.1f/5 stars from %d reviews.", 4.0, 30))
			})
		})
	})
}
