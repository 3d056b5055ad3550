package repository_test

import (
	"context"
	"fmt"
	"testing"

	repository "github.com/planora/planora/internal/adapters/repository"
	"github.com/planora/planora/internal/domain/model"
	"github.com/planora/planora/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestMemStoreSuppliers(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore(ctx, repository.WithIDGenerator(sequentialIDs()))

		Convey("When a supplier without an ID is stored", func() {
			created, err := store.PutSupplier(ctx, &model.Supplier{Name: "Elite Catering", Category: "Catering"})

			Convey("Then an ID is assigned", func() {
				So(err, ShouldBeNil)
				So(created.ID, ShouldEqual, "id-1")
			})

			Convey("And it can be read back", func() {
				got, err := store.Supplier(ctx, created.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Elite Catering")
			})

			Convey("And mutating the returned value does not touch the store", func() {
				got, _ := store.Supplier(ctx, created.ID)
				got.Name = "changed"
				again, _ := store.Supplier(ctx, created.ID)
				So(again.Name, ShouldEqual, "Elite Catering")
			})
		})

		Convey("When several suppliers are stored", func() {
			_, _ = store.PutSupplier(ctx, &model.Supplier{Name: "Elite Catering", Category: "Catering", Location: "New York, NY", Tags: []string{"gourmet"}})
			_, _ = store.PutSupplier(ctx, &model.Supplier{Name: "Sound Masters", Category: "Audio/Visual", Location: "Chicago, IL"})
			_, _ = store.PutSupplier(ctx, &model.Supplier{Name: "City Lights Venue", Category: "Venue", Location: "New York, NY", Description: "rooftop venue"})

			Convey("Then listing preserves insertion order", func() {
				all, err := store.Suppliers(ctx, repository.SupplierFilter{})
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 3)
				So(all[0].Name, ShouldEqual, "Elite Catering")
				So(all[2].Name, ShouldEqual, "City Lights Venue")
			})

			Convey("And the category filter narrows exactly", func() {
				venues, _ := store.Suppliers(ctx, repository.SupplierFilter{Category: "Venue"})
				So(venues, ShouldHaveLength, 1)
				So(venues[0].Name, ShouldEqual, "City Lights Venue")
			})

			Convey("And the location filter is a case-folded substring", func() {
				ny, _ := store.Suppliers(ctx, repository.SupplierFilter{Location: "new york"})
				So(ny, ShouldHaveLength, 2)
			})

			Convey("And free-text search covers name, description and tags", func() {
				hits, _ := store.Suppliers(ctx, repository.SupplierFilter{Search: "rooftop"})
				So(hits, ShouldHaveLength, 1)
				hits, _ = store.Suppliers(ctx, repository.SupplierFilter{Search: "gourmet"})
				So(hits, ShouldHaveLength, 1)
			})
		})

		Convey("When a supplier is deleted", func() {
			created, _ := store.PutSupplier(ctx, &model.Supplier{Name: "Gone Soon"})
			So(store.DeleteSupplier(ctx, created.ID), ShouldBeNil)

			Convey("Then reads report not found", func() {
				_, err := store.Supplier(ctx, created.ID)
				So(err, ShouldEqual, repository.ErrNotFound)
			})

			Convey("And deleting again reports not found", func() {
				So(store.DeleteSupplier(ctx, created.ID), ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When reading an unknown id", func() {
			_, err := store.Supplier(ctx, "missing")
			So(err, ShouldEqual, repository.ErrNotFound)
		})
	})
}

func TestMemStoreEventsAndOffers(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore(ctx, repository.WithIDGenerator(sequentialIDs()))

		Convey("When events are stored and updated", func() {
			created, err := store.PutEvent(ctx, &model.Event{Name: "Launch Party", Status: model.EventPlanning})
			So(err, ShouldBeNil)

			created.Status = model.EventConfirmed
			_, err = store.PutEvent(ctx, created)
			So(err, ShouldBeNil)

			Convey("Then the update replaces in place without reordering", func() {
				events, _ := store.Events(ctx)
				So(events, ShouldHaveLength, 1)
				So(events[0].Status, ShouldEqual, model.EventConfirmed)
			})
		})

		Convey("When offers are filtered by status", func() {
			_, _ = store.PutOffer(ctx, &model.Offer{SupplierName: "Elite Catering", Status: model.OfferPending})
			_, _ = store.PutOffer(ctx, &model.Offer{SupplierName: "Sound Masters", Status: model.OfferApproved})

			pending, err := store.Offers(ctx, model.OfferPending)
			So(err, ShouldBeNil)
			So(pending, ShouldHaveLength, 1)
			So(pending[0].SupplierName, ShouldEqual, "Elite Catering")

			all, _ := store.Offers(ctx, "")
			So(all, ShouldHaveLength, 2)
		})

		Convey("When an event is deleted", func() {
			created, _ := store.PutEvent(ctx, &model.Event{Name: "Doomed"})
			_ = store.PutRecommendations(ctx, created.ID, []types.Recommendation{{SupplierID: "s1"}})

			So(store.DeleteEvent(ctx, created.ID), ShouldBeNil)

			Convey("Then its cached recommendations go with it", func() {
				_, ok := store.Recommendations(ctx, created.ID)
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestMemStoreRecommendationCache(t *testing.T) {
	Convey("Given a store with a cached recommendation set", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore(ctx)
		recs := []types.Recommendation{
			{SupplierID: "s1", Score: 80, Reason: "Within budget. 4.5/5 stars from 10 reviews."},
			{SupplierID: "s2", Score: 60, Reason: "Location match. 4.0/5 stars from 3 reviews."},
		}
		So(store.PutRecommendations(ctx, "e1", recs), ShouldBeNil)

		Convey("When the cache is read", func() {
			got, ok := store.Recommendations(ctx, "e1")
			So(ok, ShouldBeTrue)
			So(got, ShouldResemble, recs)
		})

		Convey("When one event is invalidated", func() {
			store.InvalidateRecommendations(ctx, "e1")
			_, ok := store.Recommendations(ctx, "e1")
			So(ok, ShouldBeFalse)
		})

		Convey("When the whole cache is invalidated", func() {
			_ = store.PutRecommendations(ctx, "e2", recs)
			store.InvalidateRecommendations(ctx, "")
			_, ok := store.Recommendations(ctx, "e1")
			So(ok, ShouldBeFalse)
			_, ok = store.Recommendations(ctx, "e2")
			So(ok, ShouldBeFalse)
		})

		Convey("When an unknown event is read", func() {
			_, ok := store.Recommendations(ctx, "nope")
			So(ok, ShouldBeFalse)
		})
	})
}
