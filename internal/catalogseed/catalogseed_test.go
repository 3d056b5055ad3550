package catalogseed_test

import (
	"context"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/planora/planora/internal/adapters/repository"
	service "github.com/planora/planora/internal/app"
	"github.com/planora/planora/internal/catalogseed"
	"github.com/planora/planora/internal/domain/model"
	"github.com/planora/planora/internal/domain/recommend"
	"github.com/planora/planora/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestSeed(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(1), service.WithQueueSize(64))
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		Convey("Seeding loads the demo catalog", func() {
			So(catalogseed.Seed(ctx, svc), ShouldBeNil)

			suppliers, err := svc.Suppliers(ctx, repository.SupplierFilter{})
			So(err, ShouldBeNil)
			So(len(suppliers), ShouldEqual, len(catalogseed.Suppliers()))

			events, err := svc.Events(ctx)
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, len(catalogseed.Events()))

			Convey("The first event has a supplier attached", func() {
				So(events[0].SupplierIDs, ShouldHaveLength, 1)
			})

			Convey("Seeded data is enough to recommend against", func() {
				recs, err := svc.RecommendationsFor(ctx, events[1].ID, recommend.DefaultLimit)
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, recommend.DefaultLimit)
				So(recs[0].Score, ShouldBeGreaterThanOrEqualTo, recs[len(recs)-1].Score)
			})
		})

		Convey("Seeding stops on the first failing insert", func() {
			err := catalogseed.Seed(ctx, failingCatalog{svc: svc})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestGenerate(t *testing.T) {
	Convey("Given the bulk supplier generator", t, func() {
		Convey("It is deterministic for a given count", func() {
			first := catalogseed.Generate(12)
			second := catalogseed.Generate(12)
			So(first, ShouldHaveLength, 12)
			for i := range first {
				So(first[i].Name, ShouldEqual, second[i].Name)
				So(first[i].Rating, ShouldEqual, second[i].Rating)
			}
		})

		Convey("Generated profiles stay within catalog bounds", func() {
			for _, s := range catalogseed.Generate(40) {
				So(s.Name, ShouldNotBeBlank)
				So(s.Category, ShouldNotBeBlank)
				So(s.Rating, ShouldBeBetweenOrEqual, 0, 5)
				So(s.Reviews, ShouldBeGreaterThanOrEqualTo, 0)
			}
		})

		Convey("Zero or negative counts yield nothing", func() {
			So(catalogseed.Generate(0), ShouldBeEmpty)
			So(catalogseed.Generate(-3), ShouldBeEmpty)
		})
	})
}

// failingCatalog rejects every supplier to exercise the error path.
type failingCatalog struct {
	svc *service.Service
}

func (f failingCatalog) CreateSupplier(_ context.Context, _ *model.Supplier) (*model.Supplier, error) {
	return nil, context.Canceled
}

func (f failingCatalog) CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error) {
	return f.svc.CreateEvent(ctx, e)
}

func (f failingCatalog) AttachSupplier(ctx context.Context, eventID, supplierID string) (*model.Event, error) {
	return f.svc.AttachSupplier(ctx, eventID, supplierID)
}
