package dedupe_test

import (
	"context"
	"testing"

	"github.com/planora/planora/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a pending-refresh deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		Convey("When an ID is recorded for the first time", func() {
			So(d.SeenAndRecord(ctx, "e1"), ShouldBeFalse)

			Convey("Then a second record is reported as pending", func() {
				So(d.SeenAndRecord(ctx, "e1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And unrecording frees the slot", func() {
				d.Unrecord(ctx, "e1")
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "e1"), ShouldBeFalse)
			})
		})

		Convey("When unrecording an unknown ID", func() {
			d.Unrecord(ctx, "missing")

			Convey("Then the size is unchanged", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When the pending set is bounded", func() {
			bounded := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2))
			So(bounded.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			So(bounded.SeenAndRecord(ctx, "b"), ShouldBeFalse)
			So(bounded.SeenAndRecord(ctx, "c"), ShouldBeFalse)

			Convey("Then the oldest entry is evicted", func() {
				So(bounded.Size(), ShouldEqual, 2)
				So(bounded.SeenAndRecord(ctx, "b"), ShouldBeTrue)
				So(bounded.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(bounded.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			})
		})
	})
}
