package queue_test

import (
	"context"
	"testing"

	queue "github.com/planora/planora/internal/adapters/mq/queue"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a bounded in-memory queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))

		Convey("When jobs are enqueued", func() {
			So(q.Enqueue(ctx, queue.Job{JobID: "j1", EventID: "e1"}), ShouldBeTrue)
			So(q.Len(ctx), ShouldEqual, 1)

			Convey("Then they come back out in order", func() {
				So(q.Enqueue(ctx, queue.Job{JobID: "j2", EventID: "e2"}), ShouldBeTrue)
				jobs := q.Dequeue(ctx)
				first := <-jobs
				So(first.EventID, ShouldEqual, "e1")
				second := <-jobs
				So(second.EventID, ShouldEqual, "e2")
			})
		})

		Convey("When the queue is full", func() {
			So(q.Enqueue(ctx, queue.Job{JobID: "j1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Job{JobID: "j2"}), ShouldBeTrue)

			Convey("Then enqueue reports backpressure", func() {
				So(q.Enqueue(ctx, queue.Job{JobID: "j3"}), ShouldBeFalse)
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueue is refused", func() {
				So(q.Enqueue(ctx, queue.Job{JobID: "late"}), ShouldBeFalse)
				So(q.IsClosed(), ShouldBeTrue)
			})

			Convey("And closing twice reports the closed state", func() {
				So(q.Close(), ShouldWrap, queue.ErrClosed)
			})

			Convey("And the dequeue channel drains then closes", func() {
				jobs := q.Dequeue(ctx)
				_, open := <-jobs
				So(open, ShouldBeFalse)
			})
		})
	})
}
