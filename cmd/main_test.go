package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	"github.com/planora/planora/internal/adapters/http/api"
	"github.com/planora/planora/internal/adapters/http/swagger"
	service "github.com/planora/planora/internal/app"
	"github.com/planora/planora/internal/config"
	"github.com/planora/planora/pkg/logger"
	"github.com/planora/planora/pkg/metrics"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("PLANORA_ADDR", ":8080")
			t.Setenv("PLANORA_QUEUE_SIZE", "1000")
			t.Setenv("PLANORA_WORKER_COUNT", "4")

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithWorkerCount(8),
					service.WithQueueSize(2000),
					service.WithDedupeSize(1000),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc, 25)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should stop when the context expires", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then it should stop when the context expires", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("When testing service metrics update", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.So(func() {
				updateServiceMetrics(svc)
			}, convey.ShouldNotPanic)
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		t.Setenv("PLANORA_ADDR", ":8080")
		t.Setenv("PLANORA_QUEUE_SIZE", "1000")
		t.Setenv("PLANORA_WORKER_COUNT", "2")

		convey.Convey("Then all components should work together", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg, convey.ShouldNotBeNil)

			svc := service.New(
				service.WithWorkerCount(cfg.WorkerCount),
				service.WithQueueSize(cfg.QueueSize),
				service.WithDedupeSize(cfg.DedupeSize),
			)
			convey.So(svc, convey.ShouldNotBeNil)

			server := api.NewServer(svc, svc, cfg.MaxRecommendationLimit)
			convey.So(server, convey.ShouldNotBeNil)

			mux := http.NewServeMux()
			server.Register(ctx, mux)
			swagger.Register(ctx, mux)

			svc.Stop()
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			t.Setenv("PLANORA_WORKER_COUNT", "-1")

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with invalid options", func() {
			convey.Convey("Then service should fall back to defaults", func() {
				svc := service.New(
					service.WithWorkerCount(0),
					service.WithQueueSize(0),
					service.WithDedupeSize(0),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}
