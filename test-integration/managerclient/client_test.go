package integration

import (
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tidwall/gjson"

	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/pkg/manager"
	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/test-integration/managerclient/helpers"
)

func newClient() *manager.Client {
	return manager.New(
		manager.WithTimeout(5*time.Second),
		manager.WithLogger(slog.Default()),
	)
}

var _ = Describe("Status Query", Label("status"), func() {
	var engine *helpers.MockEngine

	AfterEach(func() {
		if engine != nil {
			engine.Close()
			engine = nil
		}
	})

	It("reports an active engine with its hardware profile", func() {
		engine = helpers.NewMockEngineBuilder().
			WithStatus(200, `{"managerRoutesReachable": true, "hardwareProfile": "cuda", "nodeCount": 12}`).
			Build()

		report := newClient().Status(ctx, manager.Endpoint{BaseURL: engine.URL()})

		Expect(report.State).To(Equal(manager.HealthActive))
		Expect(report.HardwareProfile).To(Equal("cuda"))
		Expect(report.NodeCount).To(Equal(12))
	})

	It("reports degraded when manager routes are unreachable", func() {
		engine = helpers.NewMockEngineBuilder().
			WithStatus(200, `{"managerRoutesReachable": false, "hardwareProfile": "cpu", "nodeCount": 3}`).
			Build()

		report := newClient().Status(ctx, manager.Endpoint{BaseURL: engine.URL()})

		Expect(report.State).To(Equal(manager.HealthDegraded))
		Expect(report.HardwareProfile).To(Equal("cpu"))
		Expect(report.NodeCount).To(Equal(3))
	})

	It("reports down when the engine errors", func() {
		engine = helpers.NewMockEngineBuilder().
			WithStatus(500, `{"message": "boom"}`).
			Build()

		report := newClient().Status(ctx, manager.Endpoint{BaseURL: engine.URL()})

		Expect(report.State).To(Equal(manager.HealthDown))
		Expect(report.HardwareProfile).To(Equal("unknown"))
		Expect(report.NodeCount).To(Equal(0))
	})

	It("reports down when the engine is not running", func() {
		engine = helpers.NewMockEngineBuilder().Build()
		url := engine.URL()
		engine.Close()
		engine = nil

		report := newClient().Status(ctx, manager.Endpoint{BaseURL: url})

		Expect(report.State).To(Equal(manager.HealthDown))
	})

	It("authenticates with the configured api key", func() {
		engine = helpers.NewMockEngineBuilder().
			WithAPIKey("sekrit").
			Build()

		withKey := newClient().Status(ctx, manager.Endpoint{BaseURL: engine.URL(), APIKey: "sekrit"})
		Expect(withKey.State).To(Equal(manager.HealthActive))

		withoutKey := newClient().Status(ctx, manager.Endpoint{BaseURL: engine.URL()})
		Expect(withoutKey.State).To(Equal(manager.HealthDown))
	})
})

var _ = Describe("Catalog Query", Label("catalog"), func() {
	var engine *helpers.MockEngine

	catalog := helpers.BuildCatalog([]helpers.CatalogPack{
		{ID: "comfy-image-tools", Title: "Image Tools"},
		{ID: "video-helpers", Title: "Video Helper Suite"},
		{ID: "upscalers", Title: "Super Image Upscalers"},
	})

	AfterEach(func() {
		if engine != nil {
			engine.Close()
			engine = nil
		}
	})

	It("returns the full catalog for an empty query", func() {
		engine = helpers.NewMockEngineBuilder().
			WithCatalog(200, catalog).
			Build()

		report := newClient().Catalog(ctx, manager.Endpoint{BaseURL: engine.URL()}, "")

		Expect(report.PackCount).To(Equal(3))
		parsed := gjson.Parse(report.CatalogJSON)
		Expect(parsed.Get("comfy-image-tools").Exists()).To(BeTrue())
		Expect(parsed.Get("video-helpers").Exists()).To(BeTrue())
		Expect(parsed.Get("upscalers").Exists()).To(BeTrue())
	})

	It("filters case-insensitively over ids and titles", func() {
		engine = helpers.NewMockEngineBuilder().
			WithCatalog(200, catalog).
			Build()

		report := newClient().Catalog(ctx, manager.Endpoint{BaseURL: engine.URL()}, "IMAGE")

		Expect(report.PackCount).To(Equal(2))
		parsed := gjson.Parse(report.CatalogJSON)
		Expect(parsed.Get("comfy-image-tools").Exists()).To(BeTrue())
		Expect(parsed.Get("upscalers").Exists()).To(BeTrue())
		Expect(parsed.Get("video-helpers").Exists()).To(BeFalse())
	})

	It("truncates oversized catalogs but counts every match", func() {
		engine = helpers.NewMockEngineBuilder().
			WithCatalog(200, helpers.LargeCatalog(600, 600)).
			Build()

		report := newClient().Catalog(ctx, manager.Endpoint{BaseURL: engine.URL()}, "")

		Expect(report.PackCount).To(Equal(600))
		Expect(len([]rune(report.CatalogJSON))).To(Equal(manager.MaxCatalogChars))
	})

	It("surfaces engine failures as an error payload", func() {
		engine = helpers.NewMockEngineBuilder().
			WithCatalog(503, `{"message": "warming up"}`).
			Build()

		report := newClient().Catalog(ctx, manager.Endpoint{BaseURL: engine.URL()}, "")

		Expect(report.PackCount).To(Equal(0))
		parsed := gjson.Parse(report.CatalogJSON)
		Expect(parsed.Get("error").String()).To(Equal("HTTP 503"))
		Expect(parsed.Get("details").String()).To(ContainSubstring("warming up"))
	})
})

var _ = Describe("Batch Operation", Label("batch"), func() {
	var engine *helpers.MockEngine

	AfterEach(func() {
		if engine != nil {
			engine.Close()
			engine = nil
		}
	})

	It("posts the expected payload for an install", func() {
		engine = helpers.NewMockEngineBuilder().
			WithBatchResponse(200, `{"queued": 2}`).
			Build()

		report := newClient().BatchOperate(ctx, manager.Endpoint{BaseURL: engine.URL()}, "pack-a, pack-b", manager.ModeInstall)

		Expect(report.OK).To(BeTrue())
		Expect(report.Details).To(Equal(`{"queued": 2}`))

		received := engine.BatchRequests()
		Expect(received).To(HaveLen(1))

		body := gjson.Parse(received[0].Body)
		Expect(body.Get("mode").String()).To(Equal("install"))
		Expect(body.Get("sourceMode").String()).To(Equal("cache"))
		Expect(body.Get("channel").String()).To(Equal("default"))
		Expect(body.Get("items.#").Int()).To(Equal(int64(2)))
		Expect(body.Get("items.0.id").String()).To(Equal("pack-a"))
		Expect(body.Get("items.0.title").String()).To(Equal("pack-a"))
		Expect(body.Get("items.0.__uiKey").String()).To(Equal("pack-a"))
		Expect(body.Get("items.1.id").String()).To(Equal("pack-b"))

		Expect(received[0].Headers.Get("Content-Type")).To(Equal("application/json"))
		Expect(received[0].Headers.Get("X-Request-Id")).NotTo(BeEmpty())
	})

	It("rejects an empty id list without touching the engine", func() {
		engine = helpers.NewMockEngineBuilder().Build()

		report := newClient().BatchOperate(ctx, manager.Endpoint{BaseURL: engine.URL()}, " , ,", manager.ModeUninstall)

		Expect(report.OK).To(BeFalse())
		Expect(report.Details).To(Equal("No pack ids provided."))
		Expect(engine.BatchRequests()).To(BeEmpty())
	})

	It("reports engine failures with their response body", func() {
		engine = helpers.NewMockEngineBuilder().
			WithBatchResponse(500, `{"message": "pack not found"}`).
			Build()

		report := newClient().BatchOperate(ctx, manager.Endpoint{BaseURL: engine.URL()}, "missing-pack", manager.ModeUpdate)

		Expect(report.OK).To(BeFalse())
		parsed := gjson.Parse(report.Details)
		Expect(parsed.Get("error").String()).To(Equal("HTTP 500"))
		Expect(parsed.Get("details").String()).To(ContainSubstring("pack not found"))
	})
})
