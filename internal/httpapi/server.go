// Package httpapi exposes the catalog over HTTP. Routing and serialization
// live here; all domain behavior is delegated to the service layer.
package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/mesh-intelligence/datascope/internal/service"
	"github.com/mesh-intelligence/datascope/internal/sqlite"
)

// Query parameter bounds. Limits outside [1, maxPageLimit] are clamped, not
// rejected.
const (
	defaultDatasetLimit  = 20
	defaultRecordLimit   = 25
	defaultBookmarkLimit = 20
	maxPageLimit         = 100
)

// headerUserID carries the caller identity on bookmark routes.
const headerUserID = "X-User-Id"

// Server wires the domain services into a Fiber application.
type Server struct {
	app       *fiber.App
	datasets  *service.DatasetService
	records   *service.RecordService
	bookmarks *service.BookmarkService
}

// New builds the HTTP server over an attached backend.
func New(backend *sqlite.Backend) *Server {
	s := &Server{
		datasets:  service.NewDatasetService(backend),
		records:   service.NewRecordService(backend),
		bookmarks: service.NewBookmarkService(backend),
	}

	app := fiber.New(fiber.Config{
		AppName:      "datascope",
		ErrorHandler: errorHandler,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173, http://127.0.0.1:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, " + headerUserID,
		AllowCredentials: true,
	}))

	app.Get("/api/health", s.health)

	v1 := app.Group("/api/v1")
	v1.Get("/datasets", s.listDatasets)
	v1.Get("/datasets/:id", s.getDataset)
	v1.Get("/datasets/:id/records", s.listRecords)
	// The export route must register ahead of the record-detail route so
	// "export" is not captured as a record id.
	v1.Get("/datasets/:id/records/export", s.exportRecords)
	v1.Get("/datasets/:id/records/:recordID", s.getRecord)
	v1.Get("/bookmarks", s.listBookmarks)
	v1.Post("/bookmarks", s.createBookmark)
	v1.Delete("/bookmarks/:id", s.deleteBookmark)

	s.app = app
	return s
}

// App returns the underlying Fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown or a listener error.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// pageParams reads page and limit, applying the route's default limit and
// clamping both into range.
func pageParams(c *fiber.Ctx, defaultLimit int) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
