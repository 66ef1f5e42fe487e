package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) listDatasets(c *fiber.Ctx) error {
	page, limit := pageParams(c, defaultDatasetLimit)
	result, err := s.datasets.List(c.Query("search"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (s *Server) getDataset(c *fiber.Ctx) error {
	detail, err := s.datasets.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(detail)
}
