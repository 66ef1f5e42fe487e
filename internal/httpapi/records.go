package httpapi

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) listRecords(c *fiber.Ctx) error {
	page, limit := pageParams(c, defaultRecordLimit)
	result, err := s.records.List(c.Params("id"), page, limit,
		c.Query("search"), c.Query("sort"), c.Query("filter"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (s *Server) getRecord(c *fiber.Ctx) error {
	recordID, err := c.ParamsInt("recordID")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "record id must be an integer")
	}
	record, err := s.records.Get(c.Params("id"), int64(recordID))
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (s *Server) exportRecords(c *fiber.Ctx) error {
	datasetID := c.Params("id")

	// The export is buffered so a mid-scan failure surfaces as an error
	// response instead of a truncated download.
	var buf bytes.Buffer
	err := s.records.ExportCSV(&buf, datasetID,
		c.Query("search"), c.Query("sort"), c.Query("filter"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", datasetID+"_export.csv"))
	return c.Send(buf.Bytes())
}
