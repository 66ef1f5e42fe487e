package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mesh-intelligence/datascope/pkg/types"
)

// requireUser extracts the caller identity from the X-User-Id header.
// Surrounding whitespace is trimmed; a blank or absent header is rejected.
func requireUser(c *fiber.Ctx) (string, error) {
	userID := strings.TrimSpace(c.Get(headerUserID))
	if userID == "" {
		return "", types.ErrMissingUser
	}
	return userID, nil
}

func (s *Server) listBookmarks(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c, defaultBookmarkLimit)
	result, err := s.bookmarks.List(userID, c.Query("dataset_id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (s *Server) createBookmark(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var body struct {
		DatasetID string `json:"dataset_id"`
		RecordID  int64  `json:"record_id"`
		Note      string `json:"note"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if body.DatasetID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "dataset_id is required")
	}
	if body.RecordID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "record_id is required")
	}

	// The record must exist under the named dataset before it can be
	// bookmarked; a stray id is a 404, not a dangling reference.
	if _, err := s.records.Get(body.DatasetID, body.RecordID); err != nil {
		return err
	}

	bookmark, err := s.bookmarks.Create(userID, body.DatasetID, body.RecordID, body.Note)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(bookmark)
}

func (s *Server) deleteBookmark(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	bookmarkID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "bookmark id must be an integer")
	}
	if err := s.bookmarks.Delete(userID, int64(bookmarkID)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
