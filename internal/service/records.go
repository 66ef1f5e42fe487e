package service

import (
	"fmt"

	"github.com/mesh-intelligence/datascope/internal/sqlite"
	"github.com/mesh-intelligence/datascope/pkg/types"
)

// RecordService serves paginated record listing and single-record detail.
type RecordService struct {
	backend *sqlite.Backend
}

// NewRecordService creates a RecordService over the given backend.
func NewRecordService(backend *sqlite.Backend) *RecordService {
	return &RecordService{backend: backend}
}

// List parses the filter string and returns one page of matching records.
// Malformed filter clauses and sort specs degrade silently rather than
// failing the request.
func (s *RecordService) List(datasetID string, page, limit int, search, sort, filterStr string) (*types.RecordPage, error) {
	items, total, err := s.backend.Records().List(sqlite.RecordQuery{
		DatasetID: datasetID,
		Search:    search,
		Sort:      sort,
		Filters:   ParseFilterString(filterStr),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing records of dataset %s: %w", datasetID, err)
	}
	if items == nil {
		items = []types.Record{}
	}
	return &types.RecordPage{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// Get returns one record by its compound (dataset, record) key. A record id
// that exists under a different dataset is ErrNotFound.
func (s *RecordService) Get(datasetID string, recordID int64) (*types.Record, error) {
	return s.backend.Records().Get(datasetID, recordID)
}
