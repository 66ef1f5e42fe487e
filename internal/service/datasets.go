package service

import (
	"fmt"

	"github.com/mesh-intelligence/datascope/internal/sqlite"
	"github.com/mesh-intelligence/datascope/pkg/types"
)

// DatasetService serves dataset listing and detail.
type DatasetService struct {
	backend *sqlite.Backend
}

// NewDatasetService creates a DatasetService over the given backend.
func NewDatasetService(backend *sqlite.Backend) *DatasetService {
	return &DatasetService{backend: backend}
}

// List returns one page of datasets, optionally narrowed by a name search.
func (s *DatasetService) List(search string, page, limit int) (*types.DatasetPage, error) {
	items, total, err := s.backend.Datasets().List(search, page, limit)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	if items == nil {
		items = []types.Dataset{}
	}
	return &types.DatasetPage{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// Get returns a dataset with its field statistics. Returns ErrNotFound when
// the dataset does not exist.
func (s *DatasetService) Get(datasetID string) (*types.DatasetDetail, error) {
	dataset, err := s.backend.Datasets().Get(datasetID)
	if err != nil {
		return nil, err
	}
	fields, err := s.backend.Datasets().Fields(datasetID)
	if err != nil {
		return nil, fmt.Errorf("loading fields for dataset %s: %w", datasetID, err)
	}
	if fields == nil {
		fields = []types.DatasetField{}
	}
	return &types.DatasetDetail{Dataset: *dataset, Fields: fields}, nil
}
