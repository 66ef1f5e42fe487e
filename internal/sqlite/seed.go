// Demo-data seeding for local development. Produces the three demo datasets
// (genes, assays, experiments) with randomized payloads; the schema stats
// engine is run separately after seeding.
package sqlite

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Demo dataset sizes.
const (
	geneRows       = 3000
	assayRows      = 2000
	experimentRows = 2500
)

var geneSymbols = []string{"TP53", "BRCA1", "EGFR", "MYC", "KRAS"}

// Payload shapes are structs rather than maps so the serialized key order is
// stable; CSV export derives its header from the first record's key order.
type genePayload struct {
	Symbol          string  `json:"symbol"`
	EnsemblID       string  `json:"ensembl_id"`
	Length          int     `json:"length"`
	GCContent       float64 `json:"gc_content"`
	IsProteinCoding bool    `json:"is_protein_coding"`
}

type assayPayload struct {
	Name       string  `json:"name"`
	Platform   string  `json:"platform"`
	ReadLength int     `json:"read_length"`
	Coverage   float64 `json:"coverage"`
	Date       string  `json:"date"`
}

type experimentPayload struct {
	GeneSymbol string  `json:"gene_symbol"`
	Condition  string  `json:"condition"`
	Value      float64 `json:"value"`
	PValue     float64 `json:"pvalue"`
	Date       string  `json:"date"`
}

func randomGenePayload() any {
	return genePayload{
		Symbol:          pick(geneSymbols),
		EnsemblID:       fmt.Sprintf("ENSG%010d", rand.Int64N(9000000000)+1000000000),
		Length:          rand.IntN(19501) + 500,
		GCContent:       roundTo(0.3+rand.Float64()*0.4, 2),
		IsProteinCoding: rand.IntN(2) == 0,
	}
}

func randomAssayPayload() any {
	return assayPayload{
		Name:       pick([]string{"RNA-seq", "WGS", "ChIP-seq", "ATAC-seq"}),
		Platform:   pick([]string{"Illumina", "Nanopore", "PacBio"}),
		ReadLength: pick([]int{75, 100, 150, 250}),
		Coverage:   roundTo(10+rand.Float64()*90, 1),
		Date:       randomDate(),
	}
}

func randomExperimentPayload() any {
	return experimentPayload{
		GeneSymbol: pick(geneSymbols),
		Condition:  pick([]string{"control", "treated", "knockout"}),
		Value:      roundTo(-2+rand.Float64()*4, 3),
		PValue:     roundTo(math.Pow(10, -6+rand.Float64()*5), 6),
		Date:       randomDate(),
	}
}

// SeedDemoData wipes any existing data and loads the demo datasets.
// Idempotent across runs: each run starts from an empty catalog.
func SeedDemoData(b *Backend) ([]string, error) {
	if err := resetDemoData(b); err != nil {
		return nil, err
	}

	seeds := []struct {
		name        string
		description string
		rows        int
		payloadFn   func() any
	}{
		{"genes", "Human genes", geneRows, randomGenePayload},
		{"assays", "Sequencing assays", assayRows, randomAssayPayload},
		{"experiments", "Gene expression experiments", experimentRows, randomExperimentPayload},
	}

	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, s := range seeds {
		dataset, err := b.Datasets().Insert(s.name, s.description)
		if err != nil {
			return nil, fmt.Errorf("seeding dataset %s: %w", s.name, err)
		}

		// One transaction per dataset keeps the several thousand inserts off
		// the per-statement autocommit path.
		tx, err := db.Begin()
		if err != nil {
			return nil, fmt.Errorf("beginning seed transaction: %w", err)
		}
		for i := 0; i < s.rows; i++ {
			payload, err := json.Marshal(s.payloadFn())
			if err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("encoding %s payload: %w", s.name, err)
			}
			if _, err := tx.Exec(
				"INSERT INTO records (dataset_id, payload) VALUES (?, ?)",
				dataset.ID, string(payload),
			); err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("seeding %s records: %w", s.name, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("committing %s seed: %w", s.name, err)
		}
		names = append(names, s.name)
	}
	return names, nil
}

// resetDemoData removes all catalog data, children first.
func resetDemoData(b *Backend) error {
	db, err := b.handle()
	if err != nil {
		return err
	}
	for _, table := range []string{"bookmarks", "dataset_fields", "records", "datasets"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

func pick[T any](options []T) T {
	return options[rand.IntN(len(options))]
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}

func randomDate() string {
	year := 2018 + rand.IntN(8)
	month := time.Month(rand.IntN(12) + 1)
	day := rand.IntN(28) + 1
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
