// Package dataset loads entity collections from YAML fixture files.
// It stands in for the application's repository layer when the matcher is
// driven from the command line.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/tiermatch/internal/domain/entity"
)

// ErrUnknownOrganization signals a transaction pointing at a missing organization.
var ErrUnknownOrganization = errors.New("unknown organization")

// Dataset is an in-memory snapshot of searchable entities.
type Dataset struct {
	Organizations []*entity.Organization
	Workers       []*entity.Worker
	Transactions  []*entity.Transaction
}

type fileFormat struct {
	Organizations []*entity.Organization `yaml:"organizations"`
	Workers       []*entity.Worker       `yaml:"workers"`
	Transactions  []transactionRecord    `yaml:"transactions"`
}

type transactionRecord struct {
	ID             int64     `yaml:"id"`
	Number         string    `yaml:"number"`
	OrganizationID int64     `yaml:"organization_id"`
	Date           time.Time `yaml:"date"`
	Amount         float64   `yaml:"amount"`
	Notes          string    `yaml:"notes"`
}

// LoadFile reads a dataset from a YAML file.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// Decode reads a dataset from YAML and links transactions to organizations.
// A transaction with organization_id 0 stays unlinked.
func Decode(r io.Reader) (*Dataset, error) {
	var raw fileFormat
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	byID := make(map[int64]*entity.Organization, len(raw.Organizations))
	for _, o := range raw.Organizations {
		if o != nil {
			byID[o.ID] = o
		}
	}

	txns := make([]*entity.Transaction, 0, len(raw.Transactions))
	for _, rec := range raw.Transactions {
		tx := &entity.Transaction{
			ID: rec.ID, Number: rec.Number, Date: rec.Date, Amount: rec.Amount, Notes: rec.Notes,
		}
		if rec.OrganizationID != 0 {
			org, ok := byID[rec.OrganizationID]
			if !ok {
				return nil, fmt.Errorf("transaction %d: %w %d", rec.ID, ErrUnknownOrganization, rec.OrganizationID)
			}
			tx.Organization = org
		}
		txns = append(txns, tx)
	}

	return &Dataset{
		Organizations: raw.Organizations,
		Workers:       raw.Workers,
		Transactions:  txns,
	}, nil
}
