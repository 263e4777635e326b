// Package entity holds the business records the matcher searches over.
// Records are supplied by the caller and never modified.
package entity

import "time"

// Organization is a client company.
type Organization struct {
	ID             int64  `yaml:"id" json:"id"`
	Name           string `yaml:"name" json:"name"`
	TaxID          string `yaml:"tax_id" json:"tax_id"`
	SecondaryTaxID string `yaml:"secondary_tax_id" json:"secondary_tax_id"`
	Address        string `yaml:"address" json:"address"`
	ContactPerson  string `yaml:"contact_person" json:"contact_person"`
}

// Worker is a person employed through an organization.
type Worker struct {
	ID             int64       `yaml:"id" json:"id"`
	OrganizationID int64       `yaml:"organization_id" json:"organization_id"`
	Name           string      `yaml:"name" json:"name"`
	Passport       string      `yaml:"passport" json:"passport"`
	Gender         string      `yaml:"gender" json:"gender"`
	Division       string      `yaml:"division" json:"division"`
	Dependents     []Dependent `yaml:"dependents" json:"dependents,omitempty"`
}

// ActiveDependents returns the dependents that are currently active, in order.
func (w *Worker) ActiveDependents() []Dependent {
	active := make([]Dependent, 0, len(w.Dependents))
	for _, d := range w.Dependents {
		if d.Active {
			active = append(active, d)
		}
	}
	return active
}

// Dependent is a family member registered under a worker.
type Dependent struct {
	ID           int64  `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Relationship string `yaml:"relationship" json:"relationship"`
	Passport     string `yaml:"passport" json:"passport"`
	Gender       string `yaml:"gender" json:"gender"`
	Active       bool   `yaml:"active" json:"active"`
}

// Transaction is an invoice or payment record tied to an organization.
type Transaction struct {
	ID           int64         `yaml:"id" json:"id"`
	Number       string        `yaml:"number" json:"number"`
	Organization *Organization `yaml:"organization" json:"organization,omitempty"`
	Date         time.Time     `yaml:"date" json:"date"`
	Amount       float64       `yaml:"amount" json:"amount"`
	Notes        string        `yaml:"notes" json:"notes"`
}

// OrganizationName returns the name of the linked organization, or "" when unlinked.
func (t *Transaction) OrganizationName() string {
	if t.Organization == nil {
		return ""
	}
	return t.Organization.Name
}
