package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/kailas-cloud/tiermatch"
)

// table is a rendered search result: rows for the terminal and records for JSON.
type table struct {
	header  []string
	rows    [][]string
	records []record
}

// record is the JSON form of one result.
type record struct {
	Rank        int                   `json:"rank"`
	MatchType   tiermatch.MatchType   `json:"match_type"`
	MatchedText string                `json:"matched_text"`
	Kind        string                `json:"kind"`
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Projection  *tiermatch.Projection `json:"projection,omitempty"`
	Fields      map[string]string     `json:"fields,omitempty"`
}

func (t table) render(w io.Writer) {
	if len(t.rows) == 0 {
		fmt.Fprintln(w, color.New(color.Faint).Sprint("No matches"))
		return
	}

	tbl := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	tbl.Header(t.header)
	_ = tbl.Bulk(t.rows)
	_ = tbl.Render()
}

func (t table) writeJSON(w io.Writer) error {
	records := t.records
	if records == nil {
		records = []record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

// tierColor paints a match tier by strength.
func tierColor(t tiermatch.MatchType) string {
	var c *color.Color
	switch t {
	case tiermatch.ExactFullMatch, tiermatch.ExactWordMatch:
		c = color.New(color.FgGreen, color.Bold)
	case tiermatch.StartsWith, tiermatch.Contains, tiermatch.MultiWordMatch:
		c = color.New(color.FgCyan)
	case tiermatch.FuzzyMatch:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgMagenta)
	}
	return c.Sprint(t.String())
}

func organizationTable(results []tiermatch.Result[*tiermatch.Organization]) table {
	t := table{header: []string{"Rank", "Tier", "Name", "Tax ID", "Contact", "Matched"}}
	for i := range results {
		r := &results[i]
		o := r.Item()
		t.rows = append(t.rows, []string{
			strconv.Itoa(r.Rank()), tierColor(r.MatchType()), o.Name, o.TaxID, o.ContactPerson, r.MatchedText(),
		})
		t.records = append(t.records, record{
			Rank: r.Rank(), MatchType: r.MatchType(), MatchedText: r.MatchedText(),
			Kind: r.Kind().String(), ID: o.ID, Name: o.Name,
			Fields: map[string]string{"tax_id": o.TaxID, "address": o.Address},
		})
	}
	return t
}

func workerTable(results []tiermatch.Result[*tiermatch.Worker]) table {
	t := table{header: []string{"Rank", "Tier", "Name", "Kind", "Passport", "Division", "Matched"}}
	for i := range results {
		r := &results[i]
		w := r.Item()
		rec := record{
			Rank: r.Rank(), MatchType: r.MatchType(), MatchedText: r.MatchedText(),
			Kind: r.Kind().String(), ID: w.ID, Name: tiermatch.DisplayName(r),
			Fields: map[string]string{"division": w.Division},
		}
		passport := w.Passport
		if p, ok := r.Projection(); ok {
			passport = p.Passport
			rec.Projection = &p
		}
		t.rows = append(t.rows, []string{
			strconv.Itoa(r.Rank()), tierColor(r.MatchType()), rec.Name, rec.Kind, passport, w.Division, r.MatchedText(),
		})
		t.records = append(t.records, rec)
	}
	return t
}

func transactionTable(results []tiermatch.Result[*tiermatch.Transaction]) table {
	t := table{header: []string{"Rank", "Tier", "Number", "Date", "Organization", "Amount", "Matched"}}
	for i := range results {
		r := &results[i]
		tx := r.Item()
		date := ""
		if !tx.Date.IsZero() {
			date = tx.Date.Format("2006-01-02")
		}
		amount := strconv.FormatFloat(tx.Amount, 'f', 2, 64)
		t.rows = append(t.rows, []string{
			strconv.Itoa(r.Rank()), tierColor(r.MatchType()), tx.Number, date, tx.OrganizationName(), amount, r.MatchedText(),
		})
		t.records = append(t.records, record{
			Rank: r.Rank(), MatchType: r.MatchType(), MatchedText: r.MatchedText(),
			Kind: r.Kind().String(), ID: tx.ID, Name: tx.Number,
			Fields: map[string]string{"date": date, "organization": tx.OrganizationName(), "amount": amount},
		})
	}
	return t
}
