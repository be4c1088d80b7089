// Package bibsource parses blocks of richly-tagged bibliographic text into
// source records. Labels are bilingual (English and Portuguese synonyms map
// to the same field) and every missing field defaults to the NotAvailable
// sentinel so downstream formatting never branches on absent keys.
package bibsource

import (
	"fmt"
	"strings"
)

// NotAvailable is the sentinel for fields absent from a source block.
const NotAvailable = "not available"

// Record is a parsed bibliographic source.
type Record struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Authors    string `json:"authors"`
	Publisher  string `json:"publisher"`
	Year       string `json:"year"`
	URL        string `json:"url"`
	Citation   string `json:"citation"`
	Document   string `json:"document"` // originating document
	Remainder  string `json:"remainder"`
}

// newRecord returns a record with every field set to the sentinel.
func newRecord() Record {
	return Record{
		Identifier: NotAvailable,
		Type:       NotAvailable,
		Title:      NotAvailable,
		Authors:    NotAvailable,
		Publisher:  NotAvailable,
		Year:       NotAvailable,
		URL:        NotAvailable,
		Citation:   NotAvailable,
		Document:   NotAvailable,
		Remainder:  NotAvailable,
	}
}

// Name returns a short human-readable reference for the record.
func (r Record) Name() string {
	if r.Title != NotAvailable {
		return r.Title
	}
	if r.Identifier != NotAvailable {
		return r.Identifier
	}
	return "untitled source"
}

// Text renders the record as normalized plain text for indexing.
func (r Record) Text() string {
	var b strings.Builder
	write := func(label, value string) {
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}
	write("Title", r.Title)
	write("Type", r.Type)
	write("Authors", r.Authors)
	write("Publisher", r.Publisher)
	write("Year", r.Year)
	write("URL", r.URL)
	write("Citation", r.Citation)
	write("Document", r.Document)
	if r.Remainder != NotAvailable {
		b.WriteString(r.Remainder)
		b.WriteString("\n")
	}
	return b.String()
}
