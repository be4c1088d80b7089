package bibsource

import (
	"regexp"
	"strings"
)

// blockDelimiter marks the start of each source block: a line beginning with
// "Source"/"Fonte", an optional number, and a separator.
var blockDelimiter = regexp.MustCompile(`(?mi)^[ \t]*(?:source|fonte)[ \t]*\d*[ \t]*[:.\-]`)

// fieldLine matches "Label: value" lines inside a block.
var fieldLine = regexp.MustCompile(`^[ \t]*([\p{L} ]+?)[ \t]*[:\-][ \t]*(.+)$`)

// labelSynonyms maps every accepted (lowercased) label to the internal field
// it populates. Both English and Portuguese labels are recognized.
var labelSynonyms = map[string]string{
	"id":            "identifier",
	"identifier":    "identifier",
	"identificador": "identifier",

	"type": "type",
	"tipo": "type",

	"title":  "title",
	"titulo": "title",
	"título": "title",

	"author":  "authors",
	"authors": "authors",
	"autor":   "authors",
	"autores": "authors",

	"publisher": "publisher",
	"editora":   "publisher",
	"editor":    "publisher",

	"year": "year",
	"ano":  "year",

	"url":      "url",
	"link":     "url",
	"endereco": "url",
	"endereço": "url",

	"citation": "citation",
	"citacao":  "citation",
	"citação":  "citation",

	"document":            "document",
	"documento":           "document",
	"origin":              "document",
	"origem":              "document",
	"source document":     "document",
	"documento de origem": "document",
}

var (
	yearPattern = regexp.MustCompile(`(19|20)\d{2}`)
	doiPattern  = regexp.MustCompile(`^(?:doi[:\s]*)?(10\.\d{4,9}/\S+)$`)
)

// Parse splits text into source blocks and extracts the labeled fields of
// each. It never fails: unparseable text simply yields zero records.
func Parse(text string) []Record {
	blocks := splitBlocks(text)
	records := make([]Record, 0, len(blocks))
	for _, block := range blocks {
		records = append(records, parseBlock(block))
	}
	return records
}

// splitBlocks returns the text of each source block, delimiter line included.
func splitBlocks(text string) []string {
	starts := blockDelimiter.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return nil
	}
	blocks := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		block := strings.TrimSpace(text[loc[0]:end])
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// parseBlock extracts labeled fields from one block and applies the
// normalization passes.
func parseBlock(block string) Record {
	rec := newRecord()
	var remainder []string

	lines := strings.Split(block, "\n")
	for i, line := range lines {
		// The delimiter line itself carries no field.
		if i == 0 && blockDelimiter.MatchString(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		m := fieldLine.FindStringSubmatch(trimmed)
		if m == nil {
			remainder = append(remainder, trimmed)
			continue
		}
		label := strings.ToLower(strings.TrimSpace(m[1]))
		value := strings.TrimSpace(m[2])
		field, known := labelSynonyms[label]
		if !known || value == "" {
			remainder = append(remainder, trimmed)
			continue
		}
		setField(&rec, field, value)
	}

	if len(remainder) > 0 {
		rec.Remainder = strings.Join(remainder, "\n")
	}

	normalize(&rec)
	return rec
}

func setField(rec *Record, field, value string) {
	switch field {
	case "identifier":
		rec.Identifier = value
	case "type":
		rec.Type = value
	case "title":
		rec.Title = value
	case "authors":
		rec.Authors = value
	case "publisher":
		rec.Publisher = value
	case "year":
		rec.Year = value
	case "url":
		rec.URL = value
	case "citation":
		rec.Citation = value
	case "document":
		rec.Document = value
	}
}

// normalize applies the post-processing passes: author joining, year
// extraction, DOI expansion, and generic-type re-classification.
func normalize(rec *Record) {
	if rec.Authors != NotAvailable {
		rec.Authors = normalizeAuthors(rec.Authors)
	}
	if rec.Year != NotAvailable {
		if m := yearPattern.FindString(rec.Year); m != "" {
			rec.Year = m
		}
	}
	if rec.URL != NotAvailable {
		if m := doiPattern.FindStringSubmatch(strings.TrimSpace(rec.URL)); m != nil {
			rec.URL = "https://doi.org/" + m[1]
		}
	}
	if isGenericType(rec.Type) {
		if t := Classify(*rec); t != "" {
			rec.Type = t
		}
	}
}

// normalizeAuthors joins authors separated by comma or semicolon with a
// single "; " separator.
func normalizeAuthors(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	if len(authors) == 0 {
		return NotAvailable
	}
	return strings.Join(authors, "; ")
}

func isGenericType(t string) bool {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case NotAvailable, "", "other", "generic", "unknown", "outro", "outros", "geral":
		return true
	}
	return false
}
