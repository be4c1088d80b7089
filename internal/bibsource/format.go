package bibsource

import "fmt"

// FormatReport is the outcome of a pre-submission format check.
type FormatReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Count    int      `json:"count"` // number of source blocks found
}

// ValidateFormat runs the block-splitting step and reports which blocks are
// missing required fields. It mutates nothing; blocks with problems are still
// parseable (missing fields default to the sentinel).
func ValidateFormat(text string) FormatReport {
	report := FormatReport{}

	blocks := splitBlocks(text)
	report.Count = len(blocks)
	if len(blocks) == 0 {
		report.Errors = append(report.Errors, "no source blocks found: each source must start with a \"Source:\"/\"Fonte:\" line")
		return report
	}

	for i, block := range blocks {
		rec := parseBlock(block)
		n := i + 1
		if rec.Title == NotAvailable {
			report.Errors = append(report.Errors, fmt.Sprintf("block %d: missing required field \"title\"", n))
		}
		if rec.Authors == NotAvailable {
			report.Warnings = append(report.Warnings, fmt.Sprintf("block %d: missing field \"authors\"", n))
		}
		if rec.Year == NotAvailable {
			report.Warnings = append(report.Warnings, fmt.Sprintf("block %d: missing field \"year\"", n))
		}
		if rec.URL == NotAvailable && rec.Citation == NotAvailable {
			report.Warnings = append(report.Warnings, fmt.Sprintf("block %d: neither \"url\" nor \"citation\" present", n))
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}
