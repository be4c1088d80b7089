package bibsource

import "strings"

// academicDomains are URL fragments implying a peer-reviewed article.
var academicDomains = []string{
	"doi.org", "dl.acm.org", "ieee.org", "ieeexplore", "springer",
	"sciencedirect", "arxiv.org", "scielo", "jstor.org", "nature.com",
	"researchgate.net", "semanticscholar.org",
}

// codeHostingDomains are URL fragments implying a software tool.
var codeHostingDomains = []string{
	"github.com", "gitlab.com", "bitbucket.org", "sourceforge.net",
	"pypi.org", "npmjs.com", "crates.io", "pkg.go.dev",
}

// Classify derives a concrete type for a source whose declared type is
// generic, using heuristics over its URL, title, and publisher. Returns ""
// when no heuristic applies.
func Classify(rec Record) string {
	url := strings.ToLower(rec.URL)
	title := strings.ToLower(rec.Title)
	publisher := strings.ToLower(rec.Publisher)

	if rec.URL != NotAvailable {
		for _, domain := range academicDomains {
			if strings.Contains(url, domain) {
				return "article"
			}
		}
		for _, domain := range codeHostingDomains {
			if strings.Contains(url, domain) {
				return "software"
			}
		}
		if strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be") || strings.Contains(url, "vimeo.com") {
			return "video"
		}
		if strings.HasSuffix(url, ".pdf") {
			return "document"
		}
	}

	for _, marker := range []string{"proceedings", "conference", "symposium", "anais", "congresso"} {
		if strings.Contains(title, marker) || strings.Contains(publisher, marker) {
			return "paper"
		}
	}
	for _, marker := range []string{"university press", "editora", "press", "publishing"} {
		if strings.Contains(publisher, marker) {
			return "book"
		}
	}
	if rec.URL != NotAvailable {
		return "website"
	}
	return ""
}
