package validate

// Category is the coarse content class used to select an extraction agent.
type Category string

const (
	CategoryDocuments     Category = "documents"
	CategoryPresentations Category = "presentations"
	CategorySpreadsheets  Category = "spreadsheets"
	CategoryImages        Category = "images"
	CategoryCode          Category = "code"
	CategoryArchives      Category = "archives"
	CategoryMultimedia    Category = "multimedia"
	CategoryMarkup        Category = "markup"
)

// Table maps a normalized (lowercase, dot-prefixed) extension to a category.
type Table map[string]Category

// DefaultTable returns the built-in extension-to-category table.
func DefaultTable() Table {
	return Table{
		".pdf":  CategoryDocuments,
		".doc":  CategoryDocuments,
		".docx": CategoryDocuments,
		".odt":  CategoryDocuments,
		".rtf":  CategoryDocuments,
		".txt":  CategoryDocuments,
		".epub": CategoryDocuments,

		".ppt":  CategoryPresentations,
		".pptx": CategoryPresentations,
		".odp":  CategoryPresentations,
		".key":  CategoryPresentations,

		".xls":  CategorySpreadsheets,
		".xlsx": CategorySpreadsheets,
		".ods":  CategorySpreadsheets,
		".csv":  CategorySpreadsheets,
		".tsv":  CategorySpreadsheets,

		".png":  CategoryImages,
		".jpg":  CategoryImages,
		".jpeg": CategoryImages,
		".gif":  CategoryImages,
		".bmp":  CategoryImages,
		".webp": CategoryImages,
		".svg":  CategoryImages,
		".tiff": CategoryImages,

		".go":    CategoryCode,
		".py":    CategoryCode,
		".js":    CategoryCode,
		".ts":    CategoryCode,
		".jsx":   CategoryCode,
		".tsx":   CategoryCode,
		".java":  CategoryCode,
		".c":     CategoryCode,
		".h":     CategoryCode,
		".cpp":   CategoryCode,
		".hpp":   CategoryCode,
		".cs":    CategoryCode,
		".rb":    CategoryCode,
		".rs":    CategoryCode,
		".php":   CategoryCode,
		".swift": CategoryCode,
		".kt":    CategoryCode,
		".sh":    CategoryCode,
		".sql":   CategoryCode,

		".zip": CategoryArchives,
		".tar": CategoryArchives,
		".gz":  CategoryArchives,
		".bz2": CategoryArchives,
		".xz":  CategoryArchives,
		".rar": CategoryArchives,
		".7z":  CategoryArchives,

		".mp3":  CategoryMultimedia,
		".wav":  CategoryMultimedia,
		".flac": CategoryMultimedia,
		".ogg":  CategoryMultimedia,
		".m4a":  CategoryMultimedia,
		".mp4":  CategoryMultimedia,
		".avi":  CategoryMultimedia,
		".mov":  CategoryMultimedia,
		".mkv":  CategoryMultimedia,
		".webm": CategoryMultimedia,

		".md":       CategoryMarkup,
		".markdown": CategoryMarkup,
		".rst":      CategoryMarkup,
		".html":     CategoryMarkup,
		".htm":      CategoryMarkup,
		".xml":      CategoryMarkup,
		".json":     CategoryMarkup,
		".yaml":     CategoryMarkup,
		".yml":      CategoryMarkup,
		".toml":     CategoryMarkup,
		".tex":      CategoryMarkup,
		".adoc":     CategoryMarkup,
	}
}

// Extensions returns the table's extensions, useful as a discovery allow-list.
func (t Table) Extensions() []string {
	exts := make([]string, 0, len(t))
	for ext := range t {
		exts = append(exts, ext)
	}
	return exts
}
