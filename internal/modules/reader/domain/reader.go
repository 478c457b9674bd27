package domain

// Page is one extracted page of a paginated document.
type Page struct {
	Number int
	Text   string
}

// DocumentRef is the reader's view of a library document.
type DocumentRef struct {
	ID          string
	Title       string
	Type        string
	URL         string
	FilePath    string
	NotePath    string
	Percent     float64
	PageCurrent int
	PageTotal   int
}
