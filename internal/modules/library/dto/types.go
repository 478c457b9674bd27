package dto

type IngestFileInput struct {
	Path    string
	Type    string
	Title   string
	Authors []string
	Tags    []string
}

type IngestURLInput struct {
	URL     string
	Type    string
	Title   string
	Authors []string
	Tags    []string
}

type UpdateProgressInput struct {
	DocumentID  string
	Percent     float64
	PageCurrent int
	PageTotal   int
}

type DocumentOutput struct {
	ID       string
	Title    string
	Type     string
	Percent  float64
	NotePath string
}

type DocumentDetailOutput struct {
	ID          string
	Title       string
	Type        string
	Authors     []string
	URL         string
	FilePath    string
	NotePath    string
	Status      string
	Percent     float64
	PageCurrent int
	PageTotal   int
	Tags        []string
}
