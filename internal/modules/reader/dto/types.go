package dto

type OpenMarkdownInput struct {
	Path string
}

type OpenMarkdownOutput struct {
	Content string
}

type OpenPDFInput struct {
	Path string
	Page int
}

type OpenPDFOutput struct {
	Page      int
	TotalPage int
	Text      string
}

type OpenDocumentInput struct {
	DocumentID     string
	Mode           string
	Page           int
	LaunchExternal bool
}

type OpenResult struct {
	DocumentID       string
	Title            string
	Type             string
	Mode             string
	Page             int
	TotalPage        int
	Content          string
	ExternalTarget   string
	ExternalLaunched bool
	Percent          float64
}

type SavePositionInput struct {
	DocumentID  string
	PageCurrent int
	PageTotal   int
}
