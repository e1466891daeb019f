package internal

type InputType string

const (
	InputPDF  InputType = "pdf"
	InputText InputType = "text"
	InputEML  InputType = "eml"
)

// RawRecord is one lab entry recovered from the portfolio text. The segmenter
// mutates it while it is open and never touches it again once finalized.
type RawRecord struct {
	Name        string `json:"name"`
	Coordinator string `json:"coordinator"`
	Contact     string `json:"contact"`
	Description string `json:"description"`
}

type ImageSource string

const (
	ImageDownloaded  ImageSource = "download"
	ImagePlaceholder ImageSource = "placeholder"
	ImageReused      ImageSource = "reused"
)

type EnrichedRecord struct {
	RawRecord
	ID          string      `json:"id"`
	ImagePath   string      `json:"imagePath"`
	ImageSource ImageSource `json:"imageSource"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Keyword     string      `json:"keyword"`
	Category    string      `json:"category,omitempty"`
}

// SearchResult is a single hit returned by a web search provider.
type SearchResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type RunRow struct {
	ID         string
	Input      string
	StartedAt  string
	FinishedAt string
	Counts     map[string]int
	Timings    map[string]float64
}
