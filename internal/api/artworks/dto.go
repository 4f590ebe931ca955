package artworks

// ---------- requests

type ArtworkRequest struct {
	Title      string   `json:"title"`
	Year       string   `json:"year"`
	Artists    []string `json:"artists"`
	Category   string   `json:"category"`
	Technique  string   `json:"technique"`
	Dimensions string   `json:"dimensions"`
	Location   string   `json:"location"`
	Price      string   `json:"price"`
	ImageRef   string   `json:"image_ref"`
}

type SearchRequest struct {
	Title        string   `json:"title"`
	Year         string   `json:"year"`
	Technique    string   `json:"technique"`
	Category     string   `json:"category"`
	Status       string   `json:"status"`
	Location     string   `json:"location"`
	Price        string   `json:"price"`
	RegisteredAt string   `json:"registered_at"`
	Artists      []string `json:"artists"`
	Clients      []string `json:"clients"`
}
