package model

// Resource is a shared learning link.
type Resource struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	URL        string   `json:"url"`
	Categories []string `json:"categories"`
}
