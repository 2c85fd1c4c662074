package category

// CategoryItem is the public DTO returned by the category API.
type CategoryItem struct {
	CategoryID int    `json:"categoryId"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Active     bool   `json:"active"`
}
