package model

type Book struct {
	ID         string `json:"id,omitempty"`
	BookName   string `json:"bookName"`
	AuthorName string `json:"authorName"`
}

// BookStatus is the body returned by every book mutation.
type BookStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
