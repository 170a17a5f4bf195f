package entities

// Ref points at an author, category or location from a book draft.
// A non-nil ID reuses the existing row; a nil ID asks for a new row named Name.
// For locations an empty Name means "no location".
type Ref struct {
	ID   *uint  `json:"id,omitempty"`
	Name string `json:"name"`
}

type (
	AuthorRef   = Ref
	CategoryRef = Ref
	LocationRef = Ref
)

// BookDraft is the desired state of a book submitted for create or update.
type BookDraft struct {
	Name          string        `json:"name" binding:"required"`
	PublishYear   *int          `json:"publish_year"`
	NumberOfPages *int          `json:"number_of_pages"`
	ImageURL      string        `json:"image_url"`
	Authors       []AuthorRef   `json:"authors"`
	Categories    []CategoryRef `json:"categories"`
	Location      LocationRef   `json:"location"`
}

// BookFilter narrows a book listing. ID takes precedence over Search.
type BookFilter struct {
	Search string
	ID     *uint
}

// ExistingRef builds a Ref to a row that already exists.
func ExistingRef(id uint, name string) Ref {
	return Ref{ID: &id, Name: name}
}

// NewRef builds a Ref that creates a new row on save.
func NewRef(name string) Ref {
	return Ref{Name: name}
}
