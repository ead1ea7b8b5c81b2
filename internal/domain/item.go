package domain

// Item is a demo record kept in memory. It exists so workshop
// participants have a trivial CRUD surface to poke at.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateItemRequest is the body of POST /items.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
