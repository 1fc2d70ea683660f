package dto

// ListResponse wraps a collection listing.
type ListResponse[T any] struct {
	Data      []T  `json:"data"`
	FromCache bool `json:"from_cache"`
}

// CreatedResponse reports the id of a new record.
type CreatedResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// UpdatedResponse reports how many records a $set changed.
type UpdatedResponse struct {
	Success       bool  `json:"success"`
	ModifiedCount int64 `json:"modified_count"`
}

// DeletedResponse reports how many records were removed.
type DeletedResponse struct {
	Success      bool  `json:"success"`
	DeletedCount int64 `json:"deleted_count"`
}
