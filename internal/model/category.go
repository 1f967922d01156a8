package model

// Category is read-only reference data owned by the remote service.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
