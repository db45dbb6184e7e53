package models

import "time"

// Project is metadata only, immutable after initialization.
type Project struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is the whole persisted state. It is both the durability format
// and the wire format for the state endpoint.
type Document struct {
	Project Project `json:"project"`
	Users   []User  `json:"users"`
	Entries []Entry `json:"entries"`
}
