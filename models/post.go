package models

// Post represents one blog article
type Post struct {
	Entry
}
