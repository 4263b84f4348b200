package models

// Project represents one portfolio entry
type Project struct {
	Entry
}
