package services

import (
	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/models"
)

// Policy decides who may change content
type Policy struct {
	adminIDs map[string]struct{}
}

// NewPolicy creates a policy granting edit rights to the given identity ids
func NewPolicy(adminIDs []string) Policy {
	ids := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = struct{}{}
	}
	return Policy{adminIDs: ids}
}

// IsAdmin reports whether identity is one of the configured admins
func (p Policy) IsAdmin(identity *dto.Identity) bool {
	if identity == nil {
		return false
	}
	_, ok := p.adminIDs[identity.ID]
	return ok
}

// CanEdit reports whether identity may edit entry. Every admin may edit every entry.
func (p Policy) CanEdit(identity *dto.Identity, entry *models.Entry) bool {
	return entry != nil && p.IsAdmin(identity)
}
