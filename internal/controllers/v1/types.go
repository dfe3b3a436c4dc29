package v1

import (
	ll_uuid "github.com/ledgerlight/backend/internal/uuid"
)

type URIID struct {
	ID ll_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIName struct {
	Name string `uri:"name" binding:"required"` // Name of the category
}
