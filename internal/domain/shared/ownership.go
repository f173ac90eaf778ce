package shared

// Owned is implemented by every entity that belongs to a single user.
type Owned interface {
	OwnerID() string
}

// Authorize is the single ownership rule of the system: the caller may act on
// a resource only when it is the resource's recorded owner.
func Authorize(resourceOwnerID, callerID string) error {
	if callerID == "" || resourceOwnerID != callerID {
		return NewPermissionError("Sem permissão para acessar este recurso")
	}
	return nil
}

// AuthorizeOwned applies Authorize to an owned entity. A nil resource is denied.
func AuthorizeOwned(resource Owned, callerID string) error {
	if resource == nil {
		return NewPermissionError("Sem permissão para acessar este recurso")
	}
	return Authorize(resource.OwnerID(), callerID)
}
