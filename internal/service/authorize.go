package service

// CanMutate reports whether the authenticated caller may update or delete
// a resource owned by ownerID: the owner themself or any admin.
func CanMutate(claims *CustomClaims, ownerID int) bool {
	if claims == nil {
		return false
	}
	return claims.UserID == ownerID || claims.IsAdmin()
}
