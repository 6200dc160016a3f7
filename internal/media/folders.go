package media

import "path"

// OfferFolder returns the folder holding the images of an offer:
// <namespace>/offers/<offerID>.
func OfferFolder(namespace, offerID string) string {
	return path.Join(namespace, "offers", offerID)
}

// UserFolder returns the folder holding the avatar of a user:
// <namespace>/users/<userID>.
func UserFolder(namespace, userID string) string {
	return path.Join(namespace, "users", userID)
}
