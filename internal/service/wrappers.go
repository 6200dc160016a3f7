package service

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// OfferServiceWrapper defines middleware composition for OfferService.
type OfferServiceWrapper interface {
	Wrap(OfferService) OfferService
}
