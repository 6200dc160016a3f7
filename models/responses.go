package models

// MessageResponse is the generic JSON body {"message": "..."} used by
// every error response and by several success responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupResponse is the body of a successful signup.
type SignupResponse struct {
	Message string  `json:"message"`
	NewUser Session `json:"newUser"`
}

// ModifyOfferResponse is the body of a successful offer modification.
type ModifyOfferResponse struct {
	Message    string `json:"message"`
	FoundOffer Offer  `json:"foundOffer"`
}
