// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"time"
)

// Offer detail labels, in display order.
const (
	DetailBrand     = "MARQUE"
	DetailSize      = "TAILLE"
	DetailCondition = "ÉTAT"
	DetailColor     = "COULEUR"
	DetailCity      = "EMPLACEMENT"
)

// Offer is a product listing published by a user.
//
// JSON field names keep the legacy "product_*" naming.
type Offer struct {
	// ID is the opaque unique identifier (UUIDv7).
	ID string `json:"_id"`

	// Title is the product name; at most 50 characters.
	Title string `json:"product_name"`

	// Description is the free-text description; at most 500 characters.
	Description string `json:"product_description"`

	// Price is the asking price, between 0 and 100000 inclusive.
	Price float64 `json:"product_price"`

	// Details is the ordered sequence of label→value attributes.
	Details OfferDetails `json:"product_details"`

	// Image is the optional product picture.
	Image *Image `json:"product_image,omitempty"`

	// OwnerID references the user who published the offer.
	OwnerID string `json:"-"`

	// Owner is the owner's public projection, populated on reads.
	Owner *Owner `json:"owner,omitempty"`

	// Version is incremented on every successful update and used for
	// optimistic concurrency control.
	Version int64 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Offer model.
func (o Offer) TableName() string {
	return "offers"
}

// OfferDetail is a single label→value attribute of an offer.
// It is serialised as a one-key JSON object, e.g. {"MARQUE":"Nike"}.
type OfferDetail struct {
	Label string
	Value string
}

// MarshalJSON implements [json.Marshaler].
func (d OfferDetail) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{d.Label: d.Value})
}

// UnmarshalJSON implements [json.Unmarshaler]. The object must contain
// exactly one key.
func (d *OfferDetail) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return errors.New("offer detail must contain exactly one label")
	}
	for k, v := range m {
		d.Label, d.Value = k, v
	}
	return nil
}

// OfferDetails is an ordered list of attributes. Labels may repeat; order is
// significant for display.
type OfferDetails []OfferDetail

// Get returns the value of the first detail with the given label.
func (ds OfferDetails) Get(label string) (string, bool) {
	for _, d := range ds {
		if d.Label == label {
			return d.Value, true
		}
	}
	return "", false
}

// OfferRequest carries the publish/modify form.
type OfferRequest struct {
	Title       string  `validate:"max=50"`
	Description string  `validate:"max=500"`
	Price       float64 `validate:"gte=0,lte=100000"`
	Brand       string
	Size        string
	Condition   string
	Color       string
	City        string

	// Picture is the optional product image.
	Picture *ImageFile `validate:"-"`
}

// Details builds the fixed-schema ordered details of the request.
func (r OfferRequest) Details() OfferDetails {
	return OfferDetails{
		{Label: DetailBrand, Value: r.Brand},
		{Label: DetailSize, Value: r.Size},
		{Label: DetailCondition, Value: r.Condition},
		{Label: DetailColor, Value: r.Color},
		{Label: DetailCity, Value: r.City},
	}
}
