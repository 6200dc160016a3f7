// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package media stores user supplied images on an external media host.
//
// The [Uploader] abstraction decouples the services from the backend. Three
// implementations ship with the package:
//   - Cloudinary, over its REST upload and admin APIs (resty);
//   - any S3-compatible object store (aws-sdk-go-v2);
//   - the local filesystem, for development.
//
// Every stored image lives in a folder scoped by the owning entity
// ([OfferFolder], [UserFolder]) so that all images of one offer can be
// removed with a single [Uploader.DeleteFolder] call.
package media

import (
	"context"

	"github.com/MKhiriev/go-vinted/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/media_uploader_mock.go -package=mock

// Uploader stores and removes images on a media host.
type Uploader interface {
	// Upload stores file inside folder and returns the descriptor of the
	// stored resource. The file must be an image; other content yields
	// ErrNotAnImage.
	Upload(ctx context.Context, folder string, file models.ImageFile) (models.Image, error)

	// Delete removes the resource identified by publicID. Deleting a
	// resource that no longer exists is not an error.
	Delete(ctx context.Context, publicID string) error

	// DeleteFolder removes every resource stored under folder.
	DeleteFolder(ctx context.Context, folder string) error
}
