// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-vinted/internal/config"
	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/models"
)

// maxPrefixPages caps the number of admin API round trips of a single
// DeleteFolder call.
const maxPrefixPages = 100

type cloudinaryUploader struct {
	client    *resty.Client
	cloudName string
	apiKey    string
	apiSecret string
	now       func() time.Time
	logger    *logger.Logger
}

type cloudinaryUploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

type cloudinaryDestroyResponse struct {
	Result string `json:"result"`
}

type cloudinaryDeleteResourcesResponse struct {
	Deleted    map[string]string `json:"deleted"`
	Partial    bool              `json:"partial"`
	NextCursor string            `json:"next_cursor"`
}

// NewCloudinaryUploader returns an [Uploader] backed by the Cloudinary
// upload and admin APIs.
func NewCloudinaryUploader(cfg config.Cloudinary, timeout time.Duration, log *logger.Logger) (Uploader, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("%w: cloudinary credentials are incomplete", ErrUnauthorized)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com"
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/") + "/v1_1/" + cfg.CloudName).
		SetTimeout(timeout)

	return &cloudinaryUploader{
		client:    cli,
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		now:       time.Now,
		logger:    log,
	}, nil
}

func (c *cloudinaryUploader) Upload(ctx context.Context, folder string, file models.ImageFile) (models.Image, error) {
	prepared, err := prepare(file)
	if err != nil {
		return models.Image{}, err
	}

	params := map[string]string{
		"folder":    folder,
		"public_id": prepared.name,
		"timestamp": c.timestamp(),
	}

	var result cloudinaryUploadResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(c.signed(params)).
		SetFileReader("file", prepared.name+prepared.ext, bytes.NewReader(prepared.data)).
		SetResult(&result).
		Post("/image/upload")
	if err != nil {
		return models.Image{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Image{}, err
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}

	c.logger.Debug().Str("public_id", result.PublicID).Msg("image uploaded to cloudinary")
	return models.Image{URL: url, PublicID: result.PublicID}, nil
}

func (c *cloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return ErrInvalidPublicID
	}

	params := map[string]string{
		"public_id": publicID,
		"timestamp": c.timestamp(),
	}

	var result cloudinaryDestroyResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(c.signed(params)).
		SetResult(&result).
		Post("/image/destroy")
	if err != nil {
		return fmt.Errorf("destroy request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	switch result.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("%w: destroy result %q", ErrBadRequest, result.Result)
	}
}

// DeleteFolder removes every image whose public id starts with folder.
// The admin API deletes in batches and reports partial progress through
// next_cursor.
func (c *cloudinaryUploader) DeleteFolder(ctx context.Context, folder string) error {
	prefix := strings.TrimRight(folder, "/")
	if prefix == "" {
		return ErrInvalidPublicID
	}
	prefix += "/"

	cursor := ""
	for range maxPrefixPages {
		var result cloudinaryDeleteResourcesResponse
		req := c.client.R().
			SetContext(ctx).
			SetBasicAuth(c.apiKey, c.apiSecret).
			SetQueryParam("prefix", prefix).
			SetResult(&result)
		if cursor != "" {
			req.SetQueryParam("next_cursor", cursor)
		}

		resp, err := req.Delete("/resources/image/upload")
		if err != nil {
			return fmt.Errorf("delete resources request: %w", err)
		}
		if err = mapHTTPError(resp); err != nil {
			return err
		}

		c.logger.Debug().Str("prefix", prefix).Int("deleted", len(result.Deleted)).Msg("cloudinary resources deleted")

		if !result.Partial || result.NextCursor == "" {
			return nil
		}
		cursor = result.NextCursor
	}

	return fmt.Errorf("%w: prefix %s still has resources after %d batches", ErrInternalServerError, prefix, maxPrefixPages)
}

func (c *cloudinaryUploader) timestamp() string {
	return strconv.FormatInt(c.now().Unix(), 10)
}

// signed adds api_key and signature to params.
func (c *cloudinaryUploader) signed(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+2)
	for k, v := range params {
		out[k] = v
	}
	out["signature"] = sign(params, c.apiSecret)
	out["api_key"] = c.apiKey
	return out
}

// sign computes the Cloudinary request signature: the hex SHA-1 of the
// alphabetically sorted "key=value" pairs joined with '&', followed by the
// API secret.
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
