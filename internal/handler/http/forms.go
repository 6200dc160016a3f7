package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-vinted/internal/service"
	"github.com/MKhiriev/go-vinted/models"
)

const (
	// maxUploadSize bounds the whole request body of image carrying forms.
	maxUploadSize = 10 << 20
	// maxMemory is the part of a multipart form kept in memory.
	maxMemory = 8 << 20
)

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func isJSON(r *http.Request) bool {
	return mediaType(r) == "application/json"
}

// parseForm reads a multipart or url-encoded body into r.Form.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	var err error
	if mediaType(r) == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	return bodyError(err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit is %d bytes", errRequestTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %w", errMalformedBody, err)
}

// formFile returns the uploaded file of field, or nil when none was sent.
func formFile(r *http.Request, field string) (*models.ImageFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, bodyError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, bodyError(err)
	}

	return &models.ImageFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return strings.EqualFold(strings.TrimSpace(v), "on")
	}
	return b
}

// readSignupRequest accepts either a JSON body or a (multipart) form with an
// optional "avatar" file.
func readSignupRequest(w http.ResponseWriter, r *http.Request) (models.SignupRequest, error) {
	var req models.SignupRequest
	if isJSON(r) {
		err := decodeJSON(w, r, &req)
		return req, err
	}

	if err := parseForm(w, r); err != nil {
		return req, err
	}

	avatar, err := formFile(r, "avatar")
	if err != nil {
		return req, err
	}

	return models.SignupRequest{
		Email:      r.PostFormValue("email"),
		Password:   r.PostFormValue("password"),
		Username:   r.PostFormValue("username"),
		Newsletter: parseBool(r.PostFormValue("newsletter")),
		Avatar:     avatar,
	}, nil
}

func readLoginRequest(w http.ResponseWriter, r *http.Request) (models.LoginRequest, error) {
	var req models.LoginRequest
	if isJSON(r) {
		err := decodeJSON(w, r, &req)
		return req, err
	}

	if err := parseForm(w, r); err != nil {
		return req, err
	}
	return models.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}, nil
}

// readOfferRequest reads the publish/modify form. A price that is not a
// number makes the offer invalid.
func readOfferRequest(w http.ResponseWriter, r *http.Request) (models.OfferRequest, error) {
	if err := parseForm(w, r); err != nil {
		return models.OfferRequest{}, err
	}

	req := models.OfferRequest{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Brand:       r.PostFormValue("brand"),
		Size:        r.PostFormValue("size"),
		Condition:   r.PostFormValue("condition"),
		Color:       r.PostFormValue("color"),
		City:        r.PostFormValue("city"),
	}

	if raw := strings.TrimSpace(r.PostFormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.OfferRequest{}, fmt.Errorf("%w: price %q is not a number", service.ErrInvalidOfferDetails, raw)
		}
		req.Price = price
	}

	picture, err := formFile(r, "picture")
	if err != nil {
		return models.OfferRequest{}, err
	}
	req.Picture = picture

	return req, nil
}

// readOfferFilter parses the search query. Unparsable numbers are ignored.
func readOfferFilter(r *http.Request) models.OfferFilter {
	q := r.URL.Query()

	filter := models.OfferFilter{
		Title: q.Get("title"),
		Sort:  q.Get("sort"),
		Page:  1,
	}
	if v, ok := parseFinite(q.Get("priceMin")); ok {
		filter.PriceMin = v
	}
	if v, ok := parseFinite(q.Get("priceMax")); ok {
		filter.PriceMax = &v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		filter.Page = v
	}
	return filter
}

func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
