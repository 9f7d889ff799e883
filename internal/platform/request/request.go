// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
)

// maxBodyBytes caps the size of a decoded request body.
const maxBodyBytes = 1 << 20

// FormBinder is implemented by submissions that can be filled from url-encoded form values.
type FormBinder interface {
	Bind(values url.Values)
}

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxBodyBytes)).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeSubmission fills target from a JSON body or from url-encoded form values,
depending on the request Content-Type.

Returns:
  - error: validate.ErrInvalidJSON or validate.ErrInvalidForm on malformed bodies
*/
func DecodeSubmission(request *http.Request, target FormBinder) error {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get(constants.HeaderContentType))
	if mediaType == "application/json" {
		return DecodeJSON(request, target)
	}

	request.Body = http.MaxBytesReader(nil, request.Body, maxBodyBytes)
	if err := request.ParseForm(); err != nil {
		return validate.ErrInvalidForm
	}
	target.Bind(request.PostForm)
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntID retrieves a named URL parameter and parses it as a positive integer identifier.

Returns:
  - int: The identifier
  - error: apperr.BadRequest when the parameter is not a positive integer
*/
func IntID(request *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(Param(request, name))
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("Invalid identifier")
	}
	return id, nil
}
