package catalog

import (
	"net/http"

	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

// # Author Endpoints

/*
GET /catalog/authors.

Response:
  - 200: []Author ordered by family name
*/
func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	authors, err := handler.service.ListAuthors(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, authors)
}

/*
GET /catalog/author/{id}.

Response:
  - 200: AuthorDetail: The author and their books
  - 400: Invalid identifier
  - 404: Author not found
*/
func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	detail, err := handler.service.AuthorDetail(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// GET /catalog/author/create. An empty form needs no data.
func (handler *Handler) authorCreateForm(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, nil)
}

/*
POST /catalog/author/create.

Request:
  - first_name, family_name: string (required, alphanumeric, at most 100)
  - date_of_birth, date_of_death: string (optional ISO-8601 date)

Response:
  - 201: Author, with Location
  - 422: Field errors and the sanitized submission
*/
func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	var submission AuthorSubmission
	if err := requestutil.DecodeSubmission(request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CreateAuthor(request.Context(), submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderResult(writer, request, result, true, nil)
}

// GET /catalog/author/{id}/update returns the stored author to prefill the form.
func (handler *Handler) authorUpdateForm(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	author, err := handler.service.AuthorFormContext(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, author)
}

/*
POST /catalog/author/{id}/update.

Response:
  - 200: Author, with Location
  - 404: Author not found
  - 422: Field errors and the sanitized submission
*/
func (handler *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	var submission AuthorSubmission
	if err := requestutil.DecodeSubmission(request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.UpdateAuthor(request.Context(), id, submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderResult(writer, request, result, false, nil)
}

// GET /catalog/author/{id}/delete shows the author and any books blocking removal.
func (handler *Handler) authorDeleteForm(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	deletion, err := handler.service.AuthorDeleteContext(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderDeleteForm(writer, request, deletion, PathAuthors)
}

/*
POST /catalog/author/{id}/delete.

Response:
  - 204: Removed
  - 303: Author did not exist; redirect to the listing
  - 409: The author still has books
*/
func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	deletion, err := handler.service.DeleteAuthor(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderDeletion(writer, request, deletion, PathAuthors)
}
