package catalog

import (
	"net/http"

	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

// # Genre Endpoints

// GET /catalog/genres lists every genre by name.
func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, genres)
}

// GET /catalog/genre/{id} returns the genre with the books classified under it.
func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	detail, err := handler.service.GenreDetail(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

func (handler *Handler) genreCreateForm(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, nil)
}

/*
POST /catalog/genre/create.

Request:
  - name: string (3 to 100 characters)

Response:
  - 201: Genre, with Location
  - 200: A genre with that exact name already existed; Location points at it
  - 422: Field errors and the sanitized submission
*/
func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var submission GenreSubmission
	if err := requestutil.DecodeSubmission(request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CreateGenre(request.Context(), submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderResult(writer, request, result, true, nil)
}

func (handler *Handler) genreUpdateForm(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	genre, err := handler.service.GenreFormContext(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, genre)
}

/*
POST /catalog/genre/{id}/update.

Response:
  - 200: Genre, with Location
  - 404: Genre not found
  - 422: Invalid name, or the name belongs to another genre
*/
func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	var submission GenreSubmission
	if err := requestutil.DecodeSubmission(request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.UpdateGenre(request.Context(), id, submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderResult(writer, request, result, false, nil)
}

func (handler *Handler) genreDeleteForm(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	deletion, err := handler.service.GenreDeleteContext(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderDeleteForm(writer, request, deletion, PathGenres)
}

/*
POST /catalog/genre/{id}/delete.

Response:
  - 204: Removed
  - 303: Genre did not exist; redirect to the listing
  - 409: Books are still classified under the genre
*/
func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	deletion, err := handler.service.DeleteGenre(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderDeletion(writer, request, deletion, PathGenres)
}
