package catalog

import (
	"net/http"

	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

// # Book Endpoints

// GET /catalog/books lists every book with its author, ordered by title.
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.ListBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, books)
}

/*
GET /catalog/book/{id}.

Response:
  - 200: BookDetail: The book with author, genres and copies
  - 404: Book not found
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	detail, err := handler.service.BookDetail(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// GET /catalog/book/create returns the author and genre pick-lists.
func (handler *Handler) bookCreateForm(writer http.ResponseWriter, request *http.Request) {
	form, err := handler.service.BookFormContext(request.Context(), 0)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, form)
}

/*
POST /catalog/book/create.

Request:
  - title, author, summary, isbn: string (required)
  - genre: string or []string (genre identifiers, optional)

Response:
  - 201: Book, with Location
  - 422: Field errors, the sanitized submission and the form pick-lists
  - 500: Genre linking failed after the book row was written
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var submission BookSubmission
	if err := requestutil.DecodeSubmission(request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CreateBook(request.Context(), submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderResult(writer, request, result, true, handler.bookChoices(request))
}

// GET /catalog/book/{id}/update returns the book with its genres checked.
func (handler *Handler) bookUpdateForm(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	form, err := handler.service.BookFormContext(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, form)
}

/*
POST /catalog/book/{id}/update.

Description: Replaces the book's fields and its entire genre set.

Response:
  - 200: Book, with Location
  - 404: Book not found
  - 422: Field errors, the sanitized submission and the form pick-lists
*/
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	var submission BookSubmission
	if err := requestutil.DecodeSubmission(request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.UpdateBook(request.Context(), id, submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderResult(writer, request, result, false, handler.bookChoices(request))
}

// GET /catalog/book/{id}/delete shows the book and any copies blocking removal.
func (handler *Handler) bookDeleteForm(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	deletion, err := handler.service.BookDeleteContext(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderDeleteForm(writer, request, deletion, PathBooks)
}

/*
POST /catalog/book/{id}/delete.

Response:
  - 204: Removed
  - 303: Book did not exist; redirect to the listing
  - 409: The book still has copies
*/
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	deletion, err := handler.service.DeleteBook(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderDeletion(writer, request, deletion, PathBooks)
}

func (handler *Handler) bookChoices(request *http.Request) formBuilder[Book] {
	return func(book *Book) (any, error) {
		return handler.service.BookChoices(request.Context(), book)
	}
}
