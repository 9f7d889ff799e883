package catalog

import (
	"net/http"

	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

// # Book Copy Endpoints

// GET /catalog/bookinstances lists every copy with its book.
func (handler *Handler) listBookInstances(writer http.ResponseWriter, request *http.Request) {
	instances, err := handler.service.ListBookInstances(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, instances)
}

// GET /catalog/bookinstance/{id} returns the copy or 404 "Book copy not found".
func (handler *Handler) getBookInstance(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	instance, err := handler.service.BookInstanceDetail(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, instance)
}

// GET /catalog/bookinstance/create returns the book and status pick-lists.
func (handler *Handler) bookInstanceCreateForm(writer http.ResponseWriter, request *http.Request) {
	form, err := handler.service.BookInstanceFormContext(request.Context(), 0)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, form)
}

/*
POST /catalog/bookinstance/create.

Request:
  - book, imprint: string (required)
  - status: string (Maintenance, Available, Loaned, Reserved; default Maintenance)
  - due_back: string (optional ISO-8601 date; default now)

Response:
  - 201: BookInstance, with Location
  - 422: Field errors, the sanitized submission and the form pick-lists
*/
func (handler *Handler) createBookInstance(writer http.ResponseWriter, request *http.Request) {
	var submission BookInstanceSubmission
	if err := requestutil.DecodeSubmission(request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CreateBookInstance(request.Context(), submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderResult(writer, request, result, true, handler.bookInstanceChoices(request))
}

// GET /catalog/bookinstance/{id}/update returns the copy with the pick-lists.
func (handler *Handler) bookInstanceUpdateForm(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	form, err := handler.service.BookInstanceFormContext(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, form)
}

// POST /catalog/bookinstance/{id}/update. Empty status or due_back keep the stored values.
func (handler *Handler) updateBookInstance(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	var submission BookInstanceSubmission
	if err := requestutil.DecodeSubmission(request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.UpdateBookInstance(request.Context(), id, submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderResult(writer, request, result, false, handler.bookInstanceChoices(request))
}

// GET /catalog/bookinstance/{id}/delete shows the copy to confirm.
func (handler *Handler) bookInstanceDeleteForm(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	deletion, err := handler.service.BookInstanceDeleteContext(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	renderDeleteForm(writer, request, deletion, PathBookInstances)
}

/*
POST /catalog/bookinstance/{id}/delete.

Response:
  - 204: Removed
  - 303: Copy did not exist; redirect to the listing
*/
func (handler *Handler) deleteBookInstance(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	outcome, err := handler.service.DeleteBookInstance(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if outcome == DeleteMissing {
		respond.SeeOther(writer, request, PathBookInstances)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) bookInstanceChoices(request *http.Request) formBuilder[BookInstance] {
	return func(instance *BookInstance) (any, error) {
		return handler.service.BookInstanceChoices(request.Context(), instance)
	}
}
