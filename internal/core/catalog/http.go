/*
Package catalog also provides the HTTP interface of the catalogue.

# Routing Strategy

Every entity exposes the same shape under /catalog:

  - Listing: GET /catalog/{authors,books,bookinstances,genres}.
  - Forms: GET and POST /catalog/<entity>/create and /catalog/<entity>/{id}/update.
  - Detail: GET /catalog/<entity>/{id}.
  - Deletion: GET (confirmation) and POST /catalog/<entity>/{id}/delete.

Bodies are accepted as JSON or url-encoded forms. The handler translates
between the web layer and the domain [Service].
*/
package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalogue endpoints.
// It is meant to be mounted at [PathCatalog].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Home
	router.Get("/", handler.summary)

	// ## Listings
	router.Get("/authors", handler.listAuthors)
	router.Get("/books", handler.listBooks)
	router.Get("/bookinstances", handler.listBookInstances)
	router.Get("/genres", handler.listGenres)

	// ## Authors
	router.Route("/author", func(r chi.Router) {
		r.Get("/create", handler.authorCreateForm)
		r.Post("/create", handler.createAuthor)
		r.Get("/{id}", handler.getAuthor)
		r.Get("/{id}/update", handler.authorUpdateForm)
		r.Post("/{id}/update", handler.updateAuthor)
		r.Get("/{id}/delete", handler.authorDeleteForm)
		r.Post("/{id}/delete", handler.deleteAuthor)
	})

	// ## Books
	router.Route("/book", func(r chi.Router) {
		r.Get("/create", handler.bookCreateForm)
		r.Post("/create", handler.createBook)
		r.Get("/{id}", handler.getBook)
		r.Get("/{id}/update", handler.bookUpdateForm)
		r.Post("/{id}/update", handler.updateBook)
		r.Get("/{id}/delete", handler.bookDeleteForm)
		r.Post("/{id}/delete", handler.deleteBook)
	})

	// ## Book Copies
	router.Route("/bookinstance", func(r chi.Router) {
		r.Get("/create", handler.bookInstanceCreateForm)
		r.Post("/create", handler.createBookInstance)
		r.Get("/{id}", handler.getBookInstance)
		r.Get("/{id}/update", handler.bookInstanceUpdateForm)
		r.Post("/{id}/update", handler.updateBookInstance)
		r.Get("/{id}/delete", handler.bookInstanceDeleteForm)
		r.Post("/{id}/delete", handler.deleteBookInstance)
	})

	// ## Genres
	router.Route("/genre", func(r chi.Router) {
		r.Get("/create", handler.genreCreateForm)
		r.Post("/create", handler.createGenre)
		r.Get("/{id}", handler.getGenre)
		r.Get("/{id}/update", handler.genreUpdateForm)
		r.Post("/{id}/update", handler.updateGenre)
		r.Get("/{id}/delete", handler.genreDeleteForm)
		r.Post("/{id}/delete", handler.deleteGenre)
	})

	return router
}

/*
GET /catalog.

Description: Record counts for the catalogue home page.

Response:
  - 200: Summary
*/
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.service.Summary(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

// # Rendering Helpers

// locatable is implemented by every entity with a canonical URL.
type locatable interface {
	URL() string
}

// formBuilder produces the pick-lists that accompany a rejected submission.
type formBuilder[T any] func(entity *T) (any, error)

/*
renderResult writes the response for a create or update submission.

Description: A rejected submission answers 422 with the sanitized entity and,
when build is set, the form pick-lists. A fresh create answers 201; a genre
resolved to an existing record or an update answers 200. Both carry Location.
*/
func renderResult[T any](writer http.ResponseWriter, request *http.Request, result *Result[T], created bool, build formBuilder[T]) {
	if result.Rejected() {
		var form any
		if build != nil {
			choices, err := build(result.Entity)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			form = choices
		}
		respond.Rejected(writer, result.Entity, form, result.Errors)
		return
	}

	location := any(result.Entity).(locatable).URL()
	if created && !result.Existing {
		respond.Created(writer, location, result.Entity)
		return
	}
	respond.Located(writer, location, result.Entity)
}

// renderDeleteForm writes a delete confirmation, redirecting to listPath when the record is gone.
func renderDeleteForm[T any, D any](writer http.ResponseWriter, request *http.Request, deletion *Deletion[T, D], listPath string) {
	if deletion.Outcome == DeleteMissing {
		respond.SeeOther(writer, request, listPath)
		return
	}
	respond.OK(writer, deletion)
}

// renderDeletion writes the outcome of a delete request.
func renderDeletion[T any, D any](writer http.ResponseWriter, request *http.Request, deletion *Deletion[T, D], listPath string) {
	switch deletion.Outcome {
	case DeleteMissing:
		respond.SeeOther(writer, request, listPath)
	case DeleteBlocked:
		respond.Conflict(writer, deletion)
	case DeleteRemoved:
		respond.NoContent(writer)
	default:
		respond.OK(writer, deletion)
	}
}

// pathID extracts the {id} route parameter, writing a 400 when it is malformed.
func pathID(writer http.ResponseWriter, request *http.Request) (int, bool) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return 0, false
	}
	return id, true
}
