package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

// BookDetail is a book with its author, genres and copies.
type BookDetail struct {
	Book      *Book           `json:"book"`
	Instances []*BookInstance `json:"book_instances"`
}

// GenreChoice is one genre checkbox on the book form.
type GenreChoice struct {
	Genre   *Genre `json:"genre"`
	Checked bool   `json:"checked"`
}

// BookForm holds the pick-lists needed to draw the book form.
type BookForm struct {
	Book    *Book         `json:"book,omitempty"`
	Authors []*Author     `json:"authors"`
	Genres  []GenreChoice `json:"genres"`
}

// # Book Lookups

// ListBooks returns every book ordered by title, with its author.
func (service *Service) ListBooks(context context.Context) ([]*Book, error) {
	return service.repo.ListBooks(context)
}

// GetBook returns one book with author and genres, or NotFound("Book").
func (service *Service) GetBook(context context.Context, id int) (*Book, error) {
	book, err := service.repo.GetBook(context, id)
	return book, notFound(err, resourceBook)
}

/*
BookDetail loads a book and its copies concurrently.

Returns:
  - *BookDetail: The hydrated book and its copies
  - error: NotFound("Book") if missing
*/
func (service *Service) BookDetail(ctx context.Context, id int) (*BookDetail, error) {
	detail := &BookDetail{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		detail.Book, err = service.GetBook(groupCtx, id)
		return err
	})

	group.Go(func() (err error) {
		detail.Instances, err = service.resolver.InstancesByBook(groupCtx, id)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

/*
BookFormContext returns the data for a new (id 0) or edit book form.

Description: The book loads first so a missing one fails fast; the pick-lists
come from [Service.BookChoices] with the book's genres checked.
*/
func (service *Service) BookFormContext(ctx context.Context, id int) (*BookForm, error) {
	var book *Book

	if id != 0 {
		loaded, err := service.GetBook(ctx, id)
		if err != nil {
			return nil, err
		}
		book = loaded
	}

	return service.BookChoices(ctx, book)
}

/*
BookChoices builds the book form pick-lists around book, which may be nil or a
rejected submission. Genres in book.GenreIDs are checked.
*/
func (service *Service) BookChoices(ctx context.Context, book *Book) (*BookForm, error) {
	form := &BookForm{Book: book}

	var genres []*Genre
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		form.Authors, err = service.repo.ListAuthors(groupCtx)
		return err
	})

	group.Go(func() (err error) {
		genres, err = service.repo.ListGenres(groupCtx)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	form.Genres = make([]GenreChoice, 0, len(genres))
	for _, genre := range genres {
		form.Genres = append(form.Genres, GenreChoice{
			Genre:   genre,
			Checked: book != nil && book.HasGenre(genre.ID),
		})
	}

	return form, nil
}

// # Book Management

/*
CreateBook validates and stores a new book, then links its genres.

Description: The row insert and the genre linking are two store calls. When
linking fails the book row stays and the error wraps [ErrPartialWrite].

Returns:
  - *Result[Book]: Rejected with field errors, or the stored book
  - error: Store failures
*/
func (service *Service) CreateBook(context context.Context, submission BookSubmission) (*Result[Book], error) {
	book, errs, err := service.checkBook(context, submission)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return rejected(book, errs), nil
	}

	if err := service.repo.CreateBook(context, book); err != nil {
		return nil, err
	}

	if err := service.repo.LinkGenres(context, book.ID, book.GenreIDs); err != nil {
		return nil, service.partialWrite(context, book.ID, err)
	}

	service.logger.InfoContext(context, "book_created",
		slog.Int("book_id", book.ID),
		slog.String("title", book.Title),
		slog.Int("genres", len(book.GenreIDs)),
	)

	return accepted(book), nil
}

/*
UpdateBook validates the submission, overwrites the book row and replaces its
whole genre set.

Description: The set replacement is atomic on its own but runs after the row
update; a failure there wraps [ErrPartialWrite].

Returns:
  - *Result[Book]: Rejected with field errors, or the updated book
  - error: NotFound("Book") or store failures
*/
func (service *Service) UpdateBook(context context.Context, id int, submission BookSubmission) (*Result[Book], error) {
	book, errs, err := service.checkBook(context, submission)
	if err != nil {
		return nil, err
	}

	book.ID = id
	if len(errs) > 0 {
		return rejected(book, errs), nil
	}

	if err := service.repo.UpdateBook(context, book); err != nil {
		return nil, notFound(err, resourceBook)
	}

	if err := service.repo.ReplaceGenres(context, id, book.GenreIDs); err != nil {
		return nil, service.partialWrite(context, id, err)
	}

	service.logger.InfoContext(context, "book_updated",
		slog.Int("book_id", id),
		slog.Int("genres", len(book.GenreIDs)),
	)

	return accepted(book), nil
}

// BookDeleteContext returns the confirmation data for deleting a book.
func (service *Service) BookDeleteContext(context context.Context, id int) (*Deletion[Book, BookInstance], error) {
	return service.resolver.BookGuard(context, id)
}

/*
DeleteBook removes a book that has no copies. Its genre links are removed by the store.

Returns:
  - *Deletion: Removed, Blocked with the book's copies, or Missing
  - error: Store failures
*/
func (service *Service) DeleteBook(context context.Context, id int) (*Deletion[Book, BookInstance], error) {
	deletion, err := service.resolver.BookGuard(context, id)
	if err != nil {
		return nil, err
	}
	return completeDeletion(context, service.logger, "book", id, deletion, service.repo.DeleteBook)
}

// # Book Helpers

/*
checkBook validates a submission and verifies that its author and genres exist.

Returns:
  - *Book: The sanitized book
  - []apperr.FieldError: Field and reference failures
  - error: Store failures while checking references
*/
func (service *Service) checkBook(ctx context.Context, submission BookSubmission) (*Book, []apperr.FieldError, error) {
	book, errs := ValidateBook(submission)

	if !hasField(errs, FieldAuthor) {
		exists, err := service.authorExists(ctx, book.AuthorID)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			errs = append(errs, apperr.FieldError{Field: FieldAuthor, Message: MsgAuthorUnknown})
		}
	}

	if len(book.GenreIDs) > 0 {
		genres, err := service.repo.ListGenres(ctx)
		if err != nil {
			return nil, nil, err
		}

		known := make(map[int]struct{}, len(genres))
		for _, genre := range genres {
			known[genre.ID] = struct{}{}
		}

		unknown := slice.Filter(book.GenreIDs, func(id int) bool {
			_, ok := known[id]
			return !ok
		})
		if len(unknown) > 0 {
			errs = append(errs, apperr.FieldError{Field: FieldGenre, Message: MsgGenreUnknown})
		}
	}

	return book, errs, nil
}

func (service *Service) authorExists(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	_, err := service.repo.GetAuthor(ctx, id)
	if dberr.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

// partialWrite logs and wraps a genre link failure that left the book row behind.
func (service *Service) partialWrite(ctx context.Context, bookID int, cause error) error {
	service.logger.ErrorContext(ctx, "book_genre_link_failed",
		slog.Int("book_id", bookID),
		slog.Any("error", cause),
	)
	return apperr.Internal(fmt.Errorf("%w: book %d: %w", ErrPartialWrite, bookID, cause))
}

func hasField(errs []apperr.FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
