package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

// GenreDetail is a genre with the books classified under it.
type GenreDetail struct {
	Genre *Genre  `json:"genre"`
	Books []*Book `json:"books"`
}

// # Genre Lookups

// ListGenres returns every genre ordered by name.
func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.repo.ListGenres(context)
}

// GetGenre returns one genre or NotFound("Genre").
func (service *Service) GetGenre(context context.Context, id int) (*Genre, error) {
	genre, err := service.repo.GetGenre(context, id)
	return genre, notFound(err, resourceGenre)
}

// GenreDetail loads a genre and its books concurrently.
func (service *Service) GenreDetail(ctx context.Context, id int) (*GenreDetail, error) {
	detail := &GenreDetail{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		detail.Genre, err = service.GetGenre(groupCtx, id)
		return err
	})

	group.Go(func() (err error) {
		detail.Books, err = service.resolver.BooksByGenre(groupCtx, id)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// GenreFormContext returns the genre to prefill an edit form, or nil for id 0.
func (service *Service) GenreFormContext(context context.Context, id int) (*Genre, error) {
	if id == 0 {
		return nil, nil
	}
	return service.GetGenre(context, id)
}

// # Genre Management

/*
CreateGenre validates a genre and stores it unless one with the same name exists.

Description: Names match exactly (case-sensitive). A name that is already
stored returns that genre with Existing set and writes nothing, so repeating a
create never duplicates a genre.
*/
func (service *Service) CreateGenre(context context.Context, submission GenreSubmission) (*Result[Genre], error) {
	genre, errs := ValidateGenre(submission)
	if len(errs) > 0 {
		return rejected(genre, errs), nil
	}

	existing, err := service.findGenreByName(context, genre.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		service.logger.InfoContext(context, "genre_dedup_hit", slog.Int("genre_id", existing.ID))
		return &Result[Genre]{Entity: existing, Existing: true}, nil
	}

	if err := service.repo.CreateGenre(context, genre); err != nil {

		// A concurrent create won the unique index; resolve to its row.
		if apperr.IsCode(err, "CONFLICT") {
			if winner, findErr := service.findGenreByName(context, genre.Name); findErr == nil && winner != nil {
				return &Result[Genre]{Entity: winner, Existing: true}, nil
			}
		}
		return nil, err
	}

	service.logger.InfoContext(context, "genre_created",
		slog.Int("genre_id", genre.ID),
		slog.String("name", genre.Name),
	)

	return accepted(genre), nil
}

/*
UpdateGenre validates the submission and renames the stored genre.

Returns:
  - *Result[Genre]: Rejected when invalid or when another genre owns the name
  - error: NotFound("Genre") or store failures
*/
func (service *Service) UpdateGenre(context context.Context, id int, submission GenreSubmission) (*Result[Genre], error) {
	genre, errs := ValidateGenre(submission)
	genre.ID = id

	if len(errs) > 0 {
		return rejected(genre, errs), nil
	}

	owner, err := service.findGenreByName(context, genre.Name)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != id {
		return rejected(genre, []apperr.FieldError{{Field: FieldName, Message: MsgGenreNameTaken}}), nil
	}

	if err := service.repo.UpdateGenre(context, genre); err != nil {
		return nil, notFound(err, resourceGenre)
	}

	service.logger.InfoContext(context, "genre_updated", slog.Int("genre_id", id))

	return accepted(genre), nil
}

// GenreDeleteContext returns the confirmation data for deleting a genre.
func (service *Service) GenreDeleteContext(context context.Context, id int) (*Deletion[Genre, Book], error) {
	return service.resolver.GenreGuard(context, id)
}

/*
DeleteGenre removes a genre no book is classified under.

Returns:
  - *Deletion: Removed, Blocked with the genre's books, or Missing
  - error: Store failures
*/
func (service *Service) DeleteGenre(context context.Context, id int) (*Deletion[Genre, Book], error) {
	deletion, err := service.resolver.GenreGuard(context, id)
	if err != nil {
		return nil, err
	}
	return completeDeletion(context, service.logger, "genre", id, deletion, service.repo.DeleteGenre)
}

// findGenreByName returns nil without error when no genre has the name.
func (service *Service) findGenreByName(ctx context.Context, name string) (*Genre, error) {
	genre, err := service.repo.FindGenreByName(ctx, name)
	if dberr.IsNotFound(err) {
		return nil, nil
	}
	return genre, err
}
