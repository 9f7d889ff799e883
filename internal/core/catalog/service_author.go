package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// AuthorDetail is an author together with the books they wrote.
type AuthorDetail struct {
	Author *Author `json:"author"`
	Books  []*Book `json:"books"`
}

// # Author Lookups

// ListAuthors returns every author ordered by family name.
func (service *Service) ListAuthors(context context.Context) ([]*Author, error) {
	return service.repo.ListAuthors(context)
}

// GetAuthor returns one author or NotFound("Author").
func (service *Service) GetAuthor(context context.Context, id int) (*Author, error) {
	author, err := service.repo.GetAuthor(context, id)
	return author, notFound(err, resourceAuthor)
}

/*
AuthorDetail loads an author and their books concurrently.

Returns:
  - *AuthorDetail: The author with books attached
  - error: NotFound("Author") if missing
*/
func (service *Service) AuthorDetail(ctx context.Context, id int) (*AuthorDetail, error) {
	detail := &AuthorDetail{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		detail.Author, err = service.GetAuthor(groupCtx, id)
		return err
	})

	group.Go(func() (err error) {
		detail.Books, err = service.resolver.BooksByAuthor(groupCtx, id)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// AuthorFormContext returns the author to prefill an edit form, or nil for id 0.
func (service *Service) AuthorFormContext(context context.Context, id int) (*Author, error) {
	if id == 0 {
		return nil, nil
	}
	return service.GetAuthor(context, id)
}

// # Author Management

/*
CreateAuthor validates and stores a new author.

Returns:
  - *Result[Author]: Rejected with field errors, or the stored author
  - error: Store failures
*/
func (service *Service) CreateAuthor(context context.Context, submission AuthorSubmission) (*Result[Author], error) {
	author, errs := ValidateAuthor(submission)
	if len(errs) > 0 {
		return rejected(author, errs), nil
	}

	if err := service.repo.CreateAuthor(context, author); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "author_created",
		slog.Int("author_id", author.ID),
		slog.String("name", author.Name()),
	)

	return accepted(author), nil
}

/*
UpdateAuthor validates the submission and overwrites the stored author.

Returns:
  - *Result[Author]: Rejected with field errors, or the updated author
  - error: NotFound("Author") or store failures
*/
func (service *Service) UpdateAuthor(context context.Context, id int, submission AuthorSubmission) (*Result[Author], error) {
	author, errs := ValidateAuthor(submission)
	author.ID = id

	if len(errs) > 0 {
		return rejected(author, errs), nil
	}

	if err := service.repo.UpdateAuthor(context, author); err != nil {
		return nil, notFound(err, resourceAuthor)
	}

	service.logger.InfoContext(context, "author_updated", slog.Int("author_id", id))

	return accepted(author), nil
}

// AuthorDeleteContext returns the confirmation data for deleting an author.
func (service *Service) AuthorDeleteContext(context context.Context, id int) (*Deletion[Author, Book], error) {
	return service.resolver.AuthorGuard(context, id)
}

/*
DeleteAuthor removes an author that has no books.

Returns:
  - *Deletion: Removed, Blocked with the author's books, or Missing
  - error: Store failures
*/
func (service *Service) DeleteAuthor(context context.Context, id int) (*Deletion[Author, Book], error) {
	deletion, err := service.resolver.AuthorGuard(context, id)
	if err != nil {
		return nil, err
	}
	return completeDeletion(context, service.logger, "author", id, deletion, service.repo.DeleteAuthor)
}
