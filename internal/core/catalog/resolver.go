package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

// # Relationship Resolver

// Resolver answers "who depends on this record" questions and decides whether
// a record may be deleted.
type Resolver struct {
	repo Repository
}

// NewResolver constructs a [Resolver] over the catalogue store.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// BooksByAuthor returns the books written by the author.
func (resolver *Resolver) BooksByAuthor(context context.Context, authorID int) ([]*Book, error) {
	return resolver.repo.ListBooksByAuthor(context, authorID)
}

// BooksByGenre returns the books classified under the genre.
func (resolver *Resolver) BooksByGenre(context context.Context, genreID int) ([]*Book, error) {
	return resolver.repo.ListBooksByGenre(context, genreID)
}

// InstancesByBook returns the physical copies of the book.
func (resolver *Resolver) InstancesByBook(context context.Context, bookID int) ([]*BookInstance, error) {
	return resolver.repo.ListInstancesByBook(context, bookID)
}

// AuthorGuard loads the author and the books that block its deletion.
func (resolver *Resolver) AuthorGuard(context context.Context, id int) (*Deletion[Author, Book], error) {
	return guard(context, id, resolver.repo.GetAuthor, resolver.BooksByAuthor)
}

// BookGuard loads the book and the copies that block its deletion.
func (resolver *Resolver) BookGuard(context context.Context, id int) (*Deletion[Book, BookInstance], error) {
	return guard(context, id, resolver.repo.GetBook, resolver.InstancesByBook)
}

// GenreGuard loads the genre and the books that block its deletion.
func (resolver *Resolver) GenreGuard(context context.Context, id int) (*Deletion[Genre, Book], error) {
	return guard(context, id, resolver.repo.GetGenre, resolver.BooksByGenre)
}

/*
guard fetches a delete target and its dependents concurrently.

Returns:
  - Outcome DeleteMissing when the target does not exist
  - Outcome DeleteBlocked when dependents exist, with both attached
  - Outcome DeletePending otherwise
*/
func guard[T any, D any](
	ctx context.Context,
	id int,
	load func(context.Context, int) (*T, error),
	dependents func(context.Context, int) ([]*D, error),
) (*Deletion[T, D], error) {
	var (
		entity *T
		found  []*D
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		entity, err = load(groupCtx, id)
		if dberr.IsNotFound(err) {
			return nil
		}
		return err
	})

	group.Go(func() error {
		var err error
		found, err = dependents(groupCtx, id)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if entity == nil {
		return &Deletion[T, D]{Outcome: DeleteMissing, Dependents: []*D{}}, nil
	}

	deletion := &Deletion[T, D]{Outcome: DeletePending, Entity: entity, Dependents: found}
	if len(found) > 0 {
		deletion.Outcome = DeleteBlocked
	}
	return deletion, nil
}
