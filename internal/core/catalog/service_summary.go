package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Summary holds the record counts shown on the catalogue home page.
type Summary struct {
	Books                  int `json:"books"`
	BookInstances          int `json:"book_instances"`
	BookInstancesAvailable int `json:"book_instances_available"`
	Authors                int `json:"authors"`
	Genres                 int `json:"genres"`
}

// Summary counts every record type concurrently.
func (service *Service) Summary(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		summary.Books, err = service.repo.CountBooks(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		summary.BookInstances, err = service.repo.CountBookInstances(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		summary.BookInstancesAvailable, err = service.repo.CountBookInstancesByStatus(groupCtx, StatusAvailable)
		return err
	})
	group.Go(func() (err error) {
		summary.Authors, err = service.repo.CountAuthors(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		summary.Genres, err = service.repo.CountGenres(groupCtx)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
