// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

// # Service Layer

// Resource names used in not-found errors ("Author not found").
const (
	resourceAuthor       = "Author"
	resourceBook         = "Book"
	resourceBookInstance = "Book copy"
	resourceGenre        = "Genre"
)

// Service is the catalogue lifecycle manager.
//
// It combines validation, referential checks and the [Resolver] delete guard
// over a single [Repository]. Service holds no mutable state; concurrent calls
// for the same record resolve as last write wins.
type Service struct {
	repo     Repository
	resolver *Resolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a new [Service] over the given store.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: NewResolver(repo),
		logger:   logger,
		now:      time.Now,
	}
}

// notFound turns the store's generic not-found sentinel into the entity's own error.
func notFound(err error, resource string) error {
	if dberr.IsNotFound(err) {
		return apperr.NotFound(resource)
	}
	return err
}

/*
completeDeletion removes a record the guard allowed.

Description: Missing and blocked outcomes are returned untouched. A row that
vanished between the guard and the delete is reported as missing.
*/
func completeDeletion[T any, D any](
	ctx context.Context,
	logger *slog.Logger,
	kind string,
	id int,
	deletion *Deletion[T, D],
	remove func(context.Context, int) error,
) (*Deletion[T, D], error) {
	switch deletion.Outcome {
	case DeleteMissing:
		return deletion, nil
	case DeleteBlocked:
		logger.InfoContext(ctx, "delete_blocked",
			slog.String("entity", kind),
			slog.Int("id", id),
			slog.Int("dependents", len(deletion.Dependents)),
		)
		return deletion, nil
	}

	if err := remove(ctx, id); err != nil {
		if dberr.IsNotFound(err) {
			return &Deletion[T, D]{Outcome: DeleteMissing, Dependents: []*D{}}, nil
		}
		return nil, err
	}

	deletion.Outcome = DeleteRemoved
	logger.InfoContext(ctx, kind+"_deleted", slog.Int(kind+"_id", id))

	return deletion, nil
}
