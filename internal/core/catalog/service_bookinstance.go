package catalog

import (
	"context"
	"log/slog"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

// BookInstanceForm holds the pick-lists needed to draw the book copy form.
type BookInstanceForm struct {
	Instance     *BookInstance `json:"book_instance,omitempty"`
	Books        []*Book       `json:"books"`
	SelectedBook *int          `json:"selected_book,omitempty"`
	Statuses     []Status      `json:"statuses"`
}

// # Book Copy Lookups

// ListBookInstances returns every copy with its book attached.
func (service *Service) ListBookInstances(context context.Context) ([]*BookInstance, error) {
	return service.repo.ListBookInstances(context)
}

// BookInstanceDetail returns one copy with its book, or NotFound("Book copy").
func (service *Service) BookInstanceDetail(context context.Context, id int) (*BookInstance, error) {
	instance, err := service.repo.GetBookInstance(context, id)
	return instance, notFound(err, resourceBookInstance)
}

// BookInstanceFormContext returns the data for a new (id 0) or edit copy form.
func (service *Service) BookInstanceFormContext(context context.Context, id int) (*BookInstanceForm, error) {
	var instance *BookInstance

	if id != 0 {
		loaded, err := service.BookInstanceDetail(context, id)
		if err != nil {
			return nil, err
		}
		instance = loaded
	}

	return service.BookInstanceChoices(context, instance)
}

// BookInstanceChoices builds the copy form pick-lists around instance, which
// may be nil or a rejected submission.
func (service *Service) BookInstanceChoices(context context.Context, instance *BookInstance) (*BookInstanceForm, error) {
	books, err := service.repo.ListBooks(context)
	if err != nil {
		return nil, err
	}

	form := &BookInstanceForm{Instance: instance, Books: books, Statuses: Statuses()}
	if instance != nil {
		form.SelectedBook = instance.BookID
	}
	return form, nil
}

// # Book Copy Management

/*
CreateBookInstance validates and stores a new copy.

Description: A copy submitted without a status starts in [DefaultStatus]; one
without a due date is due now.
*/
func (service *Service) CreateBookInstance(context context.Context, submission BookInstanceSubmission) (*Result[BookInstance], error) {
	instance, errs, err := service.checkBookInstance(context, submission)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return rejected(instance, errs), nil
	}

	if instance.Status == "" {
		instance.Status = DefaultStatus
	}
	if instance.DueBack.IsZero() {
		instance.DueBack = service.now()
	}

	if err := service.repo.CreateBookInstance(context, instance); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "book_instance_created",
		slog.Int("book_instance_id", instance.ID),
		slog.String("status", string(instance.Status)),
	)

	return accepted(instance), nil
}

/*
UpdateBookInstance validates the submission and overwrites the stored copy.

Description: An empty status or due date keeps the stored value.

Returns:
  - *Result[BookInstance]: Rejected with field errors, or the updated copy
  - error: NotFound("Book copy") or store failures
*/
func (service *Service) UpdateBookInstance(context context.Context, id int, submission BookInstanceSubmission) (*Result[BookInstance], error) {
	instance, errs, err := service.checkBookInstance(context, submission)
	if err != nil {
		return nil, err
	}

	instance.ID = id
	if len(errs) > 0 {
		return rejected(instance, errs), nil
	}

	existing, err := service.BookInstanceDetail(context, id)
	if err != nil {
		return nil, err
	}

	if instance.Status == "" {
		instance.Status = existing.Status
	}
	if instance.DueBack.IsZero() {
		instance.DueBack = existing.DueBack
	}

	if err := service.repo.UpdateBookInstance(context, instance); err != nil {
		return nil, notFound(err, resourceBookInstance)
	}

	service.logger.InfoContext(context, "book_instance_updated", slog.Int("book_instance_id", id))

	return accepted(instance), nil
}

// BookInstanceDeleteContext returns the confirmation data for deleting a copy.
// Copies have no dependents, so the outcome is Pending or Missing.
func (service *Service) BookInstanceDeleteContext(context context.Context, id int) (*Deletion[BookInstance, struct{}], error) {
	instance, err := service.repo.GetBookInstance(context, id)
	if dberr.IsNotFound(err) {
		return &Deletion[BookInstance, struct{}]{Outcome: DeleteMissing, Dependents: []*struct{}{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &Deletion[BookInstance, struct{}]{Outcome: DeletePending, Entity: instance, Dependents: []*struct{}{}}, nil
}

// DeleteBookInstance removes a copy unconditionally.
func (service *Service) DeleteBookInstance(context context.Context, id int) (DeleteOutcome, error) {
	if err := service.repo.DeleteBookInstance(context, id); err != nil {
		if dberr.IsNotFound(err) {
			return DeleteMissing, nil
		}
		return DeleteMissing, err
	}

	service.logger.InfoContext(context, "book_instance_deleted", slog.Int("book_instance_id", id))

	return DeleteRemoved, nil
}

// # Book Copy Helpers

// checkBookInstance validates a submission and verifies that its book exists.
func (service *Service) checkBookInstance(ctx context.Context, submission BookInstanceSubmission) (*BookInstance, []apperr.FieldError, error) {
	instance, errs := ValidateBookInstance(submission)

	if instance.BookID != nil && !hasField(errs, FieldBook) {
		exists, err := service.bookExists(ctx, *instance.BookID)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			errs = append(errs, apperr.FieldError{Field: FieldBook, Message: MsgBookUnknown})
		}
	}

	return instance, errs, nil
}

func (service *Service) bookExists(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	_, err := service.repo.GetBook(ctx, id)
	if dberr.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}
