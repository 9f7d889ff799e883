// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Catalogue Data Access
//
// Every method reports a missing row as dberr.ErrNotFound, including Update and
// Delete calls that affect no row. Other failures are already classified by
// dberr.Wrap.

// Repository is the complete data access contract of the catalogue.
type Repository interface {
	AuthorRepository
	BookRepository
	BookInstanceRepository
	GenreRepository
}

// AuthorRepository defines the data access contract for authors.
type AuthorRepository interface {

	/*
		ListAuthors returns every author ordered by family name, then first name.
	*/
	ListAuthors(context context.Context) ([]*Author, error)

	/*
		GetAuthor returns the author with the given ID.

		Returns:
		  - *Author: The stored author
		  - error: dberr.ErrNotFound if missing
	*/
	GetAuthor(context context.Context, id int) (*Author, error)

	/*
		CreateAuthor inserts the author and assigns its ID.
	*/
	CreateAuthor(context context.Context, author *Author) error

	/*
		UpdateAuthor overwrites every field of the author identified by author.ID.
	*/
	UpdateAuthor(context context.Context, author *Author) error

	/*
		DeleteAuthor removes the author row.

		Returns:
		  - error: apperr.Conflict if books still reference the author
	*/
	DeleteAuthor(context context.Context, id int) error

	// CountAuthors returns the number of authors.
	CountAuthors(context context.Context) (int, error)
}

// BookRepository defines the data access contract for books and their genre links.
type BookRepository interface {

	/*
		ListBooks returns every book ordered by title, with Author attached.
	*/
	ListBooks(context context.Context) ([]*Book, error)

	/*
		GetBook returns one book with Author, Genres and GenreIDs attached.

		Returns:
		  - *Book: The hydrated book
		  - error: dberr.ErrNotFound if missing
	*/
	GetBook(context context.Context, id int) (*Book, error)

	// ListBooksByAuthor returns the books written by the author, ordered by title.
	ListBooksByAuthor(context context.Context, authorID int) ([]*Book, error)

	// ListBooksByGenre returns the books linked to the genre, ordered by title.
	ListBooksByGenre(context context.Context, genreID int) ([]*Book, error)

	/*
		CreateBook inserts the book row and assigns its ID.

		Description: Genre links are not written; see LinkGenres.
	*/
	CreateBook(context context.Context, book *Book) error

	/*
		UpdateBook overwrites the row fields of the book identified by book.ID.

		Description: Genre links are not touched; see ReplaceGenres.
	*/
	UpdateBook(context context.Context, book *Book) error

	/*
		DeleteBook removes the book row. Its genre links go with it.

		Returns:
		  - error: apperr.Conflict if copies still reference the book
	*/
	DeleteBook(context context.Context, id int) error

	/*
		LinkGenres adds links between the book and each genre. Existing links are kept.
	*/
	LinkGenres(context context.Context, bookID int, genreIDs []int) error

	/*
		ReplaceGenres swaps the book's whole genre set for genreIDs in one transaction.
	*/
	ReplaceGenres(context context.Context, bookID int, genreIDs []int) error

	// CountBooks returns the number of books.
	CountBooks(context context.Context) (int, error)
}

// BookInstanceRepository defines the data access contract for physical copies.
type BookInstanceRepository interface {

	/*
		ListBookInstances returns every copy with Book attached, ordered by book
		title then ID. Detached copies sort first.
	*/
	ListBookInstances(context context.Context) ([]*BookInstance, error)

	/*
		GetBookInstance returns one copy with Book attached.

		Returns:
		  - *BookInstance: The copy
		  - error: dberr.ErrNotFound if missing
	*/
	GetBookInstance(context context.Context, id int) (*BookInstance, error)

	// ListInstancesByBook returns the copies of a book ordered by ID.
	ListInstancesByBook(context context.Context, bookID int) ([]*BookInstance, error)

	CreateBookInstance(context context.Context, instance *BookInstance) error
	UpdateBookInstance(context context.Context, instance *BookInstance) error
	DeleteBookInstance(context context.Context, id int) error

	// CountBookInstances returns the number of copies.
	CountBookInstances(context context.Context) (int, error)

	// CountBookInstancesByStatus returns the number of copies in status.
	CountBookInstancesByStatus(context context.Context, status Status) (int, error)
}

// GenreRepository defines the data access contract for genres.
type GenreRepository interface {

	// ListGenres returns every genre ordered by name.
	ListGenres(context context.Context) ([]*Genre, error)

	/*
		GetGenre returns the genre with the given ID.

		Returns:
		  - *Genre: The stored genre
		  - error: dberr.ErrNotFound if missing
	*/
	GetGenre(context context.Context, id int) (*Genre, error)

	/*
		FindGenreByName returns the genre whose name matches exactly (case-sensitive).

		Returns:
		  - *Genre: The stored genre
		  - error: dberr.ErrNotFound if no genre has that name
	*/
	FindGenreByName(context context.Context, name string) (*Genre, error)

	CreateGenre(context context.Context, genre *Genre) error
	UpdateGenre(context context.Context, genre *Genre) error

	/*
		DeleteGenre removes the genre row. Its book links go with it.
	*/
	DeleteGenre(context context.Context, id int) error

	// CountGenres returns the number of genres.
	CountGenres(context context.Context) (int, error)
}
