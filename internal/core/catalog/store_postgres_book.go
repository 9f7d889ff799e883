package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
	"github.com/taibuivan/locallibrary/pkg/pointer"
)

// # Books

// bookWithAuthor selects a book joined to its author, aliased b and a.
var bookWithAuthor = fmt.Sprintf(`
	SELECT b.%s, b.%s, b.%s, b.%s, b.%s,
		a.%s, a.%s, a.%s, a.%s, a.%s
	FROM %s b
	JOIN %s a ON a.%s = b.%s
`,
	schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Summary,
	schema.CatalogBook.ISBN, schema.CatalogBook.AuthorID,
	schema.CatalogAuthor.ID, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.FamilyName,
	schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath,
	schema.CatalogBook.Table, schema.CatalogAuthor.Table,
	schema.CatalogAuthor.ID, schema.CatalogBook.AuthorID,
)

func scanBookWithAuthor(row rowScanner) (*Book, error) {
	b := &Book{Author: &Author{}}
	err := row.Scan(
		&b.ID, &b.Title, &b.Summary, &b.ISBN, &b.AuthorID,
		&b.Author.ID, &b.Author.FirstName, &b.Author.FamilyName, &b.Author.DateOfBirth, &b.Author.DateOfDeath,
	)
	return b, err
}

func (repository *PostgresRepository) queryBooks(context context.Context, action, query string, args ...any) ([]*Book, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		b, err := scanBookWithAuthor(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, dberr.Wrap(rows.Err(), action)
}

func (repository *PostgresRepository) ListBooks(context context.Context) ([]*Book, error) {
	query := bookWithAuthor + fmt.Sprintf(`ORDER BY b.%s, b.%s`, schema.CatalogBook.Title, schema.CatalogBook.ID)
	return repository.queryBooks(context, "list_books", query)
}

func (repository *PostgresRepository) ListBooksByAuthor(context context.Context, authorID int) ([]*Book, error) {
	query := bookWithAuthor + fmt.Sprintf(`WHERE b.%s = $1 ORDER BY b.%s, b.%s`,
		schema.CatalogBook.AuthorID, schema.CatalogBook.Title, schema.CatalogBook.ID,
	)
	return repository.queryBooks(context, "list_books_by_author", query, authorID)
}

func (repository *PostgresRepository) ListBooksByGenre(context context.Context, genreID int) ([]*Book, error) {
	query := bookWithAuthor + fmt.Sprintf(`
		JOIN %s bg ON bg.%s = b.%s
		WHERE bg.%s = $1
		ORDER BY b.%s, b.%s
	`,
		schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID, schema.CatalogBook.ID,
		schema.CatalogBookGenre.GenreID,
		schema.CatalogBook.Title, schema.CatalogBook.ID,
	)
	return repository.queryBooks(context, "list_books_by_genre", query, genreID)
}

/*
GetBook returns one book with its author and genres.

Description: The book and author come from one joined row; the genre set is a
second query over the link table.
*/
func (repository *PostgresRepository) GetBook(context context.Context, id int) (*Book, error) {
	query := bookWithAuthor + fmt.Sprintf(`WHERE b.%s = $1`, schema.CatalogBook.ID)

	book, err := scanBookWithAuthor(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}

	genreQuery := fmt.Sprintf(`
		SELECT g.%s, g.%s
		FROM %s g
		JOIN %s bg ON bg.%s = g.%s
		WHERE bg.%s = $1
		ORDER BY g.%s
	`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogGenre.Table,
		schema.CatalogBookGenre.Table, schema.CatalogBookGenre.GenreID, schema.CatalogGenre.ID,
		schema.CatalogBookGenre.BookID,
		schema.CatalogGenre.Name,
	)

	rows, err := repository.db.Query(context, genreQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_genres")
	}
	defer rows.Close()

	book.Genres = []*Genre{}
	book.GenreIDs = []int{}
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		book.Genres = append(book.Genres, g)
		book.GenreIDs = append(book.GenreIDs, g.ID)
	}

	return book, dberr.Wrap(rows.Err(), "get_book_genres")
}

func (repository *PostgresRepository) CreateBook(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.CatalogBook.Table, schema.CatalogBook.Title, schema.CatalogBook.Summary,
		schema.CatalogBook.ISBN, schema.CatalogBook.AuthorID,
		schema.CatalogBook.ID,
	)

	err := repository.db.QueryRow(context, query, b.Title, b.Summary, b.ISBN, b.AuthorID).Scan(&b.ID)
	return dberr.Wrap(err, "create_book")
}

func (repository *PostgresRepository) UpdateBook(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.CatalogBook.Table, schema.CatalogBook.Title, schema.CatalogBook.Summary,
		schema.CatalogBook.ISBN, schema.CatalogBook.AuthorID, schema.CatalogBook.ID,
	)

	cmd, err := repository.db.Exec(context, query, b.ID, b.Title, b.Summary, b.ISBN, b.AuthorID)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteBook(context context.Context, id int) error {
	return repository.deleteByID(context, schema.CatalogBook.Table, schema.CatalogBook.ID, id, "delete_book")
}

func (repository *PostgresRepository) CountBooks(context context.Context) (int, error) {
	return repository.count(context, schema.CatalogBook.Table, "count_books")
}

// # Genre Links

var linkGenresQuery = fmt.Sprintf(`
	INSERT INTO %s (%s, %s)
	SELECT $1, unnest($2::bigint[])
	ON CONFLICT DO NOTHING
`, schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID, schema.CatalogBookGenre.GenreID)

func (repository *PostgresRepository) LinkGenres(context context.Context, bookID int, genreIDs []int) error {
	if len(genreIDs) == 0 {
		return nil
	}

	_, err := repository.db.Exec(context, linkGenresQuery, bookID, genreIDs)
	return dberr.Wrap(err, "link_genres")
}

func (repository *PostgresRepository) ReplaceGenres(context context.Context, bookID int, genreIDs []int) error {
	return postgres.WithTransaction(context, repository.db, func(tx pgx.Tx) error {
		unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID)
		if _, err := tx.Exec(context, unlink, bookID); err != nil {
			return dberr.Wrap(err, "unlink_genres")
		}

		if len(genreIDs) == 0 {
			return nil
		}

		_, err := tx.Exec(context, linkGenresQuery, bookID, genreIDs)
		return dberr.Wrap(err, "link_genres")
	})
}

// # Book Instances

// instanceWithBook selects a copy left-joined to its book, aliased bi and b.
var instanceWithBook = fmt.Sprintf(`
	SELECT bi.%s, bi.%s, bi.%s, bi.%s, bi.%s,
		b.%s, b.%s, b.%s, b.%s, b.%s
	FROM %s bi
	LEFT JOIN %s b ON b.%s = bi.%s
`,
	schema.CatalogBookInstance.ID, schema.CatalogBookInstance.BookID, schema.CatalogBookInstance.Imprint,
	schema.CatalogBookInstance.Status, schema.CatalogBookInstance.DueBack,
	schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Summary,
	schema.CatalogBook.ISBN, schema.CatalogBook.AuthorID,
	schema.CatalogBookInstance.Table, schema.CatalogBook.Table,
	schema.CatalogBook.ID, schema.CatalogBookInstance.BookID,
)

func scanInstanceWithBook(row rowScanner) (*BookInstance, error) {
	var (
		bi       = &BookInstance{}
		status   string
		bookID   *int
		title    *string
		summary  *string
		isbn     *string
		authorID *int
	)

	if err := row.Scan(
		&bi.ID, &bi.BookID, &bi.Imprint, &status, &bi.DueBack,
		&bookID, &title, &summary, &isbn, &authorID,
	); err != nil {
		return nil, err
	}

	bi.Status = Status(status)
	if bookID != nil {
		bi.Book = &Book{
			ID:       *bookID,
			Title:    pointer.Val(title),
			Summary:  pointer.Val(summary),
			ISBN:     pointer.Val(isbn),
			AuthorID: pointer.Val(authorID),
		}
	}
	return bi, nil
}

func (repository *PostgresRepository) queryInstances(context context.Context, action, query string, args ...any) ([]*BookInstance, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	instances := []*BookInstance{}
	for rows.Next() {
		bi, err := scanInstanceWithBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book_instance")
		}
		instances = append(instances, bi)
	}

	return instances, dberr.Wrap(rows.Err(), action)
}

func (repository *PostgresRepository) ListBookInstances(context context.Context) ([]*BookInstance, error) {
	query := instanceWithBook + fmt.Sprintf(`ORDER BY b.%s ASC NULLS FIRST, bi.%s`,
		schema.CatalogBook.Title, schema.CatalogBookInstance.ID,
	)
	return repository.queryInstances(context, "list_book_instances", query)
}

func (repository *PostgresRepository) ListInstancesByBook(context context.Context, bookID int) ([]*BookInstance, error) {
	query := instanceWithBook + fmt.Sprintf(`WHERE bi.%s = $1 ORDER BY bi.%s`,
		schema.CatalogBookInstance.BookID, schema.CatalogBookInstance.ID,
	)
	return repository.queryInstances(context, "list_instances_by_book", query, bookID)
}

func (repository *PostgresRepository) GetBookInstance(context context.Context, id int) (*BookInstance, error) {
	query := instanceWithBook + fmt.Sprintf(`WHERE bi.%s = $1`, schema.CatalogBookInstance.ID)

	bi, err := scanInstanceWithBook(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_instance")
	}
	return bi, nil
}

func (repository *PostgresRepository) CreateBookInstance(context context.Context, bi *BookInstance) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.CatalogBookInstance.Table, schema.CatalogBookInstance.BookID, schema.CatalogBookInstance.Imprint,
		schema.CatalogBookInstance.Status, schema.CatalogBookInstance.DueBack,
		schema.CatalogBookInstance.ID,
	)

	err := repository.db.QueryRow(context, query, bi.BookID, bi.Imprint, string(bi.Status), dueBackOrNow(bi.DueBack)).Scan(&bi.ID)
	return dberr.Wrap(err, "create_book_instance")
}

func (repository *PostgresRepository) UpdateBookInstance(context context.Context, bi *BookInstance) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.CatalogBookInstance.Table, schema.CatalogBookInstance.BookID, schema.CatalogBookInstance.Imprint,
		schema.CatalogBookInstance.Status, schema.CatalogBookInstance.DueBack, schema.CatalogBookInstance.ID,
	)

	cmd, err := repository.db.Exec(context, query, bi.ID, bi.BookID, bi.Imprint, string(bi.Status), dueBackOrNow(bi.DueBack))
	if err != nil {
		return dberr.Wrap(err, "update_book_instance")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteBookInstance(context context.Context, id int) error {
	return repository.deleteByID(context, schema.CatalogBookInstance.Table, schema.CatalogBookInstance.ID, id, "delete_book_instance")
}

func (repository *PostgresRepository) CountBookInstances(context context.Context) (int, error) {
	return repository.count(context, schema.CatalogBookInstance.Table, "count_book_instances")
}

func (repository *PostgresRepository) CountBookInstancesByStatus(context context.Context, status Status) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.CatalogBookInstance.Table, schema.CatalogBookInstance.Status,
	)

	var total int
	err := repository.db.QueryRow(context, query, string(status)).Scan(&total)
	return total, dberr.Wrap(err, "count_book_instances_by_status")
}

// dueBackOrNow stores a zero due date as the current time, mirroring the column default.
func dueBackOrNow(dueBack time.Time) time.Time {
	if dueBack.IsZero() {
		return time.Now()
	}
	return dueBack
}
