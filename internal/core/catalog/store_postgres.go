/*
Package catalog provides the PostgreSQL implementation of the catalogue's data access.

Queries are assembled from the column constants in the schema package, so a
renamed column only has to change in one place. Joins attach the owning
records (a book's author, a copy's book) in the same round-trip.
*/
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalogue store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// # Authors

var authorColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
	schema.CatalogAuthor.ID, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.FamilyName,
	schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath,
)

func scanAuthor(row rowScanner) (*Author, error) {
	a := &Author{}
	err := row.Scan(&a.ID, &a.FirstName, &a.FamilyName, &a.DateOfBirth, &a.DateOfDeath)
	return a, err
}

func (repository *PostgresRepository) ListAuthors(context context.Context) ([]*Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s, %s, %s`,
		authorColumns, schema.CatalogAuthor.Table,
		schema.CatalogAuthor.FamilyName, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	authors := []*Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, dberr.Wrap(rows.Err(), "list_authors")
}

func (repository *PostgresRepository) GetAuthor(context context.Context, id int) (*Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		authorColumns, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID,
	)

	a, err := scanAuthor(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_author")
	}
	return a, nil
}

func (repository *PostgresRepository) CreateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.FamilyName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath,
		schema.CatalogAuthor.ID,
	)

	err := repository.db.QueryRow(context, query, a.FirstName, a.FamilyName, a.DateOfBirth, a.DateOfDeath).Scan(&a.ID)
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) UpdateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.FamilyName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath, schema.CatalogAuthor.ID,
	)

	cmd, err := repository.db.Exec(context, query, a.ID, a.FirstName, a.FamilyName, a.DateOfBirth, a.DateOfDeath)
	if err != nil {
		return dberr.Wrap(err, "update_author")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteAuthor(context context.Context, id int) error {
	return repository.deleteByID(context, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, id, "delete_author")
}

func (repository *PostgresRepository) CountAuthors(context context.Context) (int, error) {
	return repository.count(context, schema.CatalogAuthor.Table, "count_authors")
}

// # Genres

func (repository *PostgresRepository) ListGenres(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Table, schema.CatalogGenre.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := []*Genre{}
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, dberr.Wrap(rows.Err(), "list_genres")
}

func (repository *PostgresRepository) GetGenre(context context.Context, id int) (*Genre, error) {
	return repository.findGenre(context, schema.CatalogGenre.ID, id, "get_genre")
}

func (repository *PostgresRepository) FindGenreByName(context context.Context, name string) (*Genre, error) {
	return repository.findGenre(context, schema.CatalogGenre.Name, name, "find_genre_by_name")
}

func (repository *PostgresRepository) findGenre(context context.Context, column string, value any, action string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Table, column,
	)

	g := &Genre{}
	if err := repository.db.QueryRow(context, query, value).Scan(&g.ID, &g.Name); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return g, nil
}

func (repository *PostgresRepository) CreateGenre(context context.Context, g *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.ID,
	)

	err := repository.db.QueryRow(context, query, g.Name).Scan(&g.ID)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) UpdateGenre(context context.Context, g *Genre) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.ID,
	)

	cmd, err := repository.db.Exec(context, query, g.ID, g.Name)
	if err != nil {
		return dberr.Wrap(err, "update_genre")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteGenre(context context.Context, id int) error {
	return repository.deleteByID(context, schema.CatalogGenre.Table, schema.CatalogGenre.ID, id, "delete_genre")
}

func (repository *PostgresRepository) CountGenres(context context.Context) (int, error) {
	return repository.count(context, schema.CatalogGenre.Table, "count_genres")
}

// # Shared Statements

func (repository *PostgresRepository) deleteByID(context context.Context, table, idColumn string, id int, action string) error {
	cmd, err := repository.db.Exec(context, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, idColumn), id)
	if err != nil {
		return dberr.Wrap(err, action)
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) count(context context.Context, table, action string) (int, error) {
	var total int
	err := repository.db.QueryRow(context, fmt.Sprintf(`SELECT count(*) FROM %s`, table)).Scan(&total)
	return total, dberr.Wrap(err, action)
}
