package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

// # Books

var (
	bookOrderTitle = fmt.Sprintf("%s.%s", schema.CatalogBook.Table, schema.CatalogBook.Title)
	bookOrderID    = fmt.Sprintf("%s.%s", schema.CatalogBook.Table, schema.CatalogBook.ID)
)

func (repository *GormRepository) findBooks(query *gorm.DB, action string) ([]*Book, error) {
	var records []bookRecord
	err := query.Preload("Author").
		Order(bookOrderTitle).
		Order(bookOrderID).
		Find(&records).Error
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return slice.Map(records, bookRecord.toDomain), nil
}

func (repository *GormRepository) ListBooks(context context.Context) ([]*Book, error) {
	return repository.findBooks(repository.db.WithContext(context), "list_books")
}

func (repository *GormRepository) ListBooksByAuthor(context context.Context, authorID int) ([]*Book, error) {
	query := repository.db.WithContext(context).Where(schema.CatalogBook.AuthorID+" = ?", authorID)
	return repository.findBooks(query, "list_books_by_author")
}

func (repository *GormRepository) ListBooksByGenre(context context.Context, genreID int) ([]*Book, error) {
	query := repository.db.WithContext(context).
		Select(schema.CatalogBook.Table+".*").
		Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.%s",
			schema.CatalogBookGenre.Table,
			schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID,
			schema.CatalogBook.Table, schema.CatalogBook.ID,
		)).
		Where(fmt.Sprintf("%s.%s = ?", schema.CatalogBookGenre.Table, schema.CatalogBookGenre.GenreID), genreID)
	return repository.findBooks(query, "list_books_by_genre")
}

func (repository *GormRepository) GetBook(context context.Context, id int) (*Book, error) {
	var record bookRecord
	if err := repository.db.WithContext(context).Preload("Author").First(&record, id).Error; err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}

	var genres []genreRecord
	err := repository.db.WithContext(context).
		Select(schema.CatalogGenre.Table+".*").
		Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.%s",
			schema.CatalogBookGenre.Table,
			schema.CatalogBookGenre.Table, schema.CatalogBookGenre.GenreID,
			schema.CatalogGenre.Table, schema.CatalogGenre.ID,
		)).
		Where(fmt.Sprintf("%s.%s = ?", schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID), id).
		Order(fmt.Sprintf("%s.%s", schema.CatalogGenre.Table, schema.CatalogGenre.Name)).
		Find(&genres).Error
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_genres")
	}

	book := record.toDomain()
	book.Genres = slice.Map(genres, genreRecord.toDomain)
	book.GenreIDs = make([]int, 0, len(genres))
	for _, genre := range genres {
		book.GenreIDs = append(book.GenreIDs, genre.ID)
	}
	return book, nil
}

func (repository *GormRepository) CreateBook(context context.Context, b *Book) error {
	record := bookRecord{Title: b.Title, Summary: b.Summary, ISBN: b.ISBN, AuthorID: b.AuthorID}
	if err := omitAssociations(repository.db.WithContext(context)).Create(&record).Error; err != nil {
		return dberr.Wrap(err, "create_book")
	}
	b.ID = record.ID
	return nil
}

func (repository *GormRepository) UpdateBook(context context.Context, b *Book) error {
	return repository.updateByID(context, &bookRecord{}, b.ID, map[string]any{
		schema.CatalogBook.Title:    b.Title,
		schema.CatalogBook.Summary:  b.Summary,
		schema.CatalogBook.ISBN:     b.ISBN,
		schema.CatalogBook.AuthorID: b.AuthorID,
	}, "update_book")
}

func (repository *GormRepository) DeleteBook(context context.Context, id int) error {
	return repository.deleteByID(context, &bookRecord{}, id, "delete_book")
}

func (repository *GormRepository) CountBooks(context context.Context) (int, error) {
	return repository.count(repository.db.WithContext(context).Model(&bookRecord{}), "count_books")
}

// # Genre Links

func linkRecords(bookID int, genreIDs []int) []bookGenreRecord {
	records := make([]bookGenreRecord, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		records = append(records, bookGenreRecord{BookID: bookID, GenreID: genreID})
	}
	return records
}

func insertLinks(db *gorm.DB, bookID int, genreIDs []int) error {
	if len(genreIDs) == 0 {
		return nil
	}

	records := linkRecords(bookID, genreIDs)
	return omitAssociations(db).Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error
}

func (repository *GormRepository) LinkGenres(context context.Context, bookID int, genreIDs []int) error {
	return dberr.Wrap(insertLinks(repository.db.WithContext(context), bookID, genreIDs), "link_genres")
}

func (repository *GormRepository) ReplaceGenres(context context.Context, bookID int, genreIDs []int) error {
	err := repository.db.WithContext(context).Transaction(func(tx *gorm.DB) error {
		err := tx.Where(schema.CatalogBookGenre.BookID+" = ?", bookID).Delete(&bookGenreRecord{}).Error
		if err != nil {
			return err
		}
		return insertLinks(tx, bookID, genreIDs)
	})
	return dberr.Wrap(err, "replace_genres")
}

// # Book Instances

func (repository *GormRepository) ListBookInstances(context context.Context) ([]*BookInstance, error) {
	var records []bookInstanceRecord
	err := repository.db.WithContext(context).
		Select(schema.CatalogBookInstance.Table+".*").
		Joins(fmt.Sprintf("LEFT JOIN %s ON %s.%s = %s.%s",
			schema.CatalogBook.Table,
			schema.CatalogBook.Table, schema.CatalogBook.ID,
			schema.CatalogBookInstance.Table, schema.CatalogBookInstance.BookID,
		)).
		Preload("Book").
		Order(bookOrderTitle).
		Order(fmt.Sprintf("%s.%s", schema.CatalogBookInstance.Table, schema.CatalogBookInstance.ID)).
		Find(&records).Error
	if err != nil {
		return nil, dberr.Wrap(err, "list_book_instances")
	}
	return slice.Map(records, bookInstanceRecord.toDomain), nil
}

func (repository *GormRepository) ListInstancesByBook(context context.Context, bookID int) ([]*BookInstance, error) {
	var records []bookInstanceRecord
	err := repository.db.WithContext(context).
		Preload("Book").
		Where(schema.CatalogBookInstance.BookID+" = ?", bookID).
		Order(schema.CatalogBookInstance.ID).
		Find(&records).Error
	if err != nil {
		return nil, dberr.Wrap(err, "list_instances_by_book")
	}
	return slice.Map(records, bookInstanceRecord.toDomain), nil
}

func (repository *GormRepository) GetBookInstance(context context.Context, id int) (*BookInstance, error) {
	var record bookInstanceRecord
	if err := repository.db.WithContext(context).Preload("Book").First(&record, id).Error; err != nil {
		return nil, dberr.Wrap(err, "get_book_instance")
	}
	return record.toDomain(), nil
}

func (repository *GormRepository) CreateBookInstance(context context.Context, bi *BookInstance) error {
	record := bookInstanceRecord{
		BookID:  bi.BookID,
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: dueBackOrNow(bi.DueBack),
	}
	if err := omitAssociations(repository.db.WithContext(context)).Create(&record).Error; err != nil {
		return dberr.Wrap(err, "create_book_instance")
	}
	bi.ID = record.ID
	return nil
}

func (repository *GormRepository) UpdateBookInstance(context context.Context, bi *BookInstance) error {
	return repository.updateByID(context, &bookInstanceRecord{}, bi.ID, map[string]any{
		schema.CatalogBookInstance.BookID:  bi.BookID,
		schema.CatalogBookInstance.Imprint: bi.Imprint,
		schema.CatalogBookInstance.Status:  string(bi.Status),
		schema.CatalogBookInstance.DueBack: dueBackOrNow(bi.DueBack),
	}, "update_book_instance")
}

func (repository *GormRepository) DeleteBookInstance(context context.Context, id int) error {
	return repository.deleteByID(context, &bookInstanceRecord{}, id, "delete_book_instance")
}

func (repository *GormRepository) CountBookInstances(context context.Context) (int, error) {
	return repository.count(repository.db.WithContext(context).Model(&bookInstanceRecord{}), "count_book_instances")
}

func (repository *GormRepository) CountBookInstancesByStatus(context context.Context, status Status) (int, error) {
	query := repository.db.WithContext(context).
		Model(&bookInstanceRecord{}).
		Where(schema.CatalogBookInstance.Status+" = ?", string(status))
	return repository.count(query, "count_book_instances_by_status")
}
