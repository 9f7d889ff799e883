/*
Package catalog provides the gorm implementation of the catalogue's data access.

It backs local development and the test suite with an embedded SQLite database.
Records mirror the PostgreSQL migrations: the same table and column names,
foreign keys with RESTRICT or CASCADE deletes, the genre name bounds and the
copy status set as CHECK constraints.
*/
package catalog

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

// # Records

type authorRecord struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	FirstName   string `gorm:"size:100;not null"`
	FamilyName  string `gorm:"size:100;not null"`
	DateOfBirth *time.Time
	DateOfDeath *time.Time
}

func (authorRecord) TableName() string { return schema.CatalogAuthor.Table }

type genreRecord struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:100;not null;uniqueIndex;check:length(name) BETWEEN 3 AND 100"`
}

func (genreRecord) TableName() string { return schema.CatalogGenre.Table }

type bookRecord struct {
	ID       int          `gorm:"primaryKey;autoIncrement"`
	Title    string       `gorm:"size:255;not null"`
	Summary  string       `gorm:"not null"`
	ISBN     string       `gorm:"column:isbn;size:64;not null"`
	AuthorID int          `gorm:"not null;index"`
	Author   authorRecord `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
}

func (bookRecord) TableName() string { return schema.CatalogBook.Table }

type bookGenreRecord struct {
	BookID  int         `gorm:"primaryKey;autoIncrement:false"`
	GenreID int         `gorm:"primaryKey;autoIncrement:false;index"`
	Book    bookRecord  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Genre   genreRecord `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"`
}

func (bookGenreRecord) TableName() string { return schema.CatalogBookGenre.Table }

type bookInstanceRecord struct {
	ID      int         `gorm:"primaryKey;autoIncrement"`
	BookID  *int        `gorm:"index"`
	Book    *bookRecord `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT"`
	Imprint string      `gorm:"size:255;not null"`
	Status  string      `gorm:"size:20;not null;check:status IN ('Available','Maintenance','Loaned','Reserved')"`
	DueBack time.Time   `gorm:"not null"`
}

func (bookInstanceRecord) TableName() string { return schema.CatalogBookInstance.Table }

// AutoMigrate creates or updates the catalogue tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&authorRecord{},
		&genreRecord{},
		&bookRecord{},
		&bookGenreRecord{},
		&bookInstanceRecord{},
	)
}

// # Record Mapping

func (r authorRecord) toDomain() *Author {
	return &Author{
		ID:          r.ID,
		FirstName:   r.FirstName,
		FamilyName:  r.FamilyName,
		DateOfBirth: r.DateOfBirth,
		DateOfDeath: r.DateOfDeath,
	}
}

func (r genreRecord) toDomain() *Genre {
	return &Genre{ID: r.ID, Name: r.Name}
}

func (r bookRecord) toDomain() *Book {
	book := &Book{
		ID:       r.ID,
		Title:    r.Title,
		Summary:  r.Summary,
		ISBN:     r.ISBN,
		AuthorID: r.AuthorID,
	}
	if r.Author.ID != 0 {
		book.Author = r.Author.toDomain()
	}
	return book
}

func (r bookInstanceRecord) toDomain() *BookInstance {
	instance := &BookInstance{
		ID:      r.ID,
		BookID:  r.BookID,
		Imprint: r.Imprint,
		Status:  Status(r.Status),
		DueBack: r.DueBack,
	}
	if r.Book != nil {
		instance.Book = r.Book.toDomain()
	}
	return instance
}

// # Repository

// GormRepository implements [Repository] using gorm.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository constructs a gorm backed catalogue store.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// # Authors

func (repository *GormRepository) ListAuthors(context context.Context) ([]*Author, error) {
	var records []authorRecord
	err := repository.db.WithContext(context).
		Order(schema.CatalogAuthor.FamilyName).
		Order(schema.CatalogAuthor.FirstName).
		Order(schema.CatalogAuthor.ID).
		Find(&records).Error
	if err != nil {
		return nil, dberr.Wrap(err, "list_authors")
	}
	return slice.Map(records, authorRecord.toDomain), nil
}

func (repository *GormRepository) GetAuthor(context context.Context, id int) (*Author, error) {
	var record authorRecord
	if err := repository.db.WithContext(context).First(&record, id).Error; err != nil {
		return nil, dberr.Wrap(err, "get_author")
	}
	return record.toDomain(), nil
}

func (repository *GormRepository) CreateAuthor(context context.Context, a *Author) error {
	record := authorRecord{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: a.DateOfBirth,
		DateOfDeath: a.DateOfDeath,
	}
	if err := repository.db.WithContext(context).Create(&record).Error; err != nil {
		return dberr.Wrap(err, "create_author")
	}
	a.ID = record.ID
	return nil
}

func (repository *GormRepository) UpdateAuthor(context context.Context, a *Author) error {
	return repository.updateByID(context, &authorRecord{}, a.ID, map[string]any{
		schema.CatalogAuthor.FirstName:   a.FirstName,
		schema.CatalogAuthor.FamilyName:  a.FamilyName,
		schema.CatalogAuthor.DateOfBirth: a.DateOfBirth,
		schema.CatalogAuthor.DateOfDeath: a.DateOfDeath,
	}, "update_author")
}

func (repository *GormRepository) DeleteAuthor(context context.Context, id int) error {
	return repository.deleteByID(context, &authorRecord{}, id, "delete_author")
}

func (repository *GormRepository) CountAuthors(context context.Context) (int, error) {
	return repository.count(repository.db.WithContext(context).Model(&authorRecord{}), "count_authors")
}

// # Genres

func (repository *GormRepository) ListGenres(context context.Context) ([]*Genre, error) {
	var records []genreRecord
	if err := repository.db.WithContext(context).Order(schema.CatalogGenre.Name).Find(&records).Error; err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	return slice.Map(records, genreRecord.toDomain), nil
}

func (repository *GormRepository) GetGenre(context context.Context, id int) (*Genre, error) {
	var record genreRecord
	if err := repository.db.WithContext(context).First(&record, id).Error; err != nil {
		return nil, dberr.Wrap(err, "get_genre")
	}
	return record.toDomain(), nil
}

func (repository *GormRepository) FindGenreByName(context context.Context, name string) (*Genre, error) {
	var record genreRecord
	err := repository.db.WithContext(context).
		Where(schema.CatalogGenre.Name+" = ?", name).
		First(&record).Error
	if err != nil {
		return nil, dberr.Wrap(err, "find_genre_by_name")
	}
	return record.toDomain(), nil
}

func (repository *GormRepository) CreateGenre(context context.Context, g *Genre) error {
	record := genreRecord{Name: g.Name}
	if err := repository.db.WithContext(context).Create(&record).Error; err != nil {
		return dberr.Wrap(err, "create_genre")
	}
	g.ID = record.ID
	return nil
}

func (repository *GormRepository) UpdateGenre(context context.Context, g *Genre) error {
	return repository.updateByID(context, &genreRecord{}, g.ID, map[string]any{
		schema.CatalogGenre.Name: g.Name,
	}, "update_genre")
}

func (repository *GormRepository) DeleteGenre(context context.Context, id int) error {
	return repository.deleteByID(context, &genreRecord{}, id, "delete_genre")
}

func (repository *GormRepository) CountGenres(context context.Context) (int, error) {
	return repository.count(repository.db.WithContext(context).Model(&genreRecord{}), "count_genres")
}

// # Shared Statements

// updateByID writes values to the row whose primary key is id.
func (repository *GormRepository) updateByID(context context.Context, model any, id int, values map[string]any, action string) error {
	result := repository.db.WithContext(context).Model(model).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return dberr.Wrap(result.Error, action)
	}

	if result.RowsAffected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *GormRepository) deleteByID(context context.Context, model any, id int, action string) error {
	result := repository.db.WithContext(context).Delete(model, id)
	if result.Error != nil {
		return dberr.Wrap(result.Error, action)
	}

	if result.RowsAffected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *GormRepository) count(query *gorm.DB, action string) (int, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, dberr.Wrap(err, action)
	}
	return int(total), nil
}

// omitAssociations keeps gorm from upserting the zero-valued parent records
// embedded in a record on insert.
func omitAssociations(db *gorm.DB) *gorm.DB {
	return db.Omit(clause.Associations)
}
