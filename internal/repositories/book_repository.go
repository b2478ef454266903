package repositories

import (
	"net/url"

	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/query"
	"gorm.io/gorm"
)

// bookListSpec mirrors the filter surface of the catalog: exact author id,
// substring title and author name, and a publication-year range. Sorting is
// limited to title and publication_year, title ascending by default.
var bookListSpec = query.Spec{
	Filters: []query.Filter{
		{Param: "title", Column: "books.title", Op: query.OpIContains},
		{Param: "author", Column: "books.author_id", Op: query.OpEquals, Kind: query.KindInt},
		{Param: "author_name", Column: "authors.name", Op: query.OpIContains, Joined: true},
		{Param: "publication_year", Column: "books.publication_year", Op: query.OpEquals, Kind: query.KindInt},
		{Param: "publication_year_min", Column: "books.publication_year", Op: query.OpGTE, Kind: query.KindInt},
		{Param: "publication_year_max", Column: "books.publication_year", Op: query.OpLTE, Kind: query.KindInt},
	},
	SearchColumns: []string{"books.title", "authors.name"},
	SearchJoined:  true,
	Join:          "JOIN authors ON authors.id = books.author_id",
	Sorts: map[string]string{
		"title":            "books.title",
		"publication_year": "books.publication_year",
	},
	DefaultOrder: "books.title ASC",
}

// BookRepository defines the interface for book data operations
type BookRepository interface {
	CreateBook(book *models.Book) error
	GetBookByID(id uint) (*models.Book, error)
	UpdateBook(book *models.Book) error
	DeleteBook(id uint) error
	ListBooks(params url.Values, requestURL *url.URL) (query.Page, error)
}

// PostgresBookRepository implements BookRepository for PostgreSQL
type PostgresBookRepository struct {
	db *gorm.DB
}

// NewPostgresBookRepository creates a new PostgresBookRepository
func NewPostgresBookRepository(db *gorm.DB) *PostgresBookRepository {
	return &PostgresBookRepository{db: db}
}

func (r *PostgresBookRepository) CreateBook(book *models.Book) error {
	return r.db.Create(book).Error
}

func (r *PostgresBookRepository) GetBookByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *PostgresBookRepository) UpdateBook(book *models.Book) error {
	return r.db.Save(book).Error
}

func (r *PostgresBookRepository) DeleteBook(id uint) error {
	res := r.db.Delete(&models.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresBookRepository) ListBooks(params url.Values, requestURL *url.URL) (query.Page, error) {
	page, err := query.ParsePage(params)
	if err != nil {
		return query.Page{}, err
	}
	q, err := bookListSpec.Apply(r.db.Model(&models.Book{}), params)
	if err != nil {
		return query.Page{}, err
	}
	var books []models.Book
	return query.Paginate(q, requestURL, page, &books)
}
