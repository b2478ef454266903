package repositories

import (
	"net/url"

	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/query"
	"gorm.io/gorm"
)

var authorListSpec = query.Spec{
	Filters: []query.Filter{
		{Param: "name", Column: "name", Op: query.OpIContains},
	},
	SearchColumns: []string{"name"},
	Sorts: map[string]string{
		"name": "name",
	},
	DefaultOrder: "name ASC",
}

// AuthorRepository defines the interface for author data operations
type AuthorRepository interface {
	CreateAuthor(author *models.Author) error
	GetAuthorByID(id uint) (*models.Author, error)
	UpdateAuthor(author *models.Author) error
	DeleteAuthor(id uint) error
	ListAuthors(params url.Values, requestURL *url.URL) (query.Page, error)
}

// PostgresAuthorRepository implements AuthorRepository for PostgreSQL
type PostgresAuthorRepository struct {
	db *gorm.DB
}

// NewPostgresAuthorRepository creates a new PostgresAuthorRepository
func NewPostgresAuthorRepository(db *gorm.DB) *PostgresAuthorRepository {
	return &PostgresAuthorRepository{db: db}
}

func (r *PostgresAuthorRepository) CreateAuthor(author *models.Author) error {
	return r.db.Create(author).Error
}

// GetAuthorByID loads the author together with their books
func (r *PostgresAuthorRepository) GetAuthorByID(id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.Preload("Books").First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *PostgresAuthorRepository) UpdateAuthor(author *models.Author) error {
	return r.db.Save(author).Error
}

// DeleteAuthor removes the author and all of their books in one transaction
func (r *PostgresAuthorRepository) DeleteAuthor(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Author{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *PostgresAuthorRepository) ListAuthors(params url.Values, requestURL *url.URL) (query.Page, error) {
	page, err := query.ParsePage(params)
	if err != nil {
		return query.Page{}, err
	}
	q, err := authorListSpec.Apply(r.db.Model(&models.Author{}), params)
	if err != nil {
		return query.Page{}, err
	}
	var authors []models.Author
	return query.Paginate(q, requestURL, page, &authors)
}
