package repositories

import (
	"net/url"
	"strings"

	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/query"
	"gorm.io/gorm"
)

// userListSpec declares the filterable/searchable/sortable surface of the
// user list endpoint.
var userListSpec = query.Spec{
	Filters: []query.Filter{
		{Param: "username", Column: "username", Op: query.OpIContains},
	},
	SearchColumns: []string{"username", "email"},
	Sorts: map[string]string{
		"username":   "username",
		"created_at": "created_at",
	},
	DefaultOrder: "created_at DESC",
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	ListUsers(params url.Values, requestURL *url.URL) (query.Page, error)
	SearchUsers(term string, limit int) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser removes the user and, through the declared cascades, their
// posts, comments, likes, follows and notifications in one transaction.
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *PostgresUserRepository) ListUsers(params url.Values, requestURL *url.URL) (query.Page, error) {
	page, err := query.ParsePage(params)
	if err != nil {
		return query.Page{}, err
	}
	q, err := userListSpec.Apply(r.db.Model(&models.User{}), params)
	if err != nil {
		return query.Page{}, err
	}
	var users []models.User
	return query.Paginate(q, requestURL, page, &users)
}

func (r *PostgresUserRepository) SearchUsers(term string, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("username ASC").Limit(limit).Find(&users).Error
	return users, err
}
