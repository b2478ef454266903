package repositories

import (
	"net/url"

	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/query"
	"gorm.io/gorm"
)

var postListSpec = query.Spec{
	Filters: []query.Filter{
		{Param: "title", Column: "posts.title", Op: query.OpIContains},
		{Param: "author", Column: "posts.author_id", Op: query.OpEquals, Kind: query.KindInt},
		{Param: "tag", Column: "tags.name", Op: query.OpEquals, Joined: true},
	},
	SearchColumns: []string{"posts.title", "posts.content"},
	Join:          "JOIN post_tags ON post_tags.post_id = posts.id JOIN tags ON tags.id = post_tags.tag_id",
	Sorts: map[string]string{
		"created_at": "posts.created_at",
		"title":      "posts.title",
	},
	DefaultOrder: "posts.created_at DESC",
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post, tagNames []string) error
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(post *models.Post, tagNames []string) error
	DeletePost(id uint) error
	ListPosts(params url.Values, requestURL *url.URL) (query.Page, error)
	ListPostsByAuthors(authorIDs []uint, params url.Values, requestURL *url.URL) (query.Page, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts the post and attaches its tags, creating missing tags
// by name, all inside one transaction.
func (r *PostgresPostRepository) CreatePost(post *models.Post, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		post.Tags = tags
		return tx.Create(post).Error
	})
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Tags").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost saves the post and, when tagNames is non-nil, replaces its tag
// set.
func (r *PostgresPostRepository) UpdatePost(post *models.Post, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		if tagNames == nil {
			return nil
		}
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		return tx.Model(post).Association("Tags").Replace(tags)
	})
}

// DeletePost removes the post and, through the declared cascades, its
// comments and likes in one transaction.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Select("Tags").Delete(&models.Post{ID: id})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *PostgresPostRepository) ListPosts(params url.Values, requestURL *url.URL) (query.Page, error) {
	return r.list(r.db.Model(&models.Post{}), params, requestURL)
}

// ListPostsByAuthors scopes the post list to the given authors; used by the
// feed to show only followed users.
func (r *PostgresPostRepository) ListPostsByAuthors(authorIDs []uint, params url.Values, requestURL *url.URL) (query.Page, error) {
	return r.list(r.db.Model(&models.Post{}).Where("posts.author_id IN ?", authorIDs), params, requestURL)
}

func (r *PostgresPostRepository) list(base *gorm.DB, params url.Values, requestURL *url.URL) (query.Page, error) {
	page, err := query.ParsePage(params)
	if err != nil {
		return query.Page{}, err
	}
	q, err := postListSpec.Apply(base, params)
	if err != nil {
		return query.Page{}, err
	}
	var posts []models.Post
	return query.Paginate(q.Preload("Tags"), requestURL, page, &posts)
}

// resolveTags maps tag names to rows, creating names that do not exist yet
func resolveTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
