package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/notify"
	"github.com/readstack/backend/internal/repositories"
	"github.com/readstack/backend/internal/router"
	"github.com/readstack/backend/pkg/config"
	"github.com/readstack/backend/validators"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// newTestServer wires the whole application against an in-memory database,
// exactly as the router does in production.
func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	mailer, err := notify.NewMailer(&config.Config{})
	if err != nil {
		t.Fatal(err)
	}
	notifier := notify.NewNotifier(repositories.NewPostgresNotificationRepository(db), mailer)

	e := echo.New()
	e.Validator = validators.NewValidator()
	router.SetupMiddleware(e, zerolog.Nop())
	if err := router.SetupRoutes(e, db, notifier, testJWTSecret, zerolog.Nop()); err != nil {
		t.Fatalf("setting up routes: %v", err)
	}
	return e, db
}

func do(t *testing.T, e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

// containsField reports whether a JSON body carries the given key
func containsField(body []byte, field string) bool {
	return bytes.Contains(body, []byte(`"`+field+`"`))
}

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// registerUser creates an account through the API and returns its token and id
func registerUser(t *testing.T, e *echo.Echo, username string) (string, uint) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"password123"}`, username, username)
	rec := do(t, e, http.MethodPost, "/api/v1/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("registering %q: status %d, body %s", username, rec.Code, rec.Body.String())
	}
	var resp authResponse
	decode(t, rec, &resp)
	if resp.Token == "" {
		t.Fatalf("registering %q: empty token", username)
	}
	return resp.Token, resp.User.ID
}

// createAuthorAndBook seeds one author and one book through the API
func createAuthorAndBook(t *testing.T, e *echo.Echo, token, authorName, title string, year int) (uint, uint) {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/v1/authors", fmt.Sprintf(`{"name":%q}`, authorName), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating author: status %d, body %s", rec.Code, rec.Body.String())
	}
	var author models.Author
	decode(t, rec, &author)

	rec = do(t, e, http.MethodPost, "/api/v1/books",
		fmt.Sprintf(`{"title":%q,"publication_year":%d,"author":%d}`, title, year, author.ID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating book: status %d, body %s", rec.Code, rec.Body.String())
	}
	var book models.Book
	decode(t, rec, &book)
	return author.ID, book.ID
}

func createPost(t *testing.T, e *echo.Echo, token, title string, tags []string) uint {
	t.Helper()
	tagJSON, _ := json.Marshal(tags)
	body := fmt.Sprintf(`{"title":%q,"content":"content of %s","tags":%s}`, title, title, tagJSON)
	rec := do(t, e, http.MethodPost, "/api/v1/posts", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating post: status %d, body %s", rec.Code, rec.Body.String())
	}
	var post models.Post
	decode(t, rec, &post)
	return post.ID
}
