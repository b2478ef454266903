package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/readstack/backend/internal/models"
)

func TestBookCreateRetrieveRoundTrip(t *testing.T) {
	e, _ := newTestServer(t)
	token, _ := registerUser(t, e, "librarian")

	_, bookID := createAuthorAndBook(t, e, token, "George Orwell", "1984", 1949)

	rec := do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", bookID), "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get book: status %d, body %s", rec.Code, rec.Body.String())
	}
	var book models.Book
	decode(t, rec, &book)
	if book.Title != "1984" || book.PublicationYear != 1949 {
		t.Fatalf("round trip lost fields: %+v", book)
	}
}

func TestBookFuturePublicationYearRejected(t *testing.T) {
	e, _ := newTestServer(t)
	token, _ := registerUser(t, e, "librarian")
	authorID, _ := createAuthorAndBook(t, e, token, "George Orwell", "1984", 1949)

	nextYear := time.Now().Year() + 1
	body := fmt.Sprintf(`{"title":"From the Future","publication_year":%d,"author":%d}`, nextYear, authorID)
	rec := do(t, e, http.MethodPost, "/api/v1/books", body, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("future year: status %d, body %s", rec.Code, rec.Body.String())
	}
	if !containsField(rec.Body.Bytes(), "publication_year") {
		t.Fatalf("error does not name the field: %s", rec.Body.String())
	}

	// Current year is allowed
	body = fmt.Sprintf(`{"title":"Hot Off the Press","publication_year":%d,"author":%d}`, time.Now().Year(), authorID)
	rec = do(t, e, http.MethodPost, "/api/v1/books", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("current year: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestBookPartialUpdate(t *testing.T) {
	e, _ := newTestServer(t)
	token, _ := registerUser(t, e, "librarian")
	_, bookID := createAuthorAndBook(t, e, token, "George Orwell", "1984", 1949)

	rec := do(t, e, http.MethodPatch, fmt.Sprintf("/api/v1/books/%d", bookID), `{"publication_year":1950}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("partial update: status %d, body %s", rec.Code, rec.Body.String())
	}
	var book models.Book
	decode(t, rec, &book)
	if book.Title != "1984" || book.PublicationYear != 1950 {
		t.Fatalf("after update: %+v", book)
	}

	// An empty title is a provided value, not an omission
	rec = do(t, e, http.MethodPatch, fmt.Sprintf("/api/v1/books/%d", bookID), `{"title":""}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty title: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestBookUnknownAuthorRejected(t *testing.T) {
	e, _ := newTestServer(t)
	token, _ := registerUser(t, e, "librarian")

	rec := do(t, e, http.MethodPost, "/api/v1/books", `{"title":"Orphan","publication_year":2000,"author":999}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown author: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestBookMutationsRequireAuth(t *testing.T) {
	e, db := newTestServer(t)
	token, _ := registerUser(t, e, "librarian")
	_, bookID := createAuthorAndBook(t, e, token, "George Orwell", "1984", 1949)

	rec := do(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", bookID), "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated delete: status %d", rec.Code)
	}
	// The book is still there
	var count int64
	db.Model(&models.Book{}).Count(&count)
	if count != 1 {
		t.Fatalf("book count after rejected delete: %d", count)
	}

	rec = do(t, e, http.MethodPost, "/api/v1/books", `{"title":"X","publication_year":2000,"author":1}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: status %d", rec.Code)
	}

	// Authentication is checked before the body; an invalid payload with no
	// token still gets 401, not 400
	rec = do(t, e, http.MethodPost, "/api/v1/books", `{"title":""}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid body without token: status %d, want 401", rec.Code)
	}

	rec = do(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", bookID), "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("authenticated delete: status %d", rec.Code)
	}
}

func TestBookListFilterSearchOrder(t *testing.T) {
	e, _ := newTestServer(t)
	token, _ := registerUser(t, e, "librarian")

	orwellID, _ := createAuthorAndBook(t, e, token, "George Orwell", "1984", 1949)
	do(t, e, http.MethodPost, "/api/v1/books",
		fmt.Sprintf(`{"title":"Animal Farm","publication_year":1945,"author":%d}`, orwellID), token)
	createAuthorAndBook(t, e, token, "Virginia Woolf", "Orlando", 1928)

	listTitles := func(target string) []string {
		rec := do(t, e, http.MethodGet, target, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d, body %s", target, rec.Code, rec.Body.String())
		}
		var page struct {
			Count   int64         `json:"count"`
			Results []models.Book `json:"results"`
		}
		decode(t, rec, &page)
		out := make([]string, len(page.Results))
		for i, b := range page.Results {
			out[i] = b.Title
		}
		return out
	}

	got := listTitles("/api/v1/books")
	if len(got) != 3 || got[0] != "1984" || got[1] != "Animal Farm" || got[2] != "Orlando" {
		t.Fatalf("default title order: %v", got)
	}

	got = listTitles(fmt.Sprintf("/api/v1/books?author=%d&ordering=-publication_year", orwellID))
	if len(got) != 2 || got[0] != "1984" || got[1] != "Animal Farm" {
		t.Fatalf("filtered and ordered: %v", got)
	}

	got = listTitles("/api/v1/books?author_name=woolf")
	if len(got) != 1 || got[0] != "Orlando" {
		t.Fatalf("joined author_name filter: %v", got)
	}

	got = listTitles("/api/v1/books?search=orwell")
	if len(got) != 2 {
		t.Fatalf("search across author name: %v", got)
	}
}

func TestBookListInvalidOrdering(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/api/v1/books?ordering=price", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid ordering: status %d, body %s", rec.Code, rec.Body.String())
	}
	if !containsField(rec.Body.Bytes(), "ordering") {
		t.Fatalf("error does not name the parameter: %s", rec.Body.String())
	}
}

func TestBookListPagination(t *testing.T) {
	e, _ := newTestServer(t)
	token, _ := registerUser(t, e, "librarian")
	authorID, _ := createAuthorAndBook(t, e, token, "Prolific", "Book 00", 2000)
	for i := 1; i < 13; i++ {
		body := fmt.Sprintf(`{"title":"Book %02d","publication_year":2000,"author":%d}`, i, authorID)
		rec := do(t, e, http.MethodPost, "/api/v1/books", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seeding book %d: status %d", i, rec.Code)
		}
	}

	var page struct {
		Count    int64         `json:"count"`
		Next     *string       `json:"next"`
		Previous *string       `json:"previous"`
		Results  []models.Book `json:"results"`
	}

	rec := do(t, e, http.MethodGet, "/api/v1/books", "", "")
	decode(t, rec, &page)
	if page.Count != 13 || len(page.Results) != 10 {
		t.Fatalf("page 1: count %d, %d results", page.Count, len(page.Results))
	}
	if page.Next == nil || page.Previous != nil {
		t.Fatalf("page 1 links: next=%v previous=%v", page.Next, page.Previous)
	}

	rec = do(t, e, http.MethodGet, *page.Next, "", "")
	decode(t, rec, &page)
	if len(page.Results) != 3 || page.Next != nil || page.Previous == nil {
		t.Fatalf("page 2: %d results, next=%v previous=%v", len(page.Results), page.Next, page.Previous)
	}

	// Past the end is empty, not an error
	rec = do(t, e, http.MethodGet, "/api/v1/books?page=9", "", "")
	decode(t, rec, &page)
	if rec.Code != http.StatusOK || len(page.Results) != 0 || page.Count != 13 {
		t.Fatalf("out-of-range page: status %d, %d results, count %d", rec.Code, len(page.Results), page.Count)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/books?page=0", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("page=0: status %d", rec.Code)
	}
}
