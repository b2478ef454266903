package query

import (
	"errors"
	"net/url"
	"strconv"

	"gorm.io/gorm"
)

// PageSize is the fixed page length for every list endpoint. A deployment
// constant, not a per-request knob.
const PageSize = 10

// ErrInvalidPage is returned for a page parameter that is not a positive
// integer.
var ErrInvalidPage = errors.New("page must be a positive integer")

// Page is the pagination envelope returned by list endpoints
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// ParsePage reads the page parameter; absent means page 1.
func ParsePage(params url.Values) (int, error) {
	raw := params.Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page <= 0 {
		return 0, ErrInvalidPage
	}
	return page, nil
}

// Paginate counts the composed query and loads one page into dest. A page
// past the end yields an empty dest and Next=nil, not an error. The request
// URL is only used to rebuild next/previous links.
func Paginate(db *gorm.DB, requestURL *url.URL, page int, dest interface{}) (Page, error) {
	var count int64
	if err := db.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return Page{}, err
	}

	offset := (page - 1) * PageSize
	if err := db.Offset(offset).Limit(PageSize).Find(dest).Error; err != nil {
		return Page{}, err
	}

	p := Page{Count: count, Results: dest}
	if int64(page)*PageSize < count {
		p.Next = pageURL(requestURL, page+1)
	}
	if page > 1 {
		p.Previous = pageURL(requestURL, page-1)
	}
	return p, nil
}

func pageURL(requestURL *url.URL, page int) *string {
	u := *requestURL
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
