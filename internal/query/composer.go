// Package query turns the flat query-parameter sets accepted by list
// endpoints into filtered, searched, ordered and paginated GORM queries.
// Each entity declares a Spec once; handlers apply it to the request.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalidOrdering is returned when the ordering parameter names a field
// the entity has not declared sortable.
var ErrInvalidOrdering = errors.New("invalid ordering field")

// Op is the comparison applied by a filter
type Op int

const (
	OpEquals Op = iota
	OpIContains
	OpGTE
	OpLTE
)

// Kind is the declared type of a filter value
type Kind int

const (
	KindString Kind = iota
	KindInt
)

// Filter binds one query parameter to a column comparison
type Filter struct {
	Param  string
	Column string
	Op     Op
	Kind   Kind
	// Joined marks filters against a column that only exists after the
	// Spec's join clause is applied.
	Joined bool
}

// Spec is the static declaration of what a list endpoint supports: which
// parameters filter, which columns the search parameter scans, and which
// fields may order the result.
type Spec struct {
	Filters []Filter

	// SearchColumns are OR-combined with a case-insensitive substring match
	// against the "search" parameter. May include joined columns; set
	// SearchJoined when they do.
	SearchColumns []string
	SearchJoined  bool

	// Join is the clause pulled in when a joined filter is active or a
	// search touches a joined column, e.g.
	// "JOIN authors ON authors.id = books.author_id".
	Join string

	// Sorts maps allowed ordering values to columns.
	Sorts map[string]string

	// DefaultOrder is used when no ordering parameter is present.
	DefaultOrder string
}

// Apply builds the scoped query for params. Unknown parameters are ignored.
// Filter values that fail to parse for their declared kind are silently
// dropped rather than rejected; narrowing parameters never change the
// response shape, so a garbled one degrades to "no filter". The ordering
// parameter stays strict because it does change the shape: an undeclared
// field returns ErrInvalidOrdering.
func (s Spec) Apply(db *gorm.DB, params url.Values) (*gorm.DB, error) {
	joined := false
	join := func() {
		if !joined && s.Join != "" {
			db = db.Joins(s.Join)
			joined = true
		}
	}

	for _, f := range s.Filters {
		raw := params.Get(f.Param)
		if raw == "" {
			continue
		}
		value, ok := f.parse(raw)
		if !ok {
			continue
		}
		if f.Joined {
			join()
		}
		switch f.Op {
		case OpIContains:
			db = db.Where(fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", f.Column), contains(raw))
		case OpGTE:
			db = db.Where(fmt.Sprintf("%s >= ?", f.Column), value)
		case OpLTE:
			db = db.Where(fmt.Sprintf("%s <= ?", f.Column), value)
		default:
			db = db.Where(fmt.Sprintf("%s = ?", f.Column), value)
		}
	}

	if search := params.Get("search"); search != "" && len(s.SearchColumns) > 0 {
		if s.SearchJoined {
			join()
		}
		clauses := make([]string, len(s.SearchColumns))
		args := make([]interface{}, len(s.SearchColumns))
		for i, col := range s.SearchColumns {
			clauses[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", col)
			args[i] = contains(search)
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}

	order, err := s.order(params.Get("ordering"))
	if err != nil {
		return nil, err
	}
	return db.Order(order), nil
}

func (s Spec) order(raw string) (string, error) {
	if raw == "" {
		return s.DefaultOrder, nil
	}
	field := raw
	desc := false
	if strings.HasPrefix(field, "-") {
		field = field[1:]
		desc = true
	}
	column, ok := s.Sorts[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrdering, raw)
	}
	if desc {
		return column + " DESC", nil
	}
	return column + " ASC", nil
}

func (f Filter) parse(raw string) (interface{}, bool) {
	switch f.Kind {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false
		}
		return n, true
	default:
		return raw, true
	}
}

// contains builds a lowercased LIKE pattern, escaping the wildcards so user
// input matches literally.
func contains(raw string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(raw))
	return "%" + escaped + "%"
}
