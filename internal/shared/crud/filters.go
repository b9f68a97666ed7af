package crud

import (
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Normalize trims value; blank values report false and mean "no filter".
func Normalize(value string) (string, bool) {
	value = strings.TrimSpace(value)
	return value, value != ""
}

// likeEscape is the ESCAPE character for LIKE patterns. '!' needs no quoting
// on oracle, mysql or sqlite.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// containsPattern matches term literally anywhere in a value.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?) ESCAPE '" + likeEscape + "'"
}

// Contains matches rows whose column contains term, ignoring case. % and _
// in term match themselves.
func Contains(column, term string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(likeClause(column), containsPattern(term))
	}
}

// Substring is Contains for an optional filter value; blank values yield nil.
func Substring(column, value string) Scope {
	term, ok := Normalize(value)
	if !ok {
		return nil
	}
	return Contains(column, term)
}

// AnyContains ORs Contains over columns and wraps the group in parentheses.
func AnyContains(columns []string, term string) Scope {
	clauses := lo.Map(columns, func(column string, _ int) string {
		return likeClause(column)
	})
	pattern := containsPattern(term)
	args := lo.Map(columns, func(string, int) any {
		return pattern
	})

	return func(db *gorm.DB) *gorm.DB {
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// Equals matches column = value.
func Equals(column string, value any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// OneOf filters column = value when value is one of allowed (case-insensitive).
// Anything else yields nil: no filter.
func OneOf(column, value string, allowed []string) Scope {
	value, ok := Normalize(value)
	if !ok {
		return nil
	}
	value = strings.ToLower(value)
	if !lo.Contains(allowed, value) {
		return nil
	}
	return Equals(column, value)
}

// BoolStatus is the word pair of a boolean state filter, e.g. active/inactive.
type BoolStatus struct {
	True  string
	False string
}

var (
	ActiveStatus    = BoolStatus{True: "active", False: "inactive"}
	PublishedStatus = BoolStatus{True: "published", False: "unpublished"}
)

// Values lists the accepted words, true first.
func (s BoolStatus) Values() []string {
	return []string{s.True, s.False}
}

// Parse maps the status words and "true"/"false", ignoring case and padding.
func (s BoolStatus) Parse(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case s.True, "true":
		return true, true
	case s.False, "false":
		return false, true
	default:
		return false, false
	}
}

// Scope filters column by the parsed status; unknown values yield nil.
func (s BoolStatus) Scope(column, value string) Scope {
	state, ok := s.Parse(value)
	if !ok {
		return nil
	}
	return Equals(column, state)
}
