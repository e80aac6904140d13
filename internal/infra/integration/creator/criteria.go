package creator

import (
	"fmt"
	"strings"
)

// Criteria is a boolean expression in the report query language,
// e.g. (Record_Id == "123" && Module == "Leads").
type Criteria string

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// IsRecordID reports whether s has the shape of a platform record id, which
// is a non-empty run of decimal digits.
func IsRecordID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func quote(v any) string {
	switch val := v.(type) {
	case string:
		return `"` + quoteEscaper.Replace(val) + `"`
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(val)
	}
}

// Eq matches field equality. ID fields are compared unquoted; a value that
// is not a record id is quoted instead, which matches no record.
func Eq(field string, value any) Criteria {
	if field == "ID" {
		if id := fmt.Sprint(value); IsRecordID(id) {
			return Criteria("(ID == " + id + ")")
		}
	}
	return Criteria(fmt.Sprintf("(%s == %s)", field, quote(value)))
}

// In matches membership in a list of values.
func In(field string, values ...string) Criteria {
	cs := make([]Criteria, len(values))
	for i, v := range values {
		cs[i] = Eq(field, v)
	}
	return Or(cs...)
}

func And(cs ...Criteria) Criteria { return join(" && ", cs) }

func Or(cs ...Criteria) Criteria { return join(" || ", cs) }

func join(op string, cs []Criteria) Criteria {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		if c != "" {
			parts = append(parts, string(c))
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return Criteria(parts[0])
	}
	return Criteria("(" + strings.Join(parts, op) + ")")
}

func (c Criteria) String() string { return string(c) }
