package patch

import (
	"strconv"
	"strings"

	"github.com/xraph/scimcore/internal/errs"
)

// filterTerm is one "attr op value" comparison, or a presence check
// ("attr pr").
type filterTerm struct {
	attribute string
	op        string
	value     string
}

// filterExpr is a left-to-right conjunction/disjunction of terms. This
// core intentionally supports only the attribute-equality subset named in
// the PATCH path grammar (eq/ne/pr joined by and/or), not a full filter
// grammar.
type filterExpr struct {
	terms      []filterTerm
	connectors []string // len(terms)-1 connectors, each "and" or "or"
}

func parseFilter(src string) (*filterExpr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, errs.InvalidPath(src, "empty filter expression")
	}

	fields := splitFilter(src)

	var terms []filterTerm
	var connectors []string

	i := 0
	for i < len(fields) {
		term, consumed, err := parseTerm(fields[i:])
		if err != nil {
			return nil, err
		}

		terms = append(terms, term)
		i += consumed

		if i >= len(fields) {
			break
		}

		conn := strings.ToLower(fields[i])
		if conn != "and" && conn != "or" {
			return nil, errs.InvalidPath(src, "expected \"and\"/\"or\"")
		}

		connectors = append(connectors, conn)
		i++
	}

	return &filterExpr{terms: terms, connectors: connectors}, nil
}

func parseTerm(fields []string) (filterTerm, int, error) {
	if len(fields) < 2 {
		return filterTerm{}, 0, errs.InvalidPath(strings.Join(fields, " "), "incomplete filter term")
	}

	attr := fields[0]
	op := strings.ToLower(fields[1])

	switch op {
	case "pr":
		return filterTerm{attribute: attr, op: op}, 2, nil
	case "eq", "ne":
		if len(fields) < 3 {
			return filterTerm{}, 0, errs.InvalidPath(strings.Join(fields, " "), "missing comparison value")
		}

		value := strings.Trim(fields[2], `"`)
		return filterTerm{attribute: attr, op: op, value: value}, 3, nil
	default:
		return filterTerm{}, 0, errs.InvalidPath(strings.Join(fields, " "), "unsupported filter operator: "+op)
	}
}

// splitFilter tokenizes on whitespace while keeping quoted string values
// (which may themselves contain spaces) intact.
func splitFilter(src string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}

	for _, r := range src {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ' ' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}

	flush()

	return fields
}

func (f *filterExpr) matches(obj map[string]any) bool {
	if f == nil {
		return true
	}

	result := evalTerm(obj, f.terms[0])
	for i, conn := range f.connectors {
		next := evalTerm(obj, f.terms[i+1])

		if conn == "and" {
			result = result && next
		} else {
			result = result || next
		}
	}

	return result
}

func evalTerm(obj map[string]any, t filterTerm) bool {
	v, present := obj[t.attribute]

	switch t.op {
	case "pr":
		return present
	case "eq":
		return present && stringifyValue(v) == t.value
	case "ne":
		return !present || stringifyValue(v) != t.value
	default:
		return false
	}
}

func stringifyValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
