package patch

import (
	"strings"

	"github.com/xraph/scimcore/internal/errs"
)

// path is a parsed RFC 7644 §3.5.2 PATCH path expression, supporting the
// subset: attr, attr.subAttr, attr[filter], attr[filter].subAttr.
type path struct {
	attribute string
	filter    *filterExpr
	subAttr   string
}

// immutablePaths are the exact paths the mutability rule forbids
// operating on, regardless of operation kind.
var immutablePaths = map[string]bool{
	"id":                true,
	"meta.created":      true,
	"meta.resourceType": true,
	"meta.location":     true,
}

func parsePath(raw string) (path, error) {
	if raw == "" {
		return path{}, nil
	}

	if immutablePaths[raw] {
		return path{}, errs.Mutability(raw)
	}

	attr := raw
	subAttr := ""
	var filter *filterExpr

	if open := strings.IndexByte(raw, '['); open >= 0 {
		closeIdx := strings.IndexByte(raw, ']')
		if closeIdx < open {
			return path{}, errs.InvalidPath(raw, "unbalanced filter brackets")
		}

		attr = raw[:open]
		filterSrc := raw[open+1 : closeIdx]
		rest := raw[closeIdx+1:]

		f, err := parseFilter(filterSrc)
		if err != nil {
			return path{}, err
		}

		filter = f

		if rest != "" {
			if !strings.HasPrefix(rest, ".") {
				return path{}, errs.InvalidPath(raw, "expected '.' after filter")
			}

			subAttr = rest[1:]
		}
	} else if dot := strings.IndexByte(raw, '.'); dot >= 0 {
		attr = raw[:dot]
		subAttr = raw[dot+1:]
	}

	if attr == "" {
		return path{}, errs.InvalidPath(raw, "missing attribute name")
	}

	return path{attribute: attr, filter: filter, subAttr: subAttr}, nil
}
