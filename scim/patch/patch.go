// Package patch implements the RFC 7644 §3.5.2 PATCH operation engine:
// parsing a PatchOp document, applying its add/remove/replace operations
// against a Resource's JSON projection, and re-validating the result
// before it is allowed to replace the original.
package patch

import (
	"encoding/json"

	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/scim/resource"
	"github.com/xraph/scimcore/scim/schema"
)

// Operation is one element of a PatchOp document's "Operations" array.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Document is the RFC 7644 §3.5.2 PatchOp envelope.
type Document struct {
	Schemas    []string    `json:"schemas"`
	Operations []Operation `json:"Operations"`
}

// ParseDocument decodes a PatchOp JSON document.
func ParseDocument(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.InvalidInput("body", "not a valid PatchOp document")
	}

	return &doc, nil
}

// Apply runs every operation in doc against r in order, atomically: either
// every operation succeeds and the post-PATCH resource is revalidated and
// returned, or the first failure aborts the whole batch, Apply returns nil
// and the error, and r is left unchanged. The caller (the provider) is responsible for recomputing
// meta.lastModified and the version exactly once after Apply succeeds.
func Apply(reg *schema.Registry, r *resource.Resource, doc *Document) (*resource.Resource, error) {
	if len(doc.Operations) == 0 {
		return r, nil
	}

	working := r.ToMap()

	for _, op := range doc.Operations {
		if err := applyOne(working, op); err != nil {
			return nil, err
		}
	}

	raw, err := json.Marshal(working)
	if err != nil {
		return nil, errs.InternalError(err)
	}

	updated, err := resource.FromJSON(reg, r.ResourceType, raw, schema.OpUpdate)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func applyOne(doc map[string]any, op Operation) error {
	switch normalizeOp(op.Op) {
	case "add":
		return applyAdd(doc, op.Path, op.Value)
	case "remove":
		return applyRemove(doc, op.Path)
	case "replace":
		return applyReplace(doc, op.Path, op.Value)
	default:
		return errs.InvalidInput("op", "unsupported PATCH op: "+op.Op)
	}
}

func normalizeOp(op string) string {
	switch op {
	case "add", "Add", "ADD":
		return "add"
	case "remove", "Remove", "REMOVE":
		return "remove"
	case "replace", "Replace", "REPLACE":
		return "replace"
	default:
		return op
	}
}

func applyAdd(doc map[string]any, rawPath string, value any) error {
	p, err := parsePath(rawPath)
	if err != nil {
		return err
	}

	if p.attribute == "" {
		obj, ok := value.(map[string]any)
		if !ok {
			return errs.InvalidInput("value", "add with no path requires an object value")
		}

		for k, v := range obj {
			doc[k] = v
		}

		return nil
	}

	return setAttribute(doc, p, value, true)
}

func applyReplace(doc map[string]any, rawPath string, value any) error {
	p, err := parsePath(rawPath)
	if err != nil {
		return err
	}

	if p.attribute == "" {
		obj, ok := value.(map[string]any)
		if !ok {
			return errs.InvalidInput("value", "replace with no path requires an object value")
		}

		for k, v := range obj {
			doc[k] = v
		}

		return nil
	}

	return setAttribute(doc, p, value, false)
}

func applyRemove(doc map[string]any, rawPath string) error {
	p, err := parsePath(rawPath)
	if err != nil {
		return err
	}

	if p.attribute == "" {
		return errs.InvalidPath(rawPath, "remove requires a path")
	}

	existing, present := doc[p.attribute]
	if !present {
		return errs.InvalidPath(rawPath, "target attribute not present")
	}

	if p.filter == nil && p.subAttr == "" {
		delete(doc, p.attribute)
		return nil
	}

	arr, isArray := existing.([]any)

	if p.filter != nil {
		if !isArray {
			return errs.InvalidPath(rawPath, "filter requires a multi-valued attribute")
		}

		kept := arr[:0:0]
		removedAny := false

		for _, elem := range arr {
			obj, _ := elem.(map[string]any)
			if p.filter.matches(obj) {
				if p.subAttr != "" {
					delete(obj, p.subAttr)
					kept = append(kept, obj)
				}

				removedAny = true
				continue
			}

			kept = append(kept, elem)
		}

		if !removedAny {
			return errs.InvalidPath(rawPath, "no element matched filter")
		}

		doc[p.attribute] = kept
		return nil
	}

	// subAttr without filter: either a single complex object or every
	// element of a multi-valued attribute loses that sub-attribute.
	if isArray {
		for _, elem := range arr {
			if obj, ok := elem.(map[string]any); ok {
				delete(obj, p.subAttr)
			}
		}

		return nil
	}

	obj, ok := existing.(map[string]any)
	if !ok {
		return errs.InvalidPath(rawPath, "target is not a complex attribute")
	}

	delete(obj, p.subAttr)
	return nil
}

func setAttribute(doc map[string]any, p path, value any, appendMultiValued bool) error {
	existing, present := doc[p.attribute]

	if p.filter != nil {
		arr, ok := existing.([]any)
		if !ok {
			return errs.InvalidPath(p.attribute, "filter requires a multi-valued attribute")
		}

		matched := false
		for _, elem := range arr {
			obj, ok := elem.(map[string]any)
			if !ok || !p.filter.matches(obj) {
				continue
			}

			matched = true

			if p.subAttr != "" {
				obj[p.subAttr] = value
			} else if vm, ok := value.(map[string]any); ok {
				for k, v := range vm {
					obj[k] = v
				}
			}
		}

		if !matched {
			return errs.InvalidPath(p.attribute, "no element matched filter")
		}

		return nil
	}

	if p.subAttr != "" {
		obj, ok := existing.(map[string]any)
		if !ok {
			if present {
				return errs.InvalidPath(p.attribute, "target is not a complex attribute")
			}

			obj = map[string]any{}
		}

		obj[p.subAttr] = value
		doc[p.attribute] = obj
		return nil
	}

	if appendMultiValued {
		if arr, ok := existing.([]any); ok {
			if newArr, ok := value.([]any); ok {
				doc[p.attribute] = append(arr, newArr...)
			} else {
				doc[p.attribute] = append(arr, value)
			}

			return nil
		}
	}

	doc[p.attribute] = value
	return nil
}
