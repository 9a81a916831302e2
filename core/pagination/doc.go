/*
Package pagination provides offset-based pagination for SCIM list responses,
matching RFC 7644 §3.4.2's startIndex/count semantics (1-indexed start,
bounded count, total results returned alongside the page).

# Quick Start

	params := &pagination.PaginationParams{
		BaseRequestParams: pagination.BaseRequestParams{SortBy: "userName"},
		Limit:             query.Count,
		Offset:            query.StartIndex,
	}

	if err := params.Validate(); err != nil {
		return errorResponse(err)
	}

	resources, total, err := provider.ListResources(ctx, rc, resourceType, query)
	if err != nil {
		return errorResponse(err)
	}

	response := pagination.NewPageResponse(resources, int64(total), params)

# Configuration

	const (
		DefaultLimit = 10     // applied when a caller omits count/startIndex
		MaxLimit     = 10000  // ServiceProviderConfig's filter.maxResults
		MinLimit     = 1
	)

# Response Structure

	type PageResponse[T any] struct {
		Data       []T       `json:"data"`
		Pagination *PageMeta `json:"pagination,omitempty"`
	}

# Error Handling

Limit errors are returned as standard Go errors with descriptive messages:

  - "limit must be at least 1"
  - "limit cannot exceed 10000"

Offset, page and order errors are *errs.ScimError values built with
errs.InvalidInput, whose "field" and "reason" context entries carry:

  - offset: "cannot be negative"
  - page: "must be at least 1"
  - order: "must be 'asc' or 'desc'"
*/
package pagination
