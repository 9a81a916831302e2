// Package operation translates the uniform request/response envelope a
// transport-agnostic caller (an HTTP handler, an RPC stub, a test) speaks
// into SCIM Server calls, so no caller needs to know the server's method
// signatures or reqcontext construction rules.
package operation

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/xraph/scimcore/core/pagination"
	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/internal/idgen"
	"github.com/xraph/scimcore/internal/obslog"
	"github.com/xraph/scimcore/scim/provider"
	"github.com/xraph/scimcore/scim/reqcontext"
	"github.com/xraph/scimcore/scim/resource"
	"github.com/xraph/scimcore/scim/server"
	"github.com/xraph/scimcore/scim/version"
)

// Name identifies which server call a Request dispatches to.
type Name string

const (
	Create          Name = "create"
	Get             Name = "get"
	Update          Name = "update"
	Delete          Name = "delete"
	List            Name = "list"
	Patch           Name = "patch"
	FindByAttribute Name = "findByAttribute"
)

// Request is the uniform envelope every operation is dispatched through.
type Request struct {
	Operation       Name
	ResourceType    string
	ResourceID      string
	Data            json.RawMessage
	Attribute       string
	Value           string
	ExpectedVersion string

	TenantID    string
	ClientID    string
	Permissions *reqcontext.Permissions

	// RequestID identifies the call for logging/tracing. A Handler mints
	// one via its idgen.Generator when left blank.
	RequestID string

	Query provider.ListQuery
}

// Metadata is the response envelope's structured detail. Version is
// always the raw opaque string form; callers reformat for HTTP (quoting,
// weak/strong prefixing) themselves.
type Metadata struct {
	ResourceID        string `json:"resourceId,omitempty"`
	Version           string `json:"version,omitempty"`
	IsVersionConflict bool   `json:"isVersionConflict,omitempty"`
	Total             int    `json:"total,omitempty"`
}

// Response is the uniform shape every dispatch returns.
type Response struct {
	Success   bool     `json:"success"`
	Data      any      `json:"data,omitempty"`
	Error     string   `json:"error,omitempty"`
	ErrorCode string   `json:"errorCode,omitempty"`
	Metadata  Metadata `json:"metadata"`
}

func errorResponse(err error) Response {
	if se, ok := err.(*errs.ScimError); ok {
		return Response{
			Success:   false,
			Error:     se.Message,
			ErrorCode: se.Code,
			Metadata:  Metadata{IsVersionConflict: se.Code == errs.CodeVersionMismatch},
		}
	}

	return Response{Success: false, Error: err.Error()}
}

// Handler dispatches Requests against a Server, minting a RequestID for
// requests that do not carry their own.
type Handler struct {
	srv *server.Server
	ids *idgen.Generator
}

// New builds a Handler around srv, using ids to mint RequestIDs for
// requests that omit one.
func New(srv *server.Server, ids *idgen.Generator) *Handler {
	return &Handler{srv: srv, ids: ids}
}

func (h *Handler) buildContext(req Request) (reqcontext.RequestContext, error) {
	requestID := req.RequestID
	if requestID == "" {
		requestID = h.ids.Next()
	}

	rc := reqcontext.RequestContext{RequestID: requestID}

	if req.TenantID != "" {
		perms := reqcontext.AllowAll()
		if req.Permissions != nil {
			perms = *req.Permissions
		}

		clientID := req.ClientID
		if clientID == "" {
			clientID = "operation-handler"
		}

		rc.Tenant = &reqcontext.TenantContext{
			TenantID:    req.TenantID,
			ClientID:    clientID,
			Permissions: perms,
		}
	}

	return rc, rc.Validate()
}

func expectedVersionPtr(raw string) *version.RawVersion {
	if raw == "" {
		return nil
	}

	rv := version.FromHash(raw)
	return &rv
}

// normalizeListQuery validates q's startIndex/count against the pagination
// package's bounds and fills in q.Count when the caller omitted it, so an
// out-of-range count is rejected rather than silently clamped deep inside
// the provider.
func normalizeListQuery(q provider.ListQuery) (provider.ListQuery, error) {
	params := &pagination.PaginationParams{
		BaseRequestParams: pagination.BaseRequestParams{SortBy: q.SortBy},
		Limit:             q.Count,
		Offset:            q.StartIndex,
	}

	if err := params.Validate(); err != nil {
		return provider.ListQuery{}, errs.InvalidInput("query", err.Error())
	}

	q.Count = params.Limit
	q.StartIndex = params.GetOffset()

	return q, nil
}

// Dispatch translates req into the matching Server call and returns the
// uniform Response.
func (h *Handler) Dispatch(ctx context.Context, req Request) Response {
	rc, err := h.buildContext(req)
	if err != nil {
		return errorResponse(err)
	}

	ctx = obslog.WithFields(ctx, logrus.Fields{
		"requestId":    rc.RequestID,
		"operation":    string(req.Operation),
		"resourceType": req.ResourceType,
	})
	log := obslog.From(ctx)

	resp := h.dispatch(ctx, rc, req)

	if !resp.Success {
		log.WithFields(logrus.Fields{"errorCode": resp.ErrorCode}).Warn("operation failed")
	} else {
		log.Debug("operation succeeded")
	}

	return resp
}

func (h *Handler) dispatch(ctx context.Context, rc reqcontext.RequestContext, req Request) Response {
	switch req.Operation {
	case Create:
		vr, err := h.srv.CreateResource(ctx, rc, req.ResourceType, req.Data)
		if err != nil {
			return errorResponse(err)
		}
		return resourceResponse(vr)

	case Get:
		vr, err := h.srv.GetResource(ctx, rc, req.ResourceType, req.ResourceID)
		if err != nil {
			return errorResponse(err)
		}
		if vr == nil {
			return errorResponse(errs.NotFound(req.ResourceType, req.ResourceID))
		}
		return resourceResponse(*vr)

	case Update:
		vr, err := h.srv.UpdateResource(ctx, rc, req.ResourceType, req.ResourceID, req.Data, expectedVersionPtr(req.ExpectedVersion))
		if err != nil {
			return versionAwareErrorResponse(err)
		}
		return resourceResponse(vr)

	case Delete:
		err := h.srv.DeleteResource(ctx, rc, req.ResourceType, req.ResourceID, expectedVersionPtr(req.ExpectedVersion))
		if err != nil {
			return versionAwareErrorResponse(err)
		}
		return Response{Success: true, Metadata: Metadata{ResourceID: req.ResourceID}}

	case List:
		query, err := normalizeListQuery(req.Query)
		if err != nil {
			return errorResponse(err)
		}

		results, total, err := h.srv.ListResources(ctx, rc, req.ResourceType, query)
		if err != nil {
			return errorResponse(err)
		}
		return listResponse(results, total, query)

	case FindByAttribute:
		results, err := h.srv.FindResourcesByAttribute(ctx, rc, req.ResourceType, req.Attribute, req.Value)
		if err != nil {
			return errorResponse(err)
		}
		return listResponse(results, len(results), provider.ListQuery{Count: len(results)})

	case Patch:
		vr, err := h.srv.PatchResource(ctx, rc, req.ResourceType, req.ResourceID, req.Data, expectedVersionPtr(req.ExpectedVersion))
		if err != nil {
			return versionAwareErrorResponse(err)
		}
		return resourceResponse(vr)

	default:
		return errorResponse(errs.UnsupportedOperation(req.ResourceType, string(req.Operation)))
	}
}

func versionAwareErrorResponse(err error) Response {
	resp := errorResponse(err)
	if se, ok := err.(*errs.ScimError); ok && se.Code == errs.CodeVersionMismatch {
		resp.Metadata.IsVersionConflict = true
	}
	return resp
}

func resourceResponse(vr provider.VersionedResource) Response {
	return Response{
		Success: true,
		Data:    vr.Resource,
		Metadata: Metadata{
			ResourceID: vr.Resource.GetID(),
			Version:    vr.Version.String(),
		},
	}
}

func listResponse(results []provider.VersionedResource, total int, query provider.ListQuery) Response {
	data := make([]*resource.Resource, 0, len(results))
	for _, vr := range results {
		data = append(data, vr.Resource)
	}

	params := &pagination.PaginationParams{
		BaseRequestParams: pagination.BaseRequestParams{SortBy: query.SortBy},
		Limit:             query.Count,
		Offset:            query.StartIndex,
	}

	return Response{
		Success:  true,
		Data:     pagination.NewPageResponse(data, int64(total), params),
		Metadata: Metadata{Total: total},
	}
}
