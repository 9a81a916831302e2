package server

import (
	"fmt"
	"strings"

	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/scim/reqcontext"
	"github.com/xraph/scimcore/scim/resource"
)

// URLStrategy selects how a reference URL encodes the requesting tenant.
type URLStrategy int

const (
	// SingleTenant omits the tenant entirely: {base_url}/v2/{ResourceType}s/{id}.
	SingleTenant URLStrategy = iota

	// Subdomain prefixes the tenant as a subdomain of BaseHost:
	// https://{tenantId}.{base_host}/v2/{ResourceType}s/{id}.
	Subdomain

	// PathBased embeds the tenant as a path segment:
	// {base_url}/{tenantId}/v2/{ResourceType}s/{id}.
	PathBased
)

func pluralize(resourceType string) string {
	return resourceType + "s"
}

// referenceURL builds the canonical $ref/meta.location URL for a resource
// of the given type and id, under rc's tenant scope.
func (s *Server) referenceURL(resourceType, id string, rc reqcontext.RequestContext) (string, error) {
	switch s.urlStrategy {
	case SingleTenant:
		return fmt.Sprintf("%s/v2/%s/%s", strings.TrimSuffix(s.baseURL, "/"), pluralize(resourceType), id), nil

	case Subdomain:
		if rc.Tenant == nil {
			return "", errs.TenantRequired()
		}
		return fmt.Sprintf("https://%s.%s/v2/%s/%s", rc.Tenant.TenantID, s.baseHost, pluralize(resourceType), id), nil

	case PathBased:
		if rc.Tenant == nil {
			return "", errs.TenantRequired()
		}
		return fmt.Sprintf("%s/%s/v2/%s/%s", strings.TrimSuffix(s.baseURL, "/"), rc.Tenant.TenantID, pluralize(resourceType), id), nil

	default:
		return "", errs.InvalidInput("urlStrategy", "unrecognized tenancy strategy")
	}
}

// withRef returns a shallow copy of r with Meta.Location set to the
// reference URL computed under rc's tenant scope. A copy, never the
// provider's stored pointer: meta.location is excluded from nothing in
// the canonical-for-versioning projection, so mutating the original in
// place after its version was already computed would desynchronize the
// returned resource from the version that was hashed for it.
func (s *Server) withRef(r *resource.Resource, rc reqcontext.RequestContext) (*resource.Resource, error) {
	loc, err := s.referenceURL(r.ResourceType, r.GetID(), rc)
	if err != nil {
		return nil, err
	}

	cp := *r
	cp.Meta.Location = loc

	return &cp, nil
}
