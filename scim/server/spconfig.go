package server

import (
	"context"

	"github.com/xraph/scimcore/core/pagination"
)

const serviceProviderConfigSchema = "urn:ietf:params:scim:schemas:core:2.0:ServiceProviderConfig"

// ServiceProviderConfig emits the RFC 7644 §5 ServiceProviderConfig
// document, built from the merged static-plus-introspected capabilities.
func (s *Server) ServiceProviderConfig(ctx context.Context) (map[string]any, error) {
	caps, err := s.DiscoverCapabilitiesWithIntrospection(ctx)
	if err != nil {
		return nil, err
	}

	supported := func(b bool) map[string]any {
		return map[string]any{"supported": b}
	}

	doc := map[string]any{
		"schemas":               []string{serviceProviderConfigSchema},
		"patch":                 supported(caps.Patch),
		"bulk":                  map[string]any{"supported": caps.Bulk, "maxOperations": 0, "maxPayloadSize": 0},
		"filter":                map[string]any{"supported": caps.Filter, "maxResults": pagination.MaxLimit},
		"changePassword":        supported(caps.ChangePassword),
		"sort":                  supported(caps.Sort),
		"etag":                  supported(caps.ETag),
		"authenticationSchemes": []any{},
	}

	return doc, nil
}
