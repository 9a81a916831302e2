package server

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/scim/provider"
)

// ServerCapabilities is the static-plus-introspected capability set a
// Server exposes: one bool per RFC 7644 §5 feature flag, derived from the
// registered resource types and (when the provider supports it) merged
// with its own self-reported Introspection.
type ServerCapabilities struct {
	provider.Capabilities
	RegisteredTypes []string
}

// Validate concurrently probes every registered resource type's handler —
// confirming each still carries a non-empty schema and agrees with the
// resourceType it is registered under — before capabilities are trusted
// for discovery. Runs the checks in parallel via errgroup since a handler
// probe is (conceptually) an I/O-bound operation for providers whose
// handlers consult a remote schema source.
func (s *Server) Validate(ctx context.Context) error {
	s.mu.RLock()
	types := make(map[string]typeRegistration, len(s.types))
	for name, reg := range s.types {
		types[name] = reg
	}
	s.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)

	for name, reg := range types {
		name, reg := name, reg
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			return validateRegistration(name, reg)
		})
	}

	return g.Wait()
}

func validateRegistration(name string, reg typeRegistration) error {
	if reg.handler.ResourceType != name {
		return errs.InvalidInput("resourceType", "handler registered under \""+name+"\" targets \""+reg.handler.ResourceType+"\"")
	}

	if reg.handler.Schema.ID == "" {
		return errs.InvalidInput("resourceType", "handler for \""+name+"\" carries no schema")
	}

	return nil
}

// DiscoverCapabilities returns the capabilities derivable statically from
// the registered resource types and schemas, without consulting the
// provider.
func (s *Server) DiscoverCapabilities() ServerCapabilities {
	return ServerCapabilities{
		Capabilities: provider.Capabilities{
			Pagination: true,
			Sort:       true,
			Filter:     true,
			Patch:      true,
		},
		RegisteredTypes: s.RegisteredTypes(),
	}
}

// DiscoverCapabilitiesWithIntrospection validates every registered
// handler, then merges the provider's self-reported capabilities (if it
// implements Introspection) into the static set.
func (s *Server) DiscoverCapabilitiesWithIntrospection(ctx context.Context) (ServerCapabilities, error) {
	if err := s.Validate(ctx); err != nil {
		return ServerCapabilities{}, err
	}

	caps := s.DiscoverCapabilities()

	introspector, ok := s.provider.(provider.Introspection)
	if !ok {
		return caps, nil
	}

	reported, err := introspector.Capabilities(ctx)
	if err != nil {
		return ServerCapabilities{}, err
	}

	caps.Bulk = reported.Bulk
	caps.Pagination = caps.Pagination && reported.Pagination
	caps.Patch = caps.Patch && reported.Patch
	caps.ETag = reported.ETag
	caps.Sort = caps.Sort && reported.Sort
	caps.ChangePassword = reported.ChangePassword
	caps.Filter = caps.Filter && reported.Filter

	return caps, nil
}
