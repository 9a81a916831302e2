package provider

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/scimcore/internal/config"
	"github.com/xraph/scimcore/scim/reqcontext"
	"github.com/xraph/scimcore/scim/schema"
	"github.com/xraph/scimcore/scim/version"
)

func newTestProvider(t *testing.T) *StandardProvider {
	t.Helper()
	return NewStandardProvider(schema.NewRegistry(), config.New())
}

func singleTenantCtx(requestID string) reqcontext.RequestContext {
	return reqcontext.RequestContext{RequestID: requestID}
}

func tenantCtx(requestID, tenantID string) reqcontext.RequestContext {
	return reqcontext.RequestContext{
		RequestID: requestID,
		Tenant: &reqcontext.TenantContext{
			TenantID:    tenantID,
			ClientID:    "client-1",
			Permissions: reqcontext.AllowAll(),
		},
	}
}

func TestCreateResourceAssignsIDAndVersion(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	vr, err := p.CreateResource(ctx, singleTenantCtx("r1"), "User", []byte(`{
		"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],
		"userName":"alice"
	}`))

	require.NoError(t, err)
	assert.NotEmpty(t, vr.Resource.GetID())
	assert.False(t, vr.Version.IsZero())
}

func TestCreateResourceRejectsDuplicateUsername(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	rc := singleTenantCtx("r1")

	_, err := p.CreateResource(ctx, rc, "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`))
	require.NoError(t, err)

	_, err = p.CreateResource(ctx, rc, "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"Alice"}`))
	require.Error(t, err)
}

func TestCreateResourceEnforcesLimit(t *testing.T) {
	cfg := config.New(config.WithMaxUsersPerTenant(1))
	p := NewStandardProvider(schema.NewRegistry(), cfg)
	ctx := context.Background()
	rc := singleTenantCtx("r1")

	_, err := p.CreateResource(ctx, rc, "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`))
	require.NoError(t, err)

	_, err = p.CreateResource(ctx, rc, "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"bob"}`))
	require.Error(t, err)
}

func TestGetResourceCrossTenantIsolation(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	vr, err := p.CreateResource(ctx, tenantCtx("r1", "acme"), "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`))
	require.NoError(t, err)

	found, err := p.GetResource(ctx, tenantCtx("r2", "other"), "User", vr.Resource.GetID())
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = p.GetResource(ctx, tenantCtx("r3", "acme"), "User", vr.Resource.GetID())
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestUpdateResourceRejectsStaleVersion(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	rc := singleTenantCtx("r1")

	vr, err := p.CreateResource(ctx, rc, "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`))
	require.NoError(t, err)

	stale := version.FromHash("not-the-real-version")
	_, err = p.UpdateResource(ctx, rc, "User", vr.Resource.GetID(), []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice2"}`), &stale)
	require.Error(t, err)
}

func TestDeleteResourceReleasesUsernameIndex(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	rc := singleTenantCtx("r1")

	vr, err := p.CreateResource(ctx, rc, "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`))
	require.NoError(t, err)

	require.NoError(t, p.DeleteResource(ctx, rc, "User", vr.Resource.GetID(), nil))

	_, err = p.CreateResource(ctx, rc, "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`))
	require.NoError(t, err)
}

func TestListResourcesPaginates(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	rc := singleTenantCtx("r1")

	for i := 0; i < 5; i++ {
		un := string(rune('a' + i))
		_, err := p.CreateResource(ctx, rc, "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"`+un+`"}`))
		require.NoError(t, err)
	}

	page, total, err := p.ListResources(ctx, rc, "User", ListQuery{StartIndex: 0, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)
}

func TestConditionalUpdateConcurrentRacersYieldExactlyOneSuccess(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	rc := singleTenantCtx("r1")

	vr, err := p.CreateResource(ctx, rc, "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`))
	require.NoError(t, err)

	const racers = 10
	var wg sync.WaitGroup
	var successCount, mismatchCount int
	var mu sync.Mutex

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			res, err := p.ConditionalUpdate(ctx, rc, "User", vr.Resource.GetID(),
				[]byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice","displayName":"updated"}`),
				vr.Version)
			require.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()

			switch res.Kind {
			case version.Success:
				successCount++
			case version.VersionMismatch:
				mismatchCount++
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 1, successCount)
	assert.Equal(t, racers-1, mismatchCount)
}

func TestConditionalDeleteNotFound(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	rc := singleTenantCtx("r1")

	res, err := p.ConditionalDelete(ctx, rc, "User", "missing", version.FromHash("x"))
	require.NoError(t, err)
	assert.Equal(t, version.NotFound, res.Kind)
}

func TestResolveTenantRejectsReservedName(t *testing.T) {
	_, err := resolveTenant(tenantCtx("r1", "default"))
	require.Error(t, err)
}

func TestPatchResourceAppliesAndRevalidates(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	rc := singleTenantCtx("r1")

	vr, err := p.CreateResource(ctx, rc, "User", []byte(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`))
	require.NoError(t, err)

	patchDoc := []byte(`{
		"schemas": ["urn:ietf:params:scim:api:messages:2.0:PatchOp"],
		"Operations": [{"op": "replace", "path": "displayName", "value": "Alice"}]
	}`)

	updated, err := p.PatchResource(ctx, rc, "User", vr.Resource.GetID(), patchDoc, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Resource.DisplayName)
	assert.False(t, updated.Version.Equal(vr.Version))
}
