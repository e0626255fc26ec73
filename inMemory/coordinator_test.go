package inMemory

import (
	"context"
	"testing"

	rbac "github.com/paulvitic/rbac-admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCoordinatorScenarios(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	service := NewUserService()
	coordinator := rbac.NewCoordinator(service)

	fetched := coordinator.FetchUsers(ctx)
	require.True(t, fetched.Ok())
	stored, _ := service.ListAll(ctx)
	assert.Equal(t, stored, coordinator.Users())

	added := coordinator.AddUser(ctx, rbac.UserDraft{Name: "Ann", Email: "ann@x.com", Role: rbac.RoleViewer, Status: rbac.StatusActive})
	require.True(t, added.Ok())
	assert.Equal(t, rbac.ID(4), added.Value().ID)
	assert.NotEqual(t, rbac.PhaseFailed, coordinator.Phase())

	updated := coordinator.UpdateUser(ctx, rbac.User{ID: 99, Name: "X", Email: "x@x.com", Role: rbac.RoleAdmin})
	assert.ErrorIs(t, updated.Err(), rbac.ErrNotFound)
	assert.Equal(t, rbac.PhaseFailed, coordinator.Phase())
	assert.Equal(t, rbac.MessageUpdateFailed, coordinator.Error())
	assert.Equal(t, []rbac.ID{1, 2, 3, 4}, ids(coordinator.Users()))

	deleted := coordinator.DeleteUser(ctx, 2)
	require.True(t, deleted.Ok())
	assert.Equal(t, []rbac.ID{1, 3, 4}, ids(coordinator.Users()))
	stored, _ = service.ListAll(ctx)
	assert.Equal(t, []rbac.ID{1, 3, 4}, ids(stored))
}

func TestCoordinatorInterleavedRequests(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	service := NewUserService()
	coordinator := rbac.NewCoordinator(service)
	require.True(t, coordinator.FetchUsers(ctx).Ok())

	var g errgroup.Group
	g.Go(func() error { return coordinator.DeleteUser(ctx, 1).Err() })
	g.Go(func() error { return coordinator.FetchUsers(ctx).Err() })
	require.NoError(t, g.Wait())

	// Whichever completion landed last wins; the collection itself lost id 1.
	stored, _ := service.ListAll(ctx)
	assert.Equal(t, []rbac.ID{2, 3}, ids(stored))
	assert.Equal(t, rbac.PhaseSucceeded, coordinator.Phase())
	assert.Subset(t, []rbac.ID{1, 2, 3}, ids(coordinator.Users()))
}
