package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roomtrooper/internal/domain"
)

func newCreator(dir *fakeDirectory, rooms *fakeRooms) *BulkCreator {
	cache := NewSiteCache(zap.NewNop())
	resolver := NewSiteResolver(dir, cache, "", zap.NewNop())
	return NewBulkCreator(resolver, rooms, "tenant-1", zap.NewNop())
}

func TestBulkCreateNamesRoomsSequentially(t *testing.T) {
	rooms := newFakeRooms()
	creator := newCreator(newFakeDirectory(), rooms)

	report, err := creator.Run(context.Background(), BulkCreateParams{
		Count:    3,
		BaseName: "Pod",
		Start:    5,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Succeeded)

	require.Len(t, rooms.calls, 3)
	for i, want := range []string{"Pod 5", "Pod 6", "Pod 7"} {
		require.NotNil(t, rooms.calls[i].Name)
		assert.Equal(t, want, *rooms.calls[i].Name)
		assert.Equal(t, domain.DefaultSize, rooms.calls[i].Size)
		assert.Nil(t, rooms.calls[i].Capacity)
		assert.Equal(t, "tenant-1", rooms.calls[i].TenantID)
	}
}

func TestBulkCreateWithoutBaseUsesBareNumbers(t *testing.T) {
	rooms := newFakeRooms()
	creator := newCreator(newFakeDirectory(), rooms)

	_, err := creator.Run(context.Background(), BulkCreateParams{Count: 2, Start: 1})
	require.NoError(t, err)
	require.Len(t, rooms.calls, 2)
	assert.Equal(t, "1", *rooms.calls[0].Name)
	assert.Equal(t, "2", *rooms.calls[1].Name)
}

func TestBulkCreateResolvesSiteOnce(t *testing.T) {
	dir := newFakeDirectory()
	rooms := newFakeRooms()
	creator := newCreator(dir, rooms)

	report, err := creator.Run(context.Background(), BulkCreateParams{
		Count:    4,
		BaseName: "Lab",
		SiteName: "New Campus",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Succeeded)
	assert.Equal(t, 1, dir.upsertCalls, "site is created once up front")

	siteID := dir.sitesByName["New Campus"]
	for _, call := range rooms.calls {
		require.NotNil(t, call.SiteID)
		assert.Equal(t, siteID, *call.SiteID)
	}
}

func TestBulkCreateSiteFailureAbortsUpFront(t *testing.T) {
	dir := newFakeDirectory()
	dir.lookupByNameErr = transportErr("getSiteByName")
	rooms := newFakeRooms()
	creator := newCreator(dir, rooms)

	_, err := creator.Run(context.Background(), BulkCreateParams{Count: 3, SiteName: "Unreachable"})
	require.Error(t, err)
	assert.Empty(t, rooms.calls, "no room may be created when the site cannot be resolved")
}

func TestBulkCreateIsolatesRoomFailures(t *testing.T) {
	rooms := newFakeRooms()
	rooms.failAt[1] = remoteErr("upsertRoom")
	creator := newCreator(newFakeDirectory(), rooms)

	report, err := creator.Run(context.Background(), BulkCreateParams{Count: 3, BaseName: "Desk"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 1, report.Errors[0].Row)
	assert.Len(t, rooms.calls, 3)
}
