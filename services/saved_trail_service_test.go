package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTrailAndDuplicateConflicts(t *testing.T) {
	db := openTestDB(t)
	svc := NewSavedTrailService(db, nil)

	userID := seedProfile(t, db, "Ana")
	trailID := newTestUserID(t)

	view, err := svc.SaveTrail(userID, &SaveTrailRequest{TrailID: trailID, Notes: "levar água"})
	require.NoError(t, err)
	assert.True(t, view.IsActive)
	assert.Equal(t, "levar água", view.Notes)
	assert.Nil(t, view.TrailName)

	_, err = svc.SaveTrail(userID, &SaveTrailRequest{TrailID: trailID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestUnsaveThenResaveReusesRow(t *testing.T) {
	db := openTestDB(t)
	svc := NewSavedTrailService(db, nil)

	userID := seedProfile(t, db, "Ana")
	trailID := newTestUserID(t)

	first, err := svc.SaveTrail(userID, &SaveTrailRequest{TrailID: trailID, Notes: "old"})
	require.NoError(t, err)

	require.NoError(t, svc.UnsaveTrail(userID, trailID))

	saved, err := svc.IsTrailSaved(userID, trailID)
	require.NoError(t, err)
	assert.False(t, saved)

	second, err := svc.SaveTrail(userID, &SaveTrailRequest{TrailID: trailID, Notes: "new"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "new", second.Notes)

	saved, err = svc.IsTrailSaved(userID, trailID)
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestUnsaveUnknownTrailNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewSavedTrailService(db, nil)

	userID := seedProfile(t, db, "Ana")
	err := svc.UnsaveTrail(userID, newTestUserID(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSavedTrailListingsSkipInactive(t *testing.T) {
	db := openTestDB(t)
	svc := NewSavedTrailService(db, nil)

	userID := seedProfile(t, db, "Ana")

	kept := newTestUserID(t)
	dropped := newTestUserID(t)
	_, err := svc.SaveTrail(userID, &SaveTrailRequest{TrailID: kept})
	require.NoError(t, err)
	_, err = svc.SaveTrail(userID, &SaveTrailRequest{TrailID: dropped})
	require.NoError(t, err)
	require.NoError(t, svc.UnsaveTrail(userID, dropped))

	trails, err := svc.GetSavedTrails(userID)
	require.NoError(t, err)
	require.Len(t, trails, 1)
	assert.Equal(t, kept, trails[0].TrailID)

	count, err := svc.GetSavedTrailsCount(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	ids, err := svc.GetSavedTrailIDs(userID)
	require.NoError(t, err)
	assert.Equal(t, []string{kept}, ids)

	_, err = svc.GetSavedTrailDetails(userID, dropped)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSavedTrailsPagination(t *testing.T) {
	db := openTestDB(t)
	svc := NewSavedTrailService(db, nil)

	userID := seedProfile(t, db, "Ana")
	for i := 0; i < 3; i++ {
		_, err := svc.SaveTrail(userID, &SaveTrailRequest{TrailID: newTestUserID(t)})
		require.NoError(t, err)
	}

	page, err := svc.GetSavedTrailsPaginated(userID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
}
