package database

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"marrynow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// runStoreSuite checks the behavior every Store implementation shares.
// newStore must return an empty store.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("biodata ids are sequential", func(t *testing.T) {
		store := newStore(t)
		for want := 1; want <= 3; want++ {
			id, err := store.NextBiodataID(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, id)
		}
	})

	t.Run("concurrent allocations never collide", func(t *testing.T) {
		store := newStore(t)
		const n = 40
		ids := make(chan int, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id, err := store.NextBiodataID(ctx)
				assert.NoError(t, err)
				ids <- id
			}()
		}
		wg.Wait()
		close(ids)

		seen := map[int]bool{}
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, n)
	})

	t.Run("sync continues legacy numbering", func(t *testing.T) {
		store := newStore(t)
		_, err := store.InsertBiodata(ctx, &models.Biodata{BiodataID: 10, Email: "legacy@example.com"})
		require.NoError(t, err)

		seq, err := store.SyncBiodataSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, seq)

		next, err := store.NextBiodataID(ctx)
		require.NoError(t, err)
		assert.Equal(t, 11, next)

		// sync never lowers the counter
		seq, err = store.SyncBiodataSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, 11, seq)
	})

	t.Run("favorites behave as a set", func(t *testing.T) {
		store := newStore(t)
		_, err := store.InsertUser(ctx, &models.User{Email: "fav@example.com", Name: "Fav"})
		require.NoError(t, err)

		user, err := store.FindUserByEmail(ctx, "fav@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Empty(t, user.Favorites)

		res, err := store.AddFavorite(ctx, "fav@example.com", 5)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.ModifiedCount)
		res, err = store.AddFavorite(ctx, "fav@example.com", 5)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		assert.EqualValues(t, 0, res.ModifiedCount)

		user, err = store.FindUserByEmail(ctx, "fav@example.com")
		require.NoError(t, err)
		assert.Equal(t, []int{5}, user.Favorites)

		res, err = store.RemoveFavorite(ctx, "fav@example.com", 99)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		assert.EqualValues(t, 0, res.ModifiedCount)

		res, err = store.RemoveFavorite(ctx, "fav@example.com", 5)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.ModifiedCount)

		res, err = store.AddFavorite(ctx, "ghost@example.com", 5)
		require.NoError(t, err)
		assert.EqualValues(t, 0, res.MatchedCount)
	})

	t.Run("users", func(t *testing.T) {
		store := newStore(t)
		missing, err := store.FindUserByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)

		user := &models.User{Email: "roky@example.com", Name: "Roky Islam", Role: models.RoleUser}
		_, err = store.InsertUser(ctx, user)
		require.NoError(t, err)
		_, err = store.InsertUser(ctx, &models.User{Email: "sara@example.com", Name: "Sara"})
		require.NoError(t, err)

		users, err := store.ListUsers(ctx, "ROKY")
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "roky@example.com", users[0].Email)

		users, err = store.ListUsers(ctx, "")
		require.NoError(t, err)
		assert.Len(t, users, 2)

		stored, err := store.FindUserByEmail(ctx, "roky@example.com")
		require.NoError(t, err)
		res, err := store.MakeAdmin(ctx, stored.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)

		stored, err = store.FindUserByEmail(ctx, "roky@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, stored.Role)

		res, err = store.MakeAdmin(ctx, bson.NewObjectID())
		require.NoError(t, err)
		assert.EqualValues(t, 0, res.MatchedCount)

		at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		res, err = store.TouchUserLogin(ctx, "sara@example.com", at)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		stored, err = store.FindUserByEmail(ctx, "sara@example.com")
		require.NoError(t, err)
		assert.True(t, at.Equal(stored.LastLogIn))
	})

	t.Run("similar excludes the given id and other types", func(t *testing.T) {
		store := newStore(t)
		a := insertBiodata(t, store, models.Biodata{Email: "a@example.com", BiodataType: models.BiodataTypeMale})
		b := insertBiodata(t, store, models.Biodata{Email: "b@example.com", BiodataType: models.BiodataTypeMale})
		insertBiodata(t, store, models.Biodata{Email: "c@example.com", BiodataType: models.BiodataTypeFemale})

		similar, err := store.ListSimilarBiodatas(ctx, models.BiodataTypeMale, a, 3)
		require.NoError(t, err)
		require.Len(t, similar, 1)
		assert.Equal(t, b, similar[0].BiodataID)
	})

	t.Run("premium workflow", func(t *testing.T) {
		store := newStore(t)
		id := insertBiodata(t, store, models.Biodata{Email: "p@example.com", Age: 30})
		insertBiodata(t, store, models.Biodata{Email: "q@example.com", Age: 22})

		res, err := store.SetBiodataStatus(ctx, models.ProfileKey{BiodataID: id}, models.StatusPending)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.ModifiedCount)

		pending, err := store.ListBiodatas(ctx, models.BiodataFilter{Status: models.StatusPending})
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, id, pending[0].BiodataID)

		res, err = store.SetBiodataStatus(ctx, models.ProfileKey{Email: "p@example.com"}, models.StatusPremium)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		_, err = store.SetBiodataStatus(ctx, models.ProfileKey{Email: "q@example.com"}, models.StatusPremium)
		require.NoError(t, err)

		res, err = store.SetBiodataStatus(ctx, models.ProfileKey{BiodataID: 999}, models.StatusPremium)
		require.NoError(t, err)
		assert.EqualValues(t, 0, res.MatchedCount)

		asc, err := store.ListPremiumMembers(ctx, true, 6)
		require.NoError(t, err)
		require.Len(t, asc, 2)
		assert.Equal(t, 22, asc[0].Age)

		desc, err := store.ListPremiumMembers(ctx, false, 1)
		require.NoError(t, err)
		require.Len(t, desc, 1)
		assert.Equal(t, 30, desc[0].Age)

		count, err := store.CountBiodatas(ctx, models.BiodataFilter{Status: models.StatusPremium})
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("owner update merges fields", func(t *testing.T) {
		store := newStore(t)
		insertBiodata(t, store, models.Biodata{Email: "m@example.com", Name: "Old", Occupation: "Engineer"})

		res, err := store.UpdateBiodataByEmail(ctx, "m@example.com", &models.Biodata{Name: "New"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)

		got, err := store.FindBiodataByEmail(ctx, "m@example.com")
		require.NoError(t, err)
		assert.Equal(t, "New", got.Name)
		assert.Equal(t, "Engineer", got.Occupation)

		res, err = store.UpdateBiodataByEmail(ctx, "nobody@example.com", &models.Biodata{Name: "X"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, res.MatchedCount)
	})

	t.Run("empty reads return empty slices", func(t *testing.T) {
		store := newStore(t)
		cards, err := store.ListBiodataCards(ctx)
		require.NoError(t, err)
		assert.NotNil(t, cards)
		assert.Empty(t, cards)

		stories, err := store.ListSuccessStoriesFull(ctx)
		require.NoError(t, err)
		assert.NotNil(t, stories)

		requests, err := store.ListContactRequests(ctx, models.ContactPending)
		require.NoError(t, err)
		assert.NotNil(t, requests)

		byIDs, err := store.FindBiodatasByIDs(ctx, []int{1, 2})
		require.NoError(t, err)
		assert.NotNil(t, byIDs)
		assert.Empty(t, byIDs)
	})

	t.Run("success stories join both partners", func(t *testing.T) {
		store := newStore(t)
		f := insertBiodata(t, store, models.Biodata{Email: "f@example.com", Name: "Fatema", BiodataType: models.BiodataTypeFemale})
		m := insertBiodata(t, store, models.Biodata{Email: "k@example.com", Name: "Karim", BiodataType: models.BiodataTypeMale})

		_, err := store.InsertSuccessStory(ctx, &models.SuccessStory{
			SelfBiodataID: strconv.Itoa(f), PartnerBiodataID: strconv.Itoa(m), MarriageDate: "2024-01-10",
		})
		require.NoError(t, err)
		_, err = store.InsertSuccessStory(ctx, &models.SuccessStory{
			SelfBiodataID: strconv.Itoa(f), PartnerBiodataID: strconv.Itoa(m), MarriageDate: "2024-06-01",
		})
		require.NoError(t, err)
		_, err = store.InsertSuccessStory(ctx, &models.SuccessStory{
			SelfBiodataID: strconv.Itoa(f), PartnerBiodataID: "404", MarriageDate: "2025-01-01",
		})
		require.NoError(t, err)

		stories, err := store.ListSuccessStories(ctx)
		require.NoError(t, err)
		require.Len(t, stories, 3)
		assert.Equal(t, "2025-01-01", stories[0].MarriageDate)

		full, err := store.ListSuccessStoriesFull(ctx)
		require.NoError(t, err)
		require.Len(t, full, 2)
		assert.Equal(t, "2024-06-01", full[0].MarriageDate)
		assert.Equal(t, "Fatema", full[0].Female.Name)
		assert.Equal(t, "Karim", full[0].Male.Name)
		assert.Equal(t, m, full[0].Male.BiodataID)

		count, err := store.EstimatedSuccessStoryCount(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
	})

	t.Run("contact requests", func(t *testing.T) {
		store := newStore(t)
		target := insertBiodata(t, store, models.Biodata{Email: "t@example.com", Name: "Target", Mobile: "0123"})

		now := time.Now().UTC()
		req := &models.ContactRequest{
			BiodataID: models.NumericID(target), UserEmail: "u@example.com", Amount: 5,
			Status: models.ContactPending, RequestAt: now, TransactionID: "pi_1",
		}
		_, err := store.InsertContactRequest(ctx, req)
		require.NoError(t, err)
		// a request whose biodata no longer exists
		_, err = store.InsertContactRequest(ctx, &models.ContactRequest{
			BiodataID: 777, UserEmail: "u@example.com", Status: models.ContactPending, RequestAt: now.Add(-48 * time.Hour),
		})
		require.NoError(t, err)

		rows, err := store.ListContactRequestsWithBiodata(ctx, "u@example.com")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Target", rows[0].Biodata.Name)
		assert.Equal(t, models.HiddenUntilApproved, rows[0].View(rows[0].Biodata).Mobile)

		stored, err := store.FindContactRequest(ctx, req.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 5.0, stored.Amount.Float64())

		res, err := store.ApproveContactRequest(ctx, req.ID, now)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)

		rows, err = store.ListContactRequestsWithBiodata(ctx, "u@example.com")
		require.NoError(t, err)
		assert.Equal(t, "0123", rows[0].View(rows[0].Biodata).Mobile)

		approved, err := store.ListContactRequests(ctx, models.ContactApproved)
		require.NoError(t, err)
		assert.Len(t, approved, 1)

		today, err := store.CountContactRequestsSince(ctx, now.Add(-time.Hour))
		require.NoError(t, err)
		assert.EqualValues(t, 1, today)

		del, err := store.DeleteContactRequests(ctx, target, "u@example.com")
		require.NoError(t, err)
		assert.EqualValues(t, 1, del.DeletedCount)

		del, err = store.DeleteContactRequests(ctx, target, "u@example.com")
		require.NoError(t, err)
		assert.EqualValues(t, 0, del.DeletedCount)

		missing, err := store.FindContactRequest(ctx, bson.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func insertBiodata(t *testing.T, store Store, b models.Biodata) int {
	t.Helper()
	ctx := context.Background()
	id, err := store.NextBiodataID(ctx)
	require.NoError(t, err)
	b.BiodataID = id
	_, err = store.InsertBiodata(ctx, &b)
	require.NoError(t, err)
	return id
}
