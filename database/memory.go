package database

import (
	"context"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"marrynow/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore keeps every collection in process memory. It backs local runs
// with STORE_DRIVER=memory and the HTTP tests.
type MemoryStore struct {
	mu         sync.Mutex
	users      []models.User
	biodatas   []models.Biodata
	stories    []models.SuccessStory
	requests   []models.ContactRequest
	biodataSeq int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Close() error { return nil }

func ack(matched, modified int64) models.UpdateResult {
	return models.UpdateResult{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}
}

// ---- users ----

func (s *MemoryStore) userIndex(email string) int {
	return slices.IndexFunc(s.users, func(u models.User) bool { return u.Email == email })
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(email)
	if i < 0 {
		return nil, nil
	}
	u := s.users[i]
	u.Favorites = slices.Clone(u.Favorites)
	return &u, nil
}

func (s *MemoryStore) InsertUser(_ context.Context, user *models.User) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	s.users = append(s.users, *user)
	return models.InsertResult{Acknowledged: true, InsertedID: user.ID}, nil
}

func (s *MemoryStore) TouchUserLogin(_ context.Context, email string, at time.Time) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(email)
	if i < 0 {
		return ack(0, 0), nil
	}
	s.users[i].LastLogIn = at
	return ack(1, 1), nil
}

func (s *MemoryStore) ListUsers(_ context.Context, nameSearch string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(nameSearch)
	users := []models.User{}
	for _, u := range s.users {
		if needle == "" || strings.Contains(strings.ToLower(u.Name), needle) {
			u.Favorites = slices.Clone(u.Favorites)
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *MemoryStore) MakeAdmin(_ context.Context, id bson.ObjectID) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return ack(0, 0), nil
	}
	if s.users[i].Role == models.RoleAdmin {
		return ack(1, 0), nil
	}
	s.users[i].Role = models.RoleAdmin
	return ack(1, 1), nil
}

func (s *MemoryStore) AddFavorite(_ context.Context, email string, biodataID int) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(email)
	if i < 0 {
		return ack(0, 0), nil
	}
	if slices.Contains(s.users[i].Favorites, biodataID) {
		return ack(1, 0), nil
	}
	s.users[i].Favorites = append(s.users[i].Favorites, biodataID)
	return ack(1, 1), nil
}

func (s *MemoryStore) RemoveFavorite(_ context.Context, email string, biodataID int) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(email)
	if i < 0 {
		return ack(0, 0), nil
	}
	before := len(s.users[i].Favorites)
	s.users[i].Favorites = slices.DeleteFunc(s.users[i].Favorites, func(id int) bool { return id == biodataID })
	if len(s.users[i].Favorites) == before {
		return ack(1, 0), nil
	}
	return ack(1, 1), nil
}

// ---- biodatas ----

func (s *MemoryStore) NextBiodataID(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.biodataSeq++
	return s.biodataSeq, nil
}

func (s *MemoryStore) SyncBiodataSequence(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.biodatas {
		s.biodataSeq = max(s.biodataSeq, b.BiodataID)
	}
	return s.biodataSeq, nil
}

func (s *MemoryStore) InsertBiodata(_ context.Context, biodata *models.Biodata) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if biodata.ID.IsZero() {
		biodata.ID = bson.NewObjectID()
	}
	s.biodatas = append(s.biodatas, *biodata)
	return models.InsertResult{Acknowledged: true, InsertedID: biodata.ID}, nil
}

func (s *MemoryStore) ListBiodataCards(_ context.Context) ([]models.BiodataCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := make([]models.BiodataCard, 0, len(s.biodatas))
	for _, b := range s.biodatas {
		cards = append(cards, b.Card())
	}
	return cards, nil
}

func matchBiodata(b models.Biodata, f models.BiodataFilter) bool {
	if f.BiodataType != "" && b.BiodataType != f.BiodataType {
		return false
	}
	if f.Status != "" && b.BioDataStatus != f.Status {
		return false
	}
	return true
}

func (s *MemoryStore) filterBiodatas(keep func(models.Biodata) bool) []models.Biodata {
	out := []models.Biodata{}
	for _, b := range s.biodatas {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s *MemoryStore) ListBiodatas(_ context.Context, filter models.BiodataFilter) ([]models.Biodata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterBiodatas(func(b models.Biodata) bool { return matchBiodata(b, filter) }), nil
}

func (s *MemoryStore) findBiodata(match func(models.Biodata) bool) *models.Biodata {
	i := slices.IndexFunc(s.biodatas, match)
	if i < 0 {
		return nil
	}
	b := s.biodatas[i]
	return &b
}

func (s *MemoryStore) FindBiodataByEmail(_ context.Context, email string) (*models.Biodata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findBiodata(func(b models.Biodata) bool { return b.Email == email }), nil
}

func (s *MemoryStore) FindBiodataByID(_ context.Context, biodataID int) (*models.Biodata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findBiodata(func(b models.Biodata) bool { return b.BiodataID == biodataID }), nil
}

func (s *MemoryStore) FindBiodatasByIDs(_ context.Context, biodataIDs []int) ([]models.Biodata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterBiodatas(func(b models.Biodata) bool { return slices.Contains(biodataIDs, b.BiodataID) }), nil
}

func (s *MemoryStore) UpdateBiodataByEmail(_ context.Context, email string, changes *models.Biodata) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.biodatas, func(b models.Biodata) bool { return b.Email == email })
	if i < 0 {
		return ack(0, 0), nil
	}
	before := s.biodatas[i]
	mergeBiodata(&s.biodatas[i], changes)
	if s.biodatas[i] == before {
		return ack(1, 0), nil
	}
	return ack(1, 1), nil
}

// mergeBiodata applies the non-empty fields of src onto dst, matching a
// $set of a document encoded with omitempty.
func mergeBiodata(dst *models.Biodata, src *models.Biodata) {
	setString := func(d *string, v string) {
		if v != "" {
			*d = v
		}
	}
	if src.BiodataID != 0 {
		dst.BiodataID = src.BiodataID
	}
	if src.Age != 0 {
		dst.Age = src.Age
	}
	if src.BioDataStatus != "" {
		dst.BioDataStatus = src.BioDataStatus
	}
	setString(&dst.Email, src.Email)
	setString(&dst.BiodataType, src.BiodataType)
	setString(&dst.Name, src.Name)
	setString(&dst.Image, src.Image)
	setString(&dst.DateOfBirth, src.DateOfBirth)
	setString(&dst.Height, src.Height)
	setString(&dst.Weight, src.Weight)
	setString(&dst.Occupation, src.Occupation)
	setString(&dst.Race, src.Race)
	setString(&dst.FathersName, src.FathersName)
	setString(&dst.MothersName, src.MothersName)
	setString(&dst.PermanentDivision, src.PermanentDivision)
	setString(&dst.PresentDivision, src.PresentDivision)
	setString(&dst.ExpectedPartnerAge, src.ExpectedPartnerAge)
	setString(&dst.ExpectedPartnerHeight, src.ExpectedPartnerHeight)
	setString(&dst.ExpectedPartnerWeight, src.ExpectedPartnerWeight)
	setString(&dst.Mobile, src.Mobile)
}

func (s *MemoryStore) SetBiodataStatus(_ context.Context, key models.ProfileKey, status models.BiodataStatus) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.biodatas, func(b models.Biodata) bool {
		if key.ByEmail() {
			return b.Email == key.Email
		}
		return b.BiodataID == key.BiodataID
	})
	if i < 0 {
		return ack(0, 0), nil
	}
	if s.biodatas[i].BioDataStatus == status {
		return ack(1, 0), nil
	}
	s.biodatas[i].BioDataStatus = status
	return ack(1, 1), nil
}

func (s *MemoryStore) ListPremiumMembers(_ context.Context, ascending bool, limit int) ([]models.Biodata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	premium := s.filterBiodatas(func(b models.Biodata) bool { return b.BioDataStatus == models.StatusPremium })
	sort.SliceStable(premium, func(i, j int) bool {
		if ascending {
			return premium[i].Age < premium[j].Age
		}
		return premium[i].Age > premium[j].Age
	})
	if len(premium) > limit {
		premium = premium[:limit]
	}
	return premium, nil
}

func (s *MemoryStore) ListSimilarBiodatas(_ context.Context, biodataType string, excludeID int, limit int) ([]models.Biodata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	similar := s.filterBiodatas(func(b models.Biodata) bool {
		return b.BiodataType == biodataType && b.BiodataID != excludeID
	})
	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

func (s *MemoryStore) CountBiodatas(_ context.Context, filter models.BiodataFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filterBiodatas(func(b models.Biodata) bool { return matchBiodata(b, filter) }))), nil
}

func (s *MemoryStore) EstimatedBiodataCount(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.biodatas)), nil
}

// ---- success stories ----

func (s *MemoryStore) InsertSuccessStory(_ context.Context, story *models.SuccessStory) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if story.ID.IsZero() {
		story.ID = bson.NewObjectID()
	}
	s.stories = append(s.stories, *story)
	return models.InsertResult{Acknowledged: true, InsertedID: story.ID}, nil
}

func (s *MemoryStore) sortedStories() []models.SuccessStory {
	stories := slices.Clone(s.stories)
	sort.SliceStable(stories, func(i, j int) bool { return stories[i].MarriageDate > stories[j].MarriageDate })
	if stories == nil {
		stories = []models.SuccessStory{}
	}
	return stories
}

func (s *MemoryStore) ListSuccessStories(_ context.Context) ([]models.SuccessStory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedStories(), nil
}

func (s *MemoryStore) ListSuccessStoriesFull(_ context.Context) ([]models.SuccessStoryFull, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	full := []models.SuccessStoryFull{}
	for _, story := range s.sortedStories() {
		self := s.biodataByStringID(story.SelfBiodataID)
		partner := s.biodataByStringID(story.PartnerBiodataID)
		if self == nil || partner == nil {
			continue
		}
		full = append(full, models.SuccessStoryFull{
			SuccessStory: story,
			Female:       models.NewCoupleMember(*self),
			Male:         models.NewCoupleMember(*partner),
		})
	}
	return full, nil
}

func (s *MemoryStore) biodataByStringID(raw string) *models.Biodata {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return s.findBiodata(func(b models.Biodata) bool { return b.BiodataID == id })
}

func (s *MemoryStore) EstimatedSuccessStoryCount(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.stories)), nil
}

// ---- contact requests ----

func (s *MemoryStore) InsertContactRequest(_ context.Context, request *models.ContactRequest) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if request.ID.IsZero() {
		request.ID = bson.NewObjectID()
	}
	s.requests = append(s.requests, *request)
	return models.InsertResult{Acknowledged: true, InsertedID: request.ID}, nil
}

func (s *MemoryStore) FindContactRequest(_ context.Context, id bson.ObjectID) (*models.ContactRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.requests, func(r models.ContactRequest) bool { return r.ID == id })
	if i < 0 {
		return nil, nil
	}
	r := s.requests[i]
	return &r, nil
}

func (s *MemoryStore) ListContactRequests(_ context.Context, status models.ContactStatus) ([]models.ContactRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ContactRequest{}
	for _, r := range s.requests {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) ApproveContactRequest(_ context.Context, id bson.ObjectID, at time.Time) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.requests, func(r models.ContactRequest) bool { return r.ID == id })
	if i < 0 {
		return ack(0, 0), nil
	}
	s.requests[i].Status = models.ContactApproved
	s.requests[i].ApprovedAt = &at
	return ack(1, 1), nil
}

func (s *MemoryStore) DeleteContactRequests(_ context.Context, biodataID int, userEmail string) (models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.requests)
	s.requests = slices.DeleteFunc(s.requests, func(r models.ContactRequest) bool {
		return r.BiodataID.Int() == biodataID && r.UserEmail == userEmail
	})
	return models.DeleteResult{Acknowledged: true, DeletedCount: int64(before - len(s.requests))}, nil
}

func (s *MemoryStore) ListContactRequestsWithBiodata(_ context.Context, userEmail string) ([]models.ContactRequestWithBiodata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := []models.ContactRequestWithBiodata{}
	for _, r := range s.requests {
		if r.UserEmail != userEmail {
			continue
		}
		b := s.findBiodata(func(b models.Biodata) bool { return b.BiodataID == r.BiodataID.Int() })
		if b == nil {
			continue
		}
		rows = append(rows, models.ContactRequestWithBiodata{ContactRequest: r, Biodata: *b})
	}
	return rows, nil
}

func (s *MemoryStore) CountContactRequestsSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.requests {
		if !r.RequestAt.Before(since) {
			n++
		}
	}
	return n, nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*MongoStore)(nil)
)
