package database

import (
	"context"
	"fmt"
	"time"

	"marrynow/config"
	"marrynow/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store is the document storage used by every controller. The process owns
// a single Store for its lifetime; implementations are safe for concurrent use.
// Find methods return a nil document and a nil error when nothing matches.
type Store interface {
	// users
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) (models.InsertResult, error)
	TouchUserLogin(ctx context.Context, email string, at time.Time) (models.UpdateResult, error)
	ListUsers(ctx context.Context, nameSearch string) ([]models.User, error)
	MakeAdmin(ctx context.Context, id bson.ObjectID) (models.UpdateResult, error)
	AddFavorite(ctx context.Context, email string, biodataID int) (models.UpdateResult, error)
	RemoveFavorite(ctx context.Context, email string, biodataID int) (models.UpdateResult, error)

	// biodatas
	NextBiodataID(ctx context.Context) (int, error)
	SyncBiodataSequence(ctx context.Context) (int, error)
	InsertBiodata(ctx context.Context, biodata *models.Biodata) (models.InsertResult, error)
	ListBiodataCards(ctx context.Context) ([]models.BiodataCard, error)
	ListBiodatas(ctx context.Context, filter models.BiodataFilter) ([]models.Biodata, error)
	FindBiodataByEmail(ctx context.Context, email string) (*models.Biodata, error)
	FindBiodataByID(ctx context.Context, biodataID int) (*models.Biodata, error)
	FindBiodatasByIDs(ctx context.Context, biodataIDs []int) ([]models.Biodata, error)
	UpdateBiodataByEmail(ctx context.Context, email string, changes *models.Biodata) (models.UpdateResult, error)
	SetBiodataStatus(ctx context.Context, key models.ProfileKey, status models.BiodataStatus) (models.UpdateResult, error)
	ListPremiumMembers(ctx context.Context, ascending bool, limit int) ([]models.Biodata, error)
	ListSimilarBiodatas(ctx context.Context, biodataType string, excludeID int, limit int) ([]models.Biodata, error)
	CountBiodatas(ctx context.Context, filter models.BiodataFilter) (int64, error)
	EstimatedBiodataCount(ctx context.Context) (int64, error)

	// success stories
	InsertSuccessStory(ctx context.Context, story *models.SuccessStory) (models.InsertResult, error)
	ListSuccessStories(ctx context.Context) ([]models.SuccessStory, error)
	ListSuccessStoriesFull(ctx context.Context) ([]models.SuccessStoryFull, error)
	EstimatedSuccessStoryCount(ctx context.Context) (int64, error)

	// contact requests
	InsertContactRequest(ctx context.Context, request *models.ContactRequest) (models.InsertResult, error)
	FindContactRequest(ctx context.Context, id bson.ObjectID) (*models.ContactRequest, error)
	ListContactRequests(ctx context.Context, status models.ContactStatus) ([]models.ContactRequest, error)
	ApproveContactRequest(ctx context.Context, id bson.ObjectID, at time.Time) (models.UpdateResult, error)
	DeleteContactRequests(ctx context.Context, biodataID int, userEmail string) (models.DeleteResult, error)
	ListContactRequestsWithBiodata(ctx context.Context, userEmail string) ([]models.ContactRequestWithBiodata, error)
	CountContactRequestsSince(ctx context.Context, since time.Time) (int64, error)

	Close() error
}

// ConnectDb opens the store selected by configuration.
func ConnectDb(cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		return NewMemoryStore(), nil
	case "mongo", "":
		return NewMongoStore(cfg.MongoURI, cfg.DBName)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
