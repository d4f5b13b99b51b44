package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"marrynow/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func (s *MongoStore) InsertContactRequest(ctx context.Context, request *models.ContactRequest) (models.InsertResult, error) {
	res, err := insertOne(ctx, s.col(ColContactRequests), request)
	if err != nil {
		return res, fmt.Errorf("insert contact request: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		request.ID = id
	}
	return res, nil
}

func (s *MongoStore) FindContactRequest(ctx context.Context, id bson.ObjectID) (*models.ContactRequest, error) {
	req, err := findOne[models.ContactRequest](ctx, s.col(ColContactRequests), bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, fmt.Errorf("find contact request %s: %w", id.Hex(), err)
	}
	return req, nil
}

func (s *MongoStore) ListContactRequests(ctx context.Context, status models.ContactStatus) ([]models.ContactRequest, error) {
	filter := bson.D{}
	if status != "" {
		filter = bson.D{{Key: "status", Value: status}}
	}
	requests, err := findMany[models.ContactRequest](ctx, s.col(ColContactRequests), filter)
	if err != nil {
		return nil, fmt.Errorf("list contact requests: %w", err)
	}
	return requests, nil
}

func (s *MongoStore) ApproveContactRequest(ctx context.Context, id bson.ObjectID, at time.Time) (models.UpdateResult, error) {
	return updateOne(ctx, s.col(ColContactRequests),
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: models.ContactApproved},
			{Key: "approvedAt", Value: at},
		}}},
	)
}

// DeleteContactRequests removes every request a user made for a biodata,
// whether its biodataId was stored as a number or as a string.
func (s *MongoStore) DeleteContactRequests(ctx context.Context, biodataID int, userEmail string) (models.DeleteResult, error) {
	res, err := s.col(ColContactRequests).DeleteMany(ctx, bson.D{
		{Key: "biodataId", Value: bson.D{{Key: "$in", Value: bson.A{biodataID, strconv.Itoa(biodataID)}}}},
		{Key: "userEmail", Value: userEmail},
	})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete contact requests: %w", err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// ListContactRequestsWithBiodata joins a user's requests with the biodata
// they target. Requests whose biodata is gone are dropped.
func (s *MongoStore) ListContactRequestsWithBiodata(ctx context.Context, userEmail string) ([]models.ContactRequestWithBiodata, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userEmail", Value: userEmail}}}},
		{{Key: "$addFields", Value: bson.D{{Key: "biodataId", Value: toInt("$biodataId")}}}},
		lookupBiodata("biodataId", "biodataInfo"),
		{{Key: "$unwind", Value: "$biodataInfo"}},
	}
	rows, err := aggregate[models.ContactRequestWithBiodata](ctx, s.col(ColContactRequests), pipeline)
	if err != nil {
		return nil, fmt.Errorf("list contact requests for %s: %w", userEmail, err)
	}
	return rows, nil
}

func (s *MongoStore) CountContactRequestsSince(ctx context.Context, since time.Time) (int64, error) {
	n, err := s.col(ColContactRequests).CountDocuments(ctx, bson.D{
		{Key: "requestAt", Value: bson.D{{Key: "$gte", Value: since}}},
	})
	if err != nil {
		return 0, fmt.Errorf("count contact requests: %w", err)
	}
	return n, nil
}
