package database

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"marrynow/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := findOne[models.User](ctx, s.col(ColUsers), bson.D{{Key: "email", Value: email}})
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", email, err)
	}
	return user, nil
}

func (s *MongoStore) InsertUser(ctx context.Context, user *models.User) (models.InsertResult, error) {
	res, err := insertOne(ctx, s.col(ColUsers), user)
	if err != nil {
		return res, fmt.Errorf("insert user %s: %w", user.Email, err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		user.ID = id
	}
	return res, nil
}

func (s *MongoStore) TouchUserLogin(ctx context.Context, email string, at time.Time) (models.UpdateResult, error) {
	return updateOne(ctx, s.col(ColUsers),
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "last_log_in", Value: at}}}},
	)
}

func (s *MongoStore) ListUsers(ctx context.Context, nameSearch string) ([]models.User, error) {
	filter := bson.D{}
	if nameSearch != "" {
		filter = bson.D{{Key: "name", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(nameSearch)},
			{Key: "$options", Value: "i"},
		}}}
	}
	users, err := findMany[models.User](ctx, s.col(ColUsers), filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *MongoStore) MakeAdmin(ctx context.Context, id bson.ObjectID) (models.UpdateResult, error) {
	return updateOne(ctx, s.col(ColUsers),
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: models.RoleAdmin}}}},
	)
}

func (s *MongoStore) AddFavorite(ctx context.Context, email string, biodataID int) (models.UpdateResult, error) {
	return updateOne(ctx, s.col(ColUsers),
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "favorites", Value: biodataID}}}},
	)
}

func (s *MongoStore) RemoveFavorite(ctx context.Context, email string, biodataID int) (models.UpdateResult, error) {
	return updateOne(ctx, s.col(ColUsers),
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "favorites", Value: biodataID}}}},
	)
}
