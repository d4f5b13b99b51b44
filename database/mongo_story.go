package database

import (
	"context"
	"fmt"

	"marrynow/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *MongoStore) InsertSuccessStory(ctx context.Context, story *models.SuccessStory) (models.InsertResult, error) {
	res, err := insertOne(ctx, s.col(ColSuccessStories), story)
	if err != nil {
		return res, fmt.Errorf("insert success story: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		story.ID = id
	}
	return res, nil
}

func (s *MongoStore) ListSuccessStories(ctx context.Context) ([]models.SuccessStory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "marriageDate", Value: -1}})
	stories, err := findMany[models.SuccessStory](ctx, s.col(ColSuccessStories), bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list success stories: %w", err)
	}
	return stories, nil
}

var coupleMemberProjection = bson.D{
	{Key: "name", Value: 1},
	{Key: "image", Value: 1},
	{Key: "biodataId", Value: 1},
	{Key: "permanentDivision", Value: 1},
}

func lookupBiodata(localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: ColBiodatas},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "biodataId"},
		{Key: "as", Value: as},
	}}}
}

// ListSuccessStoriesFull joins each story to both biodatas it references.
// Stories missing either side are dropped by the unwind stages.
func (s *MongoStore) ListSuccessStoriesFull(ctx context.Context) ([]models.SuccessStoryFull, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{
			{Key: "selfBiodataIdInt", Value: toInt("$selfBiodataId")},
			{Key: "partnerBiodataIdInt", Value: toInt("$partnerBiodataId")},
		}}},
		lookupBiodata("selfBiodataIdInt", "female"),
		lookupBiodata("partnerBiodataIdInt", "male"),
		{{Key: "$unwind", Value: "$female"}},
		{{Key: "$unwind", Value: "$male"}},
		{{Key: "$sort", Value: bson.D{{Key: "marriageDate", Value: -1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "selfBiodataId", Value: 1},
			{Key: "partnerBiodataId", Value: 1},
			{Key: "coupleImage", Value: 1},
			{Key: "marriageDate", Value: 1},
			{Key: "reviewStar", Value: 1},
			{Key: "review", Value: 1},
			{Key: "female", Value: coupleMemberProjection},
			{Key: "male", Value: coupleMemberProjection},
		}}},
	}
	stories, err := aggregate[models.SuccessStoryFull](ctx, s.col(ColSuccessStories), pipeline)
	if err != nil {
		return nil, fmt.Errorf("list full success stories: %w", err)
	}
	return stories, nil
}

func (s *MongoStore) EstimatedSuccessStoryCount(ctx context.Context) (int64, error) {
	n, err := s.col(ColSuccessStories).EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("estimate success story count: %w", err)
	}
	return n, nil
}
