package database

import (
	"context"
	"fmt"

	"marrynow/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NextBiodataID atomically increments the biodata counter and returns the
// new value. Concurrent callers always receive distinct ids.
func (s *MongoStore) NextBiodataID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.col(ColCounters).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: biodataCounterID}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate biodataId: %w", err)
	}
	return counter.Seq, nil
}

// SyncBiodataSequence raises the counter to the highest biodataId on record
// so allocation continues after documents written without the counter.
func (s *MongoStore) SyncBiodataSequence(ctx context.Context) (int, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "biodataId", Value: -1}}).
		SetLimit(1).
		SetProjection(bson.D{{Key: "biodataId", Value: 1}})
	last, err := findMany[models.Biodata](ctx, s.col(ColBiodatas), bson.D{}, opts)
	if err != nil {
		return 0, fmt.Errorf("read max biodataId: %w", err)
	}
	maxID := 0
	if len(last) > 0 {
		maxID = last[0].BiodataID
	}

	var counter struct {
		Seq int `bson:"seq"`
	}
	upd := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err = s.col(ColCounters).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: biodataCounterID}},
		bson.D{{Key: "$max", Value: bson.D{{Key: "seq", Value: maxID}}}},
		upd,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("sync biodata sequence: %w", err)
	}
	return counter.Seq, nil
}

func (s *MongoStore) InsertBiodata(ctx context.Context, biodata *models.Biodata) (models.InsertResult, error) {
	res, err := insertOne(ctx, s.col(ColBiodatas), biodata)
	if err != nil {
		return res, fmt.Errorf("insert biodata %d: %w", biodata.BiodataID, err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		biodata.ID = id
	}
	return res, nil
}

func (s *MongoStore) ListBiodataCards(ctx context.Context) ([]models.BiodataCard, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "biodataId", Value: 1},
		{Key: "biodataType", Value: 1},
		{Key: "image", Value: 1},
		{Key: "permanentDivision", Value: 1},
		{Key: "age", Value: 1},
		{Key: "occupation", Value: 1},
	})
	cards, err := findMany[models.BiodataCard](ctx, s.col(ColBiodatas), bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list biodata cards: %w", err)
	}
	return cards, nil
}

func biodataFilter(f models.BiodataFilter) bson.D {
	filter := bson.D{}
	if f.BiodataType != "" {
		filter = append(filter, bson.E{Key: "biodataType", Value: f.BiodataType})
	}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: "bioDataStatus", Value: f.Status})
	}
	return filter
}

func (s *MongoStore) ListBiodatas(ctx context.Context, filter models.BiodataFilter) ([]models.Biodata, error) {
	biodatas, err := findMany[models.Biodata](ctx, s.col(ColBiodatas), biodataFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("list biodatas: %w", err)
	}
	return biodatas, nil
}

func (s *MongoStore) FindBiodataByEmail(ctx context.Context, email string) (*models.Biodata, error) {
	b, err := findOne[models.Biodata](ctx, s.col(ColBiodatas), bson.D{{Key: "email", Value: email}})
	if err != nil {
		return nil, fmt.Errorf("find biodata %s: %w", email, err)
	}
	return b, nil
}

func (s *MongoStore) FindBiodataByID(ctx context.Context, biodataID int) (*models.Biodata, error) {
	b, err := findOne[models.Biodata](ctx, s.col(ColBiodatas), bson.D{{Key: "biodataId", Value: biodataID}})
	if err != nil {
		return nil, fmt.Errorf("find biodata %d: %w", biodataID, err)
	}
	return b, nil
}

func (s *MongoStore) FindBiodatasByIDs(ctx context.Context, biodataIDs []int) ([]models.Biodata, error) {
	if len(biodataIDs) == 0 {
		return []models.Biodata{}, nil
	}
	filter := bson.D{{Key: "biodataId", Value: bson.D{{Key: "$in", Value: biodataIDs}}}}
	biodatas, err := findMany[models.Biodata](ctx, s.col(ColBiodatas), filter)
	if err != nil {
		return nil, fmt.Errorf("find biodatas by ids: %w", err)
	}
	return biodatas, nil
}

// UpdateBiodataByEmail sets every non-empty field of changes on the owner's
// biodata. Identity and workflow fields must be cleared by the caller.
func (s *MongoStore) UpdateBiodataByEmail(ctx context.Context, email string, changes *models.Biodata) (models.UpdateResult, error) {
	return updateOne(ctx, s.col(ColBiodatas),
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: changes}},
	)
}

func (s *MongoStore) SetBiodataStatus(ctx context.Context, key models.ProfileKey, status models.BiodataStatus) (models.UpdateResult, error) {
	filter := bson.D{{Key: "biodataId", Value: key.BiodataID}}
	if key.ByEmail() {
		filter = bson.D{{Key: "email", Value: key.Email}}
	}
	return updateOne(ctx, s.col(ColBiodatas),
		filter,
		bson.D{{Key: "$set", Value: bson.D{{Key: "bioDataStatus", Value: status}}}},
	)
}

func (s *MongoStore) ListPremiumMembers(ctx context.Context, ascending bool, limit int) ([]models.Biodata, error) {
	order := -1
	if ascending {
		order = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "age", Value: order}}).
		SetLimit(int64(limit))
	filter := bson.D{{Key: "bioDataStatus", Value: models.StatusPremium}}
	biodatas, err := findMany[models.Biodata](ctx, s.col(ColBiodatas), filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list premium members: %w", err)
	}
	return biodatas, nil
}

func (s *MongoStore) ListSimilarBiodatas(ctx context.Context, biodataType string, excludeID int, limit int) ([]models.Biodata, error) {
	filter := bson.D{
		{Key: "biodataType", Value: biodataType},
		{Key: "biodataId", Value: bson.D{{Key: "$ne", Value: excludeID}}},
	}
	biodatas, err := findMany[models.Biodata](ctx, s.col(ColBiodatas), filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("list similar biodatas: %w", err)
	}
	return biodatas, nil
}

func (s *MongoStore) CountBiodatas(ctx context.Context, filter models.BiodataFilter) (int64, error) {
	n, err := s.col(ColBiodatas).CountDocuments(ctx, biodataFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count biodatas: %w", err)
	}
	return n, nil
}

func (s *MongoStore) EstimatedBiodataCount(ctx context.Context) (int64, error) {
	n, err := s.col(ColBiodatas).EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("estimate biodata count: %w", err)
	}
	return n, nil
}
