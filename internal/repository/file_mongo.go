package repository

import (
	"context"
	"time"

	"github.com/fathima-sithara/files-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoFileRepo struct {
	col *mongo.Collection
}

func NewMongoFileRepo(db *mongo.Database, collection string) FileRepository {
	col := db.Collection(collection)
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "parent_id", Value: 1}},
	})
	return &mongoFileRepo{col: col}
}

func (r *mongoFileRepo) Insert(ctx context.Context, f *models.FileEntry) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, f)
	return err
}

func (r *mongoFileRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.FileEntry, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoFileRepo) FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.FileEntry, error) {
	return r.findOne(ctx, bson.M{"_id": id, "user_id": userID})
}

func (r *mongoFileRepo) findOne(ctx context.Context, filter bson.M) (*models.FileEntry, error) {
	var f models.FileEntry
	err := r.col.FindOne(ctx, filter).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *mongoFileRepo) ListByParent(ctx context.Context, parentID string, ownerID primitive.ObjectID, page int64) ([]models.FileEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(PageSize * page).
		SetLimit(PageSize)
	cur, err := r.col.Find(ctx, bson.M{"parent_id": parentID, "user_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []models.FileEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mongoFileRepo) SetVisibility(ctx context.Context, id, userID primitive.ObjectID, public bool) (*models.FileEntry, error) {
	// Unconditional overwrite: concurrent toggles race and the last write
	// wins. There is no version check.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var f models.FileEntry
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_public": public}},
		opts,
	).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *mongoFileRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
