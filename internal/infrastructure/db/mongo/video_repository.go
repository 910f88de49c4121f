package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionVideos = "videos"

// VideoRepository covers the legacy flat-video collection that predates the
// nested lesson model. New writes go through the course aggregate; only the
// delete cascade on course removal still touches this collection.
type VideoRepository struct {
	col *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{col: db.Collection(collectionVideos)}
}

func (r *VideoRepository) DeleteByCourseID(ctx context.Context, courseID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
