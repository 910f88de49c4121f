package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

const collectionCourses = "courses"

// summaryProjection excludes the module tree from listing queries.
var summaryProjection = bson.M{"modules": 0}

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

// Insert stores a new course document, assigning an id when none is set.
func (r *CourseRepository) Insert(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if course.ID == "" {
		course.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var course domain.Course
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// Replace overwrites the whole aggregate document. The course document is the
// unit of atomicity; concurrent replaces are last-write-wins.
func (r *CourseRepository) Replace(ctx context.Context, course *domain.Course) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": course.ID}, course)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// List returns all courses as summaries, newest-created first.
func (r *CourseRepository) List(ctx context.Context) ([]domain.CourseSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeSummaries(ctx, cur)
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.CourseSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	return decodeSummaries(ctx, cur)
}

// Search runs a full-text match on title/description, best matches first.
func (r *CourseRepository) Search(ctx context.Context, query string) ([]domain.CourseSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return decodeSummaries(ctx, cur)
}

func decodeSummaries(ctx context.Context, cur *mongo.Cursor) ([]domain.CourseSummary, error) {
	defer cur.Close(ctx)

	summaries := []domain.CourseSummary{}
	for cur.Next(ctx) {
		var s domain.CourseSummary
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, cur.Err()
}

// EnsureIndexes creates the text index backing Search and the listing sort.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
