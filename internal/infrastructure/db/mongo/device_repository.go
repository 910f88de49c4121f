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

const collectionDevices = "devices"

type DeviceRepository struct {
	col *mongo.Collection
}

func NewDeviceRepository(db *mongo.Database) *DeviceRepository {
	return &DeviceRepository{col: db.Collection(collectionDevices)}
}

func (r *DeviceRepository) CountActive(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"user_id": userID, "active": true})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *DeviceRepository) FindByDeviceID(ctx context.Context, userID, deviceID string) (*domain.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Device
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "device_id": deviceID}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Upsert registers the device or refreshes an existing registration, marking
// it active either way.
func (r *DeviceRepository) Upsert(ctx context.Context, device *domain.Device) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if device.ID == "" {
		device.ID = primitive.NewObjectID().Hex()
	}

	filter := bson.M{"user_id": device.UserID, "device_id": device.DeviceID}
	update := bson.M{
		"$set": bson.M{
			"name":      device.Name,
			"active":    true,
			"last_seen": device.LastSeen,
		},
		"$setOnInsert": bson.M{
			"_id":        device.ID,
			"user_id":    device.UserID,
			"device_id":  device.DeviceID,
			"created_at": device.CreatedAt,
		},
	}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *DeviceRepository) ListByUser(ctx context.Context, userID string) ([]domain.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "last_seen", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	devices := []domain.Device{}
	for cur.Next(ctx) {
		var d domain.Device
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, cur.Err()
}

func (r *DeviceRepository) Deactivate(ctx context.Context, userID, deviceID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": userID, "device_id": deviceID},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDeviceNotFound
	}
	return nil
}

// EnsureIndexes creates the per-user device lookup index.
func (r *DeviceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "device_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "active", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
