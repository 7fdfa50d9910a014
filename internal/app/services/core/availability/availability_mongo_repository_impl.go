package availability

import (
	"context"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type availabilityMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewAvailabilityMongoRepository(db *mongo.Database, logger *zap.Logger) contracts.AvailabilityRepository {
	return &availabilityMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAvailabilityRules),
		Log:        logger,
	}
}

// EnsureMongoIndexes creates the doctor/startTime index used by FindByDoctorID.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	name := "idx_doctor_start"
	collection := db.Collection(constvars.MongoCollectionAvailabilityRules)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "doctorId", Value: 1}, {Key: "startTime", Value: 1}},
		Options: options.Index().SetName(name),
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, name)
	}
	return nil
}

func (r *availabilityMongoRepository) Insert(ctx context.Context, rule *models.AvailabilityRule) error {
	if _, err := r.Collection.InsertOne(ctx, rule); err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *availabilityMongoRepository) Replace(ctx context.Context, rule *models.AvailabilityRule) (bool, error) {
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": rule.ID, "doctorId": rule.DoctorID}, rule)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *availabilityMongoRepository) Delete(ctx context.Context, doctorID, ruleID string) (bool, error) {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": ruleID, "doctorId": doctorID})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}

func (r *availabilityMongoRepository) FindByID(ctx context.Context, doctorID, ruleID string) (*models.AvailabilityRule, error) {
	var rule models.AvailabilityRule
	err := r.Collection.FindOne(ctx, bson.M{"_id": ruleID, "doctorId": doctorID}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &rule, nil
}

func (r *availabilityMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.AvailabilityRule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"doctorId": doctorID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	rules := make([]models.AvailabilityRule, 0)
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return rules, nil
}
