package booking

import (
	"context"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const mongoConfirmedSlotIndex = "uq_confirmed_slot"

type bookingMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewBookingMongoRepository(db *mongo.Database, logger *zap.Logger) contracts.BookingRepository {
	return &bookingMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionBookings),
		Log:        logger,
	}
}

// EnsureMongoIndexes creates the unique partial index that allows a single
// confirmed booking per slot, plus the patient lookup index.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection(constvars.MongoCollectionBookings)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: 1}, {Key: "startTime", Value: 1}},
		Options: options.Index().
			SetName(mongoConfirmedSlotIndex).
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": constvars.BookingStatusConfirmed}),
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, mongoConfirmedSlotIndex)
	}

	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "patientId", Value: 1}},
		Options: options.Index().SetName("idx_patient"),
	})
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, "idx_patient")
	}
	return nil
}

func (r *bookingMongoRepository) Insert(ctx context.Context, booking *models.Booking) error {
	_, err := r.Collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrSlotAlreadyBooked(err, booking.Date, booking.StartTime, booking.DoctorID)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *bookingMongoRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"_id": bookingID})
}

func (r *bookingMongoRepository) FindConfirmedBySlot(ctx context.Context, doctorID, date, startTime string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{
		"doctorId":  doctorID,
		"date":      date,
		"startTime": startTime,
		"status":    constvars.BookingStatusConfirmed,
	})
}

func (r *bookingMongoRepository) FindConfirmedByDoctorBetween(ctx context.Context, doctorID, fromDate, toDate string) ([]models.Booking, error) {
	return r.findMany(ctx, bson.M{
		"doctorId": doctorID,
		"date":     bson.M{"$gte": fromDate, "$lte": toDate},
		"status":   constvars.BookingStatusConfirmed,
	})
}

func (r *bookingMongoRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.Booking, error) {
	return r.findMany(ctx, bson.M{"patientId": patientID})
}

func (r *bookingMongoRepository) FindByDoctorBetween(ctx context.Context, doctorID, fromDate, toDate string) ([]models.Booking, error) {
	return r.findMany(ctx, bson.M{
		"doctorId": doctorID,
		"date":     bson.M{"$gte": fromDate, "$lte": toDate},
	})
}

func (r *bookingMongoRepository) TransitionStatus(ctx context.Context, bookingID, from, to string, at time.Time) (bool, error) {
	set := bson.M{"status": to, "updatedAt": at}
	if to == constvars.BookingStatusCancelled {
		set["cancelledAt"] = at
	}

	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": bookingID, "status": from}, bson.M{"$set": set})
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *bookingMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	var booking models.Booking
	err := r.Collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &booking, nil
}

func (r *bookingMongoRepository) findMany(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bookings, nil
}
