package booking

import (
	"context"
	"errors"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type bookingPostgresRepository struct {
	DB  *pgxpool.Pool
	Log *zap.Logger
}

func NewBookingPostgresRepository(db *pgxpool.Pool, logger *zap.Logger) contracts.BookingRepository {
	return &bookingPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *bookingPostgresRepository) Insert(ctx context.Context, booking *models.Booking) error {
	_, err := r.DB.Exec(ctx, queries.InsertBooking,
		booking.ID, booking.DoctorID, booking.PatientID, booking.Date, booking.StartTime, booking.EndTime,
		booking.Status, booking.CreatedAt, booking.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return exceptions.ErrSlotAlreadyBooked(err, booking.Date, booking.StartTime, booking.DoctorID)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *bookingPostgresRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return r.queryOne(ctx, queries.GetBookingByID, bookingID)
}

func (r *bookingPostgresRepository) FindConfirmedBySlot(ctx context.Context, doctorID, date, startTime string) (*models.Booking, error) {
	return r.queryOne(ctx, queries.GetConfirmedBookingBySlot, doctorID, date, startTime)
}

func (r *bookingPostgresRepository) FindConfirmedByDoctorBetween(ctx context.Context, doctorID, fromDate, toDate string) ([]models.Booking, error) {
	return r.queryMany(ctx, queries.GetConfirmedBookingsByDoctorBetween, doctorID, fromDate, toDate)
}

func (r *bookingPostgresRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.Booking, error) {
	return r.queryMany(ctx, queries.GetBookingsByPatientID, patientID)
}

func (r *bookingPostgresRepository) FindByDoctorBetween(ctx context.Context, doctorID, fromDate, toDate string) ([]models.Booking, error) {
	return r.queryMany(ctx, queries.GetBookingsByDoctorBetween, doctorID, fromDate, toDate)
}

func (r *bookingPostgresRepository) TransitionStatus(ctx context.Context, bookingID, from, to string, at time.Time) (bool, error) {
	var cancelledAt *time.Time
	if to == constvars.BookingStatusCancelled {
		cancelledAt = &at
	}

	tag, err := r.DB.Exec(ctx, queries.TransitionBookingStatus, to, cancelledAt, at, bookingID, from)
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *bookingPostgresRepository) queryOne(ctx context.Context, query string, args ...any) (*models.Booking, error) {
	booking, err := scanBooking(r.DB.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return booking, nil
}

func (r *bookingPostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return bookings, nil
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.DoctorID, &b.PatientID, &b.Date, &b.StartTime, &b.EndTime,
		&b.Status, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
