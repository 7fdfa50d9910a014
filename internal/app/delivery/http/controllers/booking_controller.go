package controllers

import (
	"net/http"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/delivery/http/middlewares"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/dto/requests"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// defaultDoctorBookingDays is the window of GET /bookings/doctor when to is omitted.
const defaultDoctorBookingDays = 30

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
	Location       *time.Location
	Timeout        time.Duration
	now            func() time.Time
}

func NewBookingController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase, location *time.Location, timeout time.Duration) contracts.BookingController {
	return &BookingController{
		Log:            logger,
		BookingUsecase: bookingUsecase,
		Location:       location,
		Timeout:        timeout,
		now:            time.Now,
	}
}

func (ctrl *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	caller, err := middlewares.CallerIdentityFromContext(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	var request requests.CreateBooking
	if err := decodeAndValidate(r, &request); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	date, err := utils.ParseDate(request.Date, ctrl.Location)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	booking, err := ctrl.BookingUsecase.Book(ctx, request.DoctorID, caller.ID, date, request.StartTime, request.EndTime)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateBookingSuccessMessage, booking)
}

func (ctrl *BookingController) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	caller, err := middlewares.CallerIdentityFromContext(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	bookingID := chi.URLParam(r, constvars.URLParamBookingID)
	if bookingID == "" {
		writeError(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamBookingID))
		return
	}

	booking, err := ctrl.BookingUsecase.Cancel(ctx, bookingID, caller.ID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelBookingSuccessMessage, booking)
}

func (ctrl *BookingController) ListPatientBookings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	caller, err := middlewares.CallerIdentityFromContext(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	bookings, err := ctrl.BookingUsecase.ListForPatient(ctx, caller.ID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBookingsSuccessMessage, bookings)
}

// ListDoctorBookings defaults from to today and to to from plus 30 days.
func (ctrl *BookingController) ListDoctorBookings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	caller, err := middlewares.CallerIdentityFromContext(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	window := requests.BookingWindow{
		From: r.URL.Query().Get(constvars.URLQueryParamFrom),
		To:   r.URL.Query().Get(constvars.URLQueryParamTo),
	}
	if err := utils.ValidateStruct(&window); err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	from := utils.DateOf(ctrl.now(), ctrl.Location)
	if window.From != "" {
		if from, err = utils.ParseDate(window.From, ctrl.Location); err != nil {
			writeError(ctrl.Log, w, err)
			return
		}
	}
	to := from.AddDate(0, 0, defaultDoctorBookingDays)
	if window.To != "" {
		if to, err = utils.ParseDate(window.To, ctrl.Location); err != nil {
			writeError(ctrl.Log, w, err)
			return
		}
	}

	bookings, err := ctrl.BookingUsecase.ListForDoctor(ctx, caller.ID, from, to)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBookingsSuccessMessage, bookings)
}
