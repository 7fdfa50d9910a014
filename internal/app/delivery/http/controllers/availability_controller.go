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

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
	Location            *time.Location
	Timeout             time.Duration
}

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase, location *time.Location, timeout time.Duration) contracts.AvailabilityController {
	return &AvailabilityController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
		Location:            location,
		Timeout:             timeout,
	}
}

func (ctrl *AvailabilityController) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	caller, err := middlewares.CallerIdentityFromContext(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	rules, err := ctrl.AvailabilityUsecase.ListForDoctor(ctx, caller.ID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailabilitySuccessMessage, rules)
}

func (ctrl *AvailabilityController) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	caller, err := middlewares.CallerIdentityFromContext(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	start, end, recurrence, err := ctrl.parseRuleRequest(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	rule, err := ctrl.AvailabilityUsecase.Create(ctx, caller.ID, start, end, recurrence)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAvailabilitySuccessMessage, rule)
}

func (ctrl *AvailabilityController) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	caller, err := middlewares.CallerIdentityFromContext(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ruleID := chi.URLParam(r, constvars.URLParamAvailabilityID)
	if ruleID == "" {
		writeError(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamAvailabilityID))
		return
	}

	start, end, recurrence, err := ctrl.parseRuleRequest(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	rule, err := ctrl.AvailabilityUsecase.Update(ctx, caller.ID, ruleID, start, end, recurrence)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAvailabilitySuccessMessage, rule)
}

func (ctrl *AvailabilityController) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	caller, err := middlewares.CallerIdentityFromContext(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	ruleID := chi.URLParam(r, constvars.URLParamAvailabilityID)
	if ruleID == "" {
		writeError(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamAvailabilityID))
		return
	}

	if err := ctrl.AvailabilityUsecase.Delete(ctx, caller.ID, ruleID); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteAvailabilitySuccessMessage, nil)
}

// parseRuleRequest decodes the body and resolves both instants in the service
// timezone. A missing recurring field means a one-off rule.
func (ctrl *AvailabilityController) parseRuleRequest(r *http.Request) (time.Time, time.Time, string, error) {
	var request requests.AvailabilityRule
	if err := decodeAndValidate(r, &request); err != nil {
		return time.Time{}, time.Time{}, "", err
	}

	start, err := utils.ParseDateTime(request.StartTime, ctrl.Location)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	end, err := utils.ParseDateTime(request.EndTime, ctrl.Location)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}

	recurrence := request.Recurring
	if recurrence == "" {
		recurrence = constvars.RecurrenceNone
	}
	return start, end, recurrence, nil
}
