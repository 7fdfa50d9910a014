package controllers

import (
	"net/http"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/delivery/http/middlewares"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
	Timeout       time.Duration
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase, timeout time.Duration) contracts.DoctorController {
	return &DoctorController{
		Log:           logger,
		DoctorUsecase: doctorUsecase,
		Timeout:       timeout,
	}
}

func (ctrl *DoctorController) ListVerifiedDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	caller, err := middlewares.CallerIdentityFromContext(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	doctors, err := ctrl.DoctorUsecase.ListVerified(ctx, caller.Credential, r.URL.Query().Get(constvars.URLQueryParamSearch))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorsSuccessMessage, doctors)
}

func (ctrl *DoctorController) FindDoctorByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	caller, err := middlewares.CallerIdentityFromContext(ctx)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	if doctorID == "" {
		writeError(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamDoctorID))
		return
	}

	doctor, err := ctrl.DoctorUsecase.FindByID(ctx, caller.Credential, doctorID)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorSuccessMessage, doctor)
}
