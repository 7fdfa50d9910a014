package controllers

import (
	"net/http"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/dto/requests"
	"doctor-booking-service/internal/pkg/dto/responses"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SlotController struct {
	Log         *zap.Logger
	SlotUsecase contracts.SlotUsecase
	Timeout     time.Duration
}

func NewSlotController(logger *zap.Logger, slotUsecase contracts.SlotUsecase, timeout time.Duration) contracts.SlotController {
	return &SlotController{
		Log:         logger,
		SlotUsecase: slotUsecase,
		Timeout:     timeout,
	}
}

func (ctrl *SlotController) FindDoctorSlots(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r, ctrl.Timeout)
	defer cancel()

	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	if doctorID == "" {
		writeError(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamDoctorID))
		return
	}

	window := requests.SlotWindow{
		From: r.URL.Query().Get(constvars.URLQueryParamFrom),
		To:   r.URL.Query().Get(constvars.URLQueryParamTo),
	}
	if err := utils.ValidateStruct(&window); err != nil {
		writeError(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	loc := ctrl.SlotUsecase.Location()
	from, err := utils.ParseDate(window.From, loc)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	to, err := utils.ParseDate(window.To, loc)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	days, err := ctrl.SlotUsecase.Resolve(ctx, doctorID, from, to)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	response := make([]responses.DaySlots, 0)
	for date, slots := range days {
		day := responses.DaySlots{
			Date:  utils.FormatDate(date),
			Slots: make([]responses.Slot, 0, len(slots)),
		}
		for _, s := range slots {
			day.Slots = append(day.Slots, responses.Slot{
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
				RuleID:    s.RuleID,
			})
		}
		response = append(response, day)
	}
	if err := ctx.Err(); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSlotsSuccessMessage, response)
}
