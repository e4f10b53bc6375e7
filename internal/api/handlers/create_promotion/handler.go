package create_promotion

import (
	"errors"
	"net/http"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/api/middleware"
	"github.com/tarekyounes123/booking-online-sub001/internal/service/promotions"
)

const (
	msgInvalidBody   = "invalid request body"
	msgAccessDenied  = "access denied"
	msgDuplicateCode = "promotion code already exists"
)

type Handler struct {
	service PromotionsService
	logger  Logger
}

func NewHandler(service PromotionsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleCreate POST /api/v1/promotions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req CreatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	promo, err := h.service.Create(r.Context(), actor, promotions.CreateInput{
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		UsageLimit:    req.UsageLimit,
	})
	if err != nil {
		switch {
		case errors.Is(err, promotions.ErrAccessDenied):
			h.logger.Warn("POST /promotions - access denied: user_id=%d role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, promotions.ErrDuplicateCode):
			handlers.RespondConflict(w, msgDuplicateCode)
		case errors.Is(err, promotions.ErrEmptyCode),
			errors.Is(err, promotions.ErrInvalidDiscountType),
			errors.Is(err, promotions.ErrInvalidDiscountValue),
			errors.Is(err, promotions.ErrInvalidWindow),
			errors.Is(err, promotions.ErrInvalidUsageLimit):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /promotions - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /promotions - created %s", promo.Code)
	handlers.RespondJSON(w, http.StatusCreated, viewFromDomain(promo))
}

// HandleList GET /api/v1/promotions
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	promos, err := h.service.List(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, promotions.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /promotions - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	views := make([]PromotionView, 0, len(promos))
	for _, p := range promos {
		views = append(views, viewFromDomain(p))
	}
	handlers.RespondJSON(w, http.StatusOK, ListResponse{Promotions: views})
}
