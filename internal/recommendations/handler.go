package recommendations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flexora-app/backend/internal/auth"
	"github.com/flexora-app/backend/internal/telemetry/metrics"
	"github.com/flexora-app/backend/internal/telemetry/tracing"
	"github.com/flexora-app/backend/internal/users"
	"github.com/flexora-app/backend/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=recommendations_test

type recommender interface {
	Recommend(ctx context.Context, mlReq MLRequest) (*MLRecommendation, error)
}

type profileGetter interface {
	GetByID(ctx context.Context, id int64) (*users.User, error)
}

type RecommendRequest struct {
	MealType string `json:"meal_type"`
}

type Handler struct {
	users    profileGetter
	ml       recommender
	enricher *Enricher
	metrics  *metrics.Manager
}

func NewHandler(
	users profileGetter,
	ml recommender,
	history exerciseHistory,
	metrics *metrics.Manager,
) *Handler {
	return &Handler{
		users:    users,
		ml:       ml,
		enricher: NewEnricher(history, metrics),
		metrics:  metrics,
	}
}

func (handler *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommendations.recommend")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var recommendReq RecommendRequest
	if r.Body != nil {
		// meal type hint is optional, an empty body means lunch
		if err := json.NewDecoder(r.Body).Decode(&recommendReq); err != nil {
			log.Tracef("recommend, unmarshal json params: %s", err)
		}
	}
	if recommendReq.MealType == "" {
		recommendReq.MealType = "lunch"
	}

	user, err := handler.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("recommend, get user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !user.Profile.Complete() {
		http.Error(w, "please complete your profile onboarding first", http.StatusBadRequest)
		return
	}

	recommendation, err := handler.ml.Recommend(ctx, MLRequestFromProfile(user.Profile, recommendReq.MealType))
	if err != nil {
		if errors.Is(err, ErrMLServiceUnavailable) {
			log.Warnf("recommend, ml service unavailable: %s", err)
			http.Error(w, "recommendation service unavailable, try again later", http.StatusServiceUnavailable)
			return
		}
		log.Errorf("recommend, ml service call for user %d: %s", userID, err)
		http.Error(w, "failed to get recommendations", http.StatusInternalServerError)
		return
	}

	enriched := handler.enricher.Enrich(ctx, userID, recommendation.ExerciseRecommendations)

	handler.metrics.CounterRecommendations.Inc()

	respJson, err := json.Marshal(Response{
		BMI:                     recommendation.BMI,
		ExerciseRecommendations: enriched,
		DietSuggestion:          recommendation.DietSuggestion,
	})
	if err != nil {
		log.Errorf("recommend, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
