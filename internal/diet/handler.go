package diet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flexora-app/backend/internal/auth"
	"github.com/flexora-app/backend/internal/telemetry/tracing"
	"github.com/flexora-app/backend/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=diet_test

const recipesPerSuggestion = 3

type recipeFinder interface {
	FindRecipesByNutrients(ctx context.Context, targets MacroTargets, number int) ([]Recipe, error)
}

type SuggestionRequest struct {
	DietType string `json:"diet_type"`
	MealType string `json:"meal_type"`
}

type SuggestionResponse struct {
	MacroTargets MacroTargets `json:"macro_targets"`
	Recipes      []Recipe     `json:"recipes"`
}

type Handler struct {
	recipes recipeFinder
}

func NewHandler(recipes recipeFinder) *Handler {
	return &Handler{
		recipes: recipes,
	}
}

func (handler *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.suggest")
	defer span.End()

	if _, ok := auth.UserIDFromContext(ctx); !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var suggestionReq SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&suggestionReq); err != nil {
		log.Tracef("diet suggestion, unmarshal json params: %s", err)
		http.Error(w, "diet suggestion failed", http.StatusBadRequest)
		return
	}

	if suggestionReq.DietType == "" || suggestionReq.MealType == "" {
		http.Error(w, "diet_type and meal_type are required", http.StatusBadRequest)
		return
	}

	targets, ok := MacroTargetsFor(suggestionReq.DietType, suggestionReq.MealType)
	if !ok {
		http.Error(w, "diet combination not found", http.StatusNotFound)
		return
	}

	recipes, err := handler.recipes.FindRecipesByNutrients(ctx, targets, recipesPerSuggestion)
	if err != nil {
		if errors.Is(err, ErrRecipeServiceUnavailable) {
			log.Warnf("diet suggestion, recipe service unavailable: %s", err)
			http.Error(w, "recipe service unavailable, try again later", http.StatusServiceUnavailable)
			return
		}
		log.Errorf("diet suggestion, find recipes: %s", err)
		http.Error(w, "diet suggestion failed", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(SuggestionResponse{
		MacroTargets: targets,
		Recipes:      recipes,
	})
	if err != nil {
		log.Errorf("diet suggestion, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
