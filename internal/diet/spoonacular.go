package diet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/flexora-app/backend/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// ErrRecipeServiceUnavailable marks a Spoonacular outage or rejection
// (rate limit, bad api key); the suggestion is retryable.
var ErrRecipeServiceUnavailable = errors.New("recipe service unavailable")

const (
	oneHour           = 60 * 60
	recipeCacheExpire = oneHour * 6

	recipeCacheSizeBytes = 10 * 1024 * 1024
)

type Recipe struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// SpoonacularApi is a thin client for the Spoonacular recipe search.
// Responses are cached, the same macro targets always produce the same
// upstream query and the free tier quota is tight.
type SpoonacularApi struct {
	cache      *freecache.Cache
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewSpoonacularApi(baseURL, apiKey string, httpClient *http.Client) *SpoonacularApi {
	return &SpoonacularApi{
		cache:      freecache.NewCache(recipeCacheSizeBytes),
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// FindRecipesByNutrients returns up to number recipes fitting within
// the given macro targets.
func (api *SpoonacularApi) FindRecipesByNutrients(ctx context.Context, targets MacroTargets, number int) (_ []Recipe, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "spoonacularApi.findRecipesByNutrients")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := fmt.Sprintf("recipes::%d::%d::%d::%d::%d",
		targets.Calories, targets.Carbs, targets.Proteins, targets.Fats, number,
	)
	if recipesBytes, err := api.cache.Get([]byte(cacheKey)); err == nil {
		var recipes []Recipe
		if err := json.Unmarshal(recipesBytes, &recipes); err == nil {
			log.Tracef("found recipes for %s in cache", cacheKey)
			return recipes, nil
		}
		log.Errorf("failed to unmarshal cached recipes for %s: %s", cacheKey, err)
	}

	params := url.Values{}
	params.Set("apiKey", api.apiKey)
	params.Set("maxCalories", strconv.Itoa(targets.Calories))
	params.Set("maxCarbs", strconv.Itoa(targets.Carbs))
	params.Set("maxProtein", strconv.Itoa(targets.Proteins))
	params.Set("maxFat", strconv.Itoa(targets.Fats))
	params.Set("number", strconv.Itoa(number))

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		api.baseURL+"/recipes/findByNutrients?"+params.Encode(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create recipes request: %w", err)
	}

	resp, err := api.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRecipeServiceUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRecipeServiceUnavailable, resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read recipes response: %w", err)
	}

	var recipes []Recipe
	if err := json.Unmarshal(respBytes, &recipes); err != nil {
		return nil, fmt.Errorf("unmarshal recipes response: %w", err)
	}

	recipesJson, err := json.Marshal(recipes)
	if err == nil {
		if err := api.cache.Set([]byte(cacheKey), recipesJson, recipeCacheExpire); err != nil {
			log.Errorf("failed to write recipes cache for %s: %s", cacheKey, err)
		}
	}

	return recipes, nil
}
