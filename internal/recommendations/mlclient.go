package recommendations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flexora-app/backend/internal/telemetry/tracing"
	"github.com/flexora-app/backend/internal/users"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrMLServiceUnavailable marks a retryable ML service outage.
var ErrMLServiceUnavailable = errors.New("ml service unavailable")

// MLRequest is the feature payload the ML service expects. Field names
// follow the model's training columns.
type MLRequest struct {
	Age              int     `json:"Age"`
	Gender           string  `json:"Gender"`
	Weight           float64 `json:"Weight"`
	Height           float64 `json:"Height"`
	MaxBPM           int     `json:"Max_BPM"`
	AvgBPM           int     `json:"Avg_BPM"`
	RestingBPM       int     `json:"Resting_BPM"`
	SessionDuration  float64 `json:"Session_Duration"`
	CaloriesBurned   float64 `json:"Calories_Burned"`
	WorkoutType      string  `json:"Workout_Type"`
	FatPercentage    float64 `json:"Fat_Percentage"`
	WaterIntake      float64 `json:"Water_Intake"`
	WorkoutFrequency int     `json:"Workout_Frequency"`
	ExperienceLevel  int     `json:"Experience_Level"`
	BMI              float64 `json:"BMI"`
	MealType         string  `json:"meal_type"`
}

// MLRequestFromProfile builds the feature payload from a completed
// profile, substituting population defaults for optional metrics the
// user never provided.
func MLRequestFromProfile(profile users.Profile, mealType string) MLRequest {
	req := MLRequest{
		Age:              *profile.Age,
		Gender:           *profile.Gender,
		Weight:           *profile.WeightKg,
		Height:           *profile.HeightM,
		MaxBPM:           180,
		AvgBPM:           120,
		RestingBPM:       70,
		SessionDuration:  60,
		CaloriesBurned:   300,
		WorkoutType:      "cardio",
		FatPercentage:    20,
		WaterIntake:      2.5,
		WorkoutFrequency: 3,
		ExperienceLevel:  1,
		BMI:              *profile.WeightKg / (*profile.HeightM * *profile.HeightM),
		MealType:         mealType,
	}

	if profile.MaxBPM != nil {
		req.MaxBPM = *profile.MaxBPM
	}
	if profile.AvgBPM != nil {
		req.AvgBPM = *profile.AvgBPM
	}
	if profile.RestingBPM != nil {
		req.RestingBPM = *profile.RestingBPM
	}
	if profile.SessionDuration != nil {
		req.SessionDuration = *profile.SessionDuration
	}
	if profile.CaloriesBurned != nil {
		req.CaloriesBurned = *profile.CaloriesBurned
	}
	if profile.PrimaryWorkoutType != nil {
		req.WorkoutType = *profile.PrimaryWorkoutType
	}
	if profile.BodyFatPercentage != nil {
		req.FatPercentage = *profile.BodyFatPercentage
	}
	if profile.WaterIntake != nil {
		req.WaterIntake = *profile.WaterIntake
	}
	if profile.WorkoutFrequency != nil {
		req.WorkoutFrequency = *profile.WorkoutFrequency
	}
	if profile.ExperienceLevel != nil {
		req.ExperienceLevel = *profile.ExperienceLevel
	}

	return req
}

type MLClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMLClient(baseURL string) *MLClient {
	return &MLClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
	}
}

func (c *MLClient) Recommend(ctx context.Context, mlReq MLRequest) (_ *MLRecommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mlclient.recommend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	reqJson, err := json.Marshal(mlReq)
	if err != nil {
		return nil, fmt.Errorf("marshal ml request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommend", bytes.NewReader(reqJson))
	if err != nil {
		return nil, fmt.Errorf("create ml request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// connection refused, timeout and such: the service is down, not the request wrong
		return nil, fmt.Errorf("%w: %s", ErrMLServiceUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrMLServiceUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ml service returned status %d", resp.StatusCode)
	}

	var recommendation MLRecommendation
	if err := json.NewDecoder(resp.Body).Decode(&recommendation); err != nil {
		return nil, fmt.Errorf("decode ml response: %w", err)
	}

	return &recommendation, nil
}
