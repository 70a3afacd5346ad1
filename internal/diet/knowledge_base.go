package diet

import "strings"

// MacroTargets are the per-meal nutrition ceilings for a diet type.
type MacroTargets struct {
	Calories int `json:"calories"`
	Carbs    int `json:"carbs"`
	Proteins int `json:"proteins"`
	Fats     int `json:"fats"`
}

// knowledgeBase maps diet type -> meal type -> macro targets. Kept in
// code, the values change rarely and never per deployment.
var knowledgeBase = map[string]map[string]MacroTargets{
	"standard": {
		"breakfast": {Calories: 450, Carbs: 50, Proteins: 20, Fats: 15},
		"lunch":     {Calories: 600, Carbs: 70, Proteins: 35, Fats: 20},
		"dinner":    {Calories: 550, Carbs: 60, Proteins: 30, Fats: 18},
	},
	"keto": {
		"breakfast": {Calories: 500, Carbs: 10, Proteins: 30, Fats: 40},
		"lunch":     {Calories: 650, Carbs: 15, Proteins: 45, Fats: 50},
		"dinner":    {Calories: 550, Carbs: 10, Proteins: 40, Fats: 45},
	},
	"paleo": {
		"breakfast": {Calories: 480, Carbs: 40, Proteins: 30, Fats: 22},
		"lunch":     {Calories: 620, Carbs: 50, Proteins: 40, Fats: 28},
		"dinner":    {Calories: 570, Carbs: 45, Proteins: 38, Fats: 25},
	},
	"vegetarian": {
		"breakfast": {Calories: 420, Carbs: 55, Proteins: 18, Fats: 12},
		"lunch":     {Calories: 580, Carbs: 75, Proteins: 25, Fats: 15},
		"dinner":    {Calories: 530, Carbs: 68, Proteins: 22, Fats: 14},
	},
	"vegan": {
		"breakfast": {Calories: 400, Carbs: 60, Proteins: 15, Fats: 10},
		"lunch":     {Calories: 560, Carbs: 80, Proteins: 20, Fats: 12},
		"dinner":    {Calories: 510, Carbs: 72, Proteins: 18, Fats: 11},
	},
	"mediterranean": {
		"breakfast": {Calories: 460, Carbs: 48, Proteins: 22, Fats: 18},
		"lunch":     {Calories: 610, Carbs: 65, Proteins: 32, Fats: 24},
		"dinner":    {Calories: 560, Carbs: 58, Proteins: 30, Fats: 22},
	},
	"other": {
		"breakfast": {Calories: 450, Carbs: 52, Proteins: 20, Fats: 15},
		"lunch":     {Calories: 600, Carbs: 68, Proteins: 30, Fats: 20},
		"dinner":    {Calories: 550, Carbs: 62, Proteins: 28, Fats: 18},
	},
}

// MacroTargetsFor looks up the macro targets for a diet/meal type
// combination, case-insensitively.
func MacroTargetsFor(dietType, mealType string) (MacroTargets, bool) {
	meals, ok := knowledgeBase[strings.ToLower(dietType)]
	if !ok {
		return MacroTargets{}, false
	}
	targets, ok := meals[strings.ToLower(mealType)]
	return targets, ok
}
