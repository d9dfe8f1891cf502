// recsvc is a development stand-in for the remote recommendation and calorie
// service. It serves the same envelopes the production endpoints return, so
// the client can be exercised end to end without the real backend.
package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type envelope struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

type recommendation struct {
	Day      int     `json:"day"`
	Meal     string  `json:"meal"`
	Dish     string  `json:"dish"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		log.Printf("REQ: %s %s - Body: %s", r.Method, r.URL.Path, string(body))

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		log.Printf("RES: %d - %s %s - %v", wrapper.statusCode, r.Method, r.URL.Path, duration)
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func getRecommendations(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string  `json:"userId"`
		CalorieGoal float64 `json:"calorieGoal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, envelope{Code: "400", Msg: "bad request body"})
		return
	}

	writeJSON(w, envelope{Code: "200", Msg: "ok", Data: []recommendation{
		{Day: 1, Meal: "breakfast", Dish: "oatmeal with banana", Calories: 320, Protein: 10, Carbs: 58, Fat: 6},
		{Day: 1, Meal: "lunch", Dish: "chicken breast with rice", Calories: 560, Protein: 42, Carbs: 62, Fat: 12},
		{Day: 1, Meal: "dinner", Dish: "steamed fish and greens", Calories: 430, Protein: 38, Carbs: 20, Fat: 18},
		{Day: 2, Meal: "breakfast", Dish: "boiled eggs and toast", Calories: 300, Protein: 18, Carbs: 30, Fat: 12},
		{Day: 2, Meal: "lunch", Dish: "beef noodle soup", Calories: 540, Protein: 32, Carbs: 64, Fat: 16},
		{Day: 2, Meal: "dinner", Dish: "tofu stir fry", Calories: 410, Protein: 24, Carbs: 38, Fat: 18},
	}})
}

func calculateCalories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Gender        string  `json:"gender"`
		Age           int     `json:"age"`
		HeightCM      float64 `json:"height"`
		WeightKG      float64 `json:"weight"`
		ActivityLevel int     `json:"activityLevel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, envelope{Code: "400", Msg: "bad request body"})
		return
	}

	multipliers := map[int]float64{1: 1.2, 2: 1.375, 3: 1.55, 4: 1.725, 5: 1.9}
	multiplier, ok := multipliers[req.ActivityLevel]
	if !ok || req.HeightCM <= 0 || req.WeightKG <= 0 {
		writeJSON(w, envelope{Code: "400", Msg: "invalid profile"})
		return
	}

	bmr := 10*req.WeightKG + 6.25*req.HeightCM - 5*float64(req.Age)
	if req.Gender == "female" {
		bmr -= 161
	} else {
		bmr += 5
	}
	tdee := bmr * multiplier

	writeJSON(w, envelope{Code: "200", Msg: "ok", Data: map[string]float64{
		"bmr":  bmr,
		"tdee": tdee,
	}})
}

func main() {
	godotenv.Load()

	r := mux.NewRouter()

	r.HandleFunc("/api/diet/recommendations", getRecommendations).Methods("POST")
	r.HandleFunc("/Calorie/calculate", calculateCalories).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"*"},
	})

	handler := c.Handler(loggingMiddleware(r))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	log.Printf("recsvc listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
