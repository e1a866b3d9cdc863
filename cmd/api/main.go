package main

// @title           mishabitos API
// @version         1.0
// @description     Habit tracking with per-habit statistics: streaks, rates, heatmap and records.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	Execute()
}
