package models

type DashboardStats struct {
	UsersTotal       int `json:"users_total"`
	BlacklistedUsers int `json:"blacklisted_users"`
	PitchesTotal     int `json:"pitches_total"`
	GamesTotal       int `json:"games_total"`
	ActiveGames      int `json:"active_games"`
	FinishedGames    int `json:"finished_games"`
}
