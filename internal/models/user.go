package models

import "time"

// User represents a registered player
type User struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email,omitempty" db:"email"`
	GamesWon    int       `json:"gamesWon" db:"games_won"`
	GamesPlayed int       `json:"gamesPlayed" db:"games_played"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// WinRatio is games won over games played, zero for users without completed games
func (u *User) WinRatio() float64 {
	if u.GamesPlayed == 0 {
		return 0
	}
	return float64(u.GamesWon) / float64(u.GamesPlayed)
}

// Identity is the caller as resolved by the gateway in front of the API.
// It is passed explicitly into every service call.
type Identity struct {
	Email string
}

// RegisterUserRequest for claiming a username
type RegisterUserRequest struct {
	UserName string `json:"user_name" binding:"required,min=3,max=20"`
}

// Ranking is a single row of the win-ratio leaderboard
type Ranking struct {
	Player      string  `json:"player"`
	GamesWon    int     `json:"games_won"`
	GamesPlayed int     `json:"games_played"`
	WinRatio    float64 `json:"win_ratio"`
}

// StringMessage is a plain confirmation or outcome message
type StringMessage struct {
	Message string `json:"message"`
}

// RankingList wraps the leaderboard
type RankingList struct {
	Rankings []Ranking `json:"rankings"`
}
