package domain

// User represents a registered player
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Coins     int64  `json:"coins"`
	CreatedAt int64  `json:"created_at"`
}
