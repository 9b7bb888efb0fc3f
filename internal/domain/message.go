package domain

import "time"

type Message struct {
	ID         string    `json:"id" db:"id"`
	MatchID    string    `json:"match_id" db:"match_id"`
	SenderID   string    `json:"sender_id" db:"sender_id"`
	SenderName string    `json:"sender_name" db:"sender_name"`
	Content    string    `json:"content" db:"content"`
	Timestamp  time.Time `json:"timestamp" db:"created_at"`
}
