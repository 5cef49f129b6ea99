package domain

import "time"

type Message struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"externalId"`
	Author     string    `json:"author"`
	Username   string    `json:"username"`
	Content    string    `json:"content"`
	Source     Source    `json:"source"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Source string

const (
	SourceWhatsApp Source = "whatsapp"
	SourceFeed     Source = "feed"
	SourceWeb      Source = "web"
)
