package dto

import "time"

type MentorMessageRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type MentorMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type MentorReplyResponse struct {
	Reply       MentorMessage   `json:"reply"`
	Unavailable bool            `json:"unavailable"`
	Messages    []MentorMessage `json:"messages"`
}
