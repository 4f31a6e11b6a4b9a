package dto

import "edumate-be/pkg/learner"

type SelectTrackRequest struct {
	Track string `json:"track" validate:"required,max=120"`
}

type ToggleTaskRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type ActiveTabRequest struct {
	Tab string `json:"tab" validate:"required,max=40"`
}

type DailyTasksQuery struct {
	Query      string `query:"q" validate:"max=120"`
	Difficulty string `query:"difficulty" validate:"omitempty,oneof=all easy medium hard"`
}

type GenerateRoadmapRequest struct {
	Goal string `json:"goal" validate:"required,min=3,max=500"`
}

type AdoptRoadmapRequest struct {
	Track string         `json:"track" validate:"required,max=120"`
	Goal  string         `json:"goal" validate:"max=500"`
	Weeks []learner.Week `json:"weeks" validate:"required,min=1,dive"`
}

type CheckInResponse struct {
	Status string   `json:"status"`
	Streak int      `json:"streak"`
	Ledger []string `json:"ledger"`
}

type TrackResponse struct {
	Track string `json:"track"`
}

type ActiveTabResponse struct {
	Tab string `json:"tab"`
}

type MarkReadResponse struct {
	Updated int `json:"updated"`
}
