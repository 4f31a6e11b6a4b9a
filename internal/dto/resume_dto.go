package dto

type ResumeAnalysisResponse struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Feedback string `json:"feedback"`
}
