package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	MentorSystemPrompt = "You are an AI Mentor helping with learning and career guidance."
	MentorUnavailable  = "⚠️ Sorry, AI Mentor is currently unavailable."

	// Transcripts are trimmed to this many messages, system prompt excluded.
	MentorHistoryLimit = 40

	ResumeReviewerPrompt = "You are a professional resume reviewer."
	ResumeReviewTemplate = `Please review the following resume text and provide:

1. A score out of 100
2. 3 key strengths
3. 3 areas for improvement
4. A rewritten improved summary

Resume content:
%s`

	SampleResumeText = "John Doe\nSoftware Engineer with 3+ years of experience in building scalable web applications. Skills: React, Node.js, MongoDB, AWS, CI/CD..."
)

// Notification copy
const (
	NotifyResumeAnalyzedTitle   = "Resume Analyzed"
	NotifyResumeAnalyzedMessage = "AI feedback is ready."
	NotifyAIErrorTitle          = "AI Error"
	NotifyAIErrorMessage        = "Backend or GPT-3.5 failed to respond."
	NotifyAnalyzeErrorTitle     = "Analyze Error"
	NotifyAnalyzeErrorMessage   = "Resume extraction or analysis failed."
	NotifySampleLoadedTitle     = "Sample Resume Loaded"
	NotifySampleLoadedMessage   = "Using a demo resume for analysis."
)

// User-facing error strings
const (
	MsgRoadmapFailed  = "❌ Failed to generate roadmap. Please try again."
	MsgAnalysisFailed = "❌ AI analysis failed. Try again."
	MsgExtractFailed  = "❌ Failed to extract or analyze resume."
	MsgBackendDown    = "AI backend is currently unavailable"
)
