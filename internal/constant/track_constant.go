package constant

type Track struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var Tracks = []Track{
	{ID: "fullstack", Title: "Full Stack Development", Description: "Master both frontend and backend development"},
	{ID: "frontend", Title: "Frontend Development", Description: "Specialize in user interfaces and experiences"},
	{ID: "backend", Title: "Backend Development", Description: "Focus on server-side logic and databases"},
	{ID: "mobile", Title: "Mobile Development", Description: "Build iOS and Android applications"},
	{ID: "web3", Title: "Web3 & Blockchain", Description: "Learn decentralized technologies"},
	{ID: "ai", Title: "AI & Machine Learning", Description: "Dive into artificial intelligence"},
}

// TrackTitle resolves a catalog id to its title. Free text is returned as is.
func TrackTitle(idOrTitle string) string {
	for _, t := range Tracks {
		if t.ID == idOrTitle {
			return t.Title
		}
	}
	return idOrTitle
}
