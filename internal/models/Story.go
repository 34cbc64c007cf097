package models

type Story struct {
	ObjectID    string  `json:"objectID"`
	Title       string  `json:"title"`
	URL         *string `json:"url"`
	Author      string  `json:"author"`
	Points      int     `json:"points"`
	NumComments int     `json:"num_comments"`
	CreatedAtI  int64   `json:"created_at_i"`
	StoryText   *string `json:"story_text,omitempty"`
}

type StoriesResponse struct {
	Hits    []Story `json:"hits"`
	NbHits  int     `json:"nbHits"`
	Page    int     `json:"page"`
	NbPages int     `json:"nbPages"`
}
