package hn

// Item is a Hacker News item: a story, comment, job, poll, or poll option.
// Field names mirror the upstream Firebase API.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time,omitempty"`
	Text        string `json:"text,omitempty"`
	Dead        bool   `json:"dead,omitempty"`
	Parent      int    `json:"parent,omitempty"`
	Poll        int    `json:"poll,omitempty"`
	Kids        []int  `json:"kids,omitempty"`
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score,omitempty"`
	Title       string `json:"title,omitempty"`
	Parts       []int  `json:"parts,omitempty"`
	Descendants int    `json:"descendants,omitempty"`
}

// User is a Hacker News user profile. The ID is the case-sensitive username.
type User struct {
	ID        string `json:"id"`
	Created   int64  `json:"created,omitempty"`
	Karma     int    `json:"karma,omitempty"`
	About     string `json:"about,omitempty"`
	Submitted []int  `json:"submitted,omitempty"`
}

// Updates lists recently changed items and profiles.
type Updates struct {
	Items    []int    `json:"items"`
	Profiles []string `json:"profiles"`
}
