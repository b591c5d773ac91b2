package profile

import "unicode/utf16"

// MaxURLLength is the longest social profile URL the backend accepts.
const MaxURLLength = 200

// User is the editable part of an EvalAI account. Empty strings mean the
// field is unset.
type User struct {
	Username         string `json:"username" toml:"username"`
	FirstName        string `json:"first_name" toml:"first_name"`
	LastName         string `json:"last_name" toml:"last_name"`
	Affiliation      string `json:"affiliation" toml:"affiliation"`
	GithubURL        string `json:"github_url" toml:"github_url"`
	GoogleScholarURL string `json:"google_scholar_url" toml:"google_scholar_url"`
	LinkedinURL      string `json:"linkedin_url" toml:"linkedin_url"`
}

// IsURLValid reports whether url fits within MaxURLLength characters,
// counted as UTF-16 code units the way the web form counts them. An unset
// url is valid.
func IsURLValid(url string) bool {
	if url == "" {
		return true
	}
	return len(utf16.Encode([]rune(url))) <= MaxURLLength
}

type urlField struct {
	key   string
	label string
	value func(u User) string
}

// urlFields is the order URL fields are checked in.
var urlFields = []urlField{
	{key: "github_url", label: "Github", value: func(u User) string { return u.GithubURL }},
	{key: "google_scholar_url", label: "Google Scholar", value: func(u User) string { return u.GoogleScholarURL }},
	{key: "linkedin_url", label: "LinkedIn", value: func(u User) string { return u.LinkedinURL }},
}

// fieldPriority decides which server-side field error becomes FormError.
var fieldPriority = []string{"username", "first_name", "last_name", "affiliation"}
