package entity

// BadgeCounts are the two totals shown by the app shell.
type BadgeCounts struct {
	Messages int `json:"messages"`
	Other    int `json:"other"`
}
