package nibl

// Package is a file offered by a bot, as returned by the search endpoint.
type Package struct {
	BotID         int64  `json:"botId"`
	Number        int    `json:"number"`
	Name          string `json:"name"`
	Size          string `json:"size"`
	LastModified  string `json:"lastModified"`
	EpisodeNumber int    `json:"episodeNumber"`
}

// Bot is an entry of the bot directory.
type Bot struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// envelope is the wrapper every nibl endpoint responds with.
type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Content []T    `json:"content"`
}

type searchResponse = envelope[Package]

type botsResponse = envelope[Bot]
