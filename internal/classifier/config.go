package classifier

import "time"

// Config holds the classifier endpoint settings.
type Config struct {
	BaseURL         string
	APIKey          string
	Model           string
	MaxOutputTokens int
	ImageDetail     string
	Timeout         time.Duration
}

const responsesPath = "/responses"
