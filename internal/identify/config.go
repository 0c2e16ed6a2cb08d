package identify

// Config holds the request-level settings of the HTTP handler.
type Config struct {
	// MaxBodyBytes caps the inbound request body.
	MaxBodyBytes int64
	// MissingCredentials, when non-empty, makes every identification
	// request fail with a configuration fault.
	MissingCredentials []string
}
