package remote

// Config holds the endpoint and credentials of the remote reporting API.
type Config struct {
	// BaseURL is the API endpoint receiving form-encoded POST requests.
	BaseURL string `mapstructure:"base_url" default:"https://app.scormproxy.com/awakelab/API/"`
	// Token is the API token.
	Token string `mapstructure:"token" default:""`
	// Password is the API password.
	Password string `mapstructure:"password" default:""`
	// ID is the account identifier sent with report requests.
	ID string `mapstructure:"id" default:""`
	// TimeoutSeconds bounds every single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxPages bounds a paginated collection. Zero means "until an empty page".
	MaxPages int `mapstructure:"max_pages" default:"0"`
}
