package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// AllowRepair enables the destructive repair endpoint.
	AllowRepair bool `mapstructure:"allow_repair" default:"false"`
}

// IsSecured reports whether an API key protects the routes.
func (c Config) IsSecured() bool {
	return c.ApiKey != ""
}

// RepairEnabled reports whether the repair endpoint may be served. Repairs
// over HTTP are refused when no API key protects the server.
func (c Config) RepairEnabled() bool {
	return c.AllowRepair && c.IsSecured()
}
