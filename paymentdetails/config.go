package paymentdetails

// Config is a configuration for the payment details application
type Config struct {
	HTTPAddr string
	// RepoBackend selects the store: "pg" (default) or "mem".
	RepoBackend string
	// DBDSN is the postgres connection string, required for the pg backend.
	DBDSN          string
	DBMaxOpenConns int
	DBMaxIdleConns int
	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string
	// CORSOrigins lists origins allowed to call the API from a browser.
	CORSOrigins []string
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:       "localhost:7091",
		RepoBackend:    "pg",
		DBMaxOpenConns: 10,
		DBMaxIdleConns: 5,
		CORSOrigins:    []string{"*"},
	}
}

func (c *Config) tlsEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
