package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Ledger   LedgerConfig
	Product  ProductConfig
	CORS     CORSConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// StoreConfig selects the backend of the local payment record store
type StoreConfig struct {
	Driver string // memory, redis or postgres
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration.
// An empty URL disables event publishing.
type NATSConfig struct {
	URL string
}

// LedgerConfig contains the payment network API configuration
type LedgerConfig struct {
	BaseURL string
	APIKey  string
	Timeout int // in seconds
}

// ProductConfig describes the premium product sold through the ledger
type ProductConfig struct {
	Price string // exact decimal amount, e.g. "0.001"
	Memo  string
}

// CORSConfig contains allowed origins for browser clients
type CORSConfig struct {
	AllowOrigins []string
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
