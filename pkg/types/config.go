package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	DatabaseSchema  string `envconfig:"DATABASE_SCHEMA" default:"awards"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Used to build links in outbound email, e.g. https://awards.example.com
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`

	// Cognito Auth
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`
	CognitoAdminGroup string `envconfig:"COGNITO_ADMIN_GROUP" default:"admin"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Image storage
	StorageBackend        string `envconfig:"STORAGE_BACKEND" default:"supabase"`
	SupabaseProjectID     string `envconfig:"SUPABASE_PROJECT_ID"`
	SupabaseAPIKey        string `envconfig:"SUPABASE_API_KEY"`
	SupabaseStorageBucket string `envconfig:"SUPABASE_STORAGE_BUCKET" default:"entrepreneur-images"`
	S3BucketName          string `envconfig:"S3_BUCKET_NAME"`
	S3PublicBaseURL       string `envconfig:"S3_PUBLIC_BASE_URL"`
	MaxUploadBytes        int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`

	// Admin notifications
	NotifyBackend     string `envconfig:"NOTIFY_BACKEND" default:"none"`
	AdminEmail        string `envconfig:"ADMIN_EMAIL"`
	NotifyFromEmail   string `envconfig:"NOTIFY_FROM_EMAIL" default:"Entrepreneur Awards <awards@example.com>"`
	NotifyFunctionURL string `envconfig:"NOTIFY_FUNCTION_URL"`
	NotifyFunctionKey string `envconfig:"NOTIFY_FUNCTION_KEY"`

	// Review workflow
	AllowResetFromApproved bool `envconfig:"ALLOW_RESET_FROM_APPROVED" default:"false"`

	DirectoryPageSize int `envconfig:"DIRECTORY_PAGE_SIZE" default:"10"`

	// Public nomination form throttling, per client address
	NominationRatePerMin float64 `envconfig:"NOMINATION_RATE_PER_MIN" default:"6"`
	NominationBurst      int     `envconfig:"NOMINATION_BURST" default:"3"`

	// Number of reverse proxies that append to X-Forwarded-For. Zero keys
	// the limiter on the connection address.
	TrustedProxyHops int `envconfig:"TRUSTED_PROXY_HOPS" default:"0"`
}
