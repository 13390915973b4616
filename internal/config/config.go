package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration required by the API process.
// All values must come from env (or env-file loaded by the process runner).
// No business logic should depend on raw environment variables.
type Config struct {
	App    AppConfig
	Store  StoreConfig
	DB     DBConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Twilio TwilioConfig
	AI     AIConfig
}

type AppConfig struct {
	Env  string
	Port int

	// CORSOrigins lists allowed browser origins; "*" allows any.
	CORSOrigins []string
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

type StoreConfig struct {
	Driver string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string

	// CallConcurrencyLimit caps simultaneous outbound mentoring calls per user.
	CallConcurrencyLimit int
	// CallSlotTTL bounds how long a slot is held if no status callback arrives.
	CallSlotTTL time.Duration
}

type AuthConfig struct {
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// CookieSecure marks the session cookie Secure (HTTPS only).
	CookieSecure bool
}

type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string

	// BaseURL is the public origin the gateway calls back into.
	// It may be empty at boot; call initiation reports a configuration error then.
	BaseURL string

	ValidateSignature bool

	// DryRun swaps the Twilio gateway for a logging stand-in. Not allowed in production.
	DryRun bool
}

type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

const (
	defaultAIModel   = "gemini-1.5-flash"
	defaultAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}
	c.App.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))

	c.Store.Driver = strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))

	c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
	c.DB.Port = optionalInt("DB_PORT")
	c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
	c.DB.Password = os.Getenv("DB_PASSWORD")
	c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
	c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))

	c.Mongo.URI = strings.TrimSpace(os.Getenv("MONGO_URI"))
	c.Mongo.Database = strings.TrimSpace(os.Getenv("MONGO_DATABASE"))

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	{
		n, err := mustInt("REDIS_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Redis.Port = n
	}
	c.Redis.Password = os.Getenv("REDIS_PASSWORD")
	c.Redis.CallConcurrencyLimit = optionalInt("CALL_CONCURRENCY_LIMIT")
	c.Redis.CallSlotTTL, parseErrs = appendDurationErr(parseErrs, "CALL_SLOT_TTL")

	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Auth.JWTIssuer = strings.TrimSpace(os.Getenv("JWT_ISSUER"))
	c.Auth.JWTAudience = strings.TrimSpace(os.Getenv("JWT_AUDIENCE"))
	// Duration env vars are optional; defaults applied in Validate().
	c.Auth.AccessTokenTTL, parseErrs = appendDurationErr(parseErrs, "JWT_ACCESS_TTL")
	c.Auth.RefreshTokenTTL, parseErrs = appendDurationErr(parseErrs, "JWT_REFRESH_TTL")
	c.Auth.CookieSecure = optionalBool("AUTH_COOKIE_SECURE")

	c.Twilio.AccountSID = strings.TrimSpace(os.Getenv("TWILIO_ACCOUNT_SID"))
	c.Twilio.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	c.Twilio.PhoneNumber = strings.TrimSpace(os.Getenv("TWILIO_PHONE_NUMBER"))
	c.Twilio.BaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("BASE_URL")), "/")
	c.Twilio.ValidateSignature = optionalBool("TWILIO_VALIDATE_SIGNATURE")
	c.Twilio.DryRun = optionalBool("TWILIO_DRY_RUN")

	c.AI.APIKey = os.Getenv("AI_API_KEY")
	c.AI.Model = strings.TrimSpace(os.Getenv("AI_MODEL"))
	c.AI.BaseURL = strings.TrimSpace(os.Getenv("AI_BASE_URL"))

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks required values and fills defaults in place.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}
	if len(c.App.CORSOrigins) == 0 {
		c.App.CORSOrigins = []string{"*"}
	}

	if c.Store.Driver == "" {
		c.Store.Driver = StoreDriverPostgres
	}
	switch c.Store.Driver {
	case StoreDriverPostgres:
		errs = append(errs, c.validatePostgres()...)
	case StoreDriverMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGO_URI is required when STORE_DRIVER=mongo"))
		}
		if c.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGO_DATABASE is required when STORE_DRIVER=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be one of postgres, mongo, got %q", c.Store.Driver))
	}

	if c.Redis.Host == "" {
		errs = append(errs, errors.New("REDIS_HOST is required"))
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
	}
	if c.Redis.CallConcurrencyLimit <= 0 {
		c.Redis.CallConcurrencyLimit = 1
	}
	if c.Redis.CallSlotTTL <= 0 {
		// Longer than any realistic five-turn mentoring call.
		c.Redis.CallSlotTTL = 30 * time.Minute
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() {
		if c.Auth.JWTIssuer == "" {
			errs = append(errs, errors.New("JWT_ISSUER is required in production"))
		}
		if c.Auth.JWTAudience == "" {
			errs = append(errs, errors.New("JWT_AUDIENCE is required in production"))
		}
	}
	if c.Auth.AccessTokenTTL <= 0 {
		c.Auth.AccessTokenTTL = 30 * 24 * time.Hour
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		c.Auth.RefreshTokenTTL = 90 * 24 * time.Hour
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		errs = append(errs, errors.New("JWT_REFRESH_TTL must be greater than JWT_ACCESS_TTL"))
	}

	switch {
	case c.Twilio.DryRun && c.IsProduction():
		errs = append(errs, errors.New("TWILIO_DRY_RUN is not allowed in production"))
	case c.Twilio.DryRun:
		if c.Twilio.PhoneNumber == "" {
			c.Twilio.PhoneNumber = "+15005550006"
		}
	default:
		if c.Twilio.AccountSID == "" {
			errs = append(errs, errors.New("TWILIO_ACCOUNT_SID is required"))
		}
		if c.Twilio.AuthToken == "" {
			errs = append(errs, errors.New("TWILIO_AUTH_TOKEN is required"))
		}
		if c.Twilio.PhoneNumber == "" {
			errs = append(errs, errors.New("TWILIO_PHONE_NUMBER is required"))
		}
	}
	if c.IsProduction() && !c.Twilio.ValidateSignature {
		errs = append(errs, errors.New("TWILIO_VALIDATE_SIGNATURE must be enabled in production"))
	}

	if c.AI.APIKey == "" {
		errs = append(errs, errors.New("AI_API_KEY is required"))
	}
	if c.AI.Model == "" {
		c.AI.Model = defaultAIModel
	}
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = defaultAIBaseURL
	}

	return joinErrors(errs)
}

func (c *Config) validatePostgres() []error {
	var errs []error
	if c.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.DB.SSLMode == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_SSLMODE is required in production"))
		} else {
			c.DB.SSLMode = "disable"
		}
	}
	if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
		errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
	}
	return errs
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// optionalInt returns 0 for unset or malformed values; Validate decides what 0 means.
func optionalInt(key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return 0
	}
	return n
}

func optionalBool(key string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && b
}

// optionalDuration returns 0 when key is unset. A value that does not parse is an error.
func optionalDuration(key string) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 720h, got %q", key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func appendDurationErr(errs []error, key string) (time.Duration, []error) {
	d, err := optionalDuration(key)
	if err != nil {
		errs = append(errs, err)
	}
	return d, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
