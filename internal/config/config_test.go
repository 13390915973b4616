package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLocal() Config {
	return Config{
		App:    AppConfig{Env: "local", Port: 8080},
		DB:     DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "mentor"},
		Redis:  RedisConfig{Host: "localhost", Port: 6379},
		Auth:   AuthConfig{JWTSecret: "secret"},
		Twilio: TwilioConfig{AccountSID: "AC1", AuthToken: "tok", PhoneNumber: "+15550000000"},
		AI:     AIConfig{APIKey: "key"},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	require.Error(t, c.Validate())
}

func TestValidate_LocalDefaults(t *testing.T) {
	c := validLocal()
	require.NoError(t, c.Validate())

	assert.Equal(t, StoreDriverPostgres, c.Store.Driver)
	assert.Equal(t, "disable", c.DB.SSLMode)
	assert.Equal(t, []string{"*"}, c.App.CORSOrigins)
	assert.Equal(t, 1, c.Redis.CallConcurrencyLimit)
	assert.Equal(t, 30*24*time.Hour, c.Auth.AccessTokenTTL)
	assert.Equal(t, defaultAIModel, c.AI.Model)
	assert.Equal(t, defaultAIBaseURL, c.AI.BaseURL)
}

func TestValidate_BaseURLIsOptionalAtBoot(t *testing.T) {
	c := validLocal()
	c.Twilio.BaseURL = ""
	require.NoError(t, c.Validate())
}

func TestValidate_DryRunSkipsTwilioCredentials(t *testing.T) {
	c := validLocal()
	c.Twilio = TwilioConfig{DryRun: true}
	require.NoError(t, c.Validate())
	assert.NotEmpty(t, c.Twilio.PhoneNumber)

	c = validLocal()
	c.App.Env = "production"
	c.Twilio.DryRun = true
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TWILIO_DRY_RUN")
}

func TestValidate_ProductionRequiresSSLModeAndSignatures(t *testing.T) {
	c := validLocal()
	c.App.Env = "production"
	c.Auth.JWTIssuer = "iss"
	c.Auth.JWTAudience = "aud"

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_SSLMODE")
	assert.Contains(t, err.Error(), "TWILIO_VALIDATE_SIGNATURE")
}

func TestValidate_MongoDriverSkipsPostgres(t *testing.T) {
	c := validLocal()
	c.DB = DBConfig{}
	c.Store.Driver = StoreDriverMongo

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
	assert.NotContains(t, err.Error(), "DB_HOST")

	c.Mongo = MongoConfig{URI: "mongodb://localhost:27017", Database: "mentor"}
	require.NoError(t, c.Validate())
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	c := validLocal()
	c.Store.Driver = "sqlite"
	require.Error(t, c.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "5000")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://app.example.com")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_NAME", "mentor")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC1")
	t.Setenv("TWILIO_AUTH_TOKEN", "tok")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15550000000")
	t.Setenv("BASE_URL", "https://mentor.example.com/")
	t.Setenv("AI_API_KEY", "k")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, c.App.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, c.App.CORSOrigins)
	assert.Equal(t, "https://mentor.example.com", c.Twilio.BaseURL)
	assert.Equal(t, "cache:6379", c.RedisAddr())
}

func TestLoad_RejectsMalformedDuration(t *testing.T) {
	t.Setenv("APP_PORT", "5000")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_ACCESS_TTL", "thirty days")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_TTL")
}

func TestOptionalDuration(t *testing.T) {
	d, err := optionalDuration("CALL_SLOT_TTL_UNSET_FOR_TEST")
	require.NoError(t, err)
	assert.Zero(t, d)

	t.Setenv("CALL_SLOT_TTL", "90m")
	d, err = optionalDuration("CALL_SLOT_TTL")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)
}
