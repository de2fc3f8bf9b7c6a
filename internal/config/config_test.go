package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Mongo: MongoConfig{URI: "mongodb://localhost:27017"},
		JWT:   JWTConfig{Secret: "test-secret", Expiration: time.Hour},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Valid config should pass validation, got: %v", err)
	}
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail without JWT_SECRET")
	}
}

func TestValidateRequiresMongoURI(t *testing.T) {
	cfg := validConfig()
	cfg.Mongo.URI = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail without MONGODB_URI")
	}
}

func TestValidateRequiresPositiveExpiration(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Expiration = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail with non-positive JWT_EXPIRATION")
	}
}
