package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "https://jwt-example.zdx.cat" {
		t.Errorf("JWTIssuer = %q, want default issuer", cfg.JWTIssuer)
	}
	if cfg.JWTAudience != "https://jwt-example.zdx.cat" {
		t.Errorf("JWTAudience = %q, want default audience", cfg.JWTAudience)
	}
	if cfg.JWTTTL != "1h" {
		t.Errorf("JWTTTL = %q, want %q", cfg.JWTTTL, "1h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("OTLPEndpoint = %q, want empty", cfg.OTLPEndpoint)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_TTL", "30m")
	os.Setenv("JWT_CLOCK_TOLERANCE", "10s")
	os.Setenv("BCRYPT_COST", "10")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if got := cfg.TokenTTL(); got != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", got)
	}
	if got := cfg.ClockTolerance(); got != 10*time.Second {
		t.Errorf("ClockTolerance = %v, want 10s", got)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	os.Clearenv()
	os.Setenv("BCRYPT_COST", "99")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject BCRYPT_COST=99")
	}
}

func TestTokenTTL_Fallbacks(t *testing.T) {
	for _, ttl := range []string{"", "bogus", "-5m"} {
		cfg := &Config{JWTTTL: ttl}
		if got := cfg.TokenTTL(); got != time.Hour {
			t.Errorf("TokenTTL(%q) = %v, want 1h", ttl, got)
		}
	}
}

func TestClockTolerance_Fallbacks(t *testing.T) {
	for _, tol := range []string{"", "bogus", "-1s"} {
		cfg := &Config{JWTClockTolerance: tol}
		if got := cfg.ClockTolerance(); got != 0 {
			t.Errorf("ClockTolerance(%q) = %v, want 0", tol, got)
		}
	}
}
