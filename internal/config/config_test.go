package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("PORT", "")
	t.Setenv("AGENT_NAME", "")

	cfg := Load()

	if cfg.Environment != "dev" {
		t.Errorf("environment: got %q", cfg.Environment)
	}
	if cfg.Port != "8080" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.TablePrefix != "dev_" {
		t.Errorf("table prefix: got %q", cfg.TablePrefix)
	}
	if cfg.AgentName != "Jurandir" {
		t.Errorf("agent name: got %q", cfg.AgentName)
	}
	if !cfg.Debug {
		t.Error("debug should default on outside production")
	}
}

func TestLoadProdDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("DEBUG", "")

	cfg := Load()

	if cfg.TablePrefix != "prod_" {
		t.Errorf("table prefix: got %q", cfg.TablePrefix)
	}
	if cfg.Debug {
		t.Error("debug should default off in production")
	}
}

func TestTablePrefixOverride(t *testing.T) {
	t.Setenv("ENVIRONMENT", "dev")
	t.Setenv("TABLE_PREFIX", "custom_")

	cfg := Load()
	if cfg.TablePrefix != "custom_" {
		t.Errorf("table prefix override: got %q", cfg.TablePrefix)
	}
}

func TestValidateRequiresCoreSettings(t *testing.T) {
	t.Setenv("ENVIRONMENT", "dev")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "")
	t.Setenv("WHATSAPP_VERIFY_TOKEN", "")

	if err := Load().Validate(); err == nil {
		t.Error("expected validation failure with empty settings")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/finance")
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "111")
	t.Setenv("WHATSAPP_VERIFY_TOKEN", "verify")

	if err := Load().Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
