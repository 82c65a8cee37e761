package config

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Env != EnvLocal {
		t.Fatalf("default env must be local, got %s", cfg.App.Env)
	}
	if cfg.App.Timezone != "Africa/Mogadishu" {
		t.Fatalf("unexpected default timezone: %s", cfg.App.Timezone)
	}
	if cfg.Backend.Provider != BackendProviderSupabase {
		t.Fatalf("default provider must be supabase, got %s", cfg.Backend.Provider)
	}
	if cfg.OpenRouter.Model != "deepseek/deepseek-chat-v3-0324:free" {
		t.Fatalf("unexpected default model: %s", cfg.OpenRouter.Model)
	}
	if !cfg.IsLocal() {
		t.Fatalf("local config must report IsLocal")
	}
}

func TestNewConfigProviderLowercased(t *testing.T) {
	t.Setenv("BACKEND_PROVIDER", "Firebase")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.Provider != BackendProviderFirebase {
		t.Fatalf("provider must be lowercased, got %s", cfg.Backend.Provider)
	}
}

func TestNewConfigUnknownProvider(t *testing.T) {
	t.Setenv("BACKEND_PROVIDER", "cognito")

	if _, err := NewConfig(); err == nil {
		t.Fatalf("unknown provider must be rejected")
	}
}

func TestNewConfigCacheRequiresRabbitMq(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("RABBITMQ_ENABLED", "false")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Fatalf("cache must be disabled without rabbitmq")
	}
}

func TestNewConfigEnvironments(t *testing.T) {
	t.Setenv("APP_ENV", "PRODUCTION")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Env != EnvProduction {
		t.Fatalf("env must be lowercased, got %s", cfg.App.Env)
	}
	if !cfg.IsNotLocal() {
		t.Fatalf("production config must report IsNotLocal")
	}
}
