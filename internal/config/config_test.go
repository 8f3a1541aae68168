package config

import "testing"

func validPineconeConfig() Config {
	return Config{
		HTTP:  HTTPConfig{Port: 8080},
		Index: IndexConfig{Driver: "pinecone"},
		Pinecone: PineconeConfig{
			APIKey:    "test-key",
			IndexHost: "https://docdex-abc123.svc.pinecone.io",
		},
	}
}

func TestValidate_PineconeDriver(t *testing.T) {
	cfg := validPineconeConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_PineconeMissingAPIKey(t *testing.T) {
	cfg := validPineconeConfig()
	cfg.Pinecone.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing pinecone api key")
	}
}

func TestValidate_RedisDriverRequiresAddrs(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 8080},
		Index: IndexConfig{Driver: "redis"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_RedisDriverRequiresEmbeddingKey(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 8080},
		Index: IndexConfig{Driver: "redis"},
		Redis: RedisConfig{Addrs: []string{"localhost:6379"}},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding api key")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validPineconeConfig()
	cfg.Index.Driver = "memcached"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validPineconeConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Index.Driver != "pinecone" {
		t.Errorf("driver = %q", cfg.Index.Driver)
	}
	if cfg.Index.BatchSize != 96 {
		t.Errorf("batch_size = %d", cfg.Index.BatchSize)
	}
	if cfg.Index.DefaultTopK != 5 {
		t.Errorf("default_top_k = %d", cfg.Index.DefaultTopK)
	}
	if cfg.Index.RerankModel != "bge-reranker-v2-m3" {
		t.Errorf("rerank_model = %q", cfg.Index.RerankModel)
	}
	if cfg.Pinecone.ControlURL != "https://api.pinecone.io" {
		t.Errorf("control_url = %q", cfg.Pinecone.ControlURL)
	}
	if cfg.Redis.KeyPrefix != "docdex:" {
		t.Errorf("key_prefix = %q", cfg.Redis.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DOCDEX_TEST_KEY", "secret")

	got := string(expandEnvVars([]byte("api_key: ${DOCDEX_TEST_KEY}")))
	if got != "api_key: secret" {
		t.Errorf("got %q", got)
	}

	got = string(expandEnvVars([]byte("port: ${DOCDEX_TEST_MISSING:-8080}")))
	if got != "port: 8080" {
		t.Errorf("got %q", got)
	}
}
