package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.SlotHorizonDays != 14 {
		t.Fatalf("horizon = %d, want 14", cfg.SlotHorizonDays)
	}
	if cfg.StoreBackend != "mongo" {
		t.Fatalf("store backend = %q, want mongo", cfg.StoreBackend)
	}
	if cfg.ReminderLeadMinutes != 1440 {
		t.Fatalf("reminder lead = %d, want 1440", cfg.ReminderLeadMinutes)
	}
}

func TestEnvOverridesDefault(t *testing.T) {
	t.Setenv("SLOT_HORIZON_DAYS", "21")
	t.Setenv("STORE_BACKEND", "firestore")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.SlotHorizonDays != 21 {
		t.Fatalf("horizon = %d, want 21", cfg.SlotHorizonDays)
	}

	AppConfig = cfg
	if !UseFirestore() {
		t.Fatal("expected firestore backend")
	}
}

func TestFirebaseEnabled(t *testing.T) {
	saved := AppConfig
	defer func() { AppConfig = saved }()

	AppConfig = Config{AuthProvider: "jwt", StoreBackend: "mongo"}
	if FirebaseEnabled() {
		t.Fatal("jwt + mongo without notifications should not need firebase")
	}
	AppConfig.StoreBackend = "Firestore"
	if !FirebaseEnabled() {
		t.Fatal("firestore backend needs firebase")
	}
}
