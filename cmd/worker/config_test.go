package main

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("NATS_URL", "")
	t.Setenv("RIG_PACKET_SUBJECT", "")
	t.Setenv("SWEEP_SCHEDULE", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}

	if cfg.NATSURL != "nats://127.0.0.1:4222" {
		t.Fatalf("unexpected NATS URL: %s", cfg.NATSURL)
	}
	if cfg.RigPacketSubject != "rig.packets" {
		t.Fatalf("unexpected rig subject: %s", cfg.RigPacketSubject)
	}
	if cfg.SweepSchedule != "0 7 * * *" {
		t.Fatalf("unexpected sweep schedule: %s", cfg.SweepSchedule)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("NATS_URL", "nats://broker:4222")
	t.Setenv("RIG_PACKET_SUBJECT", "rigs.shop-floor")
	t.Setenv("SWEEP_SCHEDULE", "@daily")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}

	if cfg.NATSURL != "nats://broker:4222" || cfg.RigPacketSubject != "rigs.shop-floor" || cfg.SweepSchedule != "@daily" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigInvalidSweepSchedule(t *testing.T) {
	t.Setenv("SWEEP_SCHEDULE", "every tuesday-ish")

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for invalid SWEEP_SCHEDULE")
	}
}
