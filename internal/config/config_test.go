package config

import "testing"

func validConfig() *Config {
	return &Config{
		InitialLives:        3,
		BasePointsPerBase:   10,
		TimeBonusMultiplier: 2,
		Levels:              parseLevelTable(defaultLevelTable),
		TeacherNames:        splitTrimmed(defaultRoster),
		FuzzyMatchThreshold: 3,
	}
}

func TestParseLevelTable(t *testing.T) {
	levels := parseLevelTable("6:20, 8:25,10:30")
	if len(levels) != 3 {
		t.Fatalf("len = %d, want 3", len(levels))
	}
	if levels[0] != (LevelConfig{Length: 6, Time: 20}) {
		t.Errorf("level 1 = %+v", levels[0])
	}
	if levels[2] != (LevelConfig{Length: 10, Time: 30}) {
		t.Errorf("level 3 = %+v", levels[2])
	}
}

func TestParseLevelTableMalformed(t *testing.T) {
	cases := []string{"6", "6:20,8", "6:twenty", "", ":", "6:20,,8:25"}
	for _, raw := range cases {
		if got := parseLevelTable(raw); got != nil {
			t.Errorf("parseLevelTable(%q) = %v, want nil", raw, got)
		}
	}
}

func TestDefaultLevelTable(t *testing.T) {
	levels := parseLevelTable(defaultLevelTable)
	want := []LevelConfig{{6, 20}, {8, 25}, {10, 30}, {13, 35}, {16, 40}, {20, 45}}
	if len(levels) != len(want) {
		t.Fatalf("len = %d, want %d", len(levels), len(want))
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("level %d = %+v, want %+v", i+1, levels[i], want[i])
		}
	}
}

func TestLevelLookup(t *testing.T) {
	cfg := validConfig()

	if cfg.MaxLevel() != 6 {
		t.Errorf("MaxLevel = %d", cfg.MaxLevel())
	}
	if lvl, ok := cfg.Level(1); !ok || lvl.Length != 6 {
		t.Errorf("Level(1) = %+v, %v", lvl, ok)
	}
	if lvl, ok := cfg.Level(6); !ok || lvl.Time != 45 {
		t.Errorf("Level(6) = %+v, %v", lvl, ok)
	}
	if _, ok := cfg.Level(0); ok {
		t.Error("Level(0) should not exist")
	}
	if _, ok := cfg.Level(7); ok {
		t.Error("Level(7) should not exist")
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty roster", func(c *Config) { c.TeacherNames = nil }},
		{"empty level table", func(c *Config) { c.Levels = nil }},
		{"zero strand length", func(c *Config) { c.Levels[2].Length = 0 }},
		{"shrinking time limit", func(c *Config) { c.Levels[3].Time = 5 }},
		{"zero lives", func(c *Config) { c.InitialLives = 0 }},
		{"zero base points", func(c *Config) { c.BasePointsPerBase = 0 }},
		{"negative bonus", func(c *Config) { c.TimeBonusMultiplier = -1 }},
		{"negative threshold", func(c *Config) { c.FuzzyMatchThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted invalid config")
			}
		})
	}
}

func TestSplitTrimmed(t *testing.T) {
	got := splitTrimmed(" Smith , Johnson ,, Garcia")
	want := []string{"Smith", "Johnson", "Garcia"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitTrimmed("") != nil {
		t.Error("empty input should return nil")
	}
}
