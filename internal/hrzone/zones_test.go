package hrzone

import (
	"math"
	"testing"
)

func TestZoneFor(t *testing.T) {
	cfg := DefaultConfig() // max HR 185, bands at 50/60/70/80/90/100%

	tests := []struct {
		name string
		hr   float64
		want int
	}{
		{"zero bpm maps to zone 1", 0, 1},
		{"below lowest band maps to zone 1", 80, 1}, // 43% of max
		{"bottom of zone 1", 92.5, 1},               // exactly 50%
		{"middle of zone 2", 120, 2},                // ~65%
		{"zone 3", 139, 3},                          // ~75%
		{"zone boundary belongs to upper zone", 148, 4}, // exactly 80%
		{"zone 5", 176, 5},                          // ~95%
		{"at max HR", 185, 5},
		{"above max HR still zone 5", 210, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ZoneFor(tt.hr, cfg); got != tt.want {
				t.Errorf("ZoneFor(%v) = %d, want %d", tt.hr, got, tt.want)
			}
		})
	}
}

func TestZoneForTotalAndMonotonic(t *testing.T) {
	cfg := DefaultConfig()

	prev := 0
	for bpm := 0; bpm <= 250; bpm++ {
		zone := ZoneFor(float64(bpm), cfg)
		if zone < 1 || zone > 5 {
			t.Fatalf("ZoneFor(%d) = %d, outside 1..5", bpm, zone)
		}
		if zone < prev {
			t.Fatalf("ZoneFor(%d) = %d, lower than zone %d at %d bpm", bpm, zone, prev, bpm-1)
		}
		prev = zone
	}
}

func TestTRIMP(t *testing.T) {
	tests := []struct {
		name      string
		avgHR     float64
		duration  float64
		restingHR float64
		maxHR     float64
		want      float64
		delta     float64
	}{
		{
			name:  "banister reference values",
			avgHR: 155, duration: 45, restingHR: 60, maxHR: 190,
			// ratio = 95/130 = 0.7308; 45 * 0.7308 * e^(1.92*0.7308)
			want: 133.8, delta: 0.1,
		},
		{
			name:  "avg HR at resting floors to zero",
			avgHR: 60, duration: 45, restingHR: 60, maxHR: 190,
			want: 0, delta: 0,
		},
		{
			name:  "avg HR below resting floors to zero",
			avgHR: 45, duration: 45, restingHR: 60, maxHR: 190,
			want: 0, delta: 0,
		},
		{
			name:  "zero HR reserve",
			avgHR: 150, duration: 45, restingHR: 100, maxHR: 100,
			want: 0, delta: 0,
		},
		{
			name:  "zero duration",
			avgHR: 150, duration: 0, restingHR: 60, maxHR: 190,
			want: 0, delta: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TRIMP(tt.avgHR, tt.duration, tt.restingHR, tt.maxHR)
			if math.Abs(got-tt.want) > tt.delta {
				t.Errorf("TRIMP() = %v, want %v (±%v)", got, tt.want, tt.delta)
			}
		})
	}
}

func TestTRIMPDeterministic(t *testing.T) {
	first := TRIMP(155, 45, 60, 190)
	second := TRIMP(155, 45, 60, 190)
	if first != second {
		t.Errorf("TRIMP not deterministic: %v != %v", first, second)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default config is valid", func(c *Config) {}, false},
		{"zero max HR", func(c *Config) { c.MaxHR = 0 }, true},
		{"resting above max", func(c *Config) { c.RestingHR = 200 }, true},
		{"gap between zones", func(c *Config) { c.Bands[2].MinPercent = 72 }, true},
		{"overlapping zones", func(c *Config) { c.Bands[2].MinPercent = 68 }, true},
		{"empty band", func(c *Config) { c.Bands[4].MaxPercent = 90 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeSport(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"Running", "run"},
		{"trail_running", "run"},
		{"cycling", "bike"},
		{"virtual_ride", "bike"},
		{"lap_swimming", "swim"},
		{"Walking", "walk"},
		{"hiking", "hike"},
		{"SkiTouring", "skitouring"}, // unknown token passes through
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := NormalizeSport(tt.token); got != tt.want {
				t.Errorf("NormalizeSport(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestSportClassification(t *testing.T) {
	if !IsPaceSport("run") || !IsPaceSport("Trail Run") {
		t.Error("run variants should be pace sports")
	}
	if IsPaceSport("bike") {
		t.Error("bike should not be a pace sport")
	}
	if !IsSpeedSport("Gravel Bike") {
		t.Error("bike variants should be speed sports")
	}
	if IsSpeedSport("swim") {
		t.Error("swim should not be a speed sport")
	}
}
