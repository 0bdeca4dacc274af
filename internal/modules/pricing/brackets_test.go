package pricing

import (
	"reflect"
	"strconv"
	"testing"
)

func TestBracketCandidates(t *testing.T) {
	tests := []struct {
		passengers int
		want       []string
	}{
		{0, nil},
		{-3, nil},
		{1, []string{"1"}},
		{5, []string{"5"}},
		{6, []string{"6", "6v"}},
		{7, []string{"7v", "7"}},
		{8, []string{"8-11", "11"}},
		{11, []string{"8-11", "11"}},
		{12, []string{"12-14", "14"}},
		{14, []string{"12-14", "14"}},
		{20, []string{"12-14", "14"}},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.passengers), func(t *testing.T) {
			got := bracketCandidates(tt.passengers)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("bracketCandidates(%d) = %v, want %v", tt.passengers, got, tt.want)
			}
		})
	}
}

func TestBracketCandidates_SmallCountsMatchCountString(t *testing.T) {
	for n := 1; n <= 5; n++ {
		got := bracketCandidates(n)
		if len(got) != 1 || got[0] != strconv.Itoa(n) {
			t.Errorf("bracketCandidates(%d) = %v, want [%d]", n, got, n)
		}
	}
}

func bucketOf(pairs ...any) *VehicleRates {
	rates := NewVehicleRates()
	for i := 0; i < len(pairs); i += 2 {
		rates.Set(pairs[i].(string), FlatRate(pairs[i+1].(float64)))
	}
	return rates
}

func TestResolveRateKey(t *testing.T) {
	tests := []struct {
		name             string
		rates            *VehicleRates
		passengers       int
		preferredKey     string
		preferredVehicle string
		wantKey          string
		wantOK           bool
	}{
		{
			name:       "exact bracket match",
			rates:      bucketOf("1", 80.0, "6", 140.0),
			passengers: 6,
			wantKey:    "6",
			wantOK:     true,
		},
		{
			name:       "seven prefers van bracket first",
			rates:      bucketOf("7v", 160.0, "7", 150.0),
			passengers: 7,
			wantKey:    "7v",
			wantOK:     true,
		},
		{
			name:       "seven falls through when van bracket absent",
			rates:      bucketOf("7", 150.0),
			passengers: 7,
			wantKey:    "7",
			wantOK:     true,
		},
		{
			name:         "preferred key overrides passenger count",
			rates:        bucketOf("1", 80.0, "8-11", 220.0),
			passengers:   2,
			preferredKey: "8-11",
			wantKey:      "8-11",
			wantOK:       true,
		},
		{
			name:         "absent preferred key is ignored",
			rates:        bucketOf("1", 80.0, "2", 90.0),
			passengers:   2,
			preferredKey: "14",
			wantKey:      "2",
			wantOK:       true,
		},
		{
			name:             "van hint promotes the van bracket",
			rates:            bucketOf("6", 140.0, "6v", 165.0),
			passengers:       6,
			preferredVehicle: "van",
			wantKey:          "6v",
			wantOK:           true,
		},
		{
			name:             "van hint without a van bracket falls through",
			rates:            bucketOf("6", 140.0),
			passengers:       6,
			preferredVehicle: "van",
			wantKey:          "6",
			wantOK:           true,
		},
		{
			name:       "no candidate falls back to first authored key",
			rates:      bucketOf("1", 80.0, "6", 140.0),
			passengers: 3,
			wantKey:    "1",
			wantOK:     true,
		},
		{
			name:       "empty bucket resolves nothing",
			rates:      NewVehicleRates(),
			passengers: 4,
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := resolveRateKey(tt.rates, tt.passengers, tt.preferredKey, tt.preferredVehicle)
			if ok != tt.wantOK {
				t.Fatalf("resolveRateKey ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && key != tt.wantKey {
				t.Errorf("resolveRateKey key = %q, want %q", key, tt.wantKey)
			}
		})
	}
}

// The fallback key must be stable across calls for the same authored bucket.
func TestResolveRateKey_FallbackDeterministic(t *testing.T) {
	rates := bucketOf("12-14", 300.0, "1", 80.0, "6", 140.0)
	first, _ := resolveRateKey(rates, 3, "", "")
	for i := 0; i < 50; i++ {
		key, _ := resolveRateKey(rates, 3, "", "")
		if key != first {
			t.Fatalf("fallback key changed between calls: %q then %q", first, key)
		}
	}
	if first != "12-14" {
		t.Errorf("fallback key = %q, want first authored key %q", first, "12-14")
	}
}
