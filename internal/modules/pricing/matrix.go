// README: Ordered vehicle-rate buckets and bidirectional matrix derivation.
package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// VehicleRates is an ordered mapping of rate key to rate entry. Authored key
// order is preserved so the documented first-key fallback stays deterministic.
type VehicleRates struct {
	keys    []string
	entries map[string]RateEntry
}

func NewVehicleRates() *VehicleRates {
	return &VehicleRates{entries: map[string]RateEntry{}}
}

// Set inserts or replaces an entry. New keys keep authored order.
func (r *VehicleRates) Set(key string, entry RateEntry) {
	if _, ok := r.entries[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = entry
}

func (r *VehicleRates) Get(key string) (RateEntry, bool) {
	if r == nil {
		return RateEntry{}, false
	}
	e, ok := r.entries[key]
	return e, ok
}

// Keys returns the rate keys in authored order.
func (r *VehicleRates) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *VehicleRates) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Clone deep-copies the bucket, including any distance rule, so derived
// matrix entries never alias authored ones.
func (r *VehicleRates) Clone() *VehicleRates {
	if r == nil {
		return nil
	}
	cp := NewVehicleRates()
	for _, key := range r.keys {
		entry := r.entries[key]
		if entry.IsRule() {
			entry = RuleRate(entry.Rule.clone())
		}
		cp.Set(key, entry)
	}
	return cp
}

// UnmarshalJSON decodes an authored bucket object, keeping the key order in
// which it was written.
func (r *VehicleRates) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("vehicle rates must be a JSON object, got %v", tok)
	}
	*r = *NewVehicleRates()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", keyTok)
		}
		var entry RateEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("rate key %q: %w", key, err)
		}
		r.Set(key, entry)
	}
	return nil
}

// Matrix maps direction -> origin label -> destination label -> rate bucket.
// It is built once at startup and read-only afterwards.
type Matrix map[Direction]map[string]map[string]*VehicleRates

// Lookup returns the bucket for a route, nil-safe at every level.
func (m Matrix) Lookup(direction Direction, origin, destination string) (*VehicleRates, bool) {
	origins, ok := m[direction]
	if !ok {
		return nil, false
	}
	destinations, ok := origins[origin]
	if !ok {
		return nil, false
	}
	rates, ok := destinations[destination]
	if !ok || rates == nil {
		return nil, false
	}
	return rates, true
}

func (m Matrix) set(direction Direction, origin, destination string, rates *VehicleRates) {
	origins, ok := m[direction]
	if !ok {
		origins = map[string]map[string]*VehicleRates{}
		m[direction] = origins
	}
	destinations, ok := origins[origin]
	if !ok {
		destinations = map[string]*VehicleRates{}
		origins[origin] = destinations
	}
	destinations[destination] = rates
}

// BuildBidirectional derives the full runtime matrix from the authored,
// one-directional source. Every authored direction is deep-copied through
// under its own name, then for each toAirport[origin][destination] bucket a
// fromAirport[destination][origin] copy is synthesized. The input is never
// mutated and shares no state with the output, so calling this twice yields
// structurally equal but independently owned matrices.
func BuildBidirectional(authored Matrix) Matrix {
	out := Matrix{}
	for direction, origins := range authored {
		for origin, destinations := range origins {
			for destination, rates := range destinations {
				out.set(direction, origin, destination, rates.Clone())
			}
		}
	}
	for origin, destinations := range authored[DirectionToAirport] {
		for destination, rates := range destinations {
			out.set(DirectionFromAirport, destination, origin, rates.Clone())
		}
	}
	return out
}
