// README: Authored rate-matrix store backed by PostgreSQL.
package pricing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// LoadAuthored reads the authored (one-directional) matrix from the rates and
// distance_rules tables. Flat rates come back in their authored position so
// bucket key order matches what the rate author wrote. The result still needs
// BuildBidirectional.
func (s *Store) LoadAuthored(ctx context.Context) (Matrix, error) {
	authored := Matrix{}

	rows, err := s.db.Query(ctx, `
        SELECT direction, origin, destination, rate_key, amount
        FROM rates
        ORDER BY direction, origin, destination, position`)
	if err != nil {
		return nil, fmt.Errorf("querying rates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var direction, origin, destination, rateKey string
		var amount float64
		if err := rows.Scan(&direction, &origin, &destination, &rateKey, &amount); err != nil {
			return nil, fmt.Errorf("scanning rate row: %w", err)
		}
		bucket := ensureBucket(authored, Direction(direction), origin, destination)
		bucket.Set(rateKey, FlatRate(amount))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rates: %w", err)
	}

	ruleRows, err := s.db.Query(ctx, `
        SELECT direction, origin, destination,
               base_fare, base_distance_km, per_km_rate, additional_passenger_fee,
               target_label, target_lat, target_lng
        FROM distance_rules`)
	if err != nil {
		return nil, fmt.Errorf("querying distance rules: %w", err)
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var direction, origin, destination string
		var rule DistanceRule
		var targetLabel sql.NullString
		var targetLat, targetLng sql.NullFloat64
		if err := ruleRows.Scan(
			&direction, &origin, &destination,
			&rule.BaseFare, &rule.BaseDistanceKm, &rule.PerKmRate, &rule.AdditionalPassengerFee,
			&targetLabel, &targetLat, &targetLng,
		); err != nil {
			return nil, fmt.Errorf("scanning distance rule row: %w", err)
		}
		rule.Target.Label = targetLabel.String
		if targetLat.Valid {
			lat := targetLat.Float64
			rule.Target.Lat = &lat
		}
		if targetLng.Valid {
			lng := targetLng.Float64
			rule.Target.Lng = &lng
		}
		bucket := ensureBucket(authored, Direction(direction), origin, destination)
		bucket.Set(DistanceRuleKey, RuleRate(&rule))
	}
	if err := ruleRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating distance rules: %w", err)
	}

	return authored, nil
}

func ensureBucket(m Matrix, direction Direction, origin, destination string) *VehicleRates {
	if bucket, ok := m.Lookup(direction, origin, destination); ok {
		return bucket
	}
	bucket := NewVehicleRates()
	m.set(direction, origin, destination, bucket)
	return bucket
}
