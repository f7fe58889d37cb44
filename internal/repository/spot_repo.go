package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"parkvue/internal/db"
)

type SpotRepository interface {
	ListSpots(ctx context.Context, onlyAvailable bool, spotType string) ([]db.ParkingSpot, error)
}

type spotRepository struct {
	DB *sql.DB
}

func NewSpotRepository(database *sql.DB) SpotRepository {
	return &spotRepository{DB: database}
}

func (r *spotRepository) ListSpots(ctx context.Context, onlyAvailable bool, spotType string) ([]db.ParkingSpot, error) {
	query := `
	SELECT id, spot_number, spot_type, is_occupied, floor_level, section, created_at, updated_at
	FROM parking_spots
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if onlyAvailable {
		query += " AND NOT is_occupied"
	}
	if spotType != "" {
		query += " AND spot_type = $" + strconv.Itoa(idx)
		args = append(args, spotType)
		idx++
	}
	query += " ORDER BY spot_number"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing parking spots: %w", err)
	}
	defer rows.Close()

	var spots []db.ParkingSpot
	for rows.Next() {
		var s db.ParkingSpot
		err := rows.Scan(&s.ID, &s.SpotNumber, &s.SpotType, &s.IsOccupied,
			&s.FloorLevel, &s.Section, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning parking spot: %w", err)
		}
		spots = append(spots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating spot rows: %w", err)
	}
	return spots, nil
}
