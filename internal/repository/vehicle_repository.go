package repository // repository defines data access for vehicles

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives and nullable types
	"errors"       // errors for sentinel definitions
)

// Vehicle represents a bus in an operator's fleet. The seat map is stored as
// a JSON document in layout_json: either the canonical side/level structure
// produced by the layout generator or the legacy deck format carried over
// from older releases. LayoutJSON is invalid (NULL) for vehicles that were
// never configured; the layout normalizer synthesizes a fallback for those
// from TotalSeats and Class.
type Vehicle struct {
	ID         uint64         // primary key
	OperatorID uint64         // FK -> users.id
	Name       string         // fleet name or registration, unique per operator
	Class      string         // sleeper | semi-sleeper | seater | ac-seater | volvo
	TotalSeats uint32         // declared capacity the layout must match
	LayoutJSON sql.NullString // serialized layout.StoredLayout (nullable)
	IsActive   bool           // soft availability flag
	CreatedAt  string
	UpdatedAt  string
}

// ErrVehicleNotFound is returned when a vehicle lookup yields no rows.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleRepo provides methods to work with vehicles in the database.
type VehicleRepo struct {
	db *sql.DB
}

// NewVehicleRepo constructs a VehicleRepo with the given DB handle.
func NewVehicleRepo(db *sql.DB) *VehicleRepo {
	return &VehicleRepo{db: db}
}

// Create inserts a vehicle record. On success the vehicle's ID is populated.
func (r *VehicleRepo) Create(ctx context.Context, v *Vehicle) error {
	const q = `INSERT INTO vehicles (operator_id, name, class, total_seats, layout_json)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.OperatorID, v.Name, v.Class, v.TotalSeats, v.LayoutJSON)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID retrieves a vehicle by its id (no ownership check).
func (r *VehicleRepo) GetByID(ctx context.Context, id uint64) (*Vehicle, error) {
	const q = `SELECT id, operator_id, name, class, total_seats, layout_json, is_active, created_at, updated_at
	           FROM vehicles WHERE id = ?`
	var v Vehicle
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&v.ID, &v.OperatorID, &v.Name, &v.Class, &v.TotalSeats, &v.LayoutJSON, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetByIDAndOperator retrieves a vehicle by its id while enforcing ownership.
func (r *VehicleRepo) GetByIDAndOperator(ctx context.Context, id, operatorID uint64) (*Vehicle, error) {
	const q = `SELECT id, operator_id, name, class, total_seats, layout_json, is_active, created_at, updated_at
	           FROM vehicles WHERE id = ? AND operator_id = ?`
	var v Vehicle
	err := r.db.QueryRowContext(ctx, q, id, operatorID).
		Scan(&v.ID, &v.OperatorID, &v.Name, &v.Class, &v.TotalSeats, &v.LayoutJSON, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListByOperator returns all vehicles of an operator ordered by id.
func (r *VehicleRepo) ListByOperator(ctx context.Context, operatorID uint64) ([]Vehicle, error) {
	const q = `SELECT id, operator_id, name, class, total_seats, layout_json, is_active, created_at, updated_at
	           FROM vehicles
	           WHERE operator_id = ?
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(
			&v.ID, &v.OperatorID, &v.Name, &v.Class, &v.TotalSeats,
			&v.LayoutJSON, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateByIDAndOperator updates name, class, total_seats and is_active.
// Returns sql.ErrNoRows when not found or not owned by this operator.
func (r *VehicleRepo) UpdateByIDAndOperator(ctx context.Context, id, operatorID uint64, name, class string, totalSeats uint32, isActive bool) error {
	const q = `UPDATE vehicles
	           SET name = ?, class = ?, total_seats = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND operator_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, class, totalSeats, isActive, id, operatorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateLayout replaces the stored layout JSON for a vehicle owned by the
// operator. Pass an invalid NullString to clear the layout entirely (the
// rider-facing normalizer then falls back to synthesis from total_seats).
func (r *VehicleRepo) UpdateLayout(ctx context.Context, id, operatorID uint64, layoutJSON sql.NullString) error {
	const q = `UPDATE vehicles
	           SET layout_json = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND operator_id = ?`
	res, err := r.db.ExecContext(ctx, q, layoutJSON, id, operatorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ExistsByNameAndOperator reports whether the operator already has a vehicle
// with this name, optionally excluding one id (for updates).
func (r *VehicleRepo) ExistsByNameAndOperator(ctx context.Context, operatorID uint64, name string, excludeID *uint64) (bool, error) {
	q := `SELECT COUNT(*) FROM vehicles WHERE operator_id = ? AND name = ?`
	args := []interface{}{operatorID, name}
	if excludeID != nil {
		q += ` AND id <> ?`
		args = append(args, *excludeID)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByIDAndOperator deletes a vehicle while ensuring it belongs to the
// operator. Returns ErrConflict when trips still reference the vehicle.
func (r *VehicleRepo) DeleteByIDAndOperator(ctx context.Context, id, operatorID uint64) error {
	var trips int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE vehicle_id = ?`, id).Scan(&trips); err != nil {
		return err
	}
	if trips > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM vehicles WHERE id = ? AND operator_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, operatorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
