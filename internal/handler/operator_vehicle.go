package handler // operator-facing vehicle and layout management

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bus-ticketing/internal/layout"
	"github.com/iliyamo/bus-ticketing/internal/repository"
)

// vehicleResp is the JSON shape returned for a vehicle.  LayoutReady
// tells the operator whether a stored layout exists that matches the
// declared seat count; "not ready" is a normal state for vehicles whose
// layout is still being configured, not a failure.
type vehicleResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	TotalSeats  uint32 `json:"total_seats"`
	IsActive    bool   `json:"is_active"`
	LayoutReady bool   `json:"layout_ready"`
}

func toVehicleResp(v *repository.Vehicle) vehicleResp {
	return vehicleResp{
		ID:          v.ID,
		Name:        v.Name,
		Class:       v.Class,
		TotalSeats:  v.TotalSeats,
		IsActive:    v.IsActive,
		LayoutReady: vehicleLayoutReady(v),
	}
}

// vehicleLayoutReady reports whether the stored layout exists and its
// seat count matches the declared total.
func vehicleLayoutReady(v *repository.Vehicle) bool {
	stored := decodeStoredLayout(v.LayoutJSON)
	if stored == nil {
		return false
	}
	l := layout.Normalize(stored, 0, layout.VehicleClass(v.Class))
	return l != nil && l.CountSeats() == int(v.TotalSeats)
}

// decodeStoredLayout unmarshals the layout_json column.  A null column or
// corrupt JSON both come back nil; the normalizer treats nil as "nothing
// stored" and falls through to its other branches.
func decodeStoredLayout(col sql.NullString) *layout.StoredLayout {
	if !col.Valid || strings.TrimSpace(col.String) == "" {
		return nil
	}
	var stored layout.StoredLayout
	if err := json.Unmarshal([]byte(col.String), &stored); err != nil {
		return nil
	}
	return &stored
}

// encodeLayout serializes a generated layout into the canonical stored form.
func encodeLayout(l layout.Layout) (sql.NullString, error) {
	stored := layout.StoredLayout{Left: l.Left, Right: l.Right, TotalRows: l.TotalRows}
	raw, err := json.Marshal(stored)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// CreateVehicle handles POST /v1/vehicles.  The seat layout config is
// optional: when present it must be in bounds and its total must equal
// total_seats, in which case the full layout is generated and stored
// alongside the vehicle.  Without a config the vehicle starts with no
// layout and riders see the synthesized fallback.
func (h *OperatorHandler) CreateVehicle(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name       string         `json:"name"`
		Class      string         `json:"class"`
		TotalSeats uint32         `json:"total_seats"`
		Layout     *layout.Config `json:"layout"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	class := layout.VehicleClass(strings.ToLower(strings.TrimSpace(body.Class)))
	if name == "" || body.TotalSeats == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and total_seats are required"})
	}
	if !class.IsValid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle class"})
	}

	var layoutCol sql.NullString
	if body.Layout != nil {
		if !body.Layout.InBounds() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "layout config out of bounds"})
		}
		if body.Layout.Total() != int(body.TotalSeats) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error":        "layout not ready",
				"layout_total": body.Layout.Total(),
				"total_seats":  body.TotalSeats,
			})
		}
		generated := layout.Generate(*body.Layout)
		layoutCol, err = encodeLayout(generated)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode layout failed"})
		}
	}

	if exists, err := h.VehicleRepo.ExistsByNameAndOperator(c.Request().Context(), operatorID, name, nil); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	} else if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle name already exists"})
	}

	v := &repository.Vehicle{
		OperatorID: operatorID,
		Name:       name,
		Class:      class.String(),
		TotalSeats: body.TotalSeats,
		LayoutJSON: layoutCol,
		IsActive:   true,
	}
	if err := h.VehicleRepo.Create(c.Request().Context(), v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create vehicle"})
	}
	return c.JSON(http.StatusCreated, toVehicleResp(v))
}

// UpdateVehicle handles PUT /v1/vehicles/:id.  A new layout config
// regenerates the stored layout under the same total-seats gate.  When
// total_seats changes and the stored layout no longer matches it, the
// stale layout is dropped so the vehicle reverts to "layout not ready"
// rather than serving a map with the wrong seat count.
func (h *OperatorHandler) UpdateVehicle(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.VehicleRepo.GetByIDAndOperator(c.Request().Context(), id, operatorID)
	if err != nil {
		if err == repository.ErrVehicleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Name       *string        `json:"name"`
		Class      *string        `json:"class"`
		TotalSeats *uint32        `json:"total_seats"`
		IsActive   *bool          `json:"is_active"`
		Layout     *layout.Config `json:"layout"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	name := cur.Name
	if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
		name = strings.TrimSpace(*body.Name)
	}
	class := layout.VehicleClass(cur.Class)
	if body.Class != nil {
		class = layout.VehicleClass(strings.ToLower(strings.TrimSpace(*body.Class)))
		if !class.IsValid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle class"})
		}
	}
	totalSeats := cur.TotalSeats
	if body.TotalSeats != nil {
		if *body.TotalSeats == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_seats must be greater than zero"})
		}
		totalSeats = *body.TotalSeats
	}
	isActive := cur.IsActive
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	if name != cur.Name {
		if exists, err := h.VehicleRepo.ExistsByNameAndOperator(c.Request().Context(), operatorID, name, &id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		} else if exists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle name already exists"})
		}
	}

	if err := h.VehicleRepo.UpdateByIDAndOperator(c.Request().Context(), id, operatorID, name, class.String(), totalSeats, isActive); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	// Resolve the layout column: a fresh config wins, otherwise keep the
	// stored layout only while it still matches the (possibly new) total.
	switch {
	case body.Layout != nil:
		if !body.Layout.InBounds() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "layout config out of bounds"})
		}
		if body.Layout.Total() != int(totalSeats) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error":        "layout not ready",
				"layout_total": body.Layout.Total(),
				"total_seats":  totalSeats,
			})
		}
		generated := layout.Generate(*body.Layout)
		col, err := encodeLayout(generated)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode layout failed"})
		}
		if err := h.VehicleRepo.UpdateLayout(c.Request().Context(), id, operatorID, col); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save layout failed"})
		}
	case totalSeats != cur.TotalSeats && cur.LayoutJSON.Valid:
		stored := decodeStoredLayout(cur.LayoutJSON)
		resolved := layout.Normalize(stored, 0, class)
		if resolved == nil || resolved.CountSeats() != int(totalSeats) {
			if err := h.VehicleRepo.UpdateLayout(c.Request().Context(), id, operatorID, sql.NullString{}); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear layout failed"})
			}
		}
	}

	fresh, err := h.VehicleRepo.GetByIDAndOperator(c.Request().Context(), id, operatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toVehicleResp(fresh))
}

// ListVehicles handles GET /v1/vehicles.
func (h *OperatorHandler) ListVehicles(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	vehicles, err := h.VehicleRepo.ListByOperator(c.Request().Context(), operatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]vehicleResp, 0, len(vehicles))
	for i := range vehicles {
		items = append(items, toVehicleResp(&vehicles[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetVehicleLayout handles GET /v1/vehicles/:id/layout and returns the
// resolved layout as riders would see it: whatever is stored, normalized,
// falling back to a synthesized map from the class and seat count.
func (h *OperatorHandler) GetVehicleLayout(c echo.Context) error {
	operatorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.VehicleRepo.GetByIDAndOperator(c.Request().Context(), id, operatorID)
	if err != nil {
		if err == repository.ErrVehicleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	resolved := layout.Normalize(decodeStoredLayout(v.LayoutJSON), int(v.TotalSeats), layout.VehicleClass(v.Class))
	if resolved == nil {
		// no layout configured and no seat count to synthesize from
		return c.JSON(http.StatusOK, echo.Map{"layout": nil, "layout_ready": false})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"layout":       resolved,
		"layout_ready": vehicleLayoutReady(v),
		"total_seats":  v.TotalSeats,
	})
}

// PreviewLayout handles POST /v1/layout/preview: runs the generator on a
// config without persisting anything, so operators can iterate on row and
// berth counts until the totals line up.
func (h *OperatorHandler) PreviewLayout(c echo.Context) error {
	var cfg layout.Config
	if err := c.Bind(&cfg); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !cfg.InBounds() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "layout config out of bounds"})
	}
	generated := layout.Generate(cfg)
	return c.JSON(http.StatusOK, echo.Map{
		"layout":      generated,
		"total_seats": generated.CountSeats(),
	})
}
