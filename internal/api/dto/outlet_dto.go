package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/spec-kit/pos-backoffice/internal/domain"
)

// FlexibleID accepts an integer id sent either as a JSON number or a numeric
// string. null and "" decode to zero.
type FlexibleID int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*f = 0
			return nil
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return errors.New("id must be an integer")
	}
	*f = FlexibleID(id)
	return nil
}

// SelectOutletRequest payload for POST /api/outlets/select.
type SelectOutletRequest struct {
	OutletID FlexibleID `json:"outletId"`
}

// OutletResponse is an outlet as seen by a member.
type OutletResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Address   string `json:"address,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

// NewOutletResponse maps a membership row.
func NewOutletResponse(m domain.UserOutlet) OutletResponse {
	return OutletResponse{
		ID:        m.OutletID,
		Name:      m.Outlet.Name,
		Code:      m.Outlet.Code,
		Address:   m.Outlet.Address,
		IsDefault: m.IsDefault,
	}
}

// NewOutletResponses maps a list of memberships.
func NewOutletResponses(memberships []domain.UserOutlet) []OutletResponse {
	out := make([]OutletResponse, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, NewOutletResponse(m))
	}
	return out
}
