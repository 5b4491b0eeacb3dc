package http

import (
	"encoding/json"

	"github.com/Shashi960/money-balancer-backend/internal/core"
)

// amount is a money field on the wire. It accepts a JSON number or a
// decimal string, so clients may send 12.5, "12.50" or "12,50".
type amount float64

func (a *amount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		cents, err := core.ParseDecimalToCents(s)
		if err != nil {
			return err
		}
		*a = amount(core.Money{Cents: cents}.Float64())
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = amount(f)
	return nil
}
