package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
)

// ParseQueryInt reads an optional integer query parameter.
func ParseQueryInt(r *http.Request, key string, defaultVal int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid data.").
			WithDetails(map[string][]string{key: {"A valid integer is required."}})
	}
	return value, nil
}

// ParseQueryDecimal reads an optional decimal query parameter, nil when
// absent.
func ParseQueryDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid data.").
			WithDetails(map[string][]string{key: {"A valid number is required."}})
	}
	return &value, nil
}
