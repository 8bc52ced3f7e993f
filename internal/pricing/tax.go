package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"rentaldesk-backend/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseTaxConfig reads a tax configuration stored either as a JSON object
// ({"GST 5%": 5}) or as a JSON string holding such an object. Empty input
// and null mean no tax. Rates must be JSON numbers.
func ParseTaxConfig(raw []byte) (domain.TaxConfig, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.TaxConfig{}, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTaxConfig, err)
		}
		inner = strings.TrimSpace(inner)
		if inner == "" || inner[0] != '{' {
			return nil, fmt.Errorf("%w: expected an object", ErrMalformedTaxConfig)
		}
		raw = []byte(inner)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTaxConfig, err)
	}

	cfg := make(domain.TaxConfig, len(values))
	for label, v := range values {
		num, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: rate for %q is not a number", ErrMalformedTaxConfig, label)
		}
		pct, err := decimal.NewFromString(num.String())
		if err != nil {
			return nil, fmt.Errorf("%w: rate for %q: %v", ErrMalformedTaxConfig, label, err)
		}
		cfg[label] = pct
	}

	if err := ValidateTaxConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateTaxConfig rejects empty labels and rates outside 0-100.
func ValidateTaxConfig(cfg domain.TaxConfig) error {
	for label, pct := range cfg {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: empty tax label", ErrMalformedTaxConfig)
		}
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return fmt.Errorf("%w: rate for %q must be between 0 and 100", ErrMalformedTaxConfig, label)
		}
	}
	return nil
}
