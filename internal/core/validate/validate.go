// Package validate is the single copy of the client-side field constraints
// shared by every dialog flow. The messages are user-facing contracts and
// must not drift: a failed validation is rendered inline and never reaches
// the network.
package validate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var skuRe = regexp.MustCompile(`^PRD-\d{3,}$`)

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// sku checks the catalog SKU format. Registered here so the tag can be
	// reused if more SKU-bearing forms appear.
	_ = v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		return skuRe.MatchString(fl.Field().String())
	})
	return v
}

// FieldErrors maps a form field name to its inline message.
type FieldErrors map[string]string

// Error joins all field messages; FieldErrors doubles as an error value so
// flows can return it directly.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(fe))
	for _, k := range keys {
		msgs = append(msgs, fe[k])
	}
	return strings.Join(msgs, "; ")
}

// Ok reports whether the form passed validation.
func (fe FieldErrors) Ok() bool {
	return len(fe) == 0
}

// ParsePrice parses a dialog's price text. The boolean is false for empty or
// non-numeric input.
func ParsePrice(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseQuantity parses a dialog's quantity text as an integer.
func ParseQuantity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
