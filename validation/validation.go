package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func init() {
	// Report JSON/form field names instead of Go struct field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// Violations maps a field name to a human-readable problem with it.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records msg for field unless the field already has a violation.
func (v Violations) Add(field, msg string) {
	if _, exists := v[field]; !exists {
		v[field] = msg
	}
}

// Err returns nil when there is nothing to report.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return apperror.Validation("Les données fournies sont invalides", v)
}

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

func MaxLen(field, value string, max int, v Violations) {
	if utf8.RuneCountInString(value) > max {
		v.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

// MaxPrice is the first amount a decimal(10,2) column cannot hold.
var MaxPrice = decimal.New(1, 8)

// Price parses a non-negative amount with at most two decimal places that
// fits a decimal(10,2) column.
func Price(field, raw string, v Violations) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		v.Add(field, "is required")
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		v.Add(field, "must be a number")
		return decimal.Zero
	}
	switch {
	case d.IsNegative():
		v.Add(field, "must be greater than or equal to 0")
	case d.GreaterThanOrEqual(MaxPrice):
		v.Add(field, "must be less than "+MaxPrice.String())
	case !d.Equal(d.Truncate(2)):
		v.Add(field, "must have at most 2 decimal places")
	}
	return d
}

// FromBindError converts a gin binding failure into a validation error that
// lists every failing field.
func FromBindError(err error) error {
	v, ok := BindViolations(err)
	if !ok {
		return apperror.Validation("Corps de requête invalide", nil)
	}
	return v.Err()
}

// BindViolations lists the failing fields of a gin binding error so callers
// can add their own checks before reporting. ok is false when the body
// could not be decoded at all.
func BindViolations(err error) (v Violations, ok bool) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, false
	}
	v = Violations{}
	for _, fe := range fieldErrs {
		v.Add(fieldPath(fe), message(fe))
	}
	return v, true
}

// fieldPath drops the root struct name from the validator namespace,
// e.g. "PlaceOrderRequest.produits[0].quantity" -> "produits[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Slugify turns "Parfum Élégance 50ml" into "parfum-elegance-50ml".
func Slugify(s string) string {
	// Chained transformers keep state, so each call builds its own.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// ParseID reads a positive numeric path identifier.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("Identifiant invalide", map[string]string{"id": "must be a positive integer"})
	}
	return uint(id), nil
}
