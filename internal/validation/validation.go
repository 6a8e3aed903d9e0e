// Package validation registers the request rules used in `binding` tags and
// turns validator failures into user facing messages.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"yen-network/internal/domain"
)

// Number is a JSON value that is expected to be a number. It remembers
// whether the field was present at all and whether it decoded as a number,
// so "missing" and "not a number" can be reported separately.
type Number struct {
	Value   float64
	Present bool
	Numeric bool
}

// UnmarshalJSON accepts any JSON value. null counts as absent.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	n.Present = true
	var f float64
	if err := json.Unmarshal(data, &f); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		n.Value = f
		n.Numeric = true
	}
	return nil
}

// MarshalJSON writes the value, or null when absent.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Present {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// NumberOf wraps a float as a present numeric value.
func NumberOf(v float64) Number {
	return Number{Value: v, Present: true, Numeric: true}
}

// numberValue exposes a Number to the validator: nil when absent so the
// first rule fails, a non-numeric string so `numeric` fails, else the float.
// Number fields use `present` rather than `required`, which rejects 0.
func numberValue(field reflect.Value) interface{} {
	n, ok := field.Interface().(Number)
	if !ok || !n.Present {
		return nil
	}
	if !n.Numeric {
		return "NaN"
	}
	return n.Value
}

var registerOnce sync.Once

// Init registers the custom rules on gin's validator. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("validation: gin validator engine is not go-playground/validator")
		}
		Register(v)
	})
}

// Register adds the custom rules and types to v.
func Register(v *validator.Validate) {
	v.RegisterCustomTypeFunc(numberValue, Number{})
	mustRegister(v, "present", func(validator.FieldLevel) bool { return true })
	mustRegister(v, "notblank", notBlank)
	mustRegister(v, "trimmin", trimmedLength(func(n, limit int) bool { return n >= limit }))
	mustRegister(v, "trimmax", trimmedLength(func(n, limit int) bool { return n <= limit }))
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return domain.IsCategory(fl.Field().String())
	})
	mustRegister(v, "selfrole", func(fl validator.FieldLevel) bool {
		role := domain.Role(fl.Field().String())
		for _, allowed := range domain.SelfAssignableRoles {
			if role == allowed {
				return true
			}
		}
		return false
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func trimmedLength(ok func(n, limit int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return ok(utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())), limit)
	}
}

// messages maps "<StructField>.<tag>" to the message shown to users.
// Slice elements use "<StructField>[]".
var messages = map[string]string{
	"Name.notblank": "Name is required",
	"Name.trimmin":  "Name must be at least 2 characters",
	"Name.trimmax":  "Name must be at most 50 characters",

	"Email.required": "Email is required",
	"Email.notblank": "Email is required",
	"Email.email":    "Please provide a valid email address",

	"Password.required": "Password is required",
	"Password.min":      "Password must be at least 6 characters",
	"Password.max":      "Password is too long",

	"Role.required": "Role is required",
	"Role.selfrole": "Role must be entrepreneur, investor, or mentor",

	"Title.notblank": "Title is required",
	"Title.trimmin":  "Title must be at least 5 characters",
	"Title.trimmax":  "Title must be at most 100 characters",

	"Description.notblank": "Description is required",
	"Description.trimmin":  "Description must be at least 50 characters",

	"Category.required": "Category is required",
	"Category.category": "Please select a valid category",

	"FundingGoal.present": "Funding goal is required",
	"FundingGoal.numeric": "Funding goal must be a number",
	"FundingGoal.gte":     "Funding goal must be at least $100",

	"Amount.present": "Amount is required",
	"Amount.numeric": "Amount must be a number",
	"Amount.gt":      "Amount must be greater than 0",

	"ToUserID.notblank": "Target user ID is required",
	"Type.required":     "Connection type is required",
	"Type.oneof":        "Type must be mentor, investor, or partner",
	"Message.max":       "Message must be at most 500 characters",

	"Bio.max":         "Bio must be at most 500 characters",
	"Location.max":    "Location must be at most 100 characters",
	"Expertise.max":   "At most 20 expertise tags are allowed",
	"Expertise[].max": "Expertise tags must be at most 50 characters",
}

// Messages translates a validator error into messages in field order,
// without duplicates. It returns nil for any other error.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	seen := make(map[string]struct{}, len(verrs))
	for _, fe := range verrs {
		msg := message(fe)
		if _, dup := seen[msg]; dup {
			continue
		}
		seen[msg] = struct{}{}
		out = append(out, msg)
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.StructField()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i] + "[]"
	}
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Field() + " is invalid"
}
