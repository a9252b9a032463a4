package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/subediaakash/zomato-mcp/internal/domain/errors"
)

// Tool is a named capability with a JSON schema for its arguments.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any

	apology string
	invoke  func(ctx context.Context, r *Registry, userID string, raw json.RawMessage) (any, error)
}

// Failure is returned to the caller in place of a tool result.
type Failure struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// binder lets an input fill defaults and bind itself to the acting user before validation.
type binder interface {
	bind(actingUserID string) error
}

func newTool[In any](name, description, apology string, parameters map[string]any, handle func(context.Context, *In) (any, error)) Tool {
	return Tool{
		Name:        name,
		Description: description,
		Parameters:  parameters,
		apology:     apology,
		invoke: func(ctx context.Context, r *Registry, userID string, raw json.RawMessage) (any, error) {
			in := new(In)
			if len(raw) > 0 && string(raw) != "null" {
				if err := json.Unmarshal(raw, in); err != nil {
					return nil, domainErrors.Invalid("arguments", "malformed JSON: "+err.Error())
				}
			}
			if b, ok := any(in).(binder); ok {
				if err := b.bind(userID); err != nil {
					return nil, err
				}
			}
			if err := r.validate.Struct(in); err != nil {
				return nil, validationError(err)
			}
			return handle(ctx, in)
		},
	}
}

// Registry looks tools up by name and runs them with schema-checked input.
type Registry struct {
	tools    []Tool
	byName   map[string]int
	validate *validator.Validate
	logger   *slog.Logger
}

// NewRegistry registers the catalog and order tools.
func NewRegistry(catalog Catalog, orders Orders, logger *slog.Logger) *Registry {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	r := &Registry{byName: make(map[string]int), validate: v, logger: logger}
	r.register(availabilityTool(catalog))
	r.register(createOrderTool(orders))
	r.register(listOrdersTool(orders))
	return r
}

func (r *Registry) register(t Tool) {
	r.byName[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
}

// Tools returns registered tools in registration order.
func (r *Registry) Tools() []Tool {
	return append([]Tool(nil), r.tools...)
}

// Dispatch runs the named tool for actingUserID. Domain failures and storage failures are
// returned as a Failure value, so the result is always safe to hand back to the model.
func (r *Registry) Dispatch(ctx context.Context, actingUserID, name string, raw json.RawMessage) any {
	idx, ok := r.byName[name]
	if !ok {
		return Failure{Error: fmt.Sprintf("unknown tool %q", name)}
	}
	tool := r.tools[idx]

	result, err := tool.invoke(ctx, r, actingUserID, raw)
	if err == nil {
		return result
	}

	if isDomainError(err) {
		r.logger.Info("tool rejected request", slog.String("tool", name), slog.String("user_id", actingUserID), slog.String("error", err.Error()))
		return Failure{Error: err.Error()}
	}

	r.logger.Error("tool failed", slog.String("tool", name), slog.String("user_id", actingUserID), slog.String("error", err.Error()))
	return Failure{Error: tool.apology}
}

func isDomainError(err error) bool {
	return errors.Is(err, domainErrors.ErrInvalidInput) ||
		errors.Is(err, domainErrors.ErrNotFound) ||
		errors.Is(err, domainErrors.ErrIllegalTransition) ||
		errors.Is(err, domainErrors.ErrUnauthorized)
}

func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return domainErrors.Invalid("arguments", err.Error())
	}

	fe := errs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "min":
		reason = fmt.Sprintf("must contain at least %s entries", fe.Param())
	case "gt":
		reason = "must be a positive integer"
	case "lte":
		reason = "must not exceed " + fe.Param()
	case "oneof":
		reason = "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		reason = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return domainErrors.Invalid(field, reason)
}
