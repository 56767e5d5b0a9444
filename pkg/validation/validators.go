package validation

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

// Regular expressions for validating Lapse identifier formats
var (
	// fileUUIDRegex matches blob names generated by the iOS app:
	// "01HDBZ" followed by 20 upper-case hex characters.
	fileUUIDRegex = regexp.MustCompile(`^01HDBZ[0-9A-F]{20}$`)

	// statusUpdateIDRegex matches status update ids ("STATUS_UPDATE:<uuid>").
	statusUpdateIDRegex = regexp.MustCompile(`^STATUS_UPDATE:[0-9a-fA-F-]{36}$`)

	// usernameRegex matches Lapse usernames (lower-case letters, digits, dot and underscore).
	usernameRegex = regexp.MustCompile(`^[a-z0-9._]{1,30}$`)
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// engine returns the shared validator with the Lapse specific tags registered.
func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		for tag, fn := range map[string]func(string) bool{
			"lapse_file_uuid":        IsValidFileUUID,
			"lapse_status_update_id": IsValidStatusUpdateID,
			"lapse_username":         IsValidUsername,
		} {
			check := fn
			if err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return check(fl.Field().String())
			}); err != nil {
				panic(fmt.Sprintf("validation: register %s: %v", tag, err))
			}
		}
	})
	return validate
}

// IsValidFileUUID checks if a string is a blob name in the format the app generates
func IsValidFileUUID(s string) bool {
	return fileUUIDRegex.MatchString(s)
}

// IsValidStatusUpdateID checks if a string is a status update id
func IsValidStatusUpdateID(s string) bool {
	return statusUpdateIDRegex.MatchString(s)
}

// IsValidUsername checks if a string could be a Lapse username
func IsValidUsername(s string) bool {
	return usernameRegex.MatchString(s)
}

// Struct validates a request struct against its `validate` tags and returns
// the first failure as an *errors.ValidationError.
func Struct(v any) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if stderrors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return &errors.ValidationError{
			Field:   fe.Namespace(),
			Value:   fe.Value(),
			Message: describe(fe),
		}
	}
	return &errors.ValidationError{Message: err.Error()}
}

// Var validates a single value against tag and reports failures under field.
func Var(value any, field, tag string) error {
	err := engine().Var(value, tag)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if stderrors.As(err, &ve) && len(ve) > 0 {
		return &errors.ValidationError{Field: field, Value: value, Message: describe(ve[0])}
	}
	return &errors.ValidationError{Field: field, Message: err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "lapse_file_uuid":
		return "must be 01HDBZ followed by 20 upper-case hex characters"
	case "lapse_status_update_id":
		return "must be STATUS_UPDATE:<uuid>"
	case "lapse_username":
		return "must be 1-30 lower-case letters, digits, dots or underscores"
	default:
		return "failed " + fe.Tag()
	}
}

// ValidateReview checks a review request: every partition must be valid and
// no media id may be routed to more than one basket.
func ValidateReview(req *types.ReviewRequest) error {
	if req == nil {
		return &errors.ValidationError{Message: "review request is nil"}
	}
	if err := Struct(req); err != nil {
		return err
	}
	if len(req.Archived)+len(req.Deleted)+len(req.Shared) == 0 {
		return &errors.ValidationError{Message: "review request has no media"}
	}

	basket := make(map[string]string)
	var errs []error
	check := func(name string, parts []types.ReviewMediaPartition) {
		for _, p := range parts {
			if prev, ok := basket[p.MediaID]; ok {
				errs = append(errs, fmt.Errorf("media %s is in both %s and %s", p.MediaID, prev, name))
				continue
			}
			basket[p.MediaID] = name
		}
	}
	check("archived", req.Archived)
	check("deleted", req.Deleted)
	check("shared", req.Shared)

	if len(errs) > 0 {
		return &errors.ValidationError{Field: "ReviewRequest", Message: joinValidationErrors(errs).Error()}
	}
	return nil
}

// joinValidationErrors combines multiple validation errors into a single error
func joinValidationErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
