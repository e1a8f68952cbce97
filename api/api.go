package api

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/domain"
)

// Sub-resources, as they appear after the resource ID in a URL path
const (
	ResourceClose  = "close"
	ResourceReport = "report"
)

type ErrorKey string

func (e ErrorKey) String() string {
	return string(e)
}

type ErrorCategory string

func (e ErrorCategory) String() string {
	return string(e)
}

// AppError holds information that is helpful in logging and reporting api errors
type AppError struct {
	Err error `json:"-"`

	// Don't change the value of these Key entries without making a corresponding change on the UI,
	// since these will be converted to human-friendly texts for presentation to the user
	Key ErrorKey `json:"key"`

	HttpStatus int `json:"status"`

	// detailed error message for debugging
	DebugMsg string `json:"debug_msg,omitempty"`

	Category ErrorCategory `json:"-"`

	Message string `json:"message"`

	// Extra data providing detail about the error condition, only provided in development mode
	Extras map[string]any `json:"extras,omitempty"`

	// URL to redirect, if HttpStatus is in 300-series
	RedirectURL string `json:"-"`
}

func (a *AppError) Error() string {
	if a.Err == nil {
		return ""
	}
	return a.Err.Error()
}

func (a *AppError) Unwrap() error {
	return a.Err
}

// NewAppError returns a new AppError with its Err, Key and Category set
func NewAppError(err error, key ErrorKey, category ErrorCategory) *AppError {
	return &AppError{
		Err:      err,
		Key:      key,
		Category: category,
	}
}

// SetHttpStatusFromCategory assigns the appropriate HTTP status based on the error category, if not
// already set.
func (a *AppError) SetHttpStatusFromCategory() {
	if a.HttpStatus != 0 {
		return
	}

	switch a.Category {
	case CategoryInternal, CategoryDatabase:
		a.HttpStatus = http.StatusInternalServerError
	case CategoryForbidden, CategoryNotFound:
		a.HttpStatus = http.StatusNotFound
	case CategoryUnauthorized:
		a.HttpStatus = http.StatusUnauthorized
	default:
		a.HttpStatus = http.StatusBadRequest
	}
}

// LoadTranslatedMessage assigns the error message by translating the Key into a user-friendly string, unless
// the HttpStatus is 500 in which case a standard message is used.
func (a *AppError) LoadTranslatedMessage(c buffalo.Context) {
	key := a.Key

	if a.HttpStatus == http.StatusInternalServerError {
		key = ErrorGenericInternalServer
	}

	msgID := "Error." + key.String()
	if domain.T != nil {
		a.Message = domain.T.Translate(c, msgID, a.Extras)
	}
	if a.Message == "" || a.Message == msgID {
		a.Message = keyToReadableString(key.String())
	}
}

var wordRegex = regexp.MustCompile(`[A-Z][^A-Z]*`)

// keyToReadableString takes a key like ErrorSomethingSomethingOther and returns "Something something other".
// Initial lowercase letters are lost if the key has a non-initial uppercase letter.
func keyToReadableString(key string) string {
	words := wordRegex.FindAllString(key, -1)

	if len(words) == 0 {
		return key
	}

	if len(words) > 1 && words[0] == "Error" {
		words = words[1:]
	}

	// Acronyms like ID and URL are split into single letters
	joined := make([]string, 0, len(words))
	acronym := ""
	for _, w := range words {
		if len(w) == 1 {
			acronym += w
			continue
		}
		if acronym != "" {
			joined = append(joined, acronym)
			acronym = ""
		}
		joined = append(joined, w)
	}
	if acronym != "" {
		joined = append(joined, acronym)
	}

	joined[0] = strings.ToUpper(joined[0][:1]) + strings.ToLower(joined[0][1:])
	for i := 1; i < len(joined); i++ {
		joined[i] = strings.ToLower(joined[i])
	}

	return strings.Join(joined, " ")
}
