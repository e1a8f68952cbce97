package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/envy"
	mwi18n "github.com/gobuffalo/mw-i18n/v2"
	"github.com/gofrs/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// T is the Buffalo i18n translator
var T *mwi18n.Translator

// BuffaloContextType is a custom type used as a value key passed to context.WithValue as per the recommendations
// in the function docs for that function: https://golang.org/pkg/context/#WithValue
type BuffaloContextType string

// BuffaloContext is the key for the call to context.WithValue
const BuffaloContext = BuffaloContextType("BuffaloContext")

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Context keys
const (
	ContextKeyCurrentUser = "current_user"
	ContextKeyExtras      = "extras"
	ContextKeyTx          = "tx"

	SessionKeyUserID = "user_id"

	EventPayloadID = "id"
)

// Resource names, as they appear in the first segment of a URL path
const (
	TypeActualExpense    = "actual-expenses"
	TypeApproval         = "approvals"
	TypeEmployee         = "employees"
	TypeEstimatedExpense = "estimated-expenses"
	TypeFund             = "funds"
	TypeImport           = "imports"
	TypeTravelRequest    = "travel-requests"
	TypeUnit             = "units"
	TypeVacation         = "vacations"
)

const (
	DateFormat    = "2006-01-02"
	LocalizedDate = "2 January 2006"

	ContentCSV = "text/csv"

	DurationDay = time.Hour * 24
	Megabyte    = 1048576
)

// Event Kinds
const (
	EventApiUserCreated     = "api:user:created"
	EventApiApprovalCreated = "api:approval:created"
	EventApiRequestClosed   = "api:travelrequest:closed"
)

// Env holds the values of environment variables
var Env struct {
	GoEnv                      string `ignored:"true"`
	ApiBaseURL                 string `default:"http://localhost:3000" split_words:"true"`
	AccessTokenLifetimeSeconds int    `default:"1166400" split_words:"true"` // 13.5 days
	AppName                    string `default:"Terra" split_words:"true"`
	Port                       int    `default:"3000"`
	SessionSecret              string `default:"testing" split_words:"true"`
	UIURL                      string `default:"http://missing.ui.url"`
	SupportEmail               string `default:"" split_words:"true"`
	DisableTLS                 bool   `default:"true" split_words:"true"`

	// HomeCountry is compared to Activity.Country to decide whether travel is international
	HomeCountry      string `default:"United States" split_words:"true"`
	FiscalStartMonth int    `default:"7" split_words:"true"`

	// ProfDevAllocation is the base professional development amount per employee per fiscal year
	ProfDevAllocation       string          `default:"2000.00" split_words:"true"`
	ProfDevAllocationAmount decimal.Decimal `ignored:"true"`

	MaxFileSize int `default:"10485760" split_words:"true"`

	SamlSpEntityId                  string `default:"" split_words:"true"`
	SamlAudienceUri                 string `default:"" split_words:"true"`
	SamlIdpEntityId                 string `default:"" split_words:"true"`
	SamlIdpCert                     string `default:"" split_words:"true"`
	SamlSpCert                      string `default:"" split_words:"true"`
	SamlSpPrivateKey                string `default:"" split_words:"true"`
	SamlAssertionConsumerServiceUrl string `default:"" split_words:"true"`
	SamlSsoURL                      string `default:"" split_words:"true"`
	SamlSloURL                      string `default:"" split_words:"true"`
	SamlCheckResponseSigning        bool   `default:"true" split_words:"true"`
	SamlSignRequest                 bool   `default:"true" split_words:"true"`

	AwsRegion           string `default:"us-east-1" split_words:"true"`
	AwsS3Endpoint       string `split_words:"true"`
	AwsS3DisableSSL     bool   `split_words:"true"`
	AwsS3Bucket         string `split_words:"true"`
	AwsS3URLLifeMinutes int    `default:"10" split_words:"true"`
	AwsAccessKeyID      string `split_words:"true"`
	AwsSecretAccessKey  string `split_words:"true"`

	ListenerDelayMilliseconds int `default:"1000" split_words:"true"`
	ListenerMaxRetries        int `default:"10" split_words:"true"`

	EmailService     string `default:"dummy" split_words:"true"`
	EmailFromAddress string `default:"no_reply@example.com" split_words:"true"`
}

// LogoutRedirectURL is where the browser is sent after logout
var LogoutRedirectURL = "missing.ui.url/logged-out"

func init() {
	readEnv()
	LogoutRedirectURL = Env.UIURL + "/logged-out"
}

// readEnv loads environment data into `Env`
func readEnv() {
	err := envconfig.Process("", &Env)
	if err != nil {
		log.Fatal(errors.New("error loading env vars: " + err.Error()))
	}

	Env.ProfDevAllocationAmount, err = decimal.NewFromString(Env.ProfDevAllocation)
	if err != nil {
		log.Fatal(fmt.Errorf("invalid PROF_DEV_ALLOCATION %q: %w", Env.ProfDevAllocation, err))
	}

	if Env.FiscalStartMonth < 1 || Env.FiscalStartMonth > 12 {
		log.Fatalf("invalid FISCAL_START_MONTH %d", Env.FiscalStartMonth)
	}

	// Doing this separately to avoid needing two environment variables for the same thing
	Env.GoEnv = envy.Get("GO_ENV", EnvDevelopment)
}

func getBuffaloContext(ctx context.Context) (buffalo.Context, bool) {
	if bc, ok := ctx.Value(BuffaloContext).(buffalo.Context); ok {
		return bc, true
	}
	bc, ok := ctx.(buffalo.Context)
	return bc, ok
}

// NewExtra sets a new key-value pair in the `extras` entry of the context. It is a no-op
// if the context is not a Buffalo context.
func NewExtra(ctx context.Context, key string, e any) {
	c, ok := getBuffaloContext(ctx)
	if !ok {
		return
	}
	extras := GetExtras(c)
	extras[key] = e
	c.Set(ContextKeyExtras, extras)
}

// GetExtras returns the `extras` map from the context, or a new empty map
func GetExtras(c buffalo.Context) map[string]any {
	extras, _ := c.Value(ContextKeyExtras).(map[string]any)
	if extras == nil {
		extras = map[string]any{}
	}
	return extras
}

// MergeExtras returns a single map with all the key-value pairs of the input maps.
// Key-value pairs in later maps overwrite matching ones from earlier maps.
func MergeExtras(extras []map[string]any) map[string]any {
	allExtras := map[string]any{}
	for _, e := range extras {
		for k, v := range e {
			allExtras[k] = v
		}
	}
	return allExtras
}

// GetUUID creates a new, unique version 4 (random) UUID. Errors are ignored.
func GetUUID() uuid.UUID {
	id, err := uuid.NewV4()
	if err != nil {
		log.Printf("error creating new uuid ... %v", err)
	}
	return id
}

// EmailFromAddress combines a name with the configured from address for use in an email From header. If name is nil,
// only the App Name will be used.
func EmailFromAddress(name *string) string {
	addr := Env.AppName + " <" + Env.EmailFromAddress + ">"
	if name != nil {
		addr = *name + " via " + addr
	}
	return addr
}

var bearerRegex = regexp.MustCompile(`^(?i)Bearer (.*)$`)

// GetBearerTokenFromRequest obtains the token from an Authorization header beginning
// with "Bearer". If not found, an empty string is returned.
func GetBearerTokenFromRequest(r *http.Request) string {
	authorizationHeader := r.Header.Get("Authorization")
	if authorizationHeader == "" {
		return ""
	}

	matches := bearerRegex.FindStringSubmatch(authorizationHeader)
	if len(matches) < 2 {
		return ""
	}

	return matches[1]
}

// IsOtherThanNoRows returns false if the error is nil or is just reporting that there
// were no rows in the result set for a sql query.
func IsOtherThanNoRows(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, sql.ErrNoRows) || strings.Contains(err.Error(), sql.ErrNoRows.Error()) {
		return false
	}

	return true
}

// IsStringInSlice iterates over a slice of strings, looking for the given
// string. If found, true is returned. Otherwise, false is returned.
func IsStringInSlice(needle string, haystack []string) bool {
	for _, hs := range haystack {
		if needle == hs {
			return true
		}
	}

	return false
}
