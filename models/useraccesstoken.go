package models

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/log"
)

// UserAccessToken is a bearer token issued at login. Only the hash of the token is stored.
type UserAccessToken struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id" validate:"required"`
	AccessToken string     `db:"-"`
	TokenHash   string     `db:"access_token" validate:"required"`
	ExpiresAt   time.Time  `db:"expires_at" validate:"required"`
	LastUsedAt  nulls.Time `db:"last_used_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`

	User User `belongs_to:"users" validate:"-"`
}

type UserAccessTokens []UserAccessToken

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (u *UserAccessToken) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(u), nil
}

// HashAccessToken just returns a sha256.Sum256 of the input value
func HashAccessToken(accessToken string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(accessToken)))
}

// DeleteByBearerToken finds and deletes the UserAccessToken matching the raw token
func (u *UserAccessToken) DeleteByBearerToken(tx *pop.Connection, token string) error {
	if err := u.FindByBearerToken(tx, token); err != nil {
		return err
	}
	if err := u.Destroy(tx); err != nil {
		return api.NewAppError(err, api.ErrorDeletingAccessToken, api.CategoryDatabase)
	}
	return nil
}

// DeleteIfExpired checks the token expiration and returns `true` if expired. Also deletes
// the token from the database if it is expired.
func (u *UserAccessToken) DeleteIfExpired(tx *pop.Connection) (bool, error) {
	if u.ExpiresAt.Before(time.Now()) {
		err := u.Destroy(tx)
		if err != nil {
			return true, fmt.Errorf("unable to delete expired userAccessToken, id: %v", u.ID)
		}
		return true, nil
	}
	return false, nil
}

func (u *UserAccessToken) Destroy(tx *pop.Connection) error {
	return destroy(tx, u)
}

// FindByBearerToken uses a sha256.Sum256 of the raw token to find the corresponding UserAccessToken
func (u *UserAccessToken) FindByBearerToken(tx *pop.Connection, token string) error {
	if err := tx.Where("access_token = ?", HashAccessToken(token)).First(u); err != nil {
		if domain.IsOtherThanNoRows(err) {
			return appErrorFromDB(err, api.ErrorQueryFailure)
		}

		l := len(token)
		if l > 5 {
			l = 5
		}
		return &api.AppError{
			Err:      err,
			Key:      api.ErrorFindingAccessToken,
			Category: api.CategoryUnauthorized,
			Message:  fmt.Sprintf("failed to find access token '%s...'", token[0:l]),
		}
	}

	return nil
}

// GetUser returns the User associated with this access token
func (u *UserAccessToken) GetUser(tx *pop.Connection) (User, error) {
	if err := tx.Load(u, "User"); err != nil {
		return User{}, err
	}
	if u.User.Email == "" {
		return User{}, errors.New("no user associated with access token")
	}
	return u.User, nil
}

// Touch records that the token was used
func (u *UserAccessToken) Touch(tx *pop.Connection) {
	u.LastUsedAt = nulls.NewTime(time.Now().UTC())
	if err := u.Update(tx); err != nil {
		log.Errorf("error updating access token last_used_at: %s", err)
	}
}

func createAccessTokenExpiry() time.Time {
	dtNow := time.Now()
	return dtNow.Add(time.Second * time.Duration(domain.Env.AccessTokenLifetimeSeconds))
}

// Create stores the UserAccessToken data as a new record in the database.
func (u *UserAccessToken) Create(tx *pop.Connection) error {
	return create(tx, u)
}

// Update updates the UserAccessToken data in the database.
func (u *UserAccessToken) Update(tx *pop.Connection) error {
	return update(tx, u)
}

// InitAccessToken prepares a new value for the AccessToken field and the ExpiresAt field.
func InitAccessToken() UserAccessToken {
	token, _ := getRandomToken() // The init() function would have made sure there was no error

	return UserAccessToken{
		AccessToken: token,
		TokenHash:   HashAccessToken(token),
		ExpiresAt:   createAccessTokenExpiry(),
	}
}
