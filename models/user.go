package models

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/auth"
	"github.com/silinternational/terra/domain"
)

type UserAppRole string

const (
	AppRoleUser     = UserAppRole("User")
	AppRoleReporter = UserAppRole("Reporter")
	AppRoleAdmin    = UserAppRole("Admin")
)

var validUserAppRoles = map[UserAppRole]struct{}{
	AppRoleUser:     {},
	AppRoleReporter: {},
	AppRoleAdmin:    {},
}

// Users is a slice of User objects
type Users []User

// User is a person who can log in. Staff members are linked to an Employee record.
type User struct {
	ID           uuid.UUID   `db:"id"`
	Email        string      `db:"email" validate:"required,email"`
	FirstName    string      `db:"first_name"`
	LastName     string      `db:"last_name"`
	AppRole      UserAppRole `db:"app_role" validate:"appRole"`
	StaffID      string      `db:"staff_id"`
	LastLoginUTC time.Time   `db:"last_login_utc"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (u *User) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(u), nil
}

// Create a new user. The email address is normalized to lower case.
func (u *User) Create(tx *pop.Connection) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.AppRole == "" {
		u.AppRole = AppRoleUser
	}
	if err := create(tx, u); err != nil {
		return err
	}
	emitEvent(events.Event{
		Kind:    domain.EventApiUserCreated,
		Message: "User created: " + u.Email,
		Payload: events.Payload{domain.EventPayloadID: u.ID},
	})
	return nil
}

func (u *User) Update(tx *pop.Connection) error {
	return update(tx, u)
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, u, id)
}

// FindByEmail loads the user with the given email address, ignoring case
func (u *User) FindByEmail(tx *pop.Connection, email string) error {
	err := tx.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(u)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// IsActorAllowedTo allows users to view themselves. Admins may do anything.
func (u *User) IsActorAllowedTo(tx *pop.Connection, actor User, p Permission, sub SubResource, req *http.Request) bool {
	if actor.IsAdmin() {
		return true
	}
	return p == PermissionView && actor.ID == u.ID
}

func (u *User) IsAdmin() bool {
	return u.AppRole == AppRoleAdmin
}

// HasFullReportAccess is true for users who may view every unit, fund, and travel request
func (u *User) HasFullReportAccess() bool {
	return u.AppRole == AppRoleAdmin || u.AppRole == AppRoleReporter
}

func (u *User) Name() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// Employee returns the user's employee record. The boolean is false if the user is not on staff.
func (u *User) Employee(tx *pop.Connection) (Employee, bool) {
	var e Employee
	if u.ID == uuid.Nil {
		return e, false
	}
	if err := tx.Where("user_id = ?", u.ID).First(&e); err != nil {
		if domain.IsOtherThanNoRows(err) {
			panic("database error loading employee for user, " + err.Error())
		}
		return e, false
	}
	return e, true
}

// FindOrCreateFromAuthUser finds the user matching the authenticated person's email address, creating one
// if necessary, and refreshes the name and staff ID from the identity provider.
func (u *User) FindOrCreateFromAuthUser(tx *pop.Connection, authUser *auth.User) error {
	if authUser.Email == "" {
		return api.NewAppError(errors.New("auth user has no email address"), api.ErrorMissingAuthEmail,
			api.CategoryUser)
	}

	if err := u.FindByEmail(tx, authUser.Email); err != nil {
		var appErr *api.AppError
		if !errors.As(err, &appErr) || appErr.Key != api.ErrorNoRows {
			return err
		}
	}

	u.FirstName = authUser.FirstName
	u.LastName = authUser.LastName
	u.Email = strings.ToLower(authUser.Email)
	if authUser.StaffID != "" {
		u.StaffID = authUser.StaffID
	}
	u.LastLoginUTC = time.Now().UTC()

	if u.ID == uuid.Nil {
		if err := u.Create(tx); err != nil {
			return fmt.Errorf("unable to create user record: %w", err)
		}
	} else if err := u.Update(tx); err != nil {
		return fmt.Errorf("unable to update user record: %w", err)
	}

	return nil
}

// CreateAccessToken creates and stores a new access token for the user. The raw token is only available
// on the returned object.
func (u *User) CreateAccessToken(tx *pop.Connection) (UserAccessToken, error) {
	if u.ID == uuid.Nil {
		return UserAccessToken{}, errors.New("cannot create an access token for an unsaved user")
	}

	uat := InitAccessToken()
	uat.UserID = u.ID
	if err := uat.Create(tx); err != nil {
		return UserAccessToken{}, err
	}
	return uat, nil
}

func (u *User) ConvertToAPI(tx *pop.Connection) api.User {
	user := api.User{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Name:         u.Name(),
		AppRole:      string(u.AppRole),
		LastLoginUTC: u.LastLoginUTC,
	}
	if e, ok := u.Employee(tx); ok {
		user.EmployeeID = &e.ID
	}
	return user
}
