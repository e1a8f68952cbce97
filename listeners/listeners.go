package listeners

import (
	"errors"
	"fmt"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/log"
	"github.com/silinternational/terra/messages"
	"github.com/silinternational/terra/models"
)

type apiListener struct {
	name     string
	listener func(events.Event)
}

// Register new listener functions here. Remember, though, that these groupings just describe what we want.
// They don't make it happen this way. The listeners themselves still need to verify the event kind.
var apiListeners = map[string][]apiListener{
	domain.EventApiUserCreated: {
		{
			name:     "user-created",
			listener: userCreated,
		},
	},
	domain.EventApiApprovalCreated: {
		{
			name:     "approval-created",
			listener: approvalCreated,
		},
	},
	domain.EventApiRequestClosed: {
		{
			name:     "travel-request-closed",
			listener: travelRequestClosed,
		},
	},
}

// RegisterListeners registers all the listeners to be used by the app
func RegisterListeners() {
	for _, listeners := range apiListeners {
		for _, l := range listeners {
			if _, err := events.NamedListen(l.name, l.listener); err != nil {
				log.Errorf("failed registering listener: %s, err: %s", l.name, err)
			}
		}
	}
}

func userCreated(e events.Event) {
	if e.Kind != domain.EventApiUserCreated {
		return
	}

	defer panicRecover(e.Kind)

	var user models.User
	if err := findObject(e.Payload, &user, e.Kind); err != nil {
		return
	}

	log.WithFields(map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("user created")
}

func approvalCreated(e events.Event) {
	if e.Kind != domain.EventApiApprovalCreated {
		return
	}

	defer panicRecover(e.Kind)

	var approval models.Approval
	if err := findObject(e.Payload, &approval, e.Kind); err != nil {
		return
	}

	err := models.DB.Transaction(func(tx *pop.Connection) error {
		return messages.ApprovalCreatedSend(tx, approval)
	})
	if err != nil {
		log.Errorf("error sending approval notification in %s, %s", e.Kind, err)
	}
}

func travelRequestClosed(e events.Event) {
	if e.Kind != domain.EventApiRequestClosed {
		return
	}

	defer panicRecover(e.Kind)

	var t models.TravelRequest
	if err := findObject(e.Payload, &t, e.Kind); err != nil {
		return
	}

	err := models.DB.Transaction(func(tx *pop.Connection) error {
		return messages.RequestClosedSend(tx, t)
	})
	if err != nil {
		log.Errorf("error sending travel request closed notifications in %s, %s", e.Kind, err)
	}
}

func getID(p events.Payload) (uuid.UUID, error) {
	i, ok := p[domain.EventPayloadID]
	if !ok {
		return uuid.UUID{}, fmt.Errorf("id not in event payload")
	}

	switch id := i.(type) {
	case string:
		return uuid.FromStringOrNil(id), nil
	case uuid.UUID:
		return id, nil
	case nulls.UUID:
		return id.UUID, nil
	default:
		return uuid.UUID{}, fmt.Errorf("id not a valid type: %T", id)
	}
}

// findObject loads the object named in the payload. The transaction that created it may not have been
// committed yet, so it retries with an increasing delay.
func findObject(payload events.Payload, object any, listenerName string) error {
	id, err := getID(payload)
	if err != nil {
		err = errors.New("failed to get object ID from event payload: " + err.Error())
		log.Error(err)
		return err
	}

	var findErr error
	for i := 1; i <= domain.Env.ListenerMaxRetries; i++ {
		findErr = models.DB.Find(object, id)
		if findErr == nil {
			return nil
		}
		if domain.IsOtherThanNoRows(findErr) {
			break
		}
		time.Sleep(getDelayDuration(i * i))
	}

	err = fmt.Errorf("failed to find object in %s, %w", listenerName, findErr)
	log.Error(err)
	return err
}

func panicRecover(name string) {
	if err := recover(); err != nil {
		log.Errorf("panic occurred in %s: %s", name, err)
	}
}

// getDelayDuration is a helper function to calculate delay in milliseconds before processing event
func getDelayDuration(multiplier int) time.Duration {
	return time.Duration(domain.Env.ListenerDelayMilliseconds) * time.Millisecond * time.Duration(multiplier)
}
