package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/caio-campos/profilectl/dispatch"
)

const (
	userEndpoint = "auth/user/"

	MsgUpdating      = "Updating Your Profile"
	MsgFetching      = "Fetching Your Profile"
	MsgInvalidForm   = "Form fields are not valid!"
	MsgUpdated       = "Profile updated successfully!"
	MsgGenericError  = "Some error have occurred. Please try again!"
	msgURLTooLongFmt = "%s URL length should not be greater than %d!"
)

// Outcome records how the last UpdateProfile or FetchProfile call ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeInvalidForm
	OutcomeURLTooLong
	OutcomeUpdated
	OutcomeFetched
	OutcomeFieldError
	OutcomeGenericError
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeInvalidForm:
		return "invalid_form"
	case OutcomeURLTooLong:
		return "url_too_long"
	case OutcomeUpdated:
		return "updated"
	case OutcomeFetched:
		return "fetched"
	case OutcomeFieldError:
		return "field_error"
	case OutcomeGenericError:
		return "generic_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Failed reports whether the outcome left the form in an error state.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeNone, OutcomeUpdated, OutcomeFetched:
		return false
	default:
		return true
	}
}

type Config struct {
	Dispatcher Dispatcher
	Notifier   Notifier
	Navigator  Navigator

	// Loader is shared with other controllers of the same view. A fresh
	// one is created when nil.
	Loader *Loader

	Token  string
	Logger dispatch.Logger
}

// Controller drives the update-profile form. Its exported fields are the
// form state a view renders. It is not safe for concurrent use and does
// not guard against overlapping UpdateProfile calls.
type Controller struct {
	WrnMsg      map[string]string
	IsValid     map[string]bool
	User        User
	IsFormError bool
	FormError   string
	IsDisabled  bool

	loader     *Loader
	dispatcher Dispatcher
	notifier   Notifier
	navigator  Navigator
	token      string
	logger     dispatch.Logger
	outcome    Outcome
}

func New(cfg Config) (*Controller, error) {
	if cfg.Dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if cfg.Notifier == nil {
		return nil, errors.New("notifier is required")
	}
	if cfg.Navigator == nil {
		return nil, errors.New("navigator is required")
	}

	loader := cfg.Loader
	if loader == nil {
		loader = &Loader{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = dispatch.NoopLogger()
	}

	return &Controller{
		WrnMsg:     map[string]string{},
		IsValid:    map[string]bool{},
		loader:     loader,
		dispatcher: cfg.Dispatcher,
		notifier:   cfg.Notifier,
		navigator:  cfg.Navigator,
		token:      cfg.Token,
		logger:     logger,
	}, nil
}

func (c *Controller) Loader() *Loader {
	return c.loader
}

func (c *Controller) Outcome() Outcome {
	return c.outcome
}

func (c *Controller) StartLoader(message string) {
	c.loader.Start(message)
}

func (c *Controller) StopLoader() {
	c.loader.Stop()
}

// UpdateProfile validates the form locally and, when it passes, sends the
// user to the backend. Every failure is folded into the controller state
// and reported through the Notifier; nothing is returned.
func (c *Controller) UpdateProfile(ctx context.Context, formValid bool) {
	if !formValid {
		c.outcome = OutcomeInvalidForm
		c.notifier.Notify(NotifyError, MsgInvalidForm)
		c.StopLoader()
		return
	}

	c.StartLoader(MsgUpdating)
	c.resetFormState()

	for _, field := range urlFields {
		if IsURLValid(field.value(c.User)) {
			continue
		}

		c.outcome = OutcomeURLTooLong
		c.setFieldError(field.key, fmt.Sprintf(msgURLTooLongFmt, field.label, MaxURLLength))
		c.StopLoader()
		return
	}

	c.dispatcher.SendRequest(ctx, dispatch.Parameters{
		URL:    userEndpoint,
		Method: http.MethodPut,
		Token:  c.token,
		Data:   c.User,
		Callback: dispatch.Callback{
			OnSuccess: func(res *dispatch.Response) {
				c.outcome = OutcomeUpdated
				c.logger.Info(ctx, "profile updated", map[string]interface{}{
					"username": c.User.Username,
				})
				c.notifier.Notify(NotifySuccess, MsgUpdated)
				c.navigator.Go(StateProfile)
				c.StopLoader()
			},
			OnError: func(failure *dispatch.Failure) {
				c.handleFailure(ctx, "profile update failed", failure)
				c.StopLoader()
			},
		},
	})
}

// FetchProfile loads the stored profile into User.
func (c *Controller) FetchProfile(ctx context.Context) {
	c.StartLoader(MsgFetching)

	c.dispatcher.SendRequest(ctx, dispatch.Parameters{
		URL:    userEndpoint,
		Method: http.MethodGet,
		Token:  c.token,
		Callback: dispatch.Callback{
			OnSuccess: func(res *dispatch.Response) {
				var user User
				if err := res.JSON(&user); err != nil {
					c.outcome = OutcomeGenericError
					c.logger.Error(ctx, "failed to decode profile", map[string]interface{}{
						"error": err.Error(),
					})
					c.notifier.Notify(NotifyError, MsgGenericError)
					c.StopLoader()
					return
				}

				c.outcome = OutcomeFetched
				c.User = user
				c.StopLoader()
			},
			OnError: func(failure *dispatch.Failure) {
				c.handleFailure(ctx, "profile fetch failed", failure)
				c.StopLoader()
			},
		},
	})
}

func (c *Controller) handleFailure(ctx context.Context, msg string, failure *dispatch.Failure) {
	if failure == nil {
		failure = &dispatch.Failure{Kind: dispatch.FailureTransport}
	}

	c.logger.Warn(ctx, msg, map[string]interface{}{
		"failure": failure.Kind.String(),
		"error":   failure.Error(),
	})

	switch failure.Kind {
	case dispatch.FailureFields:
		for field := range failure.Fields {
			if message, ok := failure.FirstMessage(field); ok {
				c.WrnMsg[field] = message
				c.IsValid[field] = false
			}
		}

		for _, field := range fieldPriority {
			if message, ok := failure.FirstMessage(field); ok {
				c.outcome = OutcomeFieldError
				c.IsFormError = true
				c.FormError = message
				return
			}
		}

		c.genericError()

	case dispatch.FailureGeneric:
		c.genericError()

	default:
		c.outcome = OutcomeTransportError
		c.notifier.Notify(NotifyError, failure.Error())
	}
}

func (c *Controller) genericError() {
	c.outcome = OutcomeGenericError
	c.IsFormError = true
	c.notifier.Notify(NotifyError, MsgGenericError)
}

func (c *Controller) setFieldError(field, message string) {
	c.IsFormError = true
	c.FormError = message
	c.WrnMsg[field] = message
	c.IsValid[field] = false
}

func (c *Controller) resetFormState() {
	c.IsFormError = false
	c.FormError = ""
	c.IsDisabled = false
	clear(c.WrnMsg)
	clear(c.IsValid)
}
