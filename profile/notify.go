package profile

import (
	"context"

	"github.com/caio-campos/profilectl/dispatch"
)

type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
)

// StateProfile is the view shown after a successful update.
const StateProfile = "web.profile"

type Notifier interface {
	Notify(kind NotifyKind, message string)
}

type Navigator interface {
	Go(state string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(kind NotifyKind, message string)

func (f NotifierFunc) Notify(kind NotifyKind, message string) {
	f(kind, message)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(state string)

func (f NavigatorFunc) Go(state string) {
	f(state)
}

// Dispatcher is the subset of *dispatch.Dispatcher the controller needs.
type Dispatcher interface {
	SendRequest(ctx context.Context, params dispatch.Parameters)
}
