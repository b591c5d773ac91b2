package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caio-campos/profilectl/dispatch"
)

type notification struct {
	kind    NotifyKind
	message string
}

type fakeNotifier struct {
	calls []notification
}

func (f *fakeNotifier) Notify(kind NotifyKind, message string) {
	f.calls = append(f.calls, notification{kind: kind, message: message})
}

type fakeNavigator struct {
	states []string
}

func (f *fakeNavigator) Go(state string) {
	f.states = append(f.states, state)
}

// fakeDispatcher answers every request with a canned outcome and records
// the loader state seen at dispatch time.
type fakeDispatcher struct {
	loader *Loader

	response *dispatch.Response
	failure  *dispatch.Failure

	calls       []dispatch.Parameters
	loaderTitle string
}

func (f *fakeDispatcher) SendRequest(ctx context.Context, params dispatch.Parameters) {
	f.calls = append(f.calls, params)
	if f.loader != nil {
		f.loaderTitle = f.loader.Title
	}

	if f.failure != nil {
		params.Callback.OnError(f.failure)
		return
	}
	params.Callback.OnSuccess(f.response)
}

type fixture struct {
	ctrl       *Controller
	loader     *Loader
	dispatcher *fakeDispatcher
	notifier   *fakeNotifier
	navigator  *fakeNavigator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	loader := &Loader{}
	f := &fixture{
		loader:     loader,
		dispatcher: &fakeDispatcher{loader: loader, response: &dispatch.Response{StatusCode: http.StatusOK, Data: []byte(`"success"`)}},
		notifier:   &fakeNotifier{},
		navigator:  &fakeNavigator{},
	}

	ctrl, err := New(Config{
		Dispatcher: f.dispatcher,
		Notifier:   f.notifier,
		Navigator:  f.navigator,
		Loader:     loader,
		Token:      "userKey",
	})
	require.NoError(t, err)

	ctrl.User = User{
		Username:    "abc123",
		FirstName:   "firstname",
		LastName:    "lastname",
		Affiliation: "affiliation",
	}
	f.ctrl = ctrl
	return f
}

func fieldFailure(fields map[string][]string) *dispatch.Failure {
	return &dispatch.Failure{
		Kind:     dispatch.FailureFields,
		Response: &dispatch.Response{StatusCode: http.StatusBadRequest},
		Fields:   fields,
	}
}

func assertLoaderStopped(t *testing.T, loader *Loader) {
	t.Helper()
	assert.Equal(t, Loader{IsLoader: false, Title: ""}, *loader)
}

func TestNewDefaults(t *testing.T) {
	ctrl, err := New(Config{
		Dispatcher: &fakeDispatcher{},
		Notifier:   &fakeNotifier{},
		Navigator:  &fakeNavigator{},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{}, ctrl.WrnMsg)
	assert.Equal(t, map[string]bool{}, ctrl.IsValid)
	assert.Equal(t, User{}, ctrl.User)
	assert.False(t, ctrl.IsFormError)
	assert.Empty(t, ctrl.FormError)
	assert.False(t, ctrl.IsDisabled)
	assert.NotNil(t, ctrl.Loader())
	assert.Equal(t, OutcomeNone, ctrl.Outcome())
}

func TestNewRequiresCollaborators(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"no dispatcher", Config{Notifier: &fakeNotifier{}, Navigator: &fakeNavigator{}}, "dispatcher is required"},
		{"no notifier", Config{Dispatcher: &fakeDispatcher{}, Navigator: &fakeNavigator{}}, "notifier is required"},
		{"no navigator", Config{Dispatcher: &fakeDispatcher{}, Notifier: &fakeNotifier{}}, "navigator is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestStartStopLoader(t *testing.T) {
	f := newFixture(t)

	f.ctrl.StartLoader("Start Loader")
	assert.True(t, f.loader.IsLoader)
	assert.Equal(t, "Start Loader", f.loader.Title)

	f.ctrl.StopLoader()
	assertLoaderStopped(t, f.loader)

	f.ctrl.StopLoader()
	assertLoaderStopped(t, f.loader)
}

func TestLoaderIsShared(t *testing.T) {
	loader := &Loader{}
	deps := Config{Dispatcher: &fakeDispatcher{}, Notifier: &fakeNotifier{}, Navigator: &fakeNavigator{}, Loader: loader}

	first, err := New(deps)
	require.NoError(t, err)
	second, err := New(deps)
	require.NoError(t, err)

	first.StartLoader("busy")
	assert.True(t, second.Loader().IsLoader)

	second.StopLoader()
	assert.False(t, first.Loader().IsLoader)
}

func TestUpdateProfileSuccess(t *testing.T) {
	f := newFixture(t)

	f.ctrl.UpdateProfile(context.Background(), true)

	require.Len(t, f.dispatcher.calls, 1)
	call := f.dispatcher.calls[0]
	assert.Equal(t, "auth/user/", call.URL)
	assert.Equal(t, http.MethodPut, call.Method)
	assert.Equal(t, "userKey", call.Token)
	assert.Equal(t, f.ctrl.User, call.Data)

	assert.Equal(t, MsgUpdating, f.dispatcher.loaderTitle)
	assert.Equal(t, []notification{{NotifySuccess, "Profile updated successfully!"}}, f.notifier.calls)
	assert.Equal(t, []string{"web.profile"}, f.navigator.states)
	assert.False(t, f.ctrl.IsFormError)
	assert.Empty(t, f.ctrl.FormError)
	assert.Equal(t, OutcomeUpdated, f.ctrl.Outcome())
	assertLoaderStopped(t, f.loader)
}

func TestUpdateProfileFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string][]string
		want   string
	}{
		{"username is invalid", map[string][]string{"username": {"username error"}}, "username error"},
		{"firstname is invalid", map[string][]string{"first_name": {"firstname error"}}, "firstname error"},
		{"lastname is invalid", map[string][]string{"last_name": {"lastname error"}}, "lastname error"},
		{"affiliation is invalid", map[string][]string{"affiliation": {"affiliation error"}}, "affiliation error"},
		{
			"username wins over the rest",
			map[string][]string{
				"affiliation": {"affiliation error"},
				"last_name":   {"lastname error"},
				"username":    {"username error", "second"},
			},
			"username error",
		},
		{
			"first_name wins over last_name",
			map[string][]string{"last_name": {"lastname error"}, "first_name": {"firstname error"}},
			"firstname error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.dispatcher.failure = fieldFailure(tt.fields)

			f.ctrl.UpdateProfile(context.Background(), true)

			assert.Equal(t, MsgUpdating, f.dispatcher.loaderTitle)
			assert.True(t, f.ctrl.IsFormError)
			assert.Equal(t, tt.want, f.ctrl.FormError)
			assert.Empty(t, f.notifier.calls)
			assert.Empty(t, f.navigator.states)
			assert.Equal(t, OutcomeFieldError, f.ctrl.Outcome())
			assertLoaderStopped(t, f.loader)

			for field, messages := range tt.fields {
				assert.Equal(t, messages[0], f.ctrl.WrnMsg[field])
				assert.False(t, f.ctrl.IsValid[field])
			}
		})
	}
}

func TestUpdateProfileGenericError(t *testing.T) {
	tests := []struct {
		name    string
		failure *dispatch.Failure
	}{
		{"empty body", &dispatch.Failure{Kind: dispatch.FailureGeneric, Response: &dispatch.Response{StatusCode: 400, Data: []byte("{}")}}},
		{"unrecognised fields", fieldFailure(map[string][]string{"non_field_errors": {"nope"}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.dispatcher.failure = tt.failure

			f.ctrl.UpdateProfile(context.Background(), true)

			assert.False(t, f.ctrl.IsDisabled)
			assert.True(t, f.ctrl.IsFormError)
			assert.Empty(t, f.ctrl.FormError)
			assert.Equal(t, []notification{{NotifyError, "Some error have occurred. Please try again!"}}, f.notifier.calls)
			assert.Equal(t, OutcomeGenericError, f.ctrl.Outcome())
			assertLoaderStopped(t, f.loader)
		})
	}
}

func TestUpdateProfileTransportError(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.failure = &dispatch.Failure{
		Kind:     dispatch.FailureTransport,
		Response: &dispatch.Response{StatusCode: http.StatusBadRequest},
	}

	f.ctrl.UpdateProfile(context.Background(), true)

	assert.False(t, f.ctrl.IsDisabled)
	require.Len(t, f.notifier.calls, 1)
	assert.NotEmpty(t, f.notifier.calls[0].message)
	assert.Empty(t, f.navigator.states)
	assert.Equal(t, OutcomeTransportError, f.ctrl.Outcome())
	assertLoaderStopped(t, f.loader)
}

func TestUpdateProfileNilFailure(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.failure = nil
	f.ctrl.dispatcher = dispatcherFunc(func(ctx context.Context, params dispatch.Parameters) {
		params.Callback.OnError(nil)
	})

	f.ctrl.UpdateProfile(context.Background(), true)

	assert.Len(t, f.notifier.calls, 1)
	assert.Equal(t, OutcomeTransportError, f.ctrl.Outcome())
	assertLoaderStopped(t, f.loader)
}

func TestUpdateProfileInvalidForm(t *testing.T) {
	f := newFixture(t)
	f.ctrl.StartLoader("something else")

	f.ctrl.UpdateProfile(context.Background(), false)

	assert.Empty(t, f.dispatcher.calls)
	assert.Equal(t, []notification{{NotifyError, "Form fields are not valid!"}}, f.notifier.calls)
	assert.Equal(t, OutcomeInvalidForm, f.ctrl.Outcome())
	assertLoaderStopped(t, f.loader)
}

func TestUpdateProfileURLTooLong(t *testing.T) {
	long := "https://" + strings.Repeat("a", 193)
	require.Len(t, long, 201)

	tests := []struct {
		name  string
		set   func(u *User)
		field string
		want  string
	}{
		{"github", func(u *User) { u.GithubURL = long }, "github_url", "Github URL length should not be greater than 200!"},
		{"google scholar", func(u *User) { u.GoogleScholarURL = long }, "google_scholar_url", "Google Scholar URL length should not be greater than 200!"},
		{"linkedin", func(u *User) { u.LinkedinURL = long }, "linkedin_url", "LinkedIn URL length should not be greater than 200!"},
		{
			"github checked first",
			func(u *User) { u.GithubURL = long; u.LinkedinURL = long },
			"github_url",
			"Github URL length should not be greater than 200!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.set(&f.ctrl.User)

			f.ctrl.UpdateProfile(context.Background(), true)

			assert.Empty(t, f.dispatcher.calls)
			assert.True(t, f.ctrl.IsFormError)
			assert.Equal(t, tt.want, f.ctrl.FormError)
			assert.Equal(t, tt.want, f.ctrl.WrnMsg[tt.field])
			assert.Len(t, f.ctrl.WrnMsg, 1)
			assert.Equal(t, OutcomeURLTooLong, f.ctrl.Outcome())
			assertLoaderStopped(t, f.loader)
		})
	}
}

func TestUpdateProfileClearsPreviousError(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.failure = fieldFailure(map[string][]string{"username": {"username error"}})
	f.ctrl.UpdateProfile(context.Background(), true)
	require.True(t, f.ctrl.IsFormError)

	f.dispatcher.failure = nil
	f.ctrl.UpdateProfile(context.Background(), true)

	assert.False(t, f.ctrl.IsFormError)
	assert.Empty(t, f.ctrl.FormError)
	assert.Empty(t, f.ctrl.WrnMsg)
	assert.Empty(t, f.ctrl.IsValid)
	assert.Equal(t, []string{"web.profile"}, f.navigator.states)
}

func TestFetchProfile(t *testing.T) {
	f := newFixture(t)
	f.ctrl.User = User{}
	f.dispatcher.response = &dispatch.Response{
		StatusCode: http.StatusOK,
		Data:       []byte(`{"username":"abc123","first_name":"Ada","github_url":"https://github.com/ada"}`),
	}

	f.ctrl.FetchProfile(context.Background())

	require.Len(t, f.dispatcher.calls, 1)
	assert.Equal(t, http.MethodGet, f.dispatcher.calls[0].Method)
	assert.Equal(t, MsgFetching, f.dispatcher.loaderTitle)
	assert.Equal(t, User{Username: "abc123", FirstName: "Ada", GithubURL: "https://github.com/ada"}, f.ctrl.User)
	assert.Equal(t, OutcomeFetched, f.ctrl.Outcome())
	assert.Empty(t, f.notifier.calls)
	assertLoaderStopped(t, f.loader)
}

func TestFetchProfileBadPayload(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.response = &dispatch.Response{StatusCode: http.StatusOK, Data: []byte(`<html>`)}

	f.ctrl.FetchProfile(context.Background())

	assert.Equal(t, []notification{{NotifyError, MsgGenericError}}, f.notifier.calls)
	assert.Equal(t, OutcomeGenericError, f.ctrl.Outcome())
	assertLoaderStopped(t, f.loader)
}

func TestFetchProfileTransportError(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.failure = &dispatch.Failure{Kind: dispatch.FailureTransport, Err: errors.New("connection refused")}

	f.ctrl.FetchProfile(context.Background())

	assert.Equal(t, []notification{{NotifyError, "request failed: connection refused"}}, f.notifier.calls)
	assert.True(t, f.ctrl.Outcome().Failed())
	assertLoaderStopped(t, f.loader)
}

func TestOutcome(t *testing.T) {
	assert.False(t, OutcomeNone.Failed())
	assert.False(t, OutcomeUpdated.Failed())
	assert.False(t, OutcomeFetched.Failed())
	assert.True(t, OutcomeInvalidForm.Failed())
	assert.True(t, OutcomeTransportError.Failed())
	assert.Equal(t, "field_error", OutcomeFieldError.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}

type dispatcherFunc func(ctx context.Context, params dispatch.Parameters)

func (f dispatcherFunc) SendRequest(ctx context.Context, params dispatch.Parameters) {
	f(ctx, params)
}
