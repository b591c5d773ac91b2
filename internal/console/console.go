// Package console implements the profile controller's Notifier and
// Navigator for a terminal.
package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/caio-campos/profilectl/profile"
)

type Notifier struct {
	out    io.Writer
	logger *zap.Logger
}

func NewNotifier(out io.Writer, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{out: out, logger: logger}
}

func (n *Notifier) Notify(kind profile.NotifyKind, message string) {
	n.logger.Debug("notify", zap.String("kind", string(kind)), zap.String("message", message))
	fmt.Fprintf(n.out, "%s: %s\n", kind, message)
}

// Navigator maps view states to handlers.
type Navigator struct {
	routes map[string]func()
	logger *zap.Logger
}

func NewNavigator(logger *zap.Logger) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{routes: map[string]func(){}, logger: logger}
}

func (n *Navigator) Handle(state string, fn func()) {
	n.routes[state] = fn
}

func (n *Navigator) Go(state string) {
	fn, ok := n.routes[state]
	if !ok {
		n.logger.Warn("no handler for state", zap.String("state", state))
		return
	}
	fn()
}

// PrintProfile writes the set fields of user as an aligned table.
func PrintProfile(w io.Writer, user profile.User) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rows := []struct {
		label string
		value string
	}{
		{"Username", user.Username},
		{"First name", user.FirstName},
		{"Last name", user.LastName},
		{"Affiliation", user.Affiliation},
		{"Github", user.GithubURL},
		{"Google Scholar", user.GoogleScholarURL},
		{"LinkedIn", user.LinkedinURL},
	}

	for _, row := range rows {
		if row.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row.label, row.value); err != nil {
			return err
		}
	}

	return tw.Flush()
}
