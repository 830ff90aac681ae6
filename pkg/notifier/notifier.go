// Package notifier delivers alert messages to an operator channel.
package notifier

import (
	"errors"

	"golang-signal-scanner/pkg/logger"
)

// Notifier sends one message. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(title, body string) error
}

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a Notifier that writes each message to the log.
func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{logger: log}
}

func (n *logNotifier) Notify(title, body string) error {
	n.logger.Info("Alert dispatched", logger.StringField("title", title), logger.StringField("body", body))
	return nil
}

type multiNotifier []Notifier

// NewMultiNotifier fans a message out to every notifier. All are attempted; their errors are joined.
func NewMultiNotifier(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) Notify(title, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Func adapts a function to Notifier.
type Func func(title, body string) error

func (f Func) Notify(title, body string) error {
	return f(title, body)
}
