package client

import (
	"github.com/sirupsen/logrus"
)

// Notifier receives user-facing messages from background work. Calls must
// not block.
type Notifier interface {
	Info(message string)
	Error(message string, err error)
}

type LogNotifier struct {
	Log *logrus.Logger
}

func (n LogNotifier) Info(message string) {
	n.Log.Info(message)
}

func (n LogNotifier) Error(message string, err error) {
	n.Log.WithField("error", err).Warn(message)
}

type discardNotifier struct{}

func (discardNotifier) Info(string)         {}
func (discardNotifier) Error(string, error) {}
