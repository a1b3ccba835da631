// Package vision talks to multimodal chat models that can look at a photo
// and describe it.
package vision

import (
	"context"
	"errors"
)

var ErrEmptyReply = errors.New("model returned an empty reply")

type Request struct {
	Model  string
	Prompt string
	// Image is a data URL or a publicly reachable image URL.
	Image string
	// JSON asks the model to constrain its reply to a JSON object.
	JSON bool
}

type Model interface {
	Generate(ctx context.Context, req Request) (string, error)
}
