// Package exports moves note export requests through RabbitMQ. The HTTP side
// publishes a Request; the Consumer renders the user's notes to JSON, stores
// the file in S3 and mails a presigned download link.
package exports

import (
	"encoding/json"
	"errors"
	"fmt"
)

// QueueName is the durable queue carrying export requests.
const QueueName = "export:notes"

type Request struct {
	UserID      string `json:"userId"`
	TargetEmail string `json:"targetEmail"`
}

var ErrBadRequest = errors.New("bad export request")

// ParseRequest decodes a queued payload and rejects incomplete requests.
func ParseRequest(body []byte) (Request, error) {
	var r Request
	if err := json.Unmarshal(body, &r); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if r.UserID == "" || r.TargetEmail == "" {
		return Request{}, fmt.Errorf("%w: userId and targetEmail are required", ErrBadRequest)
	}
	return r, nil
}
