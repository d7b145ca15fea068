// Package mailrelay forwards contact form messages to an external email
// delivery service.
package mailrelay

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zachkp/portfolio/internal/config"
)

var (
	// ErrNotConfigured means the relay is missing credentials or identifiers.
	ErrNotConfigured = errors.New("mail relay not configured")
	// ErrRejected means the relay answered with a non-success status.
	ErrRejected = errors.New("mail relay rejected message")
)

// Message is one contact form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Relay delivers messages. A nil error means the service accepted the message.
type Relay interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// New builds the relay selected by cfg.Relay.
func New(cfg config.Mail) (Relay, error) {
	switch cfg.Relay {
	case config.RelayEmailJS, "":
		return NewEmailJS(cfg.EmailJS, nil), nil
	case config.RelaySMTP:
		return NewSMTP(cfg.SMTP, cfg.To), nil
	default:
		return nil, fmt.Errorf("unknown mail relay %q", cfg.Relay)
	}
}

// Traced wraps r so every Send runs in its own client span.
func Traced(r Relay) Relay {
	return traced{next: r}
}

type traced struct {
	next Relay
}

func (t traced) Name() string { return t.next.Name() }

func (t traced) Send(ctx context.Context, msg Message) error {
	ctx, span := otel.Tracer("github.com/Zachkp/portfolio/internal/mailrelay").Start(ctx, "mailrelay.Send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("mailrelay.name", t.next.Name())),
	)
	defer span.End()

	err := t.next.Send(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
