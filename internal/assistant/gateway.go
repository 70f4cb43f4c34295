package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var errNoBackend = errors.New("no assistant backend configured")

// Gateway converses with a Backend on behalf of chat sessions.
type Gateway struct {
	backend  Backend
	timeout  time.Duration
	sampling Sampling
	tracer   trace.Tracer
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTimeout bounds each round trip. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithSampling overrides DefaultSampling.
func WithSampling(s Sampling) Option {
	return func(g *Gateway) { g.sampling = s }
}

// NewGateway returns a gateway over backend. A nil backend is allowed; every
// call then resolves to Unavailable.
func NewGateway(backend Backend, opts ...Option) *Gateway {
	g := &Gateway{
		backend:  backend,
		timeout:  60 * time.Second,
		sampling: DefaultSampling,
		tracer:   otel.Tracer("toolbox/assistant"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Backend returns the configured backend name, or "" when there is none.
func (g *Gateway) Backend() string {
	if g.backend == nil {
		return ""
	}
	return g.backend.Name()
}

// BuildRequest frames history plus the new user text. Any role other than
// user is sent as the model's own turn.
func (g *Gateway) BuildRequest(history []models.Message, text string) Request {
	turns := make([]Turn, 0, len(history)+1)
	for _, m := range history {
		role := TurnModel
		if m.Role == models.RoleUser {
			role = TurnUser
		}
		turns = append(turns, Turn{Role: role, Text: m.Content})
	}
	turns = append(turns, Turn{Role: TurnUser, Text: text})

	return Request{
		SystemInstruction: SystemInstruction,
		Turns:             turns,
		Sampling:          g.sampling,
	}
}

// Converse sends one user message with its prior history and returns the
// reply. It never fails: errors are logged and replaced by Unavailable, and
// an empty reply is replaced by EmptyReply.
func (g *Gateway) Converse(ctx context.Context, history []models.Message, text string) string {
	req := g.BuildRequest(history, text)

	ctx, span := g.tracer.Start(ctx, "assistant.converse",
		trace.WithAttributes(
			attribute.String("assistant.backend", g.Backend()),
			attribute.Int("assistant.turns", len(req.Turns)),
		),
	)
	defer span.End()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := g.generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error().Err(err).
			Str("backend", g.Backend()).
			Dur("duration", time.Since(start)).
			Msg("Assistant request failed")
		return Unavailable
	}

	if reply == "" {
		log.Warn().Str("backend", g.Backend()).Msg("Assistant returned an empty reply")
		return EmptyReply
	}

	log.Debug().
		Str("backend", g.Backend()).
		Int("reply_len", len(reply)).
		Dur("duration", time.Since(start)).
		Msg("Assistant replied")
	return reply
}

func (g *Gateway) generate(ctx context.Context, req Request) (reply string, err error) {
	if g.backend == nil {
		return "", errNoBackend
	}
	// Converse stays total even if the SDK panics.
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("assistant backend panicked")
			log.Error().Interface("panic", r).Str("backend", g.backend.Name()).Msg("Assistant backend panic")
		}
	}()
	return g.backend.Generate(ctx, req)
}
