// Package assistant is the gateway to the hosted conversational model that
// backs the dashboard's chat panel.
//
// The Gateway frames each request as a fixed system instruction, the prior
// history, and the new user text, then makes exactly one round trip to a
// Backend. Converse is total: backend errors, timeouts and empty replies are
// logged and collapsed into fixed fallback strings, so callers always get
// text back. The gateway keeps no conversation state of its own.
package assistant

import (
	"context"
)

// Fallback replies.
const (
	EmptyReply  = "I'm sorry, I couldn't process that request."
	Unavailable = "The AI assistant is currently unavailable. Please try again later."
)

// SystemInstruction frames every conversation.
const SystemInstruction = `You are a professional Civil Engineering Assistant for an engineering calculator dashboard.
You help with engineering calculations, structural design concepts, material estimation and site management.
When applicable, refer to the relevant standards such as IS Codes (Indian Standards), ACI and Eurocodes.
Keep a professional, technical tone and be concise.
If the user asks about something a calculator in this app handles (unit conversion, cement, brick masonry, concrete mix, rebar weight, stirrups, slab design, footings, loads, land area, water tanks, EMI or cost estimation), point them to that calculator.`

// TurnRole is a speaker in the backend's vocabulary.
type TurnRole string

const (
	TurnUser  TurnRole = "user"
	TurnModel TurnRole = "model"
)

// Turn is one message sent to the backend.
type Turn struct {
	Role TurnRole
	Text string
}

// Sampling is the generation config sent with every request.
type Sampling struct {
	Temperature     float32
	TopP            float32
	MaxOutputTokens int
}

// DefaultSampling is used for every chat request.
var DefaultSampling = Sampling{
	Temperature:     0.7,
	TopP:            0.95,
	MaxOutputTokens: 1000,
}

// Request is the outbound side of the backend boundary.
type Request struct {
	SystemInstruction string
	Turns             []Turn
	Sampling          Sampling
}

// Backend is any hosted chat-completion capability.
type Backend interface {
	// Name identifies the backend in logs and traces.
	Name() string
	// Generate performs one round trip and returns the reply text.
	Generate(ctx context.Context, req Request) (string, error)
}
