package sessions_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/civiltoolbox/toolbox/internal/catalog"
	"github.com/civiltoolbox/toolbox/internal/engine"
	"github.com/civiltoolbox/toolbox/internal/sessions"
	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock is a settable clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// ── Calculators ──────────────────────────────────────────────

func rebar(t *testing.T) models.Tool {
	t.Helper()
	tool, err := catalog.Default().Lookup("rebar-weight")
	require.NoError(t, err)
	return tool
}

func TestCalculatorStore_Lifecycle(t *testing.T) {
	s := sessions.NewCalculatorStore()

	sess := s.Open(rebar(t))
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "rebar-weight", sess.ToolID)
	assert.Equal(t, models.Inputs{"dia": 12, "length": 12}, sess.Inputs)
	out, ok := sess.Result.Lookup("Total Weight")
	require.True(t, ok)
	assert.Equal(t, "10.65 kg", out.Display)

	edited, err := s.Edit(sess.ID, "dia", "16")
	require.NoError(t, err)
	assert.Equal(t, 16.0, edited.Inputs["dia"])
	out, _ = edited.Result.Lookup("Weight per Meter")
	assert.Equal(t, "1.578 kg/m", out.Display)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, edited.Inputs, got.Inputs)

	require.NoError(t, s.Close(sess.ID))
	_, err = s.Get(sess.ID)
	assert.True(t, errors.Is(err, sessions.ErrNotFound))
	assert.True(t, errors.Is(s.Close(sess.ID), sessions.ErrNotFound))
}

func TestCalculatorStore_EditErrors(t *testing.T) {
	s := sessions.NewCalculatorStore()
	sess := s.Open(rebar(t))

	_, err := s.Edit("missing", "dia", "1")
	assert.True(t, errors.Is(err, sessions.ErrNotFound))

	_, err = s.Edit(sess.ID, "weight", "1")
	assert.True(t, errors.Is(err, engine.ErrUnknownField))
}

func TestCalculatorStore_SessionsAreIsolated(t *testing.T) {
	s := sessions.NewCalculatorStore()
	a := s.Open(rebar(t))
	b := s.Open(rebar(t))

	_, err := s.Edit(a.ID, "length", "1")
	require.NoError(t, err)

	got, err := s.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Inputs["length"])
}

func TestCalculatorStore_ConcurrentEdits(t *testing.T) {
	s := sessions.NewCalculatorStore()
	sess := s.Open(rebar(t))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Edit(sess.ID, "length", "12")
		}()
	}
	wg.Wait()

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Inputs["length"])
}

func TestCalculatorStore_Report(t *testing.T) {
	s := sessions.NewCalculatorStore()
	sess := s.Open(rebar(t))

	var b strings.Builder
	require.NoError(t, s.Report(sess.ID, &b))
	assert.Contains(t, b.String(), "10.65 kg")

	assert.True(t, errors.Is(s.Report("missing", &b), sessions.ErrNotFound))
}

func TestCalculatorStore_SweepIdle(t *testing.T) {
	clock := newFakeClock()
	s := sessions.NewCalculatorStore(sessions.WithClock(clock.Now))

	stale := s.Open(rebar(t))
	clock.Advance(time.Hour)
	fresh := s.Open(rebar(t))

	removed := s.SweepIdle(clock.Now().Add(-30 * time.Minute))
	assert.Equal(t, 1, removed)
	_, err := s.Get(stale.ID)
	assert.Error(t, err)
	_, err = s.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestCalculatorStore_ReadsKeepSessionAlive(t *testing.T) {
	clock := newFakeClock()
	s := sessions.NewCalculatorStore(sessions.WithClock(clock.Now))

	viewed := s.Open(rebar(t))
	printed := s.Open(rebar(t))
	clock.Advance(time.Hour)

	_, err := s.Get(viewed.ID)
	require.NoError(t, err)
	require.NoError(t, s.Report(printed.ID, io.Discard))
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 0, s.SweepIdle(clock.Now().Add(-30*time.Minute)))
	assert.Equal(t, 2, s.Len())
}

// ── Conversations ────────────────────────────────────────────

type echo struct {
	mu      sync.Mutex
	seen    [][]models.Message
	block   chan struct{}
	entered chan struct{}
}

func (e *echo) Converse(ctx context.Context, history []models.Message, text string) string {
	e.mu.Lock()
	e.seen = append(e.seen, history)
	e.mu.Unlock()
	if e.entered != nil {
		e.entered <- struct{}{}
	}
	if e.block != nil {
		<-e.block
	}
	return "re: " + text
}

func TestConversationStore_Send(t *testing.T) {
	gw := &echo{}
	s := sessions.NewConversationStore(gw)
	conv := s.Create()
	assert.Empty(t, conv.Messages)

	reply, got, err := s.Send(context.Background(), conv.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, models.Message{Role: models.RoleAssistant, Content: "re: hello"}, reply)
	assert.Len(t, got.Messages, 2)
	assert.False(t, got.Pending)

	_, got, err = s.Send(context.Background(), conv.ID, "again")
	require.NoError(t, err)
	assert.Equal(t, []models.Message{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "re: hello"},
		{Role: models.RoleUser, Content: "again"},
		{Role: models.RoleAssistant, Content: "re: again"},
	}, got.Messages)

	// The gateway sees prior history only; the new text travels separately.
	assert.Empty(t, gw.seen[0])
	assert.Len(t, gw.seen[1], 2)
}

func TestConversationStore_BusyWhileOutstanding(t *testing.T) {
	gw := &echo{block: make(chan struct{}), entered: make(chan struct{})}
	s := sessions.NewConversationStore(gw)
	conv := s.Create()

	done := make(chan error, 1)
	go func() {
		_, _, err := s.Send(context.Background(), conv.ID, "first")
		done <- err
	}()
	<-gw.entered

	pending, err := s.Get(conv.ID)
	require.NoError(t, err)
	assert.True(t, pending.Pending)
	assert.Len(t, pending.Messages, 1)

	_, _, err = s.Send(context.Background(), conv.ID, "second")
	assert.True(t, errors.Is(err, sessions.ErrBusy))

	close(gw.block)
	require.NoError(t, <-done)

	// Once released, the conversation accepts the next message.
	gw.entered = nil
	_, got, err := s.Send(context.Background(), conv.ID, "third")
	require.NoError(t, err)
	assert.Len(t, got.Messages, 4)
}

func TestConversationStore_Delete(t *testing.T) {
	s := sessions.NewConversationStore(&echo{})
	conv := s.Create()
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(conv.ID))
	assert.Equal(t, 0, s.Len())

	_, _, err := s.Send(context.Background(), conv.ID, "hi")
	assert.True(t, errors.Is(err, sessions.ErrNotFound))
	assert.True(t, errors.Is(s.Delete(conv.ID), sessions.ErrNotFound))
}

func TestConversationStore_SweepKeepsPending(t *testing.T) {
	clock := newFakeClock()
	gw := &echo{block: make(chan struct{}), entered: make(chan struct{})}
	s := sessions.NewConversationStore(gw, sessions.WithClock(clock.Now))

	busy := s.Create()
	idle := s.Create()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = s.Send(context.Background(), busy.ID, "slow")
	}()
	<-gw.entered

	clock.Advance(time.Hour)
	assert.Equal(t, 1, s.SweepIdle(clock.Now().Add(-time.Minute)))
	_, err := s.Get(idle.ID)
	assert.Error(t, err)
	_, err = s.Get(busy.ID)
	assert.NoError(t, err)

	close(gw.block)
	<-done
}

func TestConversationStore_GetKeepsConversationAlive(t *testing.T) {
	clock := newFakeClock()
	s := sessions.NewConversationStore(&echo{}, sessions.WithClock(clock.Now))

	conv := s.Create()
	clock.Advance(time.Hour)
	_, err := s.Get(conv.ID)
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 0, s.SweepIdle(clock.Now().Add(-30*time.Minute)))
	_, err = s.Get(conv.ID)
	assert.NoError(t, err)
}

// ── Janitor ──────────────────────────────────────────────────

func TestJanitor_RunCycle(t *testing.T) {
	clock := newFakeClock()
	calcs := sessions.NewCalculatorStore(sessions.WithClock(clock.Now))
	convs := sessions.NewConversationStore(&echo{}, sessions.WithClock(clock.Now))
	calcs.Open(rebar(t))
	convs.Create()

	j := sessions.NewJanitor(30*time.Minute, time.Minute, map[string]sessions.Sweeper{
		"calculators":   calcs,
		"conversations": convs,
	}, sessions.WithClock(clock.Now))

	assert.Equal(t, map[string]int{"calculators": 0, "conversations": 0}, j.RunCycle())

	clock.Advance(31 * time.Minute)
	assert.Equal(t, map[string]int{"calculators": 1, "conversations": 1}, j.RunCycle())
	assert.Equal(t, 0, calcs.Len())
	assert.Equal(t, 0, convs.Len())
}

func TestJanitor_StartStops(t *testing.T) {
	j := sessions.NewJanitor(time.Minute, 5*time.Millisecond, map[string]sessions.Sweeper{
		"calculators": sessions.NewCalculatorStore(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		j.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestJanitor_DisabledReturnsImmediately(t *testing.T) {
	j := sessions.NewJanitor(0, time.Minute, nil)
	j.Start(context.Background())
}
