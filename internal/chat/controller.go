package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const apologyFormat = "Sorry, I'm having trouble connecting or processing your request right now. Please try again later. Details: %s"

// Controller owns the widget state and drives message exchanges against a
// View and a Transport.
type Controller struct {
	view      View
	transport Transport
	logger    *zap.Logger

	mu   sync.Mutex
	open bool
}

// NewController wires a controller. A nil logger discards diagnostics.
func NewController(view View, transport Transport, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		view:      view,
		transport: transport,
		logger:    logger,
	}
}

func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Toggle flips the widget. Opening moves focus to the input field.
func (c *Controller) Toggle() {
	c.mu.Lock()
	c.open = !c.open
	open := c.open
	c.mu.Unlock()

	c.view.SetWidgetOpen(open)
	if open {
		c.view.FocusInput()
	}
}

// Close hides the widget. Accumulated messages and in-flight exchanges are
// left alone.
func (c *Controller) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()

	c.view.SetWidgetOpen(false)
}

// Runner decides where an exchange's network call runs. It must eventually
// hand the result to Exchange.Finish on the thread that owns the View.
type Runner func(e *Exchange)

// Synchronous runs the exchange to completion on the calling goroutine.
func Synchronous(ctx context.Context) Runner {
	return func(e *Exchange) {
		e.Finish(e.Run(ctx))
	}
}

// Bind registers the widget handlers on the trigger source. Send and the
// submit key both submit the current input.
func (c *Controller) Bind(triggers Triggers, run Runner) {
	triggers.OnToggle(c.Toggle)
	triggers.OnClose(c.Close)

	send := func() {
		if e, ok := c.Begin(c.view.InputValue()); ok {
			run(e)
		}
	}
	triggers.OnSend(send)
	triggers.OnSubmitKey(send)
}

// Submit runs a whole exchange synchronously. It reports false when the
// trimmed message is empty and nothing was sent.
func (c *Controller) Submit(ctx context.Context, message string) bool {
	e, ok := c.Begin(message)
	if !ok {
		return false
	}
	e.Finish(e.Run(ctx))
	return true
}

// Begin performs the synchronous part of a submission: the user message and
// the loading placeholder are appended before any network call.
func (c *Controller) Begin(message string) (*Exchange, bool) {
	text := strings.TrimSpace(message)
	if text == "" {
		return nil, false
	}

	c.view.AppendMessage(text, ClassUser)
	c.view.ClearInput()
	c.view.ScrollToBottom()

	loading := c.view.AppendMessage(LoadingText, ClassBotLoading)
	c.view.ScrollToBottom()

	return &Exchange{
		controller: c,
		Message:    text,
		loading:    loading,
	}, true
}

// Exchange is one submitted message waiting for its reply.
type Exchange struct {
	controller *Controller
	Message    string
	loading    MessageID
}

// Result is what the transport produced for an exchange.
type Result struct {
	Reply Reply
	Err   error
}

// Run performs the network call. It touches no View state and may run on
// any goroutine.
func (e *Exchange) Run(ctx context.Context) Result {
	reply, err := e.controller.transport.Send(ctx, e.Message)
	return Result{Reply: reply, Err: err}
}

// Finish renders the outcome. Every failure becomes a visible error message
// and a diagnostic log entry; nothing is returned to the caller.
func (e *Exchange) Finish(r Result) {
	c := e.controller
	c.view.RemoveMessage(e.loading)

	if r.Err != nil {
		c.logFailure(e.Message, r.Err)
		c.view.AppendMessage(ErrorText(r.Err), ClassBotError)
		c.view.ScrollToBottom()
		return
	}

	c.view.AppendMessage(r.Reply.Response, ClassBot)
	c.view.ScrollToBottom()
}

// ErrorText is the apology shown for a failed exchange.
func ErrorText(err error) string {
	detail := "Unknown error"
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	return fmt.Sprintf(apologyFormat, detail)
}

// StatusCoder is implemented by transport errors that carry an HTTP status.
type StatusCoder interface {
	StatusCode() int
}

func (c *Controller) logFailure(message string, err error) {
	fields := []zap.Field{
		zap.Int("message_len", len(message)),
		zap.Error(err),
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		fields = append(fields, zap.Int("status", sc.StatusCode()))
	}
	c.logger.Error("error sending message to backend", fields...)
}
