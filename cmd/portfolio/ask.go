package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/api"
	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/chat"
)

var parallel int

var askCmd = &cobra.Command{
	Use:   "ask [message]...",
	Short: "Send messages to the chat endpoint without the interactive page",
	Long: `Sends every message to the chat endpoint at once and prints the
conversation. Replies are shown in the order they arrive, so a quick reply to
a later message can appear before a slow one.

Example:
  portfolio ask "What do you work on?" "How can I reach you?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "Maximum requests in flight")
}

type finished struct {
	exchange *chat.Exchange
	result   chat.Result
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := chat.NewMemoryView()
	controller := chat.NewController(view, api.NewClient(cfg.Endpoint), logger)

	var started []*chat.Exchange
	for _, message := range args {
		if e, ok := controller.Begin(message); ok {
			started = append(started, e)
		}
	}
	if len(started) == 0 {
		return errors.New("nothing to send: every message is blank")
	}

	results := make(chan finished)
	var g errgroup.Group
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	go func() {
		for _, e := range started {
			e := e // per-iteration copy; go.mod targets go1.21 loop semantics
			g.Go(func() error {
				results <- finished{exchange: e, result: e.Run(ctx)}
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	// Only this goroutine touches the view after Begin.
	for f := range results {
		f.exchange.Finish(f.result)
	}

	printConversation(cmd.OutOrStdout(), view.List.Messages())
	return nil
}

func printConversation(w io.Writer, messages []chat.Message) {
	for _, msg := range messages {
		label := "bot"
		switch msg.Role() {
		case chat.RoleUser:
			label = "you"
		case chat.RoleBotError:
			label = "error"
		}
		fmt.Fprintf(w, "%-5s %s\n", label+":", chat.PlainText(msg.Text))
	}
}
