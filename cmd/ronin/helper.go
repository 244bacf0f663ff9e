package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/roninagent/ronin/internal/agent"
	"github.com/roninagent/ronin/internal/agent/openai"
	"github.com/roninagent/ronin/internal/session"
	"github.com/roninagent/ronin/internal/store"
)

func buildAgent() *openai.Provider {
	identity := &agent.Identity{
		Name:        cfg.Agent.Name,
		Model:       cfg.Agent.Model,
		Temperature: cfg.Agent.Temperature,
	}
	return openai.New(cfg.Agent.APIKey, cfg.Agent.BaseURL, identity)
}

// stdinInput answers the agent's questions from the terminal. An empty line
// or EOF counts as no input and ends the session.
func stdinInput() agent.InputSource {
	reader := bufio.NewReader(os.Stdin)
	return func() (string, bool) {
		fmt.Print("(ronin) > ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return "", false
		}
		return line, true
	}
}

// driveSession processes one event per StepEvent call so Ctrl-C is picked up
// between events and can be relayed to the agent as an interrupt. maxSteps
// bounds the whole run; 0 means unbounded.
func driveSession(ctx context.Context, sess *session.Session, maxSteps int) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	reader := bufio.NewReader(os.Stdin)
	steps := 0
	for {
		select {
		case <-sigChan:
			fmt.Println("\nInterrupted. Message for the agent (empty line to stop):")
			line, _ := reader.ReadString('\n')
			line = strings.TrimSpace(line)
			if line == "" {
				fmt.Println(session.MsgStopped)
				return nil
			}
			sess.Interrupt(line)
		default:
		}

		msg, done := sess.StepEvent(ctx)
		if done {
			fmt.Println(msg)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		steps++
		if maxSteps > 0 && steps >= maxSteps {
			fmt.Println(session.MsgStepLimit)
			return nil
		}
	}
}

func saveSession(id string, snap session.Snapshot) error {
	st, err := store.Open(cfg.Workspace.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(id, snap); err != nil {
		return err
	}
	fmt.Printf("Session saved as %s\n", id)
	return nil
}
