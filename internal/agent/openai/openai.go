package openai

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/roninagent/ronin/internal/agent"

	"github.com/sashabaranov/go-openai"
)

const systemPromptTemplate = `You are %s, an autonomous software engineering agent working in a shell session.

Respond to every observation with exactly one thought and one action:

<THOUGHT>
why you are taking the next step
</THOUGHT>
<ACTION>
the single command to run
</ACTION>

Available commands:
%s
Anything else is executed as a bash command. When the task is complete, use
the action "submit". To ask the user something, use the action
"ask_user <question>".`

// Provider is the reference Agent implementation backed by the OpenAI chat
// completion API. Chat history lives on the identity so snapshots carry it.
type Provider struct {
	client   *openai.Client
	identity *agent.Identity
}

func New(apiKey, baseURL string, identity *agent.Identity) *Provider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	return &Provider{
		client:   openai.NewClientWithConfig(cfg),
		identity: identity,
	}
}

func (p *Provider) Identity() *agent.Identity {
	return p.identity
}

func (p *Provider) Predict(ctx context.Context, task, observation string, info agent.SessionInfo) (agent.Prediction, error) {
	userContent := fmt.Sprintf("Task: %s\n\nObservation: %s", task, observation)
	p.identity.ChatHistory = append(p.identity.ChatHistory, agent.Message{
		Role:    openai.ChatMessageRoleUser,
		Content: userContent,
	})

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.systemPrompt(info),
		},
	}
	for _, m := range p.identity.ChatHistory {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.identity.Model,
		Messages:    messages,
		Temperature: p.identity.Temperature,
	})
	if err != nil {
		return agent.Prediction{}, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return agent.Prediction{}, fmt.Errorf("no choices returned")
	}

	raw := resp.Choices[0].Message.Content
	p.identity.ChatHistory = append(p.identity.ChatHistory, agent.Message{
		Role:    openai.ChatMessageRoleAssistant,
		Content: raw,
	})

	thought, action, err := agent.ParseResponse(raw)
	if err != nil {
		// A malformed response still gets logged raw; the step machine
		// re-parses it and surfaces the failure there.
		return agent.Prediction{Raw: raw}, nil
	}

	return agent.Prediction{Thought: thought, Action: action, Raw: raw}, nil
}

func (p *Provider) systemPrompt(info agent.SessionInfo) string {
	var docs strings.Builder
	if info != nil {
		commandDocs := info.CommandDocs()
		names := make([]string, 0, len(commandDocs))
		for name := range commandDocs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			doc := commandDocs[name]
			docs.WriteString(fmt.Sprintf("- %s: %s\n", doc.Signature, doc.Description))
		}
	}
	return fmt.Sprintf(systemPromptTemplate, p.identity.Name, docs.String())
}
