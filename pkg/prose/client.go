// Package prose wraps the external prose-generation capability behind a
// small interface. The shipped implementation uses the Anthropic API; the
// pipeline treats the capability as opaque and replaceable.
package prose

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/memo-cli/internal/model"
)

// Client generates section prose from a resolved prompt and the project
// context.
type Client interface {
	GenerateProse(ctx context.Context, prompt string, pctx model.ProjectContext) (string, error)
}

// Options configures the Anthropic-backed client.
type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

// sdkClient implements Client using the official anthropic-sdk-go.
type sdkClient struct {
	client sdk.Client
	opts   Options
}

// NewClient creates a prose client backed by the Anthropic API.
func NewClient(apiKey string, opts Options) Client {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 2048
	}
	return &sdkClient{
		client: sdk.NewClient(
			option.WithAPIKey(apiKey),
		),
		opts: opts,
	}
}

// systemPrompt frames every generation request. Deal facts arrive through
// the user prompt; the system block pins register and format.
const systemPrompt = `You are a senior private-markets analyst drafting sections of
institutional deal documents. Write in a measured, professional register.
Return only the section body: no headings, no preamble, no markdown fences.`

func (c *sdkClient) GenerateProse(ctx context.Context, prompt string, pctx model.ProjectContext) (string, error) {
	user := prompt + "\n\n" + contextDigest(pctx)

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.opts.Model),
		MaxTokens: c.opts.MaxTokens,
		System: []sdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(user)),
		},
		Temperature: sdk.Float(c.opts.Temperature),
	})
	if err != nil {
		return "", eris.Wrap(err, "prose: create message")
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", eris.New("prose: empty completion")
	}

	zap.L().Debug("prose: generated",
		zap.String("model", string(msg.Model)),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return text, nil
}

// contextDigest renders the deal facts the model may draw on. Only fields
// with values are included.
func contextDigest(pctx model.ProjectContext) string {
	var b strings.Builder
	b.WriteString("Deal context:\n")
	writeFact(&b, "Project", pctx.Name)
	writeFact(&b, "Sector", pctx.Sector)
	writeFact(&b, "Geography", pctx.Geography)
	writeFact(&b, "Stage", pctx.Stage)
	writeFact(&b, "Risk profile", pctx.RiskProfile)
	if pctx.DealValue > 0 {
		writeFact(&b, "Deal value", model.FormatMillions(pctx.DealValue))
	}
	if pctx.TeamSize > 0 {
		writeFact(&b, "Deal team size", fmt.Sprintf("%d", pctx.TeamSize))
	}
	return b.String()
}

func writeFact(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString("- ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}
