package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider over the Google GenAI SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiProvider creates a provider bound to one Gemini model.
func NewGeminiProvider(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// GenerateTurn sends the conversation and tool schemas to Gemini and
// returns its text and function calls in listed order.
func (p *GeminiProvider) GenerateTurn(ctx context.Context, req *Request) (*Response, error) {
	contents := buildContents(req.Messages)

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if len(req.Tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: buildDeclarations(req.Tools)}}
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	resp := &Response{}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return resp, nil
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.FunctionCall != nil {
			resp.Calls = append(resp.Calls, FunctionCall{
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
			continue
		}
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	resp.Text = strings.TrimSpace(text.String())

	p.logger.Debug("gemini turn generated",
		"model", p.model,
		"text_len", len(resp.Text),
		"calls", len(resp.Calls))

	return resp, nil
}

// buildContents renders the neutral history into genai contents. A tool
// round becomes a model content with the call parts followed by a user
// content with the matching function responses.
func buildContents(messages []Message) []*genai.Content {
	var contents []*genai.Content
	for _, m := range messages {
		if len(m.Calls) > 0 {
			callParts := make([]*genai.Part, 0, len(m.Calls))
			for _, call := range m.Calls {
				callParts = append(callParts, genai.NewPartFromFunctionCall(call.Name, call.Args))
			}
			contents = append(contents, &genai.Content{Role: string(RoleModel), Parts: callParts})

			resultParts := make([]*genai.Part, 0, len(m.Results))
			for _, result := range m.Results {
				resultParts = append(resultParts, genai.NewPartFromFunctionResponse(result.Name, map[string]any{
					"result": result.Text,
				}))
			}
			contents = append(contents, &genai.Content{Role: string(RoleUser), Parts: resultParts})
			continue
		}

		var role genai.Role = genai.RoleUser
		if m.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return contents
}

func buildDeclarations(tools []ToolDef) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		properties := make(map[string]*genai.Schema, len(tool.Params))
		for name, param := range tool.Params {
			properties[name] = &genai.Schema{
				Type:        schemaType(param.Type),
				Description: param.Description,
				Enum:        param.Enum,
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   tool.Required,
			},
		})
	}
	return decls
}

func schemaType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
