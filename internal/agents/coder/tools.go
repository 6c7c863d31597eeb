// tools.go handles registering tools for the CoderAgent
package coder

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ethanbaker/repogen/internal/generator"
	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"
)

// ToolName is the name the model calls the generator by
const ToolName = "generate_code_and_create_repo"

func (ca *CoderAgent) generateTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name: ToolName,
		Description: "Generate project code from a spec and create a GitHub repo with those files. " +
			"Required: spec. Use an empty string for name, description, organization or default_branch to take the default; " +
			"a name is derived from the spec when omitted.",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"spec": map[string]any{
					"type":        "string",
					"description": "Description of the project to generate",
				},
				"name": map[string]any{
					"type":        "string",
					"description": "Repository name, or empty to derive one from the spec",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Repository description, or empty",
				},
				"private": map[string]any{
					"type":        "boolean",
					"description": "Whether the repository is private (default true)",
				},
				"organization": map[string]any{
					"type":        "string",
					"description": "GitHub organization, or empty for the authenticated user",
				},
				"default_branch": map[string]any{
					"type":        "string",
					"description": "Branch to create files on, or empty for main",
				},
			},
			"additionalProperties": false,
			"required":             []string{"spec", "name", "description", "private", "organization", "default_branch"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return ca.handleGenerate(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}

// handleGenerate runs one generation and returns the repository details
func (ca *CoderAgent) handleGenerate(ctx context.Context, arguments string) (map[string]any, error) {
	params := struct {
		Spec          string `json:"spec"`
		Name          string `json:"name"`
		Description   string `json:"description"`
		Private       *bool  `json:"private"`
		Organization  string `json:"organization"`
		DefaultBranch string `json:"default_branch"`
	}{}

	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	visibility := generator.VisibilityPrivate
	if params.Private != nil && !*params.Private {
		visibility = generator.VisibilityPublic
	}

	result, err := ca.generator.Generate(ctx, generator.Request{
		Spec:          params.Spec,
		Name:          params.Name,
		Description:   params.Description,
		Visibility:    visibility,
		Organization:  params.Organization,
		DefaultBranch: params.DefaultBranch,
	})
	if err != nil {
		log.Printf("[CODER-AGENT]: Generation failed: %v", err)
		return nil, err
	}

	return map[string]any{
		"full_name": result.FullName,
		"url":       result.URL,
		"private":   result.IsPrivate,
	}, nil
}
