package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
)

// Directive syntax: [[tool:<id> {"param": "value"}]]. The parameter blob is
// optional and must be a JSON object when present.
var directivePattern = regexp.MustCompile(`\[\[tool:([a-zA-Z0-9_-]+)\s*(\{.*?\})?\]\]`)

// Invocation records one executed (or failed) directive for the response
// attachments. Ephemeral: never persisted beyond the response.
type Invocation struct {
	ToolId string                 `json:"tool_id"`
	Params map[string]interface{} `json:"params,omitempty"`
	Result string                 `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// Executor scans generated text for tool directives and substitutes results.
// Directives are processed independently in textual order; a failure is
// rendered as an inline error note and never aborts the response.
type Executor struct {
	registry *Registry
	logger   logger.ILogger
}

func NewExecutor(registry *Registry, log logger.ILogger) *Executor {
	return &Executor{registry: registry, logger: log}
}

// Process resolves every directive in text against the agent's allowed tool
// set (a subset of the global registry) and returns the substituted text
// plus the invocation records.
func (e *Executor) Process(ctx context.Context, text string, allowed map[string]bool) (string, []Invocation) {
	matches := directivePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var out strings.Builder
	var invocations []Invocation
	prev := 0

	for _, m := range matches {
		out.WriteString(text[prev:m[0]])
		prev = m[1]

		toolId := text[m[2]:m[3]]
		paramsJSON := "{}"
		if m[4] >= 0 {
			paramsJSON = text[m[4]:m[5]]
		}

		replacement, inv := e.run(ctx, toolId, paramsJSON, allowed)
		out.WriteString(replacement)
		invocations = append(invocations, inv)
	}
	out.WriteString(text[prev:])

	return out.String(), invocations
}

func (e *Executor) run(ctx context.Context, toolId, paramsJSON string, allowed map[string]bool) (string, Invocation) {
	inv := Invocation{ToolId: toolId}

	if !allowed[toolId] {
		inv.Error = "tool not available to this agent"
		return e.errorNote(toolId, inv.Error), inv
	}

	tool, ok := e.registry.Get(toolId)
	if !ok {
		inv.Error = "unknown tool"
		return e.errorNote(toolId, inv.Error), inv
	}

	var params map[string]interface{}
	if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
		inv.Error = "invalid parameters"
		e.logger.Warn("ToolExecutor", "Directive parameter parse failed", map[string]interface{}{
			"tool":  toolId,
			"error": err.Error(),
		})
		return e.errorNote(toolId, inv.Error), inv
	}
	inv.Params = params

	result, err := tool.Execute(ctx, params)
	if err != nil {
		inv.Error = err.Error()
		e.logger.Warn("ToolExecutor", "Tool execution failed", map[string]interface{}{
			"tool":  toolId,
			"error": err.Error(),
		})
		return e.errorNote(toolId, "execution failed"), inv
	}
	inv.Result = result

	return fmt.Sprintf("[%s]\n%s", tool.Name(), result), inv
}

func (e *Executor) errorNote(toolId, reason string) string {
	return fmt.Sprintf("[tool error: %s: %s]", toolId, reason)
}
