// Package tools exposes the posting checker as an MCP tool over stdio.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/raysh454/jobcheck/internal/analyzer"
	"github.com/raysh454/jobcheck/internal/logging"
	"github.com/raysh454/jobcheck/internal/model"
)

// ToolName is the single tool this server registers.
const ToolName = "check_job_posting"

var fieldDescriptions = map[string]string{
	"title":           "Job title",
	"company_profile": "Company description as shown in the ad",
	"description":     "Full job description",
	"requirements":    "Required skills and experience",
	"benefits":        "Offered benefits",
	"location":        "Job location",
	"salary_range":    "Salary or salary range, free form",
	"employment_type": "Full-time, Part-time, Contract, ...",
	"industry":        "Industry of the employer",
}

// Saver stores a verdict. The registry satisfies it.
type Saver interface {
	Save(ctx context.Context, v *analyzer.Verdict) (string, error)
}

// Checker handles tool calls.
type Checker struct {
	analyzer analyzer.Analyzer
	store    Saver
	logger   logging.Logger
}

// NewChecker wires the analyzer and an optional history store.
func NewChecker(a analyzer.Analyzer, store Saver, logger logging.Logger) (*Checker, error) {
	if a == nil {
		return nil, errors.New("tools: nil analyzer")
	}
	if logger == nil {
		return nil, errors.New("tools: nil logger")
	}
	return &Checker{
		analyzer: a,
		store:    store,
		logger:   logger.With(logging.Field{Key: "component", Value: "mcp-tools"}),
	}, nil
}

// Tool describes check_job_posting: nine optional string arguments.
func Tool() mcp.Tool {
	tool := mcp.NewTool(ToolName,
		mcp.WithDescription("Estimate how likely a job posting is fraudulent. Returns a probability, "+
			"the evidence behind it and advice. Every field is optional; fill in what the ad shows."),
	)
	props := make(map[string]interface{}, len(model.FieldNames))
	for _, name := range model.FieldNames {
		props[name] = map[string]interface{}{"type": "string", "description": fieldDescriptions[name]}
	}
	tool.InputSchema = mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
	}
	return tool
}

// NewServer builds an MCP server exposing the checker.
func NewServer(c *Checker, version string) *server.MCPServer {
	s := server.NewMCPServer("jobcheck", version)
	s.AddTool(Tool(), c.HandleCheck)
	return s
}

// HandleCheck analyzes the posting in the call arguments. Bad arguments are
// reported as tool errors, never as protocol errors.
func (c *Checker) HandleCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posting, err := postingFromArgs(request.Params.Arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	v := c.analyzer.Analyze(ctx, posting)
	if c.store != nil {
		if _, err := c.store.Save(ctx, v); err != nil {
			c.logger.Warn("saving analysis", logging.Field{Key: "error", Value: err.Error()})
		}
	}
	return mcp.NewToolResultText(Format(v)), nil
}

func postingFromArgs(raw any) (model.JobPosting, error) {
	var p model.JobPosting
	if raw == nil {
		return p, nil
	}
	args, ok := raw.(map[string]interface{})
	if !ok {
		return p, errors.New("invalid arguments format")
	}

	values := make([]string, len(model.FieldNames))
	for i, name := range model.FieldNames {
		v, present := args[name]
		if !present || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return p, fmt.Errorf("argument %s must be a string", name)
		}
		values[i] = s
	}
	p = model.JobPosting{
		Title:          values[0],
		CompanyProfile: values[1],
		Description:    values[2],
		Requirements:   values[3],
		Benefits:       values[4],
		Location:       values[5],
		SalaryRange:    values[6],
		EmploymentType: values[7],
		Industry:       values[8],
	}
	return p.Trimmed(), nil
}

// Format renders a verdict as plain text for an agent to read.
func Format(v *analyzer.Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fraud probability: %.1f%% (source: %s)\n", v.FraudProbability*100, v.Source)
	if v.Report != nil {
		fmt.Fprintf(&b, "Verdict: %s (%s confidence)\n", v.Report.Message, v.Report.Confidence)
		fmt.Fprintf(&b, "%s: %s\n", v.Report.Title, v.Report.Text)
	}
	if v.Analysis != nil && len(v.Analysis.Indicators) > 0 {
		b.WriteString("Indicators:\n")
		for _, ind := range v.Analysis.Indicators {
			fmt.Fprintf(&b, "- [%s] %s\n", ind.Severity, ind.Label)
		}
	}
	if v.Report != nil && len(v.Report.Details) > 0 {
		b.WriteString("Details:\n")
		for _, d := range v.Report.Details {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}
	if v.ID != "" {
		fmt.Fprintf(&b, "Analysis id: %s\n", v.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
