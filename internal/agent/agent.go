// Package agent composes retrieval and generation into the summarize
// and multi-step planning operations.
package agent

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/paperscout/paperscout/internal/llm"
	"github.com/paperscout/paperscout/internal/prompt"
	"github.com/paperscout/paperscout/internal/vectordb"
)

// DefaultTopK documents are retrieved for the structured summary.
const DefaultTopK = 5

// compareTopK documents feed the methods comparison.
const compareTopK = 6

// Retriever is the slice of the vector store the agent needs.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]vectordb.Result, error)
}

// Agent holds the injected retrieval and generation capabilities.
type Agent struct {
	retriever Retriever
	provider  llm.Provider
	model     string
	logger    *zap.Logger
}

// New creates an agent. model may be empty to use the provider default.
func New(retriever Retriever, provider llm.Provider, model string, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		retriever: retriever,
		provider:  provider,
		model:     model,
		logger:    logger,
	}
}

// Summarize retrieves topK documents for the query and generates the
// structured summary over them. The generated text is returned verbatim,
// without validating that the output contract was honored.
func (a *Agent) Summarize(ctx context.Context, query string, topK int) (string, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	results, err := a.retriever.Search(ctx, query, topK)
	if err != nil {
		return "", fmt.Errorf("retrieving documents: %w", err)
	}

	userPrompt := prompt.UserPrompt(query, snippets(results))
	return a.complete(ctx, prompt.SystemPrompt()+"\n\n"+userPrompt)
}

// ExecuteTask runs a single planner task and returns its result key and
// generated text.
func (a *Agent) ExecuteTask(ctx context.Context, query string, task Task) (string, string, error) {
	switch task {
	case TaskSummarize:
		text, err := a.Summarize(ctx, query, DefaultTopK)
		return task.Key(), text, err

	case TaskCompareMethods:
		results, err := a.retriever.Search(ctx, query, compareTopK)
		if err != nil {
			return task.Key(), "", fmt.Errorf("retrieving documents: %w", err)
		}
		text, err := a.complete(ctx, prompt.ComparePrompt(snippets(results)))
		return task.Key(), text, err

	case TaskSlideOutline:
		text, err := a.complete(ctx, prompt.SlideOutlinePrompt(query))
		return task.Key(), text, err

	default:
		return "", "", fmt.Errorf("unknown task %v", task)
	}
}

// Plan executes tasks in the given order, accumulating results. Tasks
// are independent; a failed task does not abort the remaining ones.
// Completed results are returned alongside the joined task errors.
func (a *Agent) Plan(ctx context.Context, query string, tasks []Task) (PlanResult, error) {
	result := make(PlanResult)
	var errs []error

	for _, task := range tasks {
		key, text, err := a.ExecuteTask(ctx, query, task)
		if err != nil {
			a.logger.Warn("plan task failed", zap.Stringer("task", task), zap.Error(err))
			errs = append(errs, fmt.Errorf("task %s: %w", task, err))
			continue
		}
		result[key] = text
	}

	return result, errors.Join(errs...)
}

// PlanAndExecute is the string-facing plan entry point. Unrecognized
// task names are skipped (and returned) rather than rejected, so a
// request containing only bogus names yields an empty result and no
// error.
func (a *Agent) PlanAndExecute(ctx context.Context, query string, names []string) (PlanResult, []string, error) {
	var tasks []Task
	var skipped []string
	for _, name := range names {
		task, err := ParseTask(name)
		if err != nil {
			a.logger.Warn("skipping unrecognized task", zap.String("task", name))
			skipped = append(skipped, name)
			continue
		}
		tasks = append(tasks, task)
	}

	result, err := a.Plan(ctx, query, tasks)
	return result, skipped, err
}

// complete issues one deterministic completion: the whole prompt is sent
// as a single user message at temperature 0.
func (a *Agent) complete(ctx context.Context, text string) (string, error) {
	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model:       a.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: text}},
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// snippets converts search results to prompt snippets, preserving
// retrieval order for positional citation stability.
func snippets(results []vectordb.Result) []prompt.Snippet {
	out := make([]prompt.Snippet, len(results))
	for i, r := range results {
		out[i] = prompt.Snippet{Title: r.Title, URL: r.URL, Snippet: r.Abstract}
	}
	return out
}
