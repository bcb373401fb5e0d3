// Package council orchestrates a three-stage deliberation across multiple
// LLMs. Every council member first answers the question independently, then
// every member ranks the anonymized answers of its peers, and finally a
// chairman model synthesizes the responses and rankings into one answer.
package council

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Realcryptoplato/llm-council/internal/metrics"
	"github.com/Realcryptoplato/llm-council/internal/openrouter"
)

// DefaultMaxConcurrency bounds how many model invocations run at once
// within a single stage.
const DefaultMaxConcurrency = 8

// ErrAllModelsFailed is returned when no council member produces a stage 1
// response. The run cannot continue: there is nothing to rank or
// synthesize.
var ErrAllModelsFailed = errors.New("all council models failed in stage 1")

// ChatClient is the interface for sending one chat completion to one model.
type ChatClient interface {
	ChatCompletion(ctx context.Context, model string, messages []openrouter.Message) (string, error)
}

// Config holds the configuration for a council.
type Config struct {
	Logger *slog.Logger
	Client ChatClient

	// InvokeTimeout bounds each individual model invocation. Defaults to
	// the client's 120s request timeout.
	InvokeTimeout time.Duration

	// MaxConcurrency bounds parallel invocations within a stage.
	MaxConcurrency int
}

func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.New("chat client is required")
	}
	if c.InvokeTimeout == 0 {
		c.InvokeTimeout = openrouter.DefaultTimeout
	}
	if c.InvokeTimeout < 0 {
		return errors.New("invoke timeout must be greater than 0")
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	if c.MaxConcurrency < 0 {
		return errors.New("max concurrency must be greater than 0")
	}
	return nil
}

// Council runs the three-stage deliberation.
type Council struct {
	cfg *Config
	log *slog.Logger
}

// New creates a new Council.
func New(cfg *Config) (*Council, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid council config: %w", err)
	}
	return &Council{
		cfg: cfg,
		log: cfg.Logger,
	}, nil
}

// Run executes the full deliberation for a question. A partial stage 1 is
// tolerated, a failed chairman degrades to a sentinel answer, but a stage 1
// with zero responses fails the run with ErrAllModelsFailed.
func (c *Council) Run(ctx context.Context, question string, members []string, chairman string) (*Result, error) {
	if question == "" {
		return nil, errors.New("question is required")
	}
	if len(members) == 0 {
		return nil, errors.New("council has no members")
	}
	if chairman == "" {
		return nil, errors.New("chairman model is required")
	}

	result := &Result{
		Chairman:      chairman,
		CouncilModels: distinctModels(members),
	}

	// Stage 1: independent responses.
	if c.log != nil {
		c.log.Info("council: stage 1 - collecting responses", "members", len(result.CouncilModels))
	}
	stageStart := time.Now()
	stage1 := c.collectResponses(ctx, question, members)
	metrics.StageDurations.WithLabelValues("stage1").Observe(time.Since(stageStart).Seconds())
	if err := ctx.Err(); err != nil {
		metrics.CouncilRunsTotal.WithLabelValues("canceled").Inc()
		return nil, err
	}
	if len(stage1) == 0 {
		metrics.CouncilRunsTotal.WithLabelValues("failure").Inc()
		return nil, ErrAllModelsFailed
	}
	result.Stage1 = stage1
	if c.log != nil {
		c.log.Info("council: stage 1 complete", "responses", len(stage1))
	}

	// Stage 2: anonymized peer ranking. Zero rankings is tolerated; the
	// chairman then synthesizes from stage 1 alone.
	if c.log != nil {
		c.log.Info("council: stage 2 - collecting rankings")
	}
	stageStart = time.Now()
	stage2, labelToModel := c.collectRankings(ctx, question, stage1, members)
	metrics.StageDurations.WithLabelValues("stage2").Observe(time.Since(stageStart).Seconds())
	if err := ctx.Err(); err != nil {
		metrics.CouncilRunsTotal.WithLabelValues("canceled").Inc()
		return nil, err
	}
	result.Stage2 = stage2
	result.LabelToModel = labelToModel
	if c.log != nil {
		c.log.Info("council: stage 2 complete", "rankings", len(stage2))
	}

	// Stage 3: chairman synthesis.
	if c.log != nil {
		c.log.Info("council: stage 3 - synthesizing answer", "chairman", chairman)
	}
	stageStart = time.Now()
	result.Answer = c.synthesize(ctx, question, stage1, stage2, chairman)
	metrics.StageDurations.WithLabelValues("stage3").Observe(time.Since(stageStart).Seconds())
	if err := ctx.Err(); err != nil {
		metrics.CouncilRunsTotal.WithLabelValues("canceled").Inc()
		return nil, err
	}
	if c.log != nil {
		c.log.Info("council: answer synthesized")
	}

	switch result.Answer {
	case AnswerChairmanFailed, AnswerSynthesisEmpty:
		metrics.CouncilRunsTotal.WithLabelValues("degraded").Inc()
	default:
		metrics.CouncilRunsTotal.WithLabelValues("success").Inc()
	}

	return result, nil
}
