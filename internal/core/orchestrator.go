package core

import (
	"context"
	"fmt"

	"aita/internal/checklist"
	"aita/internal/export"
	"aita/internal/llm"
	"aita/internal/pack"
	"aita/internal/repository"
	"aita/pkg/schema"
)

// RunOptions locates the input file and the output directory of one run.
type RunOptions struct {
	Input  string
	OutDir string
}

// Report summarizes a successful run.
type Report struct {
	RunID          string
	Requirements   int
	ChecklistIdeas int
	SuggestedIdeas int
	TestCases      int
	Paths          []string
}

// Orchestrator runs the load, generate, build, export and write pipeline.
type Orchestrator struct {
	logger    Logger
	suggester *llm.Suggester
}

// NewOrchestrator creates an orchestrator. A nil suggester disables
// suggestions.
func NewOrchestrator(logger Logger, suggester *llm.Suggester) *Orchestrator {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Orchestrator{
		logger:    logger,
		suggester: suggester,
	}
}

// NewOrchestratorFromConfig wires the offline suggestion model according
// to cfg.
func NewOrchestratorFromConfig(ctx context.Context, cfg *Config, logger Logger) *Orchestrator {
	return NewOrchestrator(logger, llm.NewStubSuggester(ctx, cfg.Suggestions(), logger))
}

// Run executes the whole pipeline once. Input problems are returned as
// *InputError, write failures as *IOError; any other error is a defect.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	runID, err := schema.NewRunID()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}
	log := &runLogger{Logger: o.logger, runID: runID}

	log.Info("run started", "input", opts.Input, "out_dir", opts.OutDir)

	reqs, err := repository.LoadRequirementsCSV(opts.Input)
	if err != nil {
		log.Error("failed to load requirements", "error", err.Error())
		return nil, &InputError{Path: opts.Input, Err: err}
	}
	if len(reqs) == 0 {
		log.Error("input contains no requirements")
		return nil, &InputError{Path: opts.Input, Err: ErrNoRequirements}
	}
	log.Info("requirements loaded", "count", len(reqs))

	ideas, err := checklist.GenerateAll(reqs)
	if err != nil {
		return nil, fmt.Errorf("checklist: %w", err)
	}
	checklistCount := len(ideas)

	var suggested []schema.TestIdea
	if o.suggester != nil {
		suggested = o.suggester.SuggestAll(ctx, reqs)
		ideas = append(ideas, suggested...)
	}
	log.Info("test ideas generated",
		"checklist", checklistCount,
		"suggested", len(suggested),
		"total", len(ideas),
	)

	cases, err := pack.Build(reqs, ideas)
	if err != nil {
		return nil, fmt.Errorf("build test pack: %w", err)
	}
	if len(cases) == 0 {
		log.Warn("test pack is empty")
	}
	log.Info("test pack built", "test_cases", len(cases))

	artifacts, err := export.Artifacts(cases)
	if err != nil {
		return nil, fmt.Errorf("export test pack: %w", err)
	}

	paths, err := repository.NewRepository(opts.OutDir).WritePack(runID, artifacts)
	if err != nil {
		log.Error("failed to write test pack", "error", err.Error())
		return nil, &IOError{Op: "write", Path: opts.OutDir, Err: err}
	}
	for _, p := range paths {
		log.Info("artifact written", "path", p)
	}

	return &Report{
		RunID:          runID,
		Requirements:   len(reqs),
		ChecklistIdeas: checklistCount,
		SuggestedIdeas: len(suggested),
		TestCases:      len(cases),
		Paths:          paths,
	}, nil
}

// runLogger tags every entry with the run id.
type runLogger struct {
	Logger
	runID string
}

func (l *runLogger) Info(msg string, fields ...any) {
	l.Logger.Info(msg, append([]any{"run_id", l.runID}, fields...)...)
}

func (l *runLogger) Warn(msg string, fields ...any) {
	l.Logger.Warn(msg, append([]any{"run_id", l.runID}, fields...)...)
}

func (l *runLogger) Error(msg string, fields ...any) {
	l.Logger.Error(msg, append([]any{"run_id", l.runID}, fields...)...)
}
