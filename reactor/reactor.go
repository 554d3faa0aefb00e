package reactor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/martinemde/reactor/llm"
)

// Phase is the loop controller's current state.
type Phase string

const (
	PhaseThinking   Phase = "thinking"
	PhaseActing     Phase = "acting"
	PhaseObserving  Phase = "observing"
	PhaseTerminated Phase = "terminated"
	PhaseFailed     Phase = "failed"
)

// repeatedActionWindow is how many trailing actions are examined for a
// repeating pattern before a warning is logged.
const repeatedActionWindow = 4

// Reactor drives the thought → action → observation cycle over an Agent
// until the terminal final_answer tool is invoked or the iteration budget is
// exhausted. One Reactor runs one question at a time on a single goroutine.
type Reactor struct {
	agent  *Agent
	logger *slog.Logger
	trace  *Trace
}

// NewReactor creates a Reactor and its Agent. The config's system prompt
// defaults to the reason+act prompt, and the reserved final_answer tool is
// registered when the config does not already carry it.
func NewReactor(cfg Config, opts ...AgentOption) (*Reactor, error) {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	hasFinal := false
	for _, def := range cfg.Tools {
		if def.Name == FinalAnswerToolName {
			hasFinal = true
			break
		}
	}
	if !hasFinal {
		cfg.Tools = append(cfg.Tools, FinalAnswerTool())
	}

	agent, err := NewAgent(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return &Reactor{
		agent:  agent,
		logger: agent.logger,
		trace:  agent.trace,
	}, nil
}

// Agent returns the underlying agent.
func (r *Reactor) Agent() *Agent { return r.agent }

// RunLoop answers a question through iterative reasoning cycles. It returns
// the final result ({"answer": ...}) on termination, and in every case the
// transcript accumulated so far, so failures can be diagnosed from the
// partial history.
func (r *Reactor) RunLoop(ctx context.Context, question string) (map[string]any, *Transcript, error) {
	transcript := r.agent.Transcript()
	maxIterations := r.agent.cfg.MaxIterations

	transcript.Append(llm.UserMessage(question))
	r.trace.Add(TraceConversationStart, question, map[string]any{"question": question})

	var actionSigs []string

	for iteration := 1; iteration <= maxIterations; iteration++ {
		// THINKING
		thought, err := r.agent.Complete(ctx, thinkingDirective)
		if err != nil {
			return nil, transcript, err
		}
		r.logger.Info("thought", "iteration", iteration, "text", thought)
		r.trace.Add(TraceThought, thought, map[string]any{"iteration": iteration})

		// ACTING
		inv, err := r.nextAction(ctx, iteration)
		if err != nil {
			return nil, transcript, err
		}
		r.logger.Info("action", "iteration", iteration, "name", inv.Name)
		r.trace.Add(TraceAction, inv.Name, map[string]any{
			"iteration": iteration,
			"action":    inv.Name,
			"arguments": inv.Arguments,
		})

		if inv.Name == FinalAnswerToolName {
			answer, err := r.agent.registry.Execute(inv.Name, inv.Arguments)
			if err != nil {
				return nil, transcript, err
			}
			result := map[string]any{"answer": answer}
			r.trace.Add(TraceFinalAnswer, fmt.Sprintf("%v", answer), map[string]any{"iteration": iteration})
			return result, transcript, nil
		}

		actionSigs = append(actionSigs, actionSignature(inv.Name, inv.Arguments))
		if DetectRepeatedActions(actionSigs, repeatedActionWindow) {
			msg := fmt.Sprintf("the last %d actions follow a repeating pattern", repeatedActionWindow)
			r.logger.Warn("repeated actions detected", "window", repeatedActionWindow, "action", inv.Name)
			r.trace.Add(TraceWarning, msg, map[string]any{"action": inv.Name})
		}

		if _, err := r.agent.ExecuteTool(inv); err != nil {
			return nil, transcript, err
		}

		// OBSERVING
		observation, err := r.agent.Complete(ctx, observingDirective)
		if err != nil {
			return nil, transcript, err
		}
		r.logger.Info("observation", "iteration", iteration, "text", observation)
		r.trace.Add(TraceObservation, observation, map[string]any{"iteration": iteration})
	}

	return nil, transcript, &MaxIterationsExceededError{MaxIterations: maxIterations}
}

// nextAction runs the ACTING step: one tool-augmented completion, with a
// single silent re-prompt if the model produced no tool call. A second empty
// result fails the iteration. When the model requests several tool calls,
// only the first is dispatched; the remainder is logged and ignored. This is
// a documented simplification, not an accident.
func (r *Reactor) nextAction(ctx context.Context, iteration int) (ToolInvocation, error) {
	for attempt := 0; attempt < 2; attempt++ {
		_, invocations, err := r.agent.CompleteWithTools(ctx, actingDirective)
		if err != nil {
			return ToolInvocation{}, err
		}
		if len(invocations) == 0 {
			continue
		}
		if len(invocations) > 1 {
			ignored := make([]string, 0, len(invocations)-1)
			for _, extra := range invocations[1:] {
				ignored = append(ignored, extra.Name)
			}
			r.logger.Warn("multiple tool calls returned; dispatching only the first",
				"dispatched", invocations[0].Name,
				"ignored", ignored,
			)
			r.trace.Add(TraceWarning,
				fmt.Sprintf("ignoring %d extra tool calls", len(invocations)-1),
				map[string]any{"ignored": ignored})
		}
		return invocations[0], nil
	}
	return ToolInvocation{}, &NoActionProducedError{Iteration: iteration}
}
