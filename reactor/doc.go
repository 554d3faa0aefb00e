// Package reactor implements a reason-and-act agent loop.
//
// A Reactor drives a language model through explicit thought, action, and
// observation steps until the model calls the terminal final_answer tool or
// the iteration budget is exhausted. Tools are ordinary Go functions
// registered with a declared parameter set; arguments are validated before
// the handler runs.
//
// # Architecture
//
// The package is organized around these core concepts:
//
//   - Reactor: The loop controller stepping through thinking, acting, and
//     observing phases each iteration.
//   - Agent: Conversation state plus the completion primitives (plain
//     completions, tool-augmented completions, and tool dispatch).
//   - Registry: Registration, validation, and execution of tool definitions.
//   - Transcript: The append-only message history re-sent on every call.
//   - Trace: An optional record of the reasoning chain for rendering or
//     export.
//
// # Quick Start
//
//	cfg := reactor.DefaultConfig()
//	cfg.Tools = []reactor.ToolDefinition{myTool}
//
//	r, err := reactor.NewReactor(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, _, err := r.RunLoop(ctx, "What is the capital of France?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result["answer"])
package reactor
