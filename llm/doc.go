// Package llm provides a provider-agnostic chat completion client.
//
// The reactor loop only needs two things from a reasoning service: a
// completion that returns text, and a completion that returns text plus zero
// or more structured tool-call requests. This package supplies both through a
// single blocking Complete call whose Response carries optional tool calls in
// its message content.
//
// # Architecture
//
//   - ProviderAdapter: the interface every provider backend implements.
//   - Client: routes requests to registered adapters by provider name and
//     applies middleware.
//   - OpenAIAdapter: native chat completions via go-openai, with structured
//     tool-call support.
//   - GollmAdapter: multi-provider support via gollm, recovering tool calls
//     from generated text where the provider embeds them.
//
// The client performs no internal retries; provider errors propagate to the
// caller unchanged.
//
// # Quick Start
//
//	adapter := llm.NewOpenAIAdapter(os.Getenv("OPENAI_API_KEY"), "gpt-4o-mini")
//	client := llm.NewClient(llm.WithProvider("openai", adapter))
//
//	resp, err := client.Complete(ctx, llm.Request{
//	    Model:    "gpt-4o-mini",
//	    Messages: []llm.Message{llm.UserMessage("Hello")},
//	})
//	fmt.Println(resp.Text())
//
// Or scan the environment for API keys:
//
//	client := llm.NewClientFromEnv()
package llm
