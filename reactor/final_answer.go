package reactor

// FinalAnswerToolName is the reserved terminal tool. Invoking it signals loop
// termination; it has no side effects beyond returning its argument.
const FinalAnswerToolName = "final_answer"

// FinalAnswerTool returns the terminal tool definition. NewReactor registers
// it automatically when absent.
func FinalAnswerTool() ToolDefinition {
	return ToolDefinition{
		Name:        FinalAnswerToolName,
		Description: "Provide a concise answer to the user's question",
		Params: []ToolParam{
			{
				Name:        "answer",
				Type:        "string",
				Required:    true,
				Description: "The final concise answer to the user's question",
			},
		},
		Handler: func(args map[string]any) (any, error) {
			return args["answer"], nil
		},
	}
}
