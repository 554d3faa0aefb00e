package reactor

import (
	"fmt"
	"strings"
)

// Default character limits per tool. Web search and page extraction can
// return very large payloads; the transcript is re-sent on every completion
// call, so oversized results compound quickly.
var DefaultToolCharLimits = map[string]int{
	"search_internet": 8000,
	"get_url_content": 16000,
	"fetch_webpage":   16000,
}

// fallbackCharLimit applies to tools without an explicit limit.
const fallbackCharLimit = 30000

// TruncateOutput applies head/tail character truncation to output.
func TruncateOutput(output string, maxChars int) string {
	if len(output) <= maxChars {
		return output
	}
	half := maxChars / 2
	removed := len(output) - maxChars
	return output[:half] +
		fmt.Sprintf("\n\n[Tool output truncated: %d characters removed from the middle. "+
			"Re-run the tool with more targeted parameters if you need specific parts.]\n\n",
			removed) +
		output[len(output)-half:]
}

// TruncateLines applies line-based truncation using a head/tail split.
func TruncateLines(output string, maxLines int) string {
	lines := strings.Split(output, "\n")
	if len(lines) <= maxLines {
		return output
	}
	headCount := maxLines / 2
	tailCount := maxLines - headCount
	omitted := len(lines) - headCount - tailCount
	return strings.Join(lines[:headCount], "\n") +
		fmt.Sprintf("\n[... %d lines omitted ...]\n", omitted) +
		strings.Join(lines[len(lines)-tailCount:], "\n")
}

// TruncateToolOutput applies the truncation pipeline for a tool result before
// it enters the transcript: character truncation first, then optional line
// truncation.
func TruncateToolOutput(output string, toolName string, charLimits map[string]int, lineLimits map[string]int) string {
	maxChars, ok := charLimits[toolName]
	if !ok {
		maxChars, ok = DefaultToolCharLimits[toolName]
		if !ok {
			maxChars = fallbackCharLimit
		}
	}

	result := TruncateOutput(output, maxChars)

	if lineLimits != nil {
		if maxLines, ok := lineLimits[toolName]; ok && maxLines > 0 {
			result = TruncateLines(result, maxLines)
		}
	}

	return result
}
