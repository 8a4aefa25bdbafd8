package providers

import "strings"

func augmentProviderError(providerName, message string) string {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return msg
	}

	lower := strings.ToLower(msg)
	if strings.ToLower(strings.TrimSpace(providerName)) != ProviderOpenAI {
		return msg
	}

	switch {
	case strings.Contains(lower, "incorrect api key provided"):
		return msg + " Hint: check OPENAI_API_KEY or the --api-key flag."
	case strings.Contains(lower, "rate limit"), strings.Contains(lower, "exceeded your current quota"):
		return msg + " Hint: the request was throttled by the provider; wait before sending another turn."
	case strings.Contains(lower, "maximum context length"):
		return msg + " Hint: the prompt plus recent memory is too long for this model; trim the memory file or use a model with a larger context."
	case strings.Contains(lower, "does not exist"), strings.Contains(lower, "model_not_found"):
		return msg + " Hint: pass a model your key can access with --model."
	}
	return msg
}
