// Package providers implements the Completer interface for each supported
// LLM provider.
//
// Supported providers: Anthropic (Claude), OpenAI (GPT), Google (Gemini), and
// Ollama / LM Studio for local models.
//
// All providers share a common retry helper with exponential back-off for
// rate-limit and transient server errors; authentication errors are never
// retried and are detectable via [IsAuthError]. Base URLs can be overridden
// through PRCRITIC_*_BASE_URL environment variables, which is also how tests
// redirect calls to local httptest servers.
//
// Use [New] to obtain a Completer by provider name and model string.
package providers
