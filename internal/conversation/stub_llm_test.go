package conversation

import (
	"context"
	"sync"
)

// scriptedLLM routes completion calls by their system prompt so one stub can
// serve the extractor, detector, responder, and summarizer in a single test.
type scriptedLLM struct {
	extractReply string
	detectReply  string
	chatReply    string
	summaryReply string

	extractErr error
	detectErr  error
	chatErr    error
	summaryErr error

	mu    sync.Mutex
	calls []string
}

func newScriptedLLM() *scriptedLLM {
	return &scriptedLLM{
		extractReply: `{"name":"null","email":"null","refused":false}`,
		detectReply:  `{"ended":false,"reason":""}`,
		chatReply:    "Happy to help! What would you like to know?",
		summaryReply: "Prospect asked about AI agents for lead capture.",
	}
}

func (s *scriptedLLM) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	op, reply, err := s.route(req)
	s.mu.Lock()
	s.calls = append(s.calls, op)
	s.mu.Unlock()
	if err != nil {
		return LLMResponse{}, err
	}
	return LLMResponse{Text: reply, StopReason: "stop"}, nil
}

func (s *scriptedLLM) route(req LLMRequest) (string, string, error) {
	if len(req.System) == 0 {
		return "unknown", s.chatReply, s.chatErr
	}
	switch req.System[0] {
	case extractionSystemPrompt:
		return "extract", s.extractReply, s.extractErr
	case endDetectionSystemPrompt:
		return "detect", s.detectReply, s.detectErr
	case summarySystemPrompt:
		return "summarize", s.summaryReply, s.summaryErr
	default:
		return "respond", s.chatReply, s.chatErr
	}
}

func (s *scriptedLLM) callCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == op {
			n++
		}
	}
	return n
}
