package server

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/ailearn/internal/llm"
)

const (
	msgMissingText   = "Missing 'text' in request body"
	msgBadHistory    = "Invalid 'history' in request body"
	msgNotConfigured = "Sorry, the AI service is not configured properly. Please try again later."
	msgTestReply     = "This is a test response from the backend."
	msgProviderError = "Sorry, I encountered an error while processing your request."
	msgEmptyReply    = "I processed your request, but couldn't extract the text response."
	msgUnexpected    = "An unexpected error occurred on the server. Please try again later."
)

const systemPrompt = `You are a friendly AI study assistant for students.
Answer the student's question clearly and accurately.
Prefer short explanations with a small example when it helps.
If the question is unclear, ask one clarifying question.`

const maxReplyTokens = 1024

// maxHistoryTurns bounds how much of the earlier conversation is forwarded
// to the provider.
const maxHistoryTurns = 20

type chatRequest struct {
	Text    string     `json:"text" validate:"required"`
	History []chatTurn `json:"history" validate:"max=100,dive"`
}

// chatTurn is one earlier exchange of the study conversation, oldest first.
type chatTurn struct {
	Role string `json:"role" validate:"required,oneof=user assistant"`
	Text string `json:"text" validate:"required"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type pingResponse struct {
	Status              string `json:"status"`
	ProviderInitialized bool   `json:"provider_initialized"`
	Model               string `json:"model"`
	Version             string `json:"version"`
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	if s.provider == nil {
		s.log.Error("chat requested but no AI provider is configured")
		return c.Status(fiber.StatusInternalServerError).JSON(chatResponse{Response: msgNotConfigured})
	}

	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		s.log.Warn("bad chat body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: msgMissingText})
	}
	if err := s.validate.Struct(req); err != nil {
		if textMissing(err) {
			s.log.Warn("missing text in chat body")
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: msgMissingText})
		}
		s.log.Warn("bad history in chat body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: msgBadHistory})
	}

	if strings.ToLower(req.Text) == "test" {
		return c.JSON(chatResponse{Response: msgTestReply})
	}

	s.log.Info("processing chat query",
		"id", c.Locals("requestid"),
		"chars", len(req.Text),
		"history", len(req.History),
	)

	ctx, cancel := context.WithTimeout(c.UserContext(), s.timeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:    systemPrompt,
		Messages:  buildMessages(req.History, req.Text),
		MaxTokens: maxReplyTokens,
	})
	if err != nil {
		var empty *llm.ErrEmptyReply
		if errors.As(err, &empty) {
			s.log.Warn("provider returned no text", "id", c.Locals("requestid"), "reason", empty.Reason)
			return c.JSON(chatResponse{Response: msgEmptyReply})
		}
		s.log.Error("provider failed", "id", c.Locals("requestid"), "error", err)
		return c.JSON(chatResponse{Response: msgProviderError})
	}

	reply := resp.Text()
	if reply == "" {
		return c.JSON(chatResponse{Response: msgEmptyReply})
	}
	if resp.Truncated() {
		s.log.Warn("reply cut off at token limit", "id", c.Locals("requestid"), "max_tokens", maxReplyTokens)
	}
	return c.JSON(chatResponse{Response: reply})
}

// textMissing reports whether validation failed on the question itself
// rather than on the history.
func textMissing(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return true
	}
	for _, fe := range verrs {
		if fe.Namespace() == "chatRequest.Text" {
			return true
		}
	}
	return false
}

// buildMessages turns the latest history turns and the new question into
// a provider transcript.
func buildMessages(history []chatTurn, text string) []llm.Message {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, t := range history {
		msgs = append(msgs, llm.Message{Role: llm.Role(t.Role), Content: t.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})
	return llm.NormalizeMessages(msgs)
}

func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON(pingResponse{
		Status:              "ok",
		ProviderInitialized: s.provider != nil,
		Model:               s.model,
		Version:             s.version,
	})
}
