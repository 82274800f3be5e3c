package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinical-chat-be/internal/pkg/logger"
	"clinical-chat-be/pkg/llm"
)

const systemPrompt = `Eres un asistente médico inteligente especializado en analizar historias clínicas.

Tu función es responder preguntas sobre pacientes basándote ÚNICAMENTE en la información proporcionada en el contexto clínico.

REGLAS DE FORMATO:
1. Usa formato Markdown para estructurar tu respuesta
2. Usa negritas (**texto**) para fechas, diagnósticos y medicamentos importantes
3. Enumera items cuando hay múltiples elementos (1., 2., 3.)
4. Usa viñetas (-) para sub-items y detalles
5. Incluye códigos ICD-10 cuando menciones diagnósticos
6. Organiza la información cronológicamente (más reciente primero)

REGLAS DE CONTENIDO:
1. Responde SOLO con información que esté explícitamente en el contexto
2. Si no hay información suficiente, indícalo claramente
3. Usa un lenguaje claro, profesional y preciso
4. NO inventes información
5. Sé conciso pero completo`

func buildUserMessage(contextBlock, question string) string {
	return fmt.Sprintf(`CONTEXTO CLÍNICO:
%s

PREGUNTA DEL USUARIO:
%s

Por favor, responde basándote únicamente en la información del contexto clínico proporcionado.`, contextBlock, question)
}

// Generator turns the provider's pull-based token stream into a push
// sequence of protocol messages for one connection.
type Generator struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger) *Generator {
	return &Generator{
		provider: provider,
		logger:   log,
	}
}

func (g *Generator) ModelName() string {
	return g.provider.ModelName()
}

// Stream drives one streaming generation call. Each upstream chunk maps
// 1:1 to one token message, in arrival order. Returns the concatenated
// text. A non-nil error means the failure was already reported to the
// client as an error message and the caller must not emit complete.
func (g *Generator) Stream(ctx context.Context, sender Sender, question, contextBlock, sessionKey string) (string, error) {
	g.logger.Info("Generator", "Starting LLM streaming", map[string]interface{}{"session_id": sessionKey})

	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserMessage(contextBlock, question)},
	}

	chunks, err := g.provider.ChatStream(ctx, history,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(2000),
	)
	if err != nil {
		g.reportFailure(sender, sessionKey, err)
		return "", err
	}

	sender.WriteJSON(StreamStartMessage{
		Type:      TypeStreamStart,
		SessionId: sessionKey,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	var full strings.Builder
	for {
		select {
		case <-ctx.Done():
			g.reportFailure(sender, sessionKey, ctx.Err())
			return "", ctx.Err()

		case chunk, ok := <-chunks:
			if !ok {
				sender.WriteJSON(StreamEndMessage{
					Type:      TypeStreamEnd,
					SessionId: sessionKey,
					Timestamp: time.Now().UTC().Format(time.RFC3339),
				})
				g.logger.Info("Generator", "LLM streaming completed", map[string]interface{}{"session_id": sessionKey})
				return full.String(), nil
			}
			if chunk.Err != nil {
				g.reportFailure(sender, sessionKey, chunk.Err)
				return "", chunk.Err
			}
			if chunk.Content == "" {
				continue
			}
			full.WriteString(chunk.Content)
			sender.WriteJSON(TokenMessage{
				Type:      TypeToken,
				Token:     chunk.Content,
				SessionId: sessionKey,
			})
		}
	}
}

func (g *Generator) reportFailure(sender Sender, sessionKey string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		g.logger.Error("Generator", "LLM streaming timeout", map[string]interface{}{"session_id": sessionKey})
		sender.WriteJSON(NewErrorMessage(CodeLLMTimeout, "El modelo tardó demasiado en responder"))
		return
	}
	g.logger.Error("Generator", "LLM streaming failed", map[string]interface{}{
		"session_id": sessionKey,
		"error":      err.Error(),
	})
	sender.WriteJSON(NewErrorMessage(CodeLLMError, "Error generando respuesta"))
}
