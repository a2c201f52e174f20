package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

const chatPromptTemplate = `Eres un asistente especializado en equipos tecnológicos y soporte técnico. Tu función es ayudar con:

1. Especificaciones técnicas de equipos (laptops, desktops, monitores, impresoras, etc.)
2. Compatibilidad entre dispositivos
3. Solución de problemas técnicos
4. Recomendaciones de hardware y software
5. Configuración de equipos
6. Mantenimiento preventivo
7. Actualizaciones y drivers

Responde de manera clara, técnica pero comprensible, y siempre en español. Si no tienes información específica sobre un modelo exacto, proporciona información general útil sobre ese tipo de equipo.

Contexto: %s

Pregunta del usuario: %s`

const chatEmptyAnswer = "No pude generar una respuesta."

var chatErrorMessages = map[entity.ChatErrorCode]string{
	entity.ChatErrAPIKeyMissing: "Lo siento, el asistente de IA no está configurado. " +
		"El administrador necesita agregar la variable de entorno GEMINI_API_KEY para usar esta funcionalidad.",
	entity.ChatErrServiceDisabled: "La API de Google Generative Language no está habilitada en el proyecto de Google Cloud. " +
		"Habilítela en https://console.developers.google.com/apis/api/generativelanguage.googleapis.com/overview " +
		"y reinicie la aplicación.",
	entity.ChatErrConfigurationNeeded: "El asistente de IA requiere configuración: verifique que la API key esté activa " +
		"y tenga acceso al modelo.",
	entity.ChatErrBadRequest:      "Hubo un problema con la solicitud. Por favor, intenta reformular tu pregunta.",
	entity.ChatErrRateLimit:       "Se ha alcanzado el límite de solicitudes. Por favor, espera un momento antes de intentar nuevamente.",
	entity.ChatErrModelOverloaded: "El modelo de IA está sobrecargado. Por favor, intenta nuevamente en unos minutos.",
	entity.ChatErrInternal:        "Lo siento, no pude procesar tu consulta en este momento. Por favor, intenta nuevamente.",
}

func ChatPrompt(req entity.ChatRequest) string {
	chatContext := strings.TrimSpace(req.Context)
	if chatContext == "" {
		chatContext = entity.DefaultChatContext
	}

	return fmt.Sprintf(chatPromptTemplate, chatContext, req.Message)
}

// Chat relays the message to the assistant. Upstream failures are not
// returned as errors: they are translated into a readable answer and a code.
func (s *Service) Chat(ctx context.Context, session entity.Session, req entity.ChatRequest) (entity.ChatResponse, error) {
	err := authorize(session, entity.ModuleAIAssistant, entity.ActionRead)
	if err != nil {
		return entity.ChatResponse{}, err
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return entity.ChatResponse{}, entity.ErrEmptyMessage
	}

	answer, err := s.assistant.Generate(ctx, ChatPrompt(req))
	if err != nil {
		var assistantErr *entity.AssistantError
		if !errors.As(err, &assistantErr) {
			assistantErr = &entity.AssistantError{Code: entity.ChatErrInternal, Details: err.Error()}
		}

		slog.ErrorContext(ctx, "assistant call failed",
			"code", assistantErr.Code,
			"status", assistantErr.StatusCode,
			"error", err,
		)

		return entity.ChatResponse{
			Response: chatErrorMessage(assistantErr),
			Error:    assistantErr.Code,
		}, nil
	}

	if strings.TrimSpace(answer) == "" {
		answer = chatEmptyAnswer
	}

	return entity.ChatResponse{Response: answer}, nil
}

func chatErrorMessage(err *entity.AssistantError) string {
	msg, ok := chatErrorMessages[err.Code]
	if ok {
		return msg
	}

	return fmt.Sprintf("Error del servicio de IA (%d). Por favor, intenta nuevamente en unos minutos.", err.StatusCode)
}
