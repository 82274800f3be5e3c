package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"clinical-chat-be/internal/entity"
	"clinical-chat-be/internal/pkg/logger"
	"clinical-chat-be/internal/service"
	"clinical-chat-be/pkg/events"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Conn is the transport surface one session owns for its lifetime.
// *websocket.Conn satisfies it; tests inject fakes.
type Conn interface {
	Sender
	ReadMessage() (messageType int, p []byte, err error)
	SetReadDeadline(t time.Time) error
	Close() error
}

type State int

const (
	StateAdmitted State = iota
	StateReady
	StateProcessing
	StateClosed
)

// Fixed similarity-search parameters for the query pipeline.
const (
	searchTopK     = 15
	searchMinScore = 0.3
)

const answerConfidence = 0.85

// Timeouts are the three independent timeout scopes of a session. Expiry
// of the search or generation scope cancels only that call; expiry of the
// inactivity scope ends the connection.
type Timeouts struct {
	VectorSearch time.Duration
	Generation   time.Duration
	Inactivity   time.Duration
}

// Deps are the upstream collaborators of the query pipeline.
type Deps struct {
	Clinical  service.IClinicalService
	Search    service.IVectorSearchService
	Generator *Generator
	Audit     service.IAuditPublisher
}

// Session owns one websocket connection for its lifetime: it runs the
// receive-dispatch loop, drives the five-phase query pipeline, and emits
// protocol messages. Messages are handled strictly in arrival order; a
// second query cannot start until the current pipeline finishes.
type Session struct {
	conn     Conn
	registry *Registry
	identity *service.Identity
	deps     Deps
	timeouts Timeouts
	logger   logger.ILogger
	validate *validator.Validate

	key   string
	state State
}

func NewSession(conn Conn, registry *Registry, identity *service.Identity, deps Deps, timeouts Timeouts, log logger.ILogger) *Session {
	return &Session{
		conn:     conn,
		registry: registry,
		identity: identity,
		deps:     deps,
		timeouts: timeouts,
		logger:   log,
		validate: validator.New(),
		key:      "temp_" + uuid.NewString()[:8],
		state:    StateAdmitted,
	}
}

// Key returns the session's current registry key.
func (s *Session) Key() string {
	return s.key
}

// Run registers the session and processes inbound messages until the
// client disconnects or the inactivity window elapses. Always deregisters
// on the way out.
func (s *Session) Run(ctx context.Context) {
	defer func() {
		s.state = StateClosed
		s.registry.Unregister(s.key)
	}()

	s.registry.Register(s.key, s.conn)

	if err := s.conn.WriteJSON(ConnectedMessage{
		Type:    TypeConnected,
		UserId:  s.identity.UserId.String(),
		Message: "✅ Conectado exitosamente al chat médico",
	}); err != nil {
		s.logger.Error("Session", "Failed to send welcome message", map[string]interface{}{"error": err.Error()})
		return
	}
	s.state = StateReady

	for {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.timeouts.Inactivity)); err != nil {
			s.logger.Warn("Session", "Failed to arm read deadline", map[string]interface{}{"error": err.Error()})
			return
		}

		_, data, err := s.conn.ReadMessage()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				s.logger.Info("Session", "Closing session: inactivity", map[string]interface{}{"session_id": s.key})
				return
			}
			// Client disconnects are expected, not errors.
			s.logger.Info("Session", "Client disconnected", map[string]interface{}{
				"session_id": s.key,
				"reason":     err.Error(),
			})
			return
		}

		s.dispatch(ctx, data)
	}
}

func (s *Session) dispatch(ctx context.Context, data []byte) {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.conn.WriteJSON(NewErrorMessage(CodeInvalidRequest, "El mensaje no es JSON válido"))
		return
	}

	switch msg.Type {
	case MessageTypePing:
		s.conn.WriteJSON(PongMessage{Type: TypePong})

	case MessageTypeQuery:
		s.handleQuery(ctx, QueryRequest{
			SessionId:      msg.SessionId,
			DocumentTypeId: msg.DocumentTypeId,
			DocumentNumber: msg.DocumentNumber,
			Question:       msg.Question,
		})

	default:
		s.conn.WriteJSON(NewErrorMessage(
			CodeUnknownMessageType,
			fmt.Sprintf("Tipo de mensaje desconocido: %s", msg.Type),
		))
	}
}

// handleQuery runs the five-phase pipeline for one valid query. Lookup
// failures are fatal to the query; search failures degrade to an empty
// chunk list; every outcome returns the session to Ready.
func (s *Session) handleQuery(ctx context.Context, req QueryRequest) {
	if err := s.validate.Struct(&req); err != nil {
		s.conn.WriteJSON(NewErrorMessage(
			CodeInvalidRequest,
			"Faltan campos requeridos (document_type_id, document_number, question)",
		))
		return
	}

	s.state = StateProcessing
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Session", "Panic while processing query", map[string]interface{}{
				"session_id": s.key,
				"panic":      fmt.Sprintf("%v", r),
			})
			s.registry.Send(s.key, NewErrorMessage(CodeProcessingError, "Error procesando solicitud"))
		}
		s.state = StateReady
	}()

	// Phase 1: rekey. A client that connected anonymously establishes its
	// durable session key with its first query.
	if req.SessionId != "" && req.SessionId != s.key {
		s.registry.Rekey(s.key, req.SessionId)
		s.key = req.SessionId
	}

	s.logger.Info("Session", "Query received", map[string]interface{}{"session_id": s.key})

	// Phase 2: locate patient. The storage handle is scoped to this phase
	// only; it is released before any external network call.
	s.sendStatus(StatusSearchingPatient, "🔍 Buscando datos del paciente...")

	lookup := s.deps.Clinical.FetchPatientAndRecords(ctx, req.DocumentTypeId, req.DocumentNumber)
	switch lookup.Status {
	case service.LookupNotFound:
		s.registry.Send(s.key, NewErrorMessage(
			CodePatientNotFound,
			fmt.Sprintf("No se encontró paciente con documento %s %s",
				DocumentTypeLabel(req.DocumentTypeId), req.DocumentNumber),
		))
		s.auditFailure(ctx, CodePatientNotFound)
		return
	case service.LookupFailed:
		s.logger.Error("Session", "Patient lookup failed", map[string]interface{}{
			"session_id": s.key,
			"error":      lookup.Err.Error(),
		})
		s.registry.Send(s.key, NewErrorMessage(CodeDatabaseError, "Error consultando la base de datos"))
		s.auditFailure(ctx, CodeDatabaseError)
		return
	}

	// Phase 3: similarity search, best effort. Timeout or failure here
	// must not stop the pipeline: the answer is still attempted from
	// structured records alone.
	s.sendStatus(StatusVectorSearch, "🔎 Buscando información relevante...")

	var chunks []entity.ScoredChunk
	searchCtx, cancelSearch := context.WithTimeout(ctx, s.timeouts.VectorSearch)
	found, err := s.deps.Search.SearchSimilarChunks(searchCtx, lookup.Patient.Id, req.Question, searchTopK, searchMinScore)
	cancelSearch()
	if err != nil {
		s.logger.Warn("Session", "Vector search degraded", map[string]interface{}{
			"session_id": s.key,
			"error":      err.Error(),
		})
	} else {
		chunks = found
	}

	// Phase 4: assemble context.
	s.sendStatus(StatusBuildingContext, "📝 Preparando contexto clínico...")

	contextBlock, err := BuildPatientContext(lookup.Patient, lookup.Records, chunks)
	if err != nil {
		s.logger.Error("Session", "Context assembly failed", map[string]interface{}{
			"session_id": s.key,
			"error":      err.Error(),
		})
		s.registry.Send(s.key, NewErrorMessage(CodeContextError, "Error preparando el contexto clínico"))
		s.auditFailure(ctx, CodeContextError)
		return
	}

	// Phase 5: generate. The outer deadline bounds the whole streaming
	// call; the adapter reports its own failures to the client.
	s.sendStatus(StatusGenerating, "🤖 Generando respuesta...")

	genCtx, cancelGen := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancelGen()

	fullText, err := s.deps.Generator.Stream(genCtx, s.registry.Bound(s.key), req.Question, contextBlock, s.key)
	if err != nil {
		s.auditFailure(ctx, CodeLLMError)
		return
	}

	s.registry.Send(s.key, CompleteMessage{
		Type:      TypeComplete,
		SessionId: s.key,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		PatientInfo: PatientInfo{
			PatientId:      lookup.Patient.Id.String(),
			FullName:       lookup.Patient.FullName(),
			DocumentType:   DocumentTypeLabel(req.DocumentTypeId),
			DocumentNumber: req.DocumentNumber,
		},
		Answer: Answer{
			Text:       fullText,
			Confidence: answerConfidence,
			ModelUsed:  s.deps.Generator.ModelName(),
		},
		Metadata: Metadata{
			TotalRecordsAnalyzed: lookup.Records.TotalCount(),
			VectorChunksUsed:     len(chunks),
		},
	})

	s.logger.Info("Session", "Query completed", map[string]interface{}{"session_id": s.key})

	if s.deps.Audit != nil {
		s.deps.Audit.Publish(ctx, events.TypeQueryCompleted, map[string]interface{}{
			"session_id":         s.key,
			"user_id":            s.identity.UserId.String(),
			"patient_id":         lookup.Patient.Id.String(),
			"model":              s.deps.Generator.ModelName(),
			"total_records":      lookup.Records.TotalCount(),
			"vector_chunks_used": len(chunks),
		})
	}
}

func (s *Session) sendStatus(status, message string) {
	s.registry.Send(s.key, StatusMessage{
		Type:    TypeStatus,
		Status:  status,
		Message: message,
	})
}

func (s *Session) auditFailure(ctx context.Context, code string) {
	if s.deps.Audit == nil {
		return
	}
	s.deps.Audit.Publish(ctx, events.TypeQueryFailed, map[string]interface{}{
		"session_id": s.key,
		"user_id":    s.identity.UserId.String(),
		"code":       code,
	})
}
