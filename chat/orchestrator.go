// Package chat implements the per-session chat orchestration pipeline.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopmate/orchestrator/domain"
	"github.com/shopmate/orchestrator/policy"
	"github.com/shopmate/orchestrator/session"
	"github.com/shopmate/orchestrator/store"
)

// Orchestrator drives one chat turn through its stages: image
// interpretation, conversation evaluation and, when the conversation
// engine signals completion, product search.
type Orchestrator struct {
	store        store.Store
	policyEngine *policy.Engine
}

// New creates an orchestrator. Both the archive store and the policy
// engine may be nil.
func New(st store.Store, policyEngine *policy.Engine) *Orchestrator {
	return &Orchestrator{store: st, policyEngine: policyEngine}
}

// ProcessTurn runs the pipeline for one user message. Turns on the same
// session are serialized; the failing stage appends nothing, while
// messages appended by earlier stages of the same turn stay in the log.
func (o *Orchestrator) ProcessTurn(ctx context.Context, sess *session.Session, text, imageData string) (*domain.ChatTurnResult, error) {
	sess.LockTurn()
	defer sess.UnlockTurn()

	if imageData != "" {
		imageBytes, err := DecodeImagePayload(imageData)
		if err != nil {
			return nil, err
		}
		extracted, err := sess.Engines.Image.Interpret(ctx, imageBytes, text)
		if err != nil {
			return nil, domain.NewProcessingError("image interpretation failed", err)
		}
		// the interpreter folds the caption into its output, so the
		// original text is replaced, not concatenated
		text = extracted
	}

	o.appendMessage(ctx, sess, domain.Message{
		Role:      domain.RoleUser,
		Content:   text,
		CreatedAt: time.Now(),
	})

	eval, err := sess.Engines.Conversation.Evaluate(ctx, text)
	if err != nil {
		return nil, domain.NewProcessingError("conversation evaluation failed", err)
	}

	o.appendMessage(ctx, sess, domain.Message{
		Role:      domain.RoleAssistant,
		Content:   eval.Reply,
		CreatedAt: time.Now(),
	})

	if eval.ContinueConversation {
		result := &domain.ChatTurnResult{
			Kind:                 domain.TurnKindConversation,
			Reply:                eval.Reply,
			ContinueConversation: true,
			Timestamp:            time.Now(),
		}
		o.archiveTurn(ctx, sess.ID, result)
		return result, nil
	}

	if err := o.checkSearchPolicy(ctx, eval.Intent); err != nil {
		return nil, err
	}

	rendered, err := sess.Engines.Search.Search(ctx, eval.Intent)
	if err != nil {
		return nil, domain.NewProcessingError("product search failed", err)
	}

	o.appendMessage(ctx, sess, domain.Message{
		Role:      domain.RoleAssistant,
		Content:   rendered,
		Kind:      domain.MessageKindProductResults,
		CreatedAt: time.Now(),
	})

	result := &domain.ChatTurnResult{
		Kind:                 domain.TurnKindProductSearch,
		Reply:                eval.Reply,
		ProductsHTML:         rendered,
		ContinueConversation: false,
		Timestamp:            time.Now(),
	}
	o.archiveTurn(ctx, sess.ID, result)
	return result, nil
}

// appendMessage adds the message to the session log and best-effort
// archives it. Archive failure never fails the turn.
func (o *Orchestrator) appendMessage(ctx context.Context, sess *session.Session, msg domain.Message) {
	sess.Log.Append(msg)
	if o.store == nil {
		return
	}
	if err := o.store.RecordMessage(ctx, sess.ID, msg); err != nil {
		log.Printf("ERROR: failed to archive message: %v", err)
	}
}

func (o *Orchestrator) archiveTurn(ctx context.Context, sessionID string, result *domain.ChatTurnResult) {
	if o.store == nil {
		return
	}
	rec := &domain.TurnRecord{
		TurnID:    "turn_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Kind:      result.Kind,
		Reply:     result.Reply,
		CreatedAt: result.Timestamp,
	}
	if err := o.store.RecordTurn(ctx, rec); err != nil {
		log.Printf("ERROR: failed to archive turn: %v", err)
	}
}

// checkSearchPolicy aborts the turn when the policy engine blocks the
// extracted intent.
func (o *Orchestrator) checkSearchPolicy(ctx context.Context, intent json.RawMessage) error {
	if o.policyEngine == nil {
		return nil
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(intent, &fields); err != nil {
		return domain.NewProcessingError("malformed shopping intent", err)
	}

	var terms []string
	for _, v := range fields {
		terms = append(terms, fmt.Sprint(v))
	}
	input := map[string]interface{}{
		"intent": fields,
		"query":  strings.ToLower(strings.Join(terms, " ")),
	}

	decision, err := o.policyEngine.Evaluate(ctx, input)
	if err != nil {
		return domain.NewProcessingError("policy evaluation failed", err)
	}
	if decision == policy.DecisionBlock {
		return domain.NewProcessingError("product search blocked by policy", nil)
	}
	return nil
}
