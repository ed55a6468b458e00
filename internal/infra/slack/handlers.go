package slack

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"question_qc_bot/internal/app"
	"question_qc_bot/internal/domain/messaging"
	"question_qc_bot/internal/domain/review"
)

// InteractionHandler routes the three inbound interaction events (approve
// click, reject click, reject-form submission) to the decision service.
// Every event runs behind its own catch-and-log boundary; nothing that
// happens to one event can take down the listener.
type InteractionHandler struct {
	socket    *socketmode.Client
	client    messaging.Client
	decisions app.DecisionService
	log       *logrus.Entry
}

func NewInteractionHandler(
	socket *socketmode.Client,
	client messaging.Client,
	decisions app.DecisionService,
	log *logrus.Entry,
) *InteractionHandler {
	return &InteractionHandler{socket: socket, client: client, decisions: decisions, log: log}
}

// Run consumes socket-mode events until ctx is cancelled. Interactions are
// acked immediately and processed on their own goroutine so a slow store
// call never trips Slack's ack deadline.
func (h *InteractionHandler) Run(ctx context.Context) error {
	go func() {
		for evt := range h.socket.Events {
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				h.log.Debug("connecting to Slack")
			case socketmode.EventTypeConnectionError:
				h.log.Warn("Slack connection error, socket mode will reconnect")
			case socketmode.EventTypeConnected:
				h.log.Info("connected to Slack")
			case socketmode.EventTypeInteractive:
				callback, ok := evt.Data.(slackapi.InteractionCallback)
				if !ok {
					h.log.Warnf("unexpected interactive payload type %T", evt.Data)
					continue
				}
				if evt.Request != nil {
					h.socket.Ack(*evt.Request)
				}
				go h.handleInteraction(ctx, callback)
			}
		}
	}()
	return h.socket.RunContext(ctx)
}

func (h *InteractionHandler) handleInteraction(ctx context.Context, cb slackapi.InteractionCallback) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Errorf("interaction handler panicked: %v", r)
		}
	}()

	switch cb.Type {
	case slackapi.InteractionTypeBlockActions:
		for _, action := range cb.ActionCallback.BlockActions {
			switch action.ActionID {
			case messaging.ActionApproveQuestion:
				h.handleApprove(ctx, cb, action.Value)
			case messaging.ActionRejectQuestion:
				h.handleRejectOpen(cb, action.Value)
			}
		}
	case slackapi.InteractionTypeViewSubmission:
		if cb.View.CallbackID == messaging.RejectModalCallbackID {
			h.handleRejectSubmit(ctx, cb)
		}
	}
}

func (h *InteractionHandler) handleApprove(ctx context.Context, cb slackapi.InteractionCallback, value string) {
	tok, err := review.DecodeToken(value)
	if err != nil {
		h.log.WithError(err).Errorf("approve click carried a bad token: %q", value)
		h.notify(cb.Channel.ID, "⚠️ Tombol approve membawa data yang tidak valid.")
		return
	}

	req := app.ApproveRequest{
		Token:      tok,
		ReviewerID: cb.User.ID,
		ChannelID:  cb.Channel.ID,
		MessageTS:  cb.Message.Timestamp,
		CardBlocks: cb.Message.Blocks.BlockSet,
	}
	if err := h.decisions.ApproveQuestion(ctx, req); err != nil {
		h.log.WithError(err).Errorf("approval failed for question #%s", tok.QuestionID)
		h.notify(cb.Channel.ID, fmt.Sprintf("✅ Approval berhasil dicatat, tapi terjadi error saat memperbarui pesan: %v", err))
	}
}

// handleRejectOpen opens the reason form. The button value plus the card
// location ride through the modal as opaque private metadata.
func (h *InteractionHandler) handleRejectOpen(cb slackapi.InteractionCallback, value string) {
	metadata := review.EncodeModalMetadata(value, cb.Channel.ID, cb.Message.Timestamp)
	if err := h.client.OpenView(cb.TriggerID, messaging.RejectModal(metadata)); err != nil {
		h.log.WithError(err).Error("could not open reject form")
		h.notify(cb.Channel.ID, fmt.Sprintf("❌ Error saat membuka form reject: %v", err))
	}
}

func (h *InteractionHandler) handleRejectSubmit(ctx context.Context, cb slackapi.InteractionCallback) {
	var reason string
	if cb.View.State != nil {
		reason = cb.View.State.Values[messaging.RejectReasonBlockID][messaging.RejectReasonActionID].Value
	}

	req := app.RejectRequest{
		Metadata:   cb.View.PrivateMetadata,
		Reason:     reason,
		ReviewerID: cb.User.ID,
	}
	if err := h.decisions.SubmitRejection(ctx, req); err != nil {
		h.log.WithError(err).Error("rejection submission failed")
		h.notify(cb.User.ID, fmt.Sprintf("❌ Terjadi error saat memproses rejection: %v", err))
	}
}

// notify is the last-resort user-visible error surface; its own failure is
// only logged.
func (h *InteractionHandler) notify(channelID, text string) {
	if err := h.client.PostMessage(channelID, text); err != nil {
		h.log.WithError(err).Error("error notice could not be delivered")
	}
}
