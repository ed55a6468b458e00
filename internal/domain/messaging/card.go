package messaging

import (
	"fmt"
	"strings"

	slackapi "github.com/slack-go/slack"

	"question_qc_bot/internal/domain/review"
)

// Interaction identifiers shared between the card layout and the inbound
// event handlers.
const (
	ActionApproveQuestion = "approve_question"
	ActionRejectQuestion  = "reject_question"
	RejectModalCallbackID = "reject_modal"
	RejectReasonBlockID   = "reject_reason"
	RejectReasonActionID  = "reason"

	cardActionsBlockID = "qc_actions"
)

var optionLabels = [5]string{"A", "B", "C", "D", "E"}

// RenderCard builds the review card for a question: header, subject fields,
// the question itself (or the simplified notice when it cannot be embedded),
// and the action row carrying correlation tokens. Returns the plain-text
// fallback and the block layout.
func RenderCard(q *review.Question) (string, []slackapi.Block, error) {
	approveValue, err := review.EncodeToken(review.ActionApprove, q.ID, q.RowNumber)
	if err != nil {
		return "", nil, fmt.Errorf("encode approve token: %w", err)
	}
	rejectValue, err := review.EncodeToken(review.ActionReject, q.ID, q.RowNumber)
	if err != nil {
		return "", nil, fmt.Errorf("encode reject token: %w", err)
	}

	title := fmt.Sprintf("Question #%s", q.ID)
	rejectLabel := "Reject"
	if q.Reassigned() {
		title = fmt.Sprintf("🔁 [Reassigned] Question #%s", q.ID)
		rejectLabel = "Request Revision"
	}

	blocks := []slackapi.Block{
		slackapi.NewHeaderBlock(plainText(title)),
		slackapi.NewSectionBlock(nil, []*slackapi.TextBlockObject{
			markdown(fmt.Sprintf("*Subject:*\n%s", q.Subject)),
			markdown(fmt.Sprintf("*Chapter:*\n%s", q.Chapter)),
			markdown(fmt.Sprintf("*Topic:*\n%s", q.Topic)),
		}, nil),
	}
	if q.Reassigned() {
		blocks = append(blocks, slackapi.NewSectionBlock(
			markdown(fmt.Sprintf("*Catatan Reject Sebelumnya:*\n> %s", q.RejectionNotes)), nil, nil))
	}
	blocks = append(blocks, slackapi.NewDividerBlock())

	linkLabel := "Lihat Solusi"
	if review.UseSimplifiedLayout(q) {
		linkLabel = "Lihat Soal"
		blocks = append(blocks, slackapi.NewSectionBlock(
			markdown("🚨 *The question failed to generate!* Please click *Lihat Soal* below for details."), nil, nil))
	} else {
		blocks = append(blocks,
			slackapi.NewSectionBlock(markdown(fmt.Sprintf("*Pertanyaan:*\n%s", review.StripMarkup(q.Body))), nil, nil),
			slackapi.NewSectionBlock(markdown(optionsText(q)), nil, nil),
		)
	}

	blocks = append(blocks,
		slackapi.NewDividerBlock(),
		actionsBlock(q.SolutionLink, linkLabel, approveValue, rejectValue, rejectLabel),
	)
	return fmt.Sprintf("Question #%s", q.ID), blocks, nil
}

func optionsText(q *review.Question) string {
	var b strings.Builder
	b.WriteString("*Pilihan Jawaban:*\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%s: %s\n", optionLabels[i], review.StripMarkup(opt))
	}
	fmt.Fprintf(&b, "\n*Jawaban Benar:* %s", q.CorrectOption)
	return b.String()
}

func actionsBlock(solutionLink, linkLabel, approveValue, rejectValue, rejectLabel string) *slackapi.ActionBlock {
	link := slackapi.NewButtonBlockElement("view_question", "view_question", plainText(linkLabel))
	link.URL = solutionLink
	approve := slackapi.NewButtonBlockElement(ActionApproveQuestion, approveValue, plainText("Approve")).
		WithStyle(slackapi.StylePrimary)
	reject := slackapi.NewButtonBlockElement(ActionRejectQuestion, rejectValue, plainText(rejectLabel)).
		WithStyle(slackapi.StyleDanger)
	return slackapi.NewActionBlock(cardActionsBlockID, link, approve, reject)
}

// ApprovedNotice is the static section that replaces a card's action row
// once the question is approved.
func ApprovedNotice(reviewerID, decidedAt string) slackapi.Block {
	return slackapi.NewSectionBlock(
		markdown(fmt.Sprintf("✅ *Approved* oleh <@%s> pada %s", reviewerID, decidedAt)), nil, nil)
}

// ReplaceActions swaps a card's trailing action row for a static notice.
// If the card has no trailing action row (already decided, or a fallback
// layout), the notice is appended instead.
func ReplaceActions(blocks []slackapi.Block, notice slackapi.Block) []slackapi.Block {
	out := make([]slackapi.Block, len(blocks))
	copy(out, blocks)
	if n := len(out); n > 0 && out[n-1].BlockType() == slackapi.MBTAction {
		out[n-1] = notice
		return out
	}
	return append(out, notice)
}

// RejectedCard is the static layout a card is replaced with on rejection.
func RejectedCard(questionID, reviewerID, decidedAt, reason string) []slackapi.Block {
	return []slackapi.Block{
		slackapi.NewHeaderBlock(plainText(fmt.Sprintf("Question #%s", questionID))),
		slackapi.NewDividerBlock(),
		slackapi.NewSectionBlock(
			markdown(fmt.Sprintf("❌ *Rejected* oleh <@%s> pada %s\n*Alasan:* %s", reviewerID, decidedAt, reason)), nil, nil),
	}
}

// RejectModal builds the rejection-reason form. The metadata string rides
// along opaquely and comes back with the view submission.
func RejectModal(metadata string) slackapi.ModalViewRequest {
	input := slackapi.NewPlainTextInputBlockElement(nil, RejectReasonActionID)
	input.Multiline = true
	return slackapi.ModalViewRequest{
		Type:            slackapi.VTModal,
		CallbackID:      RejectModalCallbackID,
		Title:           plainText("Alasan Reject"),
		Submit:          plainText("Submit"),
		PrivateMetadata: metadata,
		Blocks: slackapi.Blocks{BlockSet: []slackapi.Block{
			slackapi.NewInputBlock(RejectReasonBlockID, plainText("Alasan Reject"), nil, input),
		}},
	}
}

func plainText(text string) *slackapi.TextBlockObject {
	return slackapi.NewTextBlockObject(slackapi.PlainTextType, text, true, false)
}

func markdown(text string) *slackapi.TextBlockObject {
	return slackapi.NewTextBlockObject(slackapi.MarkdownType, text, false, false)
}
