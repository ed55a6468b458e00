package messaging

import slackapi "github.com/slack-go/slack"

// Client defines the messaging operations the bot needs from Slack.
// It decouples the application services from the SDK's web client so tests
// can observe posts and edits without a network.
type Client interface {
	// PostCard posts a block layout with a plain-text fallback and returns
	// the message timestamp identifying the posted card.
	PostCard(channelID, fallbackText string, blocks []slackapi.Block) (string, error)

	// UpdateCard replaces the blocks of an already posted card in place.
	UpdateCard(channelID, timestamp string, blocks []slackapi.Block) error

	// PostMessage posts a plain text message to a channel or user DM.
	PostMessage(channelID, text string) error

	// PostThreadMessage posts a plain text reply in a card's thread.
	PostThreadMessage(channelID, threadTimestamp, text string) error

	// OpenView opens a modal for the given interaction trigger.
	OpenView(triggerID string, view slackapi.ModalViewRequest) error
}
