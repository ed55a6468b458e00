// Package slack adapts the slack-go SDK to the domain messaging interface
// and consumes the socket-mode interaction events.
package slack

import (
	slackapi "github.com/slack-go/slack"
)

// Adapter implements messaging.Client using the slack-go Web API client.
type Adapter struct {
	api *slackapi.Client
}

func NewAdapter(api *slackapi.Client) *Adapter {
	return &Adapter{api: api}
}

func (a *Adapter) PostCard(channelID, fallbackText string, blocks []slackapi.Block) (string, error) {
	_, timestamp, err := a.api.PostMessage(channelID,
		slackapi.MsgOptionText(fallbackText, false),
		slackapi.MsgOptionBlocks(blocks...),
	)
	return timestamp, err
}

func (a *Adapter) UpdateCard(channelID, timestamp string, blocks []slackapi.Block) error {
	_, _, _, err := a.api.UpdateMessage(channelID, timestamp, slackapi.MsgOptionBlocks(blocks...))
	return err
}

func (a *Adapter) PostMessage(channelID, text string) error {
	_, _, err := a.api.PostMessage(channelID, slackapi.MsgOptionText(text, false))
	return err
}

func (a *Adapter) PostThreadMessage(channelID, threadTimestamp, text string) error {
	_, _, err := a.api.PostMessage(channelID,
		slackapi.MsgOptionTS(threadTimestamp),
		slackapi.MsgOptionText(text, false),
	)
	return err
}

func (a *Adapter) OpenView(triggerID string, view slackapi.ModalViewRequest) error {
	_, err := a.api.OpenView(triggerID, view)
	return err
}
