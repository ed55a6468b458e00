package review

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TokenDelimiter joins the fields of a correlation token. Field values must
// never contain it; EncodeToken enforces that at encode time.
const TokenDelimiter = "_"

// Action is the kind of decision a token correlates back to a row.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

var (
	ErrMalformedToken    = errors.New("malformed correlation token")
	ErrMalformedMetadata = errors.New("malformed modal metadata")
)

// Token correlates a card button click back to its row.
type Token struct {
	Action     Action
	QuestionID string
	RowNumber  int
}

// ModalMetadata additionally carries the posted card's location so a modal
// submission can edit the card in place.
type ModalMetadata struct {
	Token
	ChannelID string
	MessageTS string
}

// EncodeToken builds the opaque button value for a card action. The question
// id is the only untrusted field; an id containing the delimiter would be
// silently mis-split on decode, so it is rejected here instead.
func EncodeToken(action Action, questionID string, rowNumber int) (string, error) {
	if strings.Contains(string(action), TokenDelimiter) {
		return "", fmt.Errorf("action %q contains reserved delimiter %q", action, TokenDelimiter)
	}
	if strings.Contains(questionID, TokenDelimiter) {
		return "", fmt.Errorf("question id %q contains reserved delimiter %q", questionID, TokenDelimiter)
	}
	return strings.Join([]string{string(action), questionID, strconv.Itoa(rowNumber)}, TokenDelimiter), nil
}

// DecodeToken splits a button value back into its fields.
func DecodeToken(token string) (Token, error) {
	parts := strings.Split(token, TokenDelimiter)
	if len(parts) < 3 {
		return Token{}, fmt.Errorf("%w: %q has %d parts, want at least 3", ErrMalformedToken, token, len(parts))
	}
	rowNumber, err := strconv.Atoi(parts[2])
	if err != nil {
		return Token{}, fmt.Errorf("%w: bad row number %q", ErrMalformedToken, parts[2])
	}
	return Token{Action: Action(parts[0]), QuestionID: parts[1], RowNumber: rowNumber}, nil
}

// EncodeModalMetadata appends the card location to an encoded token for the
// round trip through a modal's private metadata. The trailing delimiter is
// kept for compatibility with payloads produced by the previous version.
func EncodeModalMetadata(token, channelID, messageTS string) string {
	return token + TokenDelimiter + channelID + TokenDelimiter + messageTS + TokenDelimiter
}

// DecodeModalMetadata parses a modal's private metadata. Payloads with fewer
// than five parts predate the card location being carried and must be handled
// through the degraded path: record the decision, skip the card edit.
func DecodeModalMetadata(metadata string) (ModalMetadata, error) {
	parts := strings.Split(metadata, TokenDelimiter)
	if len(parts) < 5 {
		return ModalMetadata{}, fmt.Errorf("%w: %q has %d parts, want at least 5", ErrMalformedMetadata, metadata, len(parts))
	}
	rowNumber, err := strconv.Atoi(parts[2])
	if err != nil {
		return ModalMetadata{}, fmt.Errorf("%w: bad row number %q", ErrMalformedMetadata, parts[2])
	}
	return ModalMetadata{
		Token:     Token{Action: Action(parts[0]), QuestionID: parts[1], RowNumber: rowNumber},
		ChannelID: parts[3],
		MessageTS: parts[4],
	}, nil
}
