package conversation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nlpodyssey/openai-agents-go/memory"
	"github.com/openai/openai-go/v2/packages/param"
	"github.com/openai/openai-go/v2/responses"
	"github.com/openai/openai-go/v2/shared/constant"
)

// ItemData stores a response input item as JSON
type ItemData struct {
	*memory.TResponseInputItem
}

// Value implements the driver.Valuer interface for database storage
func (d ItemData) Value() (driver.Value, error) {
	if d.TResponseInputItem == nil {
		return nil, nil
	}
	return json.Marshal(d.TResponseInputItem)
}

// Scan implements the sql.Scanner interface for database retrieval
func (d *ItemData) Scan(value any) error {
	if value == nil {
		d.TResponseInputItem = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ItemData", value)
	}

	item, err := decodeItem(data)
	if err != nil {
		return err
	}
	d.TResponseInputItem = item
	return nil
}

// decodeItem unmarshals a stored item. Assistant output messages decode as
// easy input messages with empty content, so those are re-read as output messages
func decodeItem(data []byte) (*memory.TResponseInputItem, error) {
	item := &memory.TResponseInputItem{}
	if err := json.Unmarshal(data, item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	if msg := item.OfMessage; !param.IsOmitted(msg) {
		if msg.Content.OfInputItemContentList == nil && msg.Content.OfString == (param.Opt[string]{}) {
			var out responses.ResponseOutputMessageParam
			if err := json.Unmarshal(data, &out); err == nil && len(out.Content) > 0 &&
				!param.IsOmitted(out.Content[0].OfOutputText) && out.Content[0].OfOutputText.Text != "" {
				item = &memory.TResponseInputItem{OfOutputMessage: &out}
			}
		}
	}

	return item, nil
}

// Item is one stored entry of a conversation
type Item struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	ConversationID uuid.UUID `json:"conversation_id" gorm:"type:char(36);not null;index"`
	Data           ItemData  `json:"data" gorm:"column:data;type:text;not null"`
}

// TableName sets the table name for GORM
func (Item) TableName() string {
	return "conversation_items"
}

// isUserMessage reports whether item starts a user turn
func isUserMessage(item memory.TResponseInputItem) bool {
	switch {
	case item.OfMessage != nil:
		return string(item.OfMessage.Role) == "user"
	case item.OfInputMessage != nil:
		return string(item.OfInputMessage.Role) == "user"
	default:
		return false
	}
}

// callID returns the call id of a tool call item
func callID(item memory.TResponseInputItem) (string, bool) {
	switch {
	case item.OfFunctionCall != nil:
		return item.OfFunctionCall.CallID, true
	case item.OfLocalShellCall != nil:
		return item.OfLocalShellCall.CallID, true
	case item.OfCustomToolCall != nil:
		return item.OfCustomToolCall.CallID, true
	default:
		return "", false
	}
}

// outputCallID returns the call id answered by a tool output item
func outputCallID(item memory.TResponseInputItem) (string, bool) {
	switch {
	case item.OfFunctionCallOutput != nil:
		return item.OfFunctionCallOutput.CallID, true
	case item.OfComputerCallOutput != nil:
		return item.OfComputerCallOutput.CallID, true
	case item.OfLocalShellCallOutput != nil:
		return item.OfLocalShellCallOutput.ID, true
	case item.OfCustomToolCallOutput != nil:
		return item.OfCustomToolCallOutput.CallID, true
	default:
		return "", false
	}
}

// withType fills the type discriminator the param helpers leave empty. Stored
// JSON without it cannot be decoded back into the union
func withType(item memory.TResponseInputItem) memory.TResponseInputItem {
	switch {
	case item.OfMessage != nil && item.OfMessage.Type == "":
		msg := *item.OfMessage
		msg.Type = responses.EasyInputMessageTypeMessage
		item.OfMessage = &msg
	case item.OfFunctionCall != nil && item.OfFunctionCall.Type == "":
		call := *item.OfFunctionCall
		call.Type = constant.ValueOf[constant.FunctionCall]()
		item.OfFunctionCall = &call
	case item.OfFunctionCallOutput != nil && item.OfFunctionCallOutput.Type == "":
		out := *item.OfFunctionCallOutput
		out.Type = constant.ValueOf[constant.FunctionCallOutput]()
		item.OfFunctionCallOutput = &out
	}
	return item
}
