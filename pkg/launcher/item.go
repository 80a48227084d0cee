// Package launcher defines the values exchanged with the launcher host:
// the preferences it provides and the result items it renders.
package launcher

// ActionType tags what the host does when the user activates an item.
type ActionType string

const (
	ActionCopyToClipboard ActionType = "copy_to_clipboard"
	ActionDoNothing       ActionType = "do_nothing"
)

// Action is the activation behaviour of a result item. Data holds the text
// to copy for ActionCopyToClipboard and is empty otherwise.
type Action struct {
	Type ActionType `json:"type"`
	Data string     `json:"data,omitempty"`
}

// CopyToClipboard returns an action that copies text to the clipboard.
func CopyToClipboard(text string) Action {
	return Action{Type: ActionCopyToClipboard, Data: text}
}

// DoNothing returns an action with no effect.
func DoNothing() Action {
	return Action{Type: ActionDoNothing}
}

// IsNoop reports whether activating the action has no effect.
func (a Action) IsNoop() bool {
	return a.Type == ActionDoNothing
}

// Item is a single entry of a result list.
type Item struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Action      Action `json:"on_enter"`
}
