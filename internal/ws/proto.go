// Package ws carries live block-change notifications between the server and
// its clients. A client registers interest in block ids; every persisted
// change, tombstones included, is pushed to interested listeners as one
// batch per message.
package ws

import "github.com/octoboard/octoboard/internal/blocks"

// Actions a client sends on the change socket.
const (
	ActionSubscribe   = "ADD"
	ActionUnsubscribe = "REMOVE"
)

// ActionUpdateBlocks is the server push carrying a changed-block batch.
const ActionUpdateBlocks = "UPDATE_BLOCKS"

// CommandMessage is a client request to change its block-id subscription.
// An empty subscription receives every change.
type CommandMessage struct {
	Action   string   `json:"action"`
	BlockIDs []string `json:"blockIds"`
}

// UpdateMessage is a server push with one batch of changed blocks. Each
// element is either a live update or a tombstone.
type UpdateMessage struct {
	Action string         `json:"action"`
	Blocks []blocks.Block `json:"blocks"`
}
