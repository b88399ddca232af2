package session

import (
	"encoding/json"
	"fmt"

	"applaude/internal/project"
)

// Frame is one decoded inbound message from the streaming endpoint. The set
// of variants is closed; anything that does not decode into one of them is
// dropped at the transport boundary.
type Frame interface {
	frameType() string
}

// StatusUpdateFrame carries a project_status_update push.
type StatusUpdateFrame struct {
	Project       *project.Snapshot
	Progress      int
	StatusMessage string
	IsProcessing  bool
}

// TaskStartedFrame announces a pipeline task starting.
type TaskStartedFrame struct {
	Name        string
	Description string
}

// TaskCompletedFrame announces a pipeline task finishing.
type TaskCompletedFrame struct {
	Name   string
	Result string
}

// ChatFrame is a plain chat message.
type ChatFrame struct {
	Message string
	Sender  string
}

func (StatusUpdateFrame) frameType() string  { return frameTypeStatusUpdate }
func (TaskStartedFrame) frameType() string   { return frameTypeTaskStarted }
func (TaskCompletedFrame) frameType() string { return frameTypeTaskCompleted }
func (ChatFrame) frameType() string          { return "chat" }

const (
	frameTypeStatusUpdate  = "project_status_update"
	frameTypeTaskStarted   = "task_started"
	frameTypeTaskCompleted = "task_completed"
)

// wireFrame is the superset of fields any inbound frame may carry.
type wireFrame struct {
	Type            string            `json:"type"`
	ProjectData     *project.Snapshot `json:"project_data"`
	Progress        int               `json:"progress"`
	StatusMessage   string            `json:"status_message"`
	IsProcessing    bool              `json:"is_processing"`
	TaskName        string            `json:"task_name"`
	TaskDescription string            `json:"task_description"`
	TaskResult      string            `json:"task_result"`
	Message         string            `json:"message"`
	Sender          string            `json:"sender"`
}

// DecodeFrame parses raw frame bytes into the matching variant. Frames with
// a known discriminator but a broken shape, and frames with no discriminator
// and no message, are rejected so the read loop can drop them.
func DecodeFrame(data []byte) (Frame, error) {
	var w wireFrame
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("undecodable frame: %w", err)
	}

	switch w.Type {
	case frameTypeStatusUpdate:
		return StatusUpdateFrame{
			Project:       w.ProjectData,
			Progress:      w.Progress,
			StatusMessage: w.StatusMessage,
			IsProcessing:  w.IsProcessing,
		}, nil
	case frameTypeTaskStarted:
		if w.TaskName == "" {
			return nil, fmt.Errorf("task_started frame without task_name")
		}
		return TaskStartedFrame{Name: w.TaskName, Description: w.TaskDescription}, nil
	case frameTypeTaskCompleted:
		if w.TaskName == "" {
			return nil, fmt.Errorf("task_completed frame without task_name")
		}
		return TaskCompletedFrame{Name: w.TaskName, Result: w.TaskResult}, nil
	default:
		if w.Message == "" {
			return nil, fmt.Errorf("unrecognized frame type %q", w.Type)
		}
		return ChatFrame{Message: w.Message, Sender: w.Sender}, nil
	}
}

// outboundFrame is the only message shape this client sends.
type outboundFrame struct {
	Message string `json:"message"`
}
