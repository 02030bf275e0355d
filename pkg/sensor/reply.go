package sensor

import "strings"

// ReplyKind classifies a line printed by the firmware.
type ReplyKind int

// Reply kinds.
const (
	ReplyInfo ReplyKind = iota
	ReplySuccess
	ReplyFailure
)

// String returns the string representation of the kind
func (k ReplyKind) String() string {
	switch k {
	case ReplySuccess:
		return "success"
	case ReplyFailure:
		return "failure"
	default:
		return "info"
	}
}

var (
	successReplies = []string{
		"Stored!",
		"Prints matched!",
		"Found a print match!",
		"Found ID #",
		"Deleted!",
		"Upload success",
		ReadyMarker,
	}
	failureReplies = []string{
		"Communication error",
		"Imaging error",
		"Unknown error",
		"Image too messy",
		"Could not",
		"did not match",
		"Did not find a match",
		"Error writing to flash",
		"Bad packet",
	}
)

// ClassifyReply tells the outcome a firmware line reports. Progress
// lines like "Image taken" are ReplyInfo.
func ClassifyReply(line string) ReplyKind {
	for _, s := range failureReplies {
		if strings.Contains(line, s) {
			return ReplyFailure
		}
	}
	for _, s := range successReplies {
		if strings.Contains(line, s) {
			return ReplySuccess
		}
	}
	return ReplyInfo
}
