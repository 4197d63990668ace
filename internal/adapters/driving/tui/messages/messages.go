// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// TabType identifies which tab is currently active.
type TabType int

const (
	// TabChat is the assistant conversation.
	TabChat TabType = iota
	// TabMedications is the medication safety lookup.
	TabMedications
	// TabSymptoms is the symptom lookup.
	TabSymptoms
	// TabTimeline is the week-by-week timeline.
	TabTimeline
	// TabNutrition is nutrition, food safety and morning sickness guidance.
	TabNutrition
)

// AllTabs returns the tabs in display order.
func AllTabs() []TabType {
	return []TabType{TabChat, TabMedications, TabSymptoms, TabTimeline, TabNutrition}
}

// String returns the tab title.
func (t TabType) String() string {
	switch t {
	case TabChat:
		return "Chat"
	case TabMedications:
		return "Medications"
	case TabSymptoms:
		return "Symptoms"
	case TabTimeline:
		return "Timeline"
	case TabNutrition:
		return "Nutrition"
	default:
		return "Unknown"
	}
}

// TabChanged is sent when navigating between tabs.
type TabChanged struct {
	Tab TabType
}

// QuestionAsked is sent when the user submits a chat question.
type QuestionAsked struct {
	Question string
}

// ReplyReceived carries the assistant reply back to the chat view.
type ReplyReceived struct {
	Message domain.ChatMessage
	Err     error
}

// ConversationReset signals the conversation was cleared.
type ConversationReset struct {
	Err error
}

// IndexStatusUpdated carries the index state after a build attempt.
type IndexStatusUpdated struct {
	Status domain.IndexStatus
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
