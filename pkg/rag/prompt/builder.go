package prompt

import (
	"fmt"
	"strings"

	"agrisense-be/pkg/llm"
)

// MaxPriorTurns is the conversation window: five exchanges.
const MaxPriorTurns = 10

type CropHistoryItem struct {
	CropName string
	Year     int
}

// Profile is the farmer data used for personalization. Zero values render as placeholders.
type Profile struct {
	Name             string
	Location         string
	Crops            []string
	LandSize         string
	SoilType         string
	IrrigationSource string
	FarmingType      string
	History          []CropHistoryItem
}

var languageNames = map[string]string{
	"english": "English",
	"hindi":   "Hindi",
	"punjabi": "Punjabi",
}

// ResolveLanguage maps the request language to the name used in the instruction.
func ResolveLanguage(language string) string {
	if name, ok := languageNames[strings.ToLower(strings.TrimSpace(language))]; ok {
		return name
	}
	return "English"
}

// ChatPromptBuilder assembles the completion payload. It does no I/O.
type ChatPromptBuilder struct {
	profile  Profile
	window   []llm.Message
	question string
	language string
}

func NewChatPromptBuilder(profile Profile, window []llm.Message, question, language string) *ChatPromptBuilder {
	return &ChatPromptBuilder{
		profile:  profile,
		window:   window,
		question: question,
		language: language,
	}
}

// Build returns [system, ...prior turns, user].
func (b *ChatPromptBuilder) Build() []llm.Message {
	prior := b.window
	if len(prior) > MaxPriorTurns {
		prior = prior[len(prior)-MaxPriorTurns:]
	}

	messages := make([]llm.Message, 0, len(prior)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: SystemInstruction(ResolveLanguage(b.language))})
	for _, m := range prior {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: b.userTurn()})
	return messages
}

func (b *ChatPromptBuilder) userTurn() string {
	return fmt.Sprintf("FARMER PROFILE: %s\n\nQUESTION: %s\n\nANSWER:", RenderProfile(b.profile), b.question)
}

// RenderProfile writes the fixed-order profile block, one "- Label: value" line per field.
func RenderProfile(p Profile) string {
	var sb strings.Builder
	writeField(&sb, "Name", p.Name, "Farmer")
	writeField(&sb, "Location", p.Location, "India")
	writeField(&sb, "Current Crops", joinNonEmpty(p.Crops), "Not specified")
	writeField(&sb, "Land Size", p.LandSize, "Unknown")
	writeField(&sb, "Soil Type", p.SoilType, "Unknown")
	writeField(&sb, "Irrigation", p.IrrigationSource, "Unknown")
	writeField(&sb, "Farming Type", p.FarmingType, "Conventional")
	writeField(&sb, "Crop History", renderHistory(p.History), "None recorded")
	return strings.TrimSuffix(sb.String(), "\n")
}

func writeField(sb *strings.Builder, label, value, fallback string) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	sb.WriteString("- ")
	sb.WriteString(label)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

func joinNonEmpty(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ", ")
}

// renderHistory writes "Crop (year)"; a record saved without a year renders as the crop name alone.
func renderHistory(history []CropHistoryItem) string {
	parts := make([]string, 0, len(history))
	for _, h := range history {
		if h.Year > 0 {
			parts = append(parts, fmt.Sprintf("%s (%d)", h.CropName, h.Year))
		} else {
			parts = append(parts, h.CropName)
		}
	}
	return strings.Join(parts, ", ")
}
