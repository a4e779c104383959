package journal

import "github.com/google/uuid"

type CreateEntryDTO struct {
	Date      string   `json:"date"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Mood      *int     `json:"mood"`
	Gratitude []string `json:"gratitude"`
}

type UpdateEntryDTO struct {
	Date      *string   `json:"date"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Mood      *int      `json:"mood"`
	ClearMood bool      `json:"clear_mood"`
	Gratitude *[]string `json:"gratitude"`
}

type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      *int      `json:"mood,omitempty"`
	Gratitude []string  `json:"gratitude"`
}

func toResponse(e *Entry) EntryResponse {
	gratitude := e.Gratitude.Data()
	if gratitude == nil {
		gratitude = []string{}
	}
	return EntryResponse{
		ID:        e.ID,
		Date:      e.Date,
		Title:     e.Title,
		Content:   e.Content,
		Mood:      e.Mood,
		Gratitude: gratitude,
	}
}
