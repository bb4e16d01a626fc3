package dto

type SchemeQuery struct {
	State string
	// Limit <= 0 means no limit.
	Limit int
}
