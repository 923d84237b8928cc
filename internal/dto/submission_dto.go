package dto

type CreateSubmissionRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	FileURL     *string `json:"file_url,omitempty"`
}

type VerifyRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes,omitempty"`
}

type PageResponse struct {
	Items interface{} `json:"items"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Total int64       `json:"total"`
}
