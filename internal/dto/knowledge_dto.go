package dto

type AddDocumentRequest struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Category string   `json:"category" validate:"required,oneof=company funding product support contact portfolio"`
	Source   string   `json:"source,omitempty" validate:"omitempty,max=100"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags,omitempty" validate:"max=10,dive,max=40"`
}

type AddDocumentResponse struct {
	DocumentIds []string `json:"document_ids"`
	Chunks      int      `json:"chunks"`
}

type SearchRequest struct {
	Query      string   `json:"query" validate:"required,max=1000"`
	Categories []string `json:"categories,omitempty" validate:"max=6,dive,oneof=company funding product support contact portfolio"`
	TopK       int      `json:"top_k,omitempty" validate:"omitempty,min=1,max=20"`
	Threshold  float64  `json:"threshold,omitempty" validate:"omitempty,min=0,max=1"`
}

type SearchResultDTO struct {
	DocumentId string  `json:"document_id"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
	Rank       int     `json:"rank"`
}

type KnowledgeStatsResponse struct {
	TotalDocuments int            `json:"total_documents"`
	Categories     map[string]int `json:"categories"`
	Sources        map[string]int `json:"sources"`
}
