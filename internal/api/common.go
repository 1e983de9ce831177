package api

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// PageInput defines the common pagination query parameters.
type PageInput struct {
	Page  int `query:"page" default:"1" minimum:"1" doc:"Page number"`
	Limit int `query:"limit" minimum:"1" doc:"Items per page"`
}

// pageWindow converts 1-based page/limit into a limit/offset pair,
// applying the configured default and cap.
func (s *Server) pageWindow(page, limit int) (int, int) {
	if limit <= 0 {
		limit = s.cfg.API.DefaultPageSize
	}
	if limit > s.cfg.API.MaxPageSize {
		limit = s.cfg.API.MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}
