package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerShoppingCartRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "downloadShoppingCart",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/download_shopping_cart",
		Summary:     "Download shopping list",
		Description: "Returns the aggregated shopping list as a plain-text attachment",
		Tags:        []string{"Shopping cart"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDownloadShoppingCart)
}

// DownloadShoppingCartOutput is the raw text attachment response.
type DownloadShoppingCartOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func (s *Server) handleDownloadShoppingCart(ctx context.Context, _ *struct{}) (*DownloadShoppingCartOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	text, err := s.services.ShoppingList.Render(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DownloadShoppingCartOutput{
		ContentType:        "text/plain; charset=utf-8",
		ContentDisposition: `attachment; filename="shopping_cart.txt"`,
		Body:               []byte(text),
	}, nil
}
