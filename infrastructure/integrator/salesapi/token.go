package salesapi

import (
	"context"
	"strings"
)

type tokenKey struct{}

// WithToken guarda no contexto o token do usuário que fez a requisição.
// Quando presente, tem precedência sobre SALES_API_TOKEN.
func WithToken(ctx context.Context, token string) context.Context {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext retorna o token repassado pela requisição, se houver
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

func (c *Client) tokenFor(ctx context.Context) string {
	if token, ok := TokenFromContext(ctx); ok {
		return token
	}
	return c.token
}
