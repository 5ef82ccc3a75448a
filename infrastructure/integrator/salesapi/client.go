// Package salesapi consulta o backend de vendas via HTTP e entrega as coleções
// usadas pelo motor de análise.
package salesapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	salesPath      = "/api/sales"
	productsPath   = "/api/products"
	categoriesPath = "/api/categories"
	usersPath      = "/api/users"

	defaultTimeout = 30 * time.Second

	// tamanho de página pedido quando o backend responde paginado
	pageSize = 1000
)

// StatusError é retornado quando o backend responde com status diferente de 200
type StatusError struct {
	Path       string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return "requisição para " + e.Path + " falhou com status: " + e.Status
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient cria um cliente para o backend de vendas configurado em SALES_API_URL
func NewClient(cfg config.SalesAPI) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: cfg.URL,
		token:   cfg.Token,
	}
}

// get executa um GET autenticado e decodifica a resposta em out.
// Aceita tanto uma lista JSON quanto uma página no formato {"content": [...]};
// more indica que a página não é a última.
func (c *Client) get(ctx context.Context, resource string, query url.Values, out any) (more bool, err error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return false, errors.Wrap(err, "erro ao analisar a URL base")
	}
	endpoint.Path = path.Join(endpoint.Path, resource)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return false, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Accept", "application/json")
	if token := c.tokenFor(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	log.ForContext(ctx).WithFields(log.Fields{
		"path":        resource,
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Resposta recebida do backend de vendas")

	if resp.StatusCode != http.StatusOK {
		return false, &StatusError{Path: resource, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, errors.Wrap(err, "erro ao ler a resposta")
	}

	more, err = decodeCollection(body, out)
	if err != nil {
		return false, errors.Wrapf(err, "erro ao decodificar a resposta de %s", resource)
	}

	return more, nil
}

// getAll percorre as páginas de resource até a última e junta os itens
func getAll[T any](ctx context.Context, c *Client, resource string) ([]T, error) {
	items := make([]T, 0)
	for page := 0; ; page++ {
		var batch []T
		more, err := c.get(ctx, resource, pageQuery(page), &batch)
		if err != nil {
			return nil, err
		}

		items = append(items, batch...)
		if !more || len(batch) == 0 {
			return items, nil
		}
	}
}

type collectionPage struct {
	Content jsoniter.RawMessage `json:"content"`
	Last    *bool               `json:"last"`
}

// decodeCollection decodifica uma lista JSON ou o campo content de uma página.
// Uma lista é sempre completa; uma página sem o campo last é tratada como a última.
func decodeCollection(body []byte, out any) (bool, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}

	if trimmed[0] == '[' {
		return false, json.Unmarshal(trimmed, out)
	}

	var page collectionPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return false, err
	}
	if len(page.Content) == 0 {
		return false, errors.New("resposta não é uma lista nem uma página com content")
	}

	if err := json.Unmarshal(page.Content, out); err != nil {
		return false, err
	}

	return page.Last != nil && !*page.Last, nil
}

func pageQuery(page int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(pageSize))
	return query
}
