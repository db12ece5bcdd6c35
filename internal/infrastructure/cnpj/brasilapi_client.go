// Package cnpj consulta la base pública de CNPJ (BrasilAPI) para precargar el alta de clientes.
package cnpj

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/catalog"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/pkg/taxid"
)

var _ catalog.CNPJLookup = (*BrasilAPIClient)(nil)

// BrasilAPIClient adaptador de catalog.CNPJLookup sobre GET {baseURL}/{cnpj}.
type BrasilAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBrasilAPIClient construye el cliente. Timeout cero usa 5 s.
func NewBrasilAPIClient(baseURL string, timeout time.Duration) *BrasilAPIClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &BrasilAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// brasilAPIResponse campos usados de la respuesta de BrasilAPI.
type brasilAPIResponse struct {
	CNPJ         string `json:"cnpj"`
	RazaoSocial  string `json:"razao_social"`
	NomeFantasia string `json:"nome_fantasia"`
	Logradouro   string `json:"logradouro"`
	Numero       string `json:"numero"`
	Complemento  string `json:"complemento"`
	Bairro       string `json:"bairro"`
	Municipio    string `json:"municipio"`
	UF           string `json:"uf"`
	CEP          string `json:"cep"`
}

// Lookup devuelve los datos para precargar el formulario. 404 -> domain.ErrNotFound; cualquier
// otra falla se devuelve tal cual y el caso de uso la trata como consulta indisponible.
func (c *BrasilAPIClient) Lookup(ctx context.Context, cnpj string) (*dto.ClientRequest, error) {
	digits := taxid.Digits(cnpj)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+digits, nil)
	if err != nil {
		return nil, fmt.Errorf("cnpj: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cnpj: llamada HTTP: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("cnpj: leer respuesta: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: CNPJ %s", domain.ErrNotFound, taxid.Format(digits))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("cnpj: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var data brasilAPIResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("cnpj: parsear respuesta: %w", err)
	}
	return toClientRequest(digits, data), nil
}

// toClientRequest sin nome fantasia se usa la razão social; número y complemento van juntos en la calle.
func toClientRequest(digits string, d brasilAPIResponse) *dto.ClientRequest {
	street := strings.TrimSpace(d.Logradouro)
	if n := strings.TrimSpace(d.Numero); n != "" {
		street = strings.TrimSpace(street + ", " + n)
	}
	trade := strings.TrimSpace(d.NomeFantasia)
	if trade == "" {
		trade = strings.TrimSpace(d.RazaoSocial)
	}
	return &dto.ClientRequest{
		TradeName:  trade,
		LegalName:  strings.TrimSpace(d.RazaoSocial),
		TaxID:      digits,
		Street:     street,
		Complement: strings.TrimSpace(d.Complemento),
		District:   strings.TrimSpace(d.Bairro),
		City:       strings.TrimSpace(d.Municipio),
		State:      strings.ToUpper(strings.TrimSpace(d.UF)),
		ZipCode:    taxid.Digits(d.CEP),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
